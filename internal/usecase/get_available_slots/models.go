package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-InspectionService/internal/domain"
)

// Request модель запроса на получение сетки слотов
type Request struct {
	CenterID   int64
	Date       time.Time // Дата (без времени)
	CategoryID *int64    // Ширина слота берется из длительности категории; без категории 30 минут
}

// Response сетка слотов дня
type Response struct {
	Date        time.Time
	CenterID    int64
	CategoryID  *int64
	IsHoliday   bool
	HolidayName *string
	Slots       []domain.Slot
}
