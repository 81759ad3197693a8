package holiday_cascade

import (
	"time"

	"github.com/m04kA/SMC-InspectionService/internal/domain"
)

// Request отмена записей центра на период выходного
type Request struct {
	CenterID    int64
	HolidayName string
	From        time.Time
	To          time.Time // включительно
}

// Result отмененные записи и число пропущенных из-за ошибок
type Result struct {
	Cancelled []*domain.Reservation
	Failed    int
}
