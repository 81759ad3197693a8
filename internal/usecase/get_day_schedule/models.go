package get_day_schedule

import (
	"time"

	"github.com/m04kA/SMC-InspectionService/internal/domain"
)

// Request расписание центра на дату
type Request struct {
	CenterID int64
	Date     time.Time
}

// Response записи дня (без отмененных) и статистика по всем записям дня
type Response struct {
	Date         time.Time
	IsHoliday    bool
	HolidayName  *string
	Reservations []*domain.ReservationDetails
	Stats        domain.DayStats
}
