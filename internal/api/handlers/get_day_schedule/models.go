package get_day_schedule

import (
	"github.com/m04kA/SMC-InspectionService/internal/domain"
	reservationModels "github.com/m04kA/SMC-InspectionService/internal/service/reservations/models"
	getDaySchedule "github.com/m04kA/SMC-InspectionService/internal/usecase/get_day_schedule"
)

// DayScheduleResponse HTTP response model
type DayScheduleResponse struct {
	Date         string                                   `json:"date"`
	IsHoliday    bool                                     `json:"isHoliday"`
	HolidayName  *string                                  `json:"holidayName,omitempty"`
	Reservations []*reservationModels.ReservationResponse `json:"reservations"`
	Stats        DayStats                                 `json:"stats"`
}

// DayStats статистика дня
type DayStats struct {
	Total      int `json:"total"`
	Pending    int `json:"pending"`
	Confirmed  int `json:"confirmed"`
	InProgress int `json:"inProgress"`
	Completed  int `json:"completed"`
	Cancelled  int `json:"cancelled"`
	NoShow     int `json:"noShow"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getDaySchedule.Response) *DayScheduleResponse {
	items := make([]*reservationModels.ReservationResponse, 0, len(resp.Reservations))
	for _, d := range resp.Reservations {
		items = append(items, reservationModels.FromDomainDetails(d))
	}

	return &DayScheduleResponse{
		Date:         resp.Date.Format(domain.DateFormat),
		IsHoliday:    resp.IsHoliday,
		HolidayName:  resp.HolidayName,
		Reservations: items,
		Stats: DayStats{
			Total:      resp.Stats.Total,
			Pending:    resp.Stats.Pending,
			Confirmed:  resp.Stats.Confirmed,
			InProgress: resp.Stats.InProgress,
			Completed:  resp.Stats.Completed,
			Cancelled:  resp.Stats.Cancelled,
			NoShow:     resp.Stats.NoShow,
		},
	}
}
