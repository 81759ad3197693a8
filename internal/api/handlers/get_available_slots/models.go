package get_available_slots

import (
	"github.com/m04kA/SMC-InspectionService/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-InspectionService/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Date        string  `json:"date"`
	CenterID    int64   `json:"centerId"`
	CategoryID  *int64  `json:"categoryId,omitempty"`
	IsHoliday   bool    `json:"isHoliday"`
	HolidayName *string `json:"holidayName,omitempty"`
	Slots       []Slot  `json:"slots"`
}

// Slot модель временного слота
type Slot struct {
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
	IsAvailable bool   `json:"isAvailable"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]Slot, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = Slot{
			StartTime:   slot.StartTime.String(),
			EndTime:     slot.EndTime.String(),
			IsAvailable: slot.IsAvailable,
		}
	}

	return &AvailableSlotsResponse{
		Date:        resp.Date.Format(domain.DateFormat),
		CenterID:    resp.CenterID,
		CategoryID:  resp.CategoryID,
		IsHoliday:   resp.IsHoliday,
		HolidayName: resp.HolidayName,
		Slots:       slots,
	}
}
