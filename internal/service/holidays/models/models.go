package models

import (
	"time"

	"github.com/m04kA/SMC-InspectionService/internal/domain"
)

// CreateHolidayRequest запрос на создание выходного
type CreateHolidayRequest struct {
	CenterID    int64
	Name        string
	Description *string
	StartDate   time.Time
	EndDate     *time.Time
	IsRecurring bool
}

// ListHolidaysRequest фильтр списка выходных
type ListHolidaysRequest struct {
	CenterID        int64
	Year            *int
	Month           *int
	IncludeInactive bool
}

// HolidayResponse выходной в ответе API
type HolidayResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	StartDate   string    `json:"startDate"`
	EndDate     *string   `json:"endDate,omitempty"`
	IsRecurring bool      `json:"isRecurring"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
}

// FromDomainHoliday конвертирует domain модель в DTO
func FromDomainHoliday(h *domain.Holiday) *HolidayResponse {
	resp := &HolidayResponse{
		ID:          h.ID,
		Name:        h.Name,
		Description: h.Description,
		StartDate:   h.StartDate.Format(domain.DateFormat),
		IsRecurring: h.IsRecurring,
		IsActive:    h.IsActive,
		CreatedAt:   h.CreatedAt,
	}
	if h.EndDate != nil {
		end := h.EndDate.Format(domain.DateFormat)
		resp.EndDate = &end
	}
	return resp
}

// FromDomainHolidayList конвертирует список выходных
func FromDomainHolidayList(holidays []*domain.Holiday) []*HolidayResponse {
	resp := make([]*HolidayResponse, 0, len(holidays))
	for _, h := range holidays {
		resp = append(resp, FromDomainHoliday(h))
	}
	return resp
}
