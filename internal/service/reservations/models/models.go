package models

import (
	"time"

	"github.com/m04kA/SMC-InspectionService/internal/domain"
)

// Request модели

// ListReservationsRequest запрос на получение списка записей центра
type ListReservationsRequest struct {
	Actor      domain.Actor
	CenterID   int64
	DateFrom   *time.Time
	DateTo     *time.Time
	Status     *string
	Result     *string
	ClientID   *int64
	EmployeeID *int64
	CategoryID *int64
	Search     string
	Page       int
	Limit      int
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListReservationsRequest) ToDomainFilter() (domain.ReservationFilter, error) {
	page, limit := domain.ClampPagination(r.Page, r.Limit)

	filter := domain.ReservationFilter{
		CenterID:   r.CenterID,
		DateFrom:   r.DateFrom,
		DateTo:     r.DateTo,
		ClientID:   r.ClientID,
		EmployeeID: r.EmployeeID,
		CategoryID: r.CategoryID,
		Search:     r.Search,
		Page:       page,
		Limit:      limit,
	}

	if r.Status != nil {
		status := domain.ReservationStatus(*r.Status)
		if !status.IsValid() {
			return filter, ErrInvalidStatus
		}
		filter.Status = &status
	}
	if r.Result != nil {
		result := domain.InspectionResult(*r.Result)
		if !result.IsValid() {
			return filter, ErrInvalidResult
		}
		filter.Result = &result
	}
	if r.Actor.IsClient() {
		filter.ClientUserID = &r.Actor.UserID
	}

	return filter, nil
}

// Response модели

// ReservationResponse ответ с данными записи
type ReservationResponse struct {
	ID              int64                    `json:"id"`
	BookingCode     string                   `json:"bookingCode"`
	CenterID        int64                    `json:"centerId"`
	ClientID        int64                    `json:"clientId"`
	VehicleID       int64                    `json:"vehicleId"`
	CategoryID      int64                    `json:"categoryId"`
	EmployeeID      *int64                   `json:"employeeId,omitempty"`
	Date            string                   `json:"date"`      // "2026-05-12"
	StartTime       string                   `json:"startTime"` // "09:00"
	EndTime         string                   `json:"endTime"`
	DurationMinutes int                      `json:"durationMinutes"`
	Status          string                   `json:"status"`
	Result          *string                  `json:"result,omitempty"`
	Report          *domain.InspectionReport `json:"report,omitempty"`
	Notes           *string                  `json:"notes,omitempty"`

	// Денормализованные данные
	ClientName   string  `json:"clientName,omitempty"`
	ClientPhone  *string `json:"clientPhone,omitempty"`
	ClientEmail  *string `json:"clientEmail,omitempty"`
	LicensePlate string  `json:"licensePlate,omitempty"`
	CategoryName string  `json:"categoryName,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ReservationListResponse страница записей
type ReservationListResponse struct {
	Items      []ReservationResponse `json:"items"`
	Total      int                   `json:"total"`
	Page       int                   `json:"page"`
	Limit      int                   `json:"limit"`
	TotalPages int                   `json:"totalPages"`
}

// Методы конвертации

// FromDomainReservation конвертирует domain модель в DTO
func FromDomainReservation(r *domain.Reservation) *ReservationResponse {
	if r == nil {
		return nil
	}

	resp := &ReservationResponse{
		ID:              r.ID,
		BookingCode:     r.BookingCode,
		CenterID:        r.CenterID,
		ClientID:        r.ClientID,
		VehicleID:       r.VehicleID,
		CategoryID:      r.CategoryID,
		EmployeeID:      r.EmployeeID,
		Date:            r.Date.Format(domain.DateFormat),
		StartTime:       r.StartTime.String(),
		EndTime:         r.EndTime.String(),
		DurationMinutes: r.DurationMinutes,
		Status:          string(r.Status),
		Report:          r.Report,
		Notes:           r.Notes,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}

	if r.Result != nil {
		result := string(*r.Result)
		resp.Result = &result
	}

	return resp
}

// FromDomainDetails конвертирует запись с деталями в DTO
func FromDomainDetails(d *domain.ReservationDetails) *ReservationResponse {
	if d == nil {
		return nil
	}

	resp := FromDomainReservation(&d.Reservation)
	resp.ClientName = d.ClientName
	resp.ClientPhone = d.ClientPhone
	resp.ClientEmail = d.ClientEmail
	resp.LicensePlate = d.LicensePlate
	resp.CategoryName = d.CategoryName

	return resp
}

// FromDomainDetailsList конвертирует страницу записей в DTO
func FromDomainDetailsList(items []*domain.ReservationDetails, total int, filter domain.ReservationFilter) *ReservationListResponse {
	resp := &ReservationListResponse{
		Items:      make([]ReservationResponse, 0, len(items)),
		Total:      total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: domain.TotalPages(total, filter.Limit),
	}

	for _, d := range items {
		resp.Items = append(resp.Items, *FromDomainDetails(d))
	}

	return resp
}
