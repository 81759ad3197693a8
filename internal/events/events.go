// Package events типизированные доменные события и их диспетчер
package events

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-InspectionService/internal/domain"
	"github.com/m04kA/SMC-InspectionService/pkg/ptr"
)

var (
	// ErrEncodePayload не удалось сериализовать payload
	ErrEncodePayload = errors.New("events: failed to encode payload")

	// ErrDecodePayload payload не соответствует типу события
	ErrDecodePayload = errors.New("events: failed to decode payload")

	// ErrUnexpectedEvent событие другого типа
	ErrUnexpectedEvent = errors.New("events: unexpected event name")
)

// New оборачивает payload в конверт события
func New(name domain.EventName, centerID int64, payload any, at time.Time) (*domain.Event, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrEncodePayload, name, err)
	}
	return &domain.Event{
		ID:         uuid.New(),
		Name:       name,
		CenterID:   centerID,
		Payload:    raw,
		OccurredAt: at.UTC(),
	}, nil
}

// Decode разбирает payload события, проверяя имя
func Decode[T any](event *domain.Event, name domain.EventName) (*T, error) {
	if event.Name != name {
		return nil, fmt.Errorf("%w: got %s, want %s", ErrUnexpectedEvent, event.Name, name)
	}
	var payload T
	if err := json.Unmarshal(event.Payload, &payload); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrDecodePayload, name, err)
	}
	return &payload, nil
}

// NewReservationCreated событие reservation.created
func NewReservationCreated(res *domain.Reservation, at time.Time) (*domain.Event, error) {
	return New(domain.EventReservationCreated, res.CenterID, ReservationCreated{
		ReservationID: res.ID,
		BookingCode:   res.BookingCode,
		ClientID:      res.ClientID,
		VehicleID:     res.VehicleID,
		CategoryID:    res.CategoryID,
		EmployeeID:    res.EmployeeID,
		Date:          res.Date.Format(domain.DateFormat),
		StartTime:     res.StartTime.String(),
		EndTime:       res.EndTime.String(),
		Status:        string(res.Status),
		Notes:         res.Notes,
	}, at)
}

// NewReservationStatusChanged событие reservation.status_changed
func NewReservationStatusChanged(res *domain.Reservation, old domain.ReservationStatus, cause Cause, holidayName, reason *string, at time.Time) (*domain.Event, error) {
	return New(domain.EventReservationStatusChanged, res.CenterID, ReservationStatusChanged{
		ReservationID: res.ID,
		BookingCode:   res.BookingCode,
		ClientID:      res.ClientID,
		OldStatus:     old,
		NewStatus:     res.Status,
		Cause:         cause,
		HolidayName:   holidayName,
		Reason:        reason,
	}, at)
}

// NewPaymentCompleted событие payment.completed
func NewPaymentCompleted(p *domain.Payment, at time.Time) (*domain.Event, error) {
	paidAt := at
	if p.PaidAt != nil {
		paidAt = *p.PaidAt
	}
	return New(domain.EventPaymentCompleted, p.CenterID, PaymentCompleted{
		PaymentID:     p.ID,
		ReservationID: p.ReservationID,
		ClientID:      p.ClientID,
		Amount:        p.Amount,
		Currency:      p.Currency,
		ExternalID:    p.ExternalID,
		PaidAt:        paidAt.UTC().Format(time.RFC3339),
	}, at)
}

// NewHolidayCreated событие holiday.created
func NewHolidayCreated(h *domain.Holiday, at time.Time) (*domain.Event, error) {
	payload := HolidayCreated{
		HolidayID: h.ID,
		Name:      h.Name,
		StartDate: h.StartDate.Format(domain.DateFormat),
	}
	if h.EndDate != nil {
		payload.EndDate = ptr.Ptr(h.EndDate.Format(domain.DateFormat))
	}
	return New(domain.EventHolidayCreated, h.CenterID, payload, at)
}

// NewPromotionCreated событие promotion.created
func NewPromotionCreated(p *domain.Promotion, at time.Time) (*domain.Event, error) {
	return New(domain.EventPromotionCreated, p.CenterID, PromotionCreated{
		PromotionID:   p.ID,
		Name:          p.Name,
		Code:          p.Code,
		DiscountType:  p.DiscountType,
		DiscountValue: p.DiscountValue,
		StartDate:     p.StartDate.Format(domain.DateFormat),
		EndDate:       p.EndDate.Format(domain.DateFormat),
	}, at)
}
