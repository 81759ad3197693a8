package create_reservation

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-InspectionService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.CenterID <= 0 || req.ClientID <= 0 || req.VehicleID <= 0 || req.CategoryID <= 0 {
		return fmt.Errorf("%w: center, client, vehicle and category are required", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: startTime: %v", ErrInvalidInput, err)
	}
	if req.Notes != nil && len([]rune(*req.Notes)) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}
	if req.Status != nil {
		status := domain.ReservationStatus(*req.Status)
		if status != domain.StatusPending && status != domain.StatusConfirmed {
			return fmt.Errorf("%w: initial status must be pending or confirmed", ErrInvalidInput)
		}
	}
	return nil
}

// initialStatus статус новой записи: клиент создает неподтвержденную запись
func initialStatus(req *Request) domain.ReservationStatus {
	if req.Actor.IsClient() {
		return domain.StatusPending
	}
	if req.Status != nil {
		return domain.ReservationStatus(*req.Status)
	}
	return domain.StatusConfirmed
}

// isDateInPast дата раньше сегодняшнего дня в часовом поясе центра
func isDateInPast(date, now time.Time, loc *time.Location) bool {
	local := now.In(loc)
	today := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)
	return domain.DateOnly(date).Before(today)
}
