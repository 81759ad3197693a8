package update_reservation

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-InspectionService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.CenterID <= 0 || req.ID <= 0 {
		return fmt.Errorf("%w: center and reservation id are required", ErrInvalidInput)
	}
	if req.StartTime != nil {
		if err := req.StartTime.Validate(); err != nil {
			return fmt.Errorf("%w: startTime: %v", ErrInvalidInput, err)
		}
	}
	if req.CategoryID != nil && *req.CategoryID <= 0 {
		return fmt.Errorf("%w: invalid categoryId", ErrInvalidInput)
	}
	if req.Notes != nil && len([]rune(*req.Notes)) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}
	if req.Date == nil && req.StartTime == nil && req.CategoryID == nil && req.EmployeeID == nil && req.Notes == nil {
		return fmt.Errorf("%w: nothing to update", ErrInvalidInput)
	}
	return nil
}

// isDateInPast дата раньше сегодняшнего дня в часовом поясе центра
func isDateInPast(date, now time.Time, loc *time.Location) bool {
	local := now.In(loc)
	today := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)
	return domain.DateOnly(date).Before(today)
}
