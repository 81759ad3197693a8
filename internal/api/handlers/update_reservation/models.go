package update_reservation

import (
	"fmt"

	"github.com/m04kA/SMC-InspectionService/internal/api/handlers"
	updateReservation "github.com/m04kA/SMC-InspectionService/internal/usecase/update_reservation"
	"github.com/m04kA/SMC-InspectionService/pkg/types"
)

// UpdateReservationRequest HTTP request model; отсутствующие поля не меняются
type UpdateReservationRequest struct {
	Date       *string `json:"date,omitempty"`
	StartTime  *string `json:"startTime,omitempty"`
	CategoryID *int64  `json:"categoryId,omitempty"`
	EmployeeID *int64  `json:"employeeId,omitempty"`
	Notes      *string `json:"notes,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *UpdateReservationRequest) ToUseCaseRequest(centerID, id int64) (*updateReservation.Request, error) {
	req := &updateReservation.Request{
		CenterID:   centerID,
		ID:         id,
		CategoryID: r.CategoryID,
		EmployeeID: r.EmployeeID,
		Notes:      r.Notes,
	}

	if r.Date != nil {
		date, err := handlers.ParseDate(*r.Date)
		if err != nil {
			return nil, fmt.Errorf("invalid date %q: %w", *r.Date, err)
		}
		req.Date = &date
	}
	if r.StartTime != nil {
		start, err := types.NewTimeStringFromString(*r.StartTime)
		if err != nil {
			return nil, fmt.Errorf("invalid start time %q: %w", *r.StartTime, err)
		}
		req.StartTime = &start
	}

	return req, nil
}
