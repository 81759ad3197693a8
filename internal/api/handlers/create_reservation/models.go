package create_reservation

import (
	"fmt"

	"github.com/m04kA/SMC-InspectionService/internal/api/handlers"
	"github.com/m04kA/SMC-InspectionService/internal/api/middleware"
	createReservation "github.com/m04kA/SMC-InspectionService/internal/usecase/create_reservation"
	"github.com/m04kA/SMC-InspectionService/pkg/types"
)

// CreateReservationRequest HTTP request model
type CreateReservationRequest struct {
	ClientID   int64   `json:"clientId"`
	VehicleID  int64   `json:"vehicleId"`
	CategoryID int64   `json:"categoryId"`
	Date       string  `json:"date"`      // "2026-05-12"
	StartTime  string  `json:"startTime"` // "09:00"
	EmployeeID *int64  `json:"employeeId,omitempty"`
	Notes      *string `json:"notes,omitempty"`
	Status     *string `json:"status,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateReservationRequest) ToUseCaseRequest(p middleware.Principal) (*createReservation.Request, error) {
	date, err := handlers.ParseDate(r.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errInvalidDate, err)
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errInvalidTime, err)
	}

	return &createReservation.Request{
		Actor:      p.Actor(),
		CenterID:   p.CenterID,
		ClientID:   r.ClientID,
		VehicleID:  r.VehicleID,
		CategoryID: r.CategoryID,
		Date:       date,
		StartTime:  startTime,
		EmployeeID: r.EmployeeID,
		Notes:      r.Notes,
		Status:     r.Status,
	}, nil
}
