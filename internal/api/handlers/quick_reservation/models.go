package quick_reservation

import (
	"fmt"

	"github.com/m04kA/SMC-InspectionService/internal/api/handlers"
	"github.com/m04kA/SMC-InspectionService/internal/api/middleware"
	reservationModels "github.com/m04kA/SMC-InspectionService/internal/service/reservations/models"
	quickReservation "github.com/m04kA/SMC-InspectionService/internal/usecase/quick_reservation"
	"github.com/m04kA/SMC-InspectionService/pkg/types"
)

// QuickReservationRequest HTTP request model
type QuickReservationRequest struct {
	FirstName    string  `json:"firstName"`
	LastName     string  `json:"lastName"`
	Phone        string  `json:"phone"`
	Email        *string `json:"email,omitempty"`
	LicensePlate string  `json:"licensePlate"`
	Brand        *string `json:"brand,omitempty"`
	Model        *string `json:"model,omitempty"`
	VehicleType  *string `json:"vehicleType,omitempty"`
	CategoryID   int64   `json:"categoryId"`
	Date         string  `json:"date"`
	StartTime    string  `json:"startTime"`
	EmployeeID   *int64  `json:"employeeId,omitempty"`
	Notes        *string `json:"notes,omitempty"`
}

// QuickReservationResponse HTTP response model
type QuickReservationResponse struct {
	Reservation    *reservationModels.ReservationResponse `json:"reservation"`
	ClientID       int64                                  `json:"clientId"`
	VehicleID      int64                                  `json:"vehicleId"`
	ClientCreated  bool                                   `json:"clientCreated"`
	VehicleCreated bool                                   `json:"vehicleCreated"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *QuickReservationRequest) ToUseCaseRequest(p middleware.Principal) (*quickReservation.Request, error) {
	date, err := handlers.ParseDate(r.Date)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", r.Date, err)
	}
	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, fmt.Errorf("invalid start time %q: %w", r.StartTime, err)
	}

	return &quickReservation.Request{
		Actor:        p.Actor(),
		CenterID:     p.CenterID,
		FirstName:    r.FirstName,
		LastName:     r.LastName,
		Phone:        r.Phone,
		Email:        r.Email,
		LicensePlate: r.LicensePlate,
		Brand:        r.Brand,
		Model:        r.Model,
		VehicleType:  r.VehicleType,
		CategoryID:   r.CategoryID,
		Date:         date,
		StartTime:    startTime,
		EmployeeID:   r.EmployeeID,
		Notes:        r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *quickReservation.Response) *QuickReservationResponse {
	return &QuickReservationResponse{
		Reservation:    reservationModels.FromDomainReservation(resp.Reservation),
		ClientID:       resp.ClientID,
		VehicleID:      resp.VehicleID,
		ClientCreated:  resp.ClientCreated,
		VehicleCreated: resp.VehicleCreated,
	}
}
