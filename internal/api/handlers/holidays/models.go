package holidays

import (
	"fmt"

	"github.com/m04kA/SMC-InspectionService/internal/api/handlers"
	"github.com/m04kA/SMC-InspectionService/internal/service/holidays/models"
)

// CreateHolidayRequest HTTP request model
type CreateHolidayRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	StartDate   string  `json:"startDate"`
	EndDate     *string `json:"endDate,omitempty"`
	IsRecurring bool    `json:"isRecurring"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *CreateHolidayRequest) ToServiceRequest(centerID int64) (*models.CreateHolidayRequest, error) {
	start, err := handlers.ParseDate(r.StartDate)
	if err != nil {
		return nil, fmt.Errorf("invalid startDate %q: %w", r.StartDate, err)
	}

	req := &models.CreateHolidayRequest{
		CenterID:    centerID,
		Name:        r.Name,
		Description: r.Description,
		StartDate:   start,
		IsRecurring: r.IsRecurring,
	}
	if r.EndDate != nil {
		end, err := handlers.ParseDate(*r.EndDate)
		if err != nil {
			return nil, fmt.Errorf("invalid endDate %q: %w", *r.EndDate, err)
		}
		req.EndDate = &end
	}
	return req, nil
}
