package promotions

import (
	"fmt"

	"github.com/m04kA/SMC-InspectionService/internal/api/handlers"
	"github.com/m04kA/SMC-InspectionService/internal/domain"
	"github.com/m04kA/SMC-InspectionService/internal/service/promotions/models"
)

// CreatePromotionRequest HTTP request model
type CreatePromotionRequest struct {
	Name          string  `json:"name"`
	Description   *string `json:"description,omitempty"`
	Code          string  `json:"code"`
	DiscountType  string  `json:"discountType"` // percentage | fixed
	DiscountValue float64 `json:"discountValue"`
	UsageLimit    *int    `json:"usageLimit,omitempty"`
	StartDate     string  `json:"startDate"`
	EndDate       string  `json:"endDate"`
}

// ValidateCodeRequest HTTP request model
type ValidateCodeRequest struct {
	Code   string   `json:"code"`
	Amount *float64 `json:"amount,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *CreatePromotionRequest) ToServiceRequest(centerID int64) (*models.CreatePromotionRequest, error) {
	start, err := handlers.ParseDate(r.StartDate)
	if err != nil {
		return nil, fmt.Errorf("invalid startDate %q: %w", r.StartDate, err)
	}
	end, err := handlers.ParseDate(r.EndDate)
	if err != nil {
		return nil, fmt.Errorf("invalid endDate %q: %w", r.EndDate, err)
	}

	return &models.CreatePromotionRequest{
		CenterID:      centerID,
		Name:          r.Name,
		Description:   r.Description,
		Code:          r.Code,
		DiscountType:  domain.DiscountType(r.DiscountType),
		DiscountValue: r.DiscountValue,
		UsageLimit:    r.UsageLimit,
		StartDate:     start,
		EndDate:       end,
	}, nil
}
