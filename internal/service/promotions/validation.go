package promotions

import (
	"fmt"
	"strings"

	"github.com/m04kA/SMC-InspectionService/internal/domain"
	"github.com/m04kA/SMC-InspectionService/internal/service/promotions/models"
)

const maxCodeLength = 32

// validateCreate валидирует запрос на создание акции
func validateCreate(req *models.CreatePromotionRequest) error {
	if strings.TrimSpace(req.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}

	code := strings.TrimSpace(req.Code)
	if code == "" || len(code) > maxCodeLength || strings.ContainsAny(code, " \t") {
		return fmt.Errorf("%w: code must be 1..%d characters without spaces", ErrInvalidInput, maxCodeLength)
	}

	if !req.DiscountType.IsValid() {
		return fmt.Errorf("%w: unknown discount type %q", ErrInvalidInput, req.DiscountType)
	}
	if req.DiscountValue <= 0 {
		return fmt.Errorf("%w: discountValue must be positive", ErrInvalidInput)
	}
	if req.DiscountType == domain.DiscountPercentage && req.DiscountValue > 100 {
		return fmt.Errorf("%w: percentage discount must not exceed 100", ErrInvalidInput)
	}

	if req.UsageLimit != nil && *req.UsageLimit <= 0 {
		return fmt.Errorf("%w: usageLimit must be positive", ErrInvalidInput)
	}

	if req.StartDate.IsZero() || req.EndDate.IsZero() {
		return fmt.Errorf("%w: startDate and endDate are required", ErrInvalidInput)
	}
	if domain.DateOnly(req.EndDate).Before(domain.DateOnly(req.StartDate)) {
		return fmt.Errorf("%w: endDate is before startDate", ErrInvalidInput)
	}

	return nil
}
