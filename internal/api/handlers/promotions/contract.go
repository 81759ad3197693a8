package promotions

import (
	"context"

	"github.com/m04kA/SMC-InspectionService/internal/service/promotions/models"
)

type PromotionService interface {
	Create(ctx context.Context, req *models.CreatePromotionRequest) (*models.PromotionResponse, error)
	List(ctx context.Context, centerID int64, includeInactive bool) ([]*models.PromotionResponse, error)
	ValidateCode(ctx context.Context, req *models.ValidateCodeRequest) (*models.ValidateCodeResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
