package models

import (
	"time"

	"github.com/m04kA/SMC-InspectionService/internal/domain"
)

// CreatePromotionRequest запрос на создание акции
type CreatePromotionRequest struct {
	CenterID      int64
	Name          string
	Description   *string
	Code          string
	DiscountType  domain.DiscountType
	DiscountValue float64
	UsageLimit    *int
	StartDate     time.Time
	EndDate       time.Time
}

// ValidateCodeRequest проверка промокода
type ValidateCodeRequest struct {
	CenterID int64
	Code     string
	Amount   *float64
}

// PromotionResponse акция в ответе API
type PromotionResponse struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	Description   *string   `json:"description,omitempty"`
	Code          string    `json:"code"`
	DiscountType  string    `json:"discountType"`
	DiscountValue float64   `json:"discountValue"`
	UsageLimit    *int      `json:"usageLimit,omitempty"`
	UsedCount     int       `json:"usedCount"`
	StartDate     string    `json:"startDate"`
	EndDate       string    `json:"endDate"`
	IsActive      bool      `json:"isActive"`
	CreatedAt     time.Time `json:"createdAt"`
}

// ValidateCodeResponse результат проверки промокода
type ValidateCodeResponse struct {
	Valid          bool               `json:"valid"`
	Promotion      *PromotionResponse `json:"promotion"`
	DiscountAmount float64            `json:"discountAmount"`
	FinalAmount    *float64           `json:"finalAmount,omitempty"`
}

// FromDomainPromotion конвертирует domain модель в DTO
func FromDomainPromotion(p *domain.Promotion) *PromotionResponse {
	return &PromotionResponse{
		ID:            p.ID,
		Name:          p.Name,
		Description:   p.Description,
		Code:          p.Code,
		DiscountType:  string(p.DiscountType),
		DiscountValue: p.DiscountValue,
		UsageLimit:    p.UsageLimit,
		UsedCount:     p.UsedCount,
		StartDate:     p.StartDate.Format(domain.DateFormat),
		EndDate:       p.EndDate.Format(domain.DateFormat),
		IsActive:      p.IsActive,
		CreatedAt:     p.CreatedAt,
	}
}
