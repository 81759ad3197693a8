package domain

import "time"

// DiscountType тип скидки
type DiscountType string

const (
	DiscountPercentage DiscountType = "percentage"
	DiscountFixed      DiscountType = "fixed"
)

// Promotion акция центра
type Promotion struct {
	ID            int64
	CenterID      int64
	Name          string
	Description   *string
	Code          string
	DiscountType  DiscountType
	DiscountValue float64
	UsageLimit    *int
	UsedCount     int
	StartDate     time.Time
	EndDate       time.Time
	IsActive      bool
	DeletedAt     *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// IsRunning акция действует в день now (даты начала и окончания включительно)
func (p *Promotion) IsRunning(now time.Time) bool {
	day := DateOnly(now)
	return !day.Before(DateOnly(p.StartDate)) && !day.After(DateOnly(p.EndDate))
}

// IsValid тип скидки входит в допустимый набор
func (t DiscountType) IsValid() bool {
	return t == DiscountPercentage || t == DiscountFixed
}

// IsExhausted лимит использований исчерпан
func (p *Promotion) IsExhausted() bool {
	return p.UsageLimit != nil && p.UsedCount >= *p.UsageLimit
}

// Discount размер скидки для суммы, не больше самой суммы
func (p *Promotion) Discount(amount float64) float64 {
	discount := p.DiscountValue
	if p.DiscountType == DiscountPercentage {
		discount = amount * p.DiscountValue / 100
	}
	if discount > amount {
		return amount
	}
	return discount
}
