package domain

import "time"

// Category вид услуги (тип осмотра) центра
type Category struct {
	ID              int64
	CenterID        int64
	Name            string
	DurationMinutes int
	Price           float64
	IsActive        bool
	SortOrder       int
	DeletedAt       *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// IsBookable категорию можно использовать для новой записи
func (c *Category) IsBookable() bool {
	return c.IsActive && c.DeletedAt == nil && c.DurationMinutes > 0
}
