package domain

import "time"

// Holiday выходной день или период, когда центр закрыт
type Holiday struct {
	ID          int64
	CenterID    int64
	Name        string
	Description *string
	StartDate   time.Time
	EndDate     *time.Time // включительно; nil - однодневный
	IsRecurring bool
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// LastDate последний день периода
func (h *Holiday) LastDate() time.Time {
	if h.EndDate == nil {
		return h.StartDate
	}
	return *h.EndDate
}

// Covers дата попадает в период (сравнение по календарным дням)
func (h *Holiday) Covers(date time.Time) bool {
	d := DateOnly(date)
	return !d.Before(DateOnly(h.StartDate)) && !d.After(DateOnly(h.LastDate()))
}

// HolidayFilter фильтр списка выходных
type HolidayFilter struct {
	CenterID        int64
	Year            *int
	Month           *int
	IncludeInactive bool
}

// Dates календарные дни периода по порядку
func (h *Holiday) Dates() []time.Time {
	last := DateOnly(h.LastDate())
	var dates []time.Time
	for d := DateOnly(h.StartDate); !d.After(last); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d)
	}
	return dates
}
