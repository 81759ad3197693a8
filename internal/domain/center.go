package domain

import (
	"strings"
	"time"

	"github.com/m04kA/SMC-InspectionService/pkg/types"
)

// DaySchedule часы работы в конкретный день недели
type DaySchedule struct {
	Open   types.TimeString `json:"open"`
	Close  types.TimeString `json:"close"`
	Closed bool             `json:"closed"`
}

// IsOpen центр работает и часы заданы корректно
func (d DaySchedule) IsOpen() bool {
	return !d.Closed && !d.Open.IsZero() && !d.Close.IsZero() && d.Open.IsBefore(d.Close)
}

// Interval рабочий интервал [Open, Close)
func (d DaySchedule) Interval() Interval {
	return Interval{Start: d.Open, End: d.Close}
}

// OpeningHours недельное расписание: ключ - день недели в нижнем регистре (sunday..saturday)
// Не более одной записи на день недели
type OpeningHours map[string]DaySchedule

// WeekdayKey ключ дня недели для даты
func WeekdayKey(date time.Time) string {
	return strings.ToLower(date.Weekday().String())
}

// ForDate расписание на дату; отсутствие записи означает выходной
func (h OpeningHours) ForDate(date time.Time) (DaySchedule, bool) {
	d, ok := h[WeekdayKey(date)]
	return d, ok
}

// Fits проверяет интервал по расписанию дня: open=false, если центр не работает
func (h OpeningHours) Fits(date time.Time, iv Interval) (open bool, fits bool) {
	day, ok := h.ForDate(date)
	if !ok || !day.IsOpen() {
		return false, false
	}
	return true, iv.Within(day.Interval())
}

// Center центр техосмотра (тенант)
type Center struct {
	ID            int64
	Name          string
	Timezone      string
	Currency      string
	OwnerUserID   int64
	Phone         *string
	Email         *string
	OpeningHours  OpeningHours
	SMSSenderName *string
	SMSAPIKey     *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Location часовой пояс центра, при ошибке UTC
func (c *Center) Location() *time.Location {
	if c.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
