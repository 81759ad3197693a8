package domain

import "time"

// Значения по умолчанию
const (
	DefaultSlotDurationMinutes = 30
	DefaultSMSQuota            = 100
	DefaultBroadcastLimit      = 200
	DefaultUpcomingHolidays    = 5
)

// Пагинация списков
const (
	DefaultPage  = 1
	DefaultLimit = 20
	MinLimit     = 10
	MaxLimit     = 100
)

// Бизнес-ограничения
const (
	MaxNotesLength        = 1000
	MaxCancelReasonLength = 500
	MaxBookingCodeRetries = 5
	QuickClientEmailHost  = "temp.agendact.com"
)

// Форматы даты и времени
const (
	TimeFormat  = "15:04"      // HH:MM
	DateFormat  = "2006-01-02" // YYYY-MM-DD
	MonthFormat = "2006-01"    // YYYY-MM
)

// NonBlockingStatuses статусы, которые не занимают время в расписании
var NonBlockingStatuses = []ReservationStatus{
	StatusCancelled,
}

// CancellableStatuses статусы, которые отменяются каскадно при добавлении выходного
var CancellableStatuses = []ReservationStatus{
	StatusPending,
	StatusConfirmed,
}

// DateOnly обнуляет время, сохраняя календарную дату
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ClampPagination приводит page/limit к допустимым границам
func ClampPagination(page, limit int) (int, int) {
	if page < 1 {
		page = DefaultPage
	}
	switch {
	case limit <= 0:
		limit = DefaultLimit
	case limit < MinLimit:
		limit = MinLimit
	case limit > MaxLimit:
		limit = MaxLimit
	}
	return page, limit
}

// TotalPages количество страниц
func TotalPages(total, limit int) int {
	if limit <= 0 {
		return 0
	}
	return (total + limit - 1) / limit
}
