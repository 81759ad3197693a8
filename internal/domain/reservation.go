package domain

import (
	"time"

	"github.com/m04kA/SMC-InspectionService/pkg/types"
)

// ReservationStatus статус записи на техосмотр
type ReservationStatus string

const (
	StatusPending    ReservationStatus = "pending"
	StatusConfirmed  ReservationStatus = "confirmed"
	StatusInProgress ReservationStatus = "in_progress"
	StatusCompleted  ReservationStatus = "completed"
	StatusCancelled  ReservationStatus = "cancelled"
	StatusNoShow     ReservationStatus = "no_show"
)

// InspectionResult итог техосмотра
type InspectionResult string

const (
	ResultPassed      InspectionResult = "passed"
	ResultFailed      InspectionResult = "failed"
	ResultConditional InspectionResult = "conditional"
)

// IsValid проверяет, что результат входит в допустимый набор
func (r InspectionResult) IsValid() bool {
	switch r {
	case ResultPassed, ResultFailed, ResultConditional:
		return true
	}
	return false
}

// InspectionReport протокол осмотра
type InspectionReport struct {
	Defects         []string   `json:"defects,omitempty"`
	Recommendations []string   `json:"recommendations,omitempty"`
	ValidUntil      *time.Time `json:"validUntil,omitempty"` // дата следующего обязательного осмотра
	Mileage         *int       `json:"mileage,omitempty"`
}

// Reservation запись на техосмотр
type Reservation struct {
	ID          int64
	BookingCode string
	CenterID    int64
	ClientID    int64
	VehicleID   int64
	CategoryID  int64
	EmployeeID  *int64 // ID пользователя-сотрудника

	Date            time.Time
	StartTime       types.TimeString
	EndTime         types.TimeString
	DurationMinutes int // длительность категории на момент записи

	Status ReservationStatus
	Result *InspectionResult
	Report *InspectionReport
	Notes  *string

	ReminderSentAt *time.Time
	DeletedAt      *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Interval интервал записи [start, end)
func (r *Reservation) Interval() Interval {
	return Interval{Start: r.StartTime, End: r.EndTime}
}

// IsTerminal запись в конечном статусе
func (r *Reservation) IsTerminal() bool {
	return r.Status.IsTerminal()
}

// BlocksSchedule запись занимает время в расписании
func (r *Reservation) BlocksSchedule() bool {
	return r.Status != StatusCancelled && r.DeletedAt == nil
}

// ReservationFilter фильтр списка записей центра
type ReservationFilter struct {
	CenterID   int64 // Обязательный параметр
	DateFrom   *time.Time
	DateTo     *time.Time
	Status     *ReservationStatus
	Result     *InspectionResult
	ClientID   *int64
	EmployeeID *int64
	CategoryID *int64
	Search     string // имя клиента, госномер, код записи
	Page       int
	Limit      int

	// ClientUserID ограничивает выборку записями клиента с этим аккаунтом (роль CLIENT)
	ClientUserID *int64
}

// Offset смещение для страницы
func (f ReservationFilter) Offset() int {
	return (f.Page - 1) * f.Limit
}

// DayStats статистика дня
type DayStats struct {
	Total      int
	Pending    int
	Confirmed  int
	InProgress int
	Completed  int
	Cancelled  int
	NoShow     int
}

// Add учитывает запись в статистике
func (s *DayStats) Add(status ReservationStatus) {
	s.Total++
	switch status {
	case StatusPending:
		s.Pending++
	case StatusConfirmed:
		s.Confirmed++
	case StatusInProgress:
		s.InProgress++
	case StatusCompleted:
		s.Completed++
	case StatusCancelled:
		s.Cancelled++
	case StatusNoShow:
		s.NoShow++
	}
}

// ReservationDetails запись с денормализованными данными клиента, ТС и категории для списков
type ReservationDetails struct {
	Reservation
	ClientName   string
	ClientPhone  *string
	ClientEmail  *string
	ClientUserID *int64
	LicensePlate string
	VehicleBrand *string
	VehicleModel *string
	CategoryName string
}

// VehicleDescription описание ТС для уведомлений
func (d *ReservationDetails) VehicleDescription() string {
	v := Vehicle{LicensePlate: d.LicensePlate, Brand: d.VehicleBrand, Model: d.VehicleModel}
	return v.Description()
}
