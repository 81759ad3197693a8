package domain

import "time"

// PaymentStatus статус платежа
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
)

// Payment платеж клиента
type Payment struct {
	ID            int64
	CenterID      int64
	ReservationID *int64
	ClientID      int64
	Amount        float64
	Currency      string
	Status        PaymentStatus
	ExternalID    string // идентификатор у платежного провайдера
	PaidAt        *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
