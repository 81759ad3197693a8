package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// EventName имя доменного события (routing key)
type EventName string

const (
	EventReservationCreated       EventName = "reservation.created"
	EventReservationStatusChanged EventName = "reservation.status_changed"
	EventPaymentCompleted         EventName = "payment.completed"
	EventHolidayCreated           EventName = "holiday.created"
	EventPromotionCreated         EventName = "promotion.created"
)

// AllEvents все события, на которые подписан диспетчер
var AllEvents = []EventName{
	EventReservationCreated,
	EventReservationStatusChanged,
	EventPaymentCompleted,
	EventHolidayCreated,
	EventPromotionCreated,
}

// OutboxStatus состояние события в outbox
type OutboxStatus string

const (
	OutboxPending    OutboxStatus = "pending"
	OutboxProcessing OutboxStatus = "processing"
	OutboxDispatched OutboxStatus = "dispatched"
	OutboxFailed     OutboxStatus = "failed"
)

// Event неизменяемый факт о завершённом изменении состояния
type Event struct {
	ID         uuid.UUID       `json:"id"`
	Name       EventName       `json:"name"`
	CenterID   int64           `json:"centerId"`
	Payload    json.RawMessage `json:"payload"`
	OccurredAt time.Time       `json:"occurredAt"`
	Attempts   int             `json:"-"`
}
