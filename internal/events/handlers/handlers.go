// Package handlers реакции на доменные события: уведомления и побочные изменения
package handlers

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-InspectionService/internal/domain"
	"github.com/m04kA/SMC-InspectionService/internal/events"
)

const defaultBroadcastWorkers = 4

// Config параметры обработчиков
type Config struct {
	BroadcastLimit   int // не более стольких клиентов в рассылке акции
	BroadcastWorkers int // параллельных отправок в рассылке
}

// Deps зависимости обработчиков
type Deps struct {
	Reservations ReservationReader
	Clients      ClientRepository
	Centers      CenterReader
	InApp        InAppNotifier
	SMS          SMSSender
	Mailer       Mailer
	Changer      StatusChanger
	Cascade      HolidayCascader
	Logger       Logger
}

// Handlers обработчики событий центра
type Handlers struct {
	Deps
	cfg Config
}

// New создает обработчики
func New(deps Deps, cfg Config) *Handlers {
	if cfg.BroadcastLimit <= 0 {
		cfg.BroadcastLimit = domain.DefaultBroadcastLimit
	}
	if cfg.BroadcastWorkers <= 0 {
		cfg.BroadcastWorkers = defaultBroadcastWorkers
	}
	return &Handlers{Deps: deps, cfg: cfg}
}

// Register подписывает обработчики на события в фиксированном порядке
func (h *Handlers) Register(d *events.Dispatcher) {
	d.Register(domain.EventReservationCreated, "notify_reservation_created", h.OnReservationCreated)
	d.Register(domain.EventReservationStatusChanged, "notify_status_changed", h.OnStatusChanged)
	d.Register(domain.EventPaymentCompleted, "notify_payment_completed", h.OnPaymentCompleted)
	d.Register(domain.EventPaymentCompleted, "confirm_paid_reservation", h.ConfirmPaidReservation)
	d.Register(domain.EventHolidayCreated, "cascade_holiday", h.OnHolidayCreated)
	d.Register(domain.EventPromotionCreated, "notify_promotion_owner", h.NotifyPromotionOwner)
	d.Register(domain.EventPromotionCreated, "broadcast_promotion", h.OnPromotionCreated)
}

func (h *Handlers) center(ctx context.Context, id int64) (*domain.Center, error) {
	center, err := h.Centers.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get center id=%d: %w", id, err)
	}
	return center, nil
}
