package change_status

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-InspectionService/internal/domain"
	"github.com/m04kA/SMC-InspectionService/internal/events"
	reservationRepo "github.com/m04kA/SMC-InspectionService/internal/infra/storage/reservation"
)

// UseCase переходы статусов записи
// Каждый переход пишет reservation.status_changed в outbox в той же транзакции
type UseCase struct {
	reservationRepo ReservationRepository
	outboxRepo      OutboxRepository
	notifier        EventNotifier
	slotCache       SlotCache
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	outboxRepo OutboxRepository,
	notifier EventNotifier,
	slotCache SlotCache,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		outboxRepo:      outboxRepo,
		notifier:        notifier,
		slotCache:       slotCache,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute ручная смена статуса
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*domain.Reservation, error) {
	status := domain.ReservationStatus(req.Status)
	if req.CenterID <= 0 || req.ID <= 0 || !status.IsValid() {
		uc.logger.Warn("ChangeStatus: invalid request center=%d id=%d status=%q", req.CenterID, req.ID, req.Status)
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, req.Status)
	}
	// завершение только вместе с результатом и обновлением ТС
	if status == domain.StatusCompleted {
		uc.logger.Warn("ChangeStatus: completion of reservation id=%d requested without result", req.ID)
		return nil, fmt.Errorf("%w: status %s is set by recording the result", ErrInvalidInput, status)
	}

	return uc.Apply(ctx, &Transition{
		CenterID:      req.CenterID,
		ReservationID: req.ID,
		To:            status,
		Cause:         events.CauseManual,
		Reason:        req.Reason,
	})
}

// Apply выполняет переход в отдельной транзакции и будит relay после фиксации
func (uc *UseCase) Apply(ctx context.Context, t *Transition) (*domain.Reservation, error) {
	var result *domain.Reservation
	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		res, err := uc.ApplyInTx(txCtx, t)
		if err != nil {
			return err
		}
		result = res
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.AfterCommit(ctx, result)
	return result, nil
}

// ApplyInTx выполняет переход внутри открытой транзакции; строка записи блокируется
func (uc *UseCase) ApplyInTx(ctx context.Context, t *Transition) (*domain.Reservation, error) {
	uc.logger.Info("ChangeStatus: center=%d, id=%d, to=%s, cause=%s", t.CenterID, t.ReservationID, t.To, t.Cause)

	res, err := uc.reservationRepo.GetByID(ctx, t.CenterID, t.ReservationID)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			uc.logger.Warn("ChangeStatus: reservation id=%d not found", t.ReservationID)
			return nil, ErrReservationNotFound
		}
		uc.logger.Error("ChangeStatus: failed to get reservation id=%d: %v", t.ReservationID, err)
		return nil, fmt.Errorf("%w: failed to get reservation: %v", ErrInternal, err)
	}

	old := res.Status
	if !old.CanTransitionTo(t.To) {
		uc.logger.Warn("ChangeStatus: transition %s -> %s is not allowed for reservation id=%d", old, t.To, res.ID)
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, old, t.To)
	}
	res.Status = t.To

	if t.Mutate != nil {
		if err := t.Mutate(res); err != nil {
			return nil, err
		}
	}

	if err := uc.reservationRepo.Update(ctx, res); err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			return nil, ErrReservationNotFound
		}
		uc.logger.Error("ChangeStatus: failed to update reservation id=%d: %v", res.ID, err)
		return nil, fmt.Errorf("%w: failed to update reservation: %v", ErrInternal, err)
	}

	event, err := events.NewReservationStatusChanged(res, old, t.Cause, t.HolidayName, t.Reason, uc.timeProvider.Now())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	if err := uc.outboxRepo.Add(ctx, event); err != nil {
		uc.logger.Error("ChangeStatus: failed to write outbox event: %v", err)
		return nil, fmt.Errorf("%w: failed to write outbox event: %v", ErrInternal, err)
	}

	uc.logger.Info("ChangeStatus: reservation id=%d %s -> %s", res.ID, old, res.Status)
	return res, nil
}

// AfterCommit сбрасывает кеш слотов дня и будит relay
func (uc *UseCase) AfterCommit(ctx context.Context, res *domain.Reservation) {
	if !res.BlocksSchedule() {
		if err := uc.slotCache.Invalidate(ctx, res.CenterID, res.Date); err != nil {
			uc.logger.Warn("ChangeStatus: failed to invalidate slots for center=%d: %v", res.CenterID, err)
		}
	}
	uc.notifier.Wake()
}
