package payments

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-InspectionService/internal/domain"
	"github.com/m04kA/SMC-InspectionService/internal/events"
	paymentRepo "github.com/m04kA/SMC-InspectionService/internal/infra/storage/payment"
)

// CompleteResponse результат обработки webhook
type CompleteResponse struct {
	PaymentID        int64 `json:"paymentId"`
	AlreadyCompleted bool  `json:"alreadyCompleted"`
}

// Service обработка уведомлений платежного провайдера
type Service struct {
	paymentRepo  PaymentRepository
	outboxRepo   OutboxRepository
	notifier     EventNotifier
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает сервис платежей
func NewService(
	paymentRepo PaymentRepository,
	outboxRepo OutboxRepository,
	notifier EventNotifier,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		paymentRepo:  paymentRepo,
		outboxRepo:   outboxRepo,
		notifier:     notifier,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Complete отмечает платеж завершенным и публикует payment.completed в одной транзакции
// Повторный webhook для завершенного платежа ничего не меняет и событие не публикует
func (s *Service) Complete(ctx context.Context, externalID string) (*CompleteResponse, error) {
	externalID = strings.TrimSpace(externalID)
	if externalID == "" {
		return nil, fmt.Errorf("%w: externalId is required", ErrInvalidInput)
	}

	s.logger.Info("Complete: webhook for payment external_id=%s", externalID)

	resp := &CompleteResponse{}
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		payment, err := s.paymentRepo.GetByExternalID(txCtx, externalID)
		if err != nil {
			return err
		}
		resp.PaymentID = payment.ID

		now := s.timeProvider.Now()
		updated, err := s.paymentRepo.MarkCompleted(txCtx, payment.ID, now)
		if err != nil {
			return err
		}
		if !updated {
			resp.AlreadyCompleted = true
			return nil
		}

		payment.Status = domain.PaymentCompleted
		payment.PaidAt = &now

		event, err := events.NewPaymentCompleted(payment, now)
		if err != nil {
			return err
		}
		return s.outboxRepo.Add(txCtx, event)
	})
	if err != nil {
		if errors.Is(err, paymentRepo.ErrPaymentNotFound) {
			s.logger.Warn("Complete: payment external_id=%s not found", externalID)
			return nil, ErrPaymentNotFound
		}
		s.logger.Error("Complete: failed to complete payment external_id=%s: %v", externalID, err)
		return nil, fmt.Errorf("%w: Complete - %v", ErrInternal, err)
	}

	if resp.AlreadyCompleted {
		s.logger.Info("Complete: payment id=%d already completed, skipping", resp.PaymentID)
		return resp, nil
	}

	s.notifier.Wake()

	s.logger.Info("Complete: payment id=%d completed", resp.PaymentID)
	return resp, nil
}
