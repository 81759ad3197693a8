package promotions

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-InspectionService/internal/domain"
	"github.com/m04kA/SMC-InspectionService/internal/events"
	promotionRepo "github.com/m04kA/SMC-InspectionService/internal/infra/storage/promotion"
	"github.com/m04kA/SMC-InspectionService/internal/service/promotions/models"
)

// Service акции и промокоды центра
type Service struct {
	promotionRepo PromotionRepository
	outboxRepo    OutboxRepository
	notifier      EventNotifier
	txManager     TransactionManager
	timeProvider  TimeProvider
	logger        Logger
}

// NewService создает сервис акций
func NewService(
	promotionRepo PromotionRepository,
	outboxRepo OutboxRepository,
	notifier EventNotifier,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		promotionRepo: promotionRepo,
		outboxRepo:    outboxRepo,
		notifier:      notifier,
		txManager:     txManager,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// Create создает акцию и публикует promotion.created; рассылка клиентам выполняется обработчиком события
func (s *Service) Create(ctx context.Context, req *models.CreatePromotionRequest) (*models.PromotionResponse, error) {
	s.logger.Info("Create: promotion %q code=%s for center=%d", req.Name, req.Code, req.CenterID)

	if err := validateCreate(req); err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	promotion := &domain.Promotion{
		CenterID:      req.CenterID,
		Name:          strings.TrimSpace(req.Name),
		Description:   req.Description,
		Code:          req.Code,
		DiscountType:  req.DiscountType,
		DiscountValue: req.DiscountValue,
		UsageLimit:    req.UsageLimit,
		StartDate:     domain.DateOnly(req.StartDate),
		EndDate:       domain.DateOnly(req.EndDate),
		IsActive:      true,
	}

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		exists, err := s.promotionRepo.ExistsByCode(txCtx, req.CenterID, req.Code)
		if err != nil {
			return fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
		}
		if exists {
			return ErrDuplicateCode
		}

		created, err := s.promotionRepo.Create(txCtx, promotion)
		if err != nil {
			if errors.Is(err, promotionRepo.ErrDuplicateCode) {
				return ErrDuplicateCode
			}
			return fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
		}

		event, err := events.NewPromotionCreated(created, s.timeProvider.Now())
		if err != nil {
			return fmt.Errorf("%w: Create - build event: %v", ErrInternal, err)
		}
		if err := s.outboxRepo.Add(txCtx, event); err != nil {
			return fmt.Errorf("%w: Create - outbox error: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrDuplicateCode) {
			s.logger.Warn("Create: code %s already used in center=%d", req.Code, req.CenterID)
			return nil, err
		}
		s.logger.Error("Create: failed to create promotion for center=%d: %v", req.CenterID, err)
		return nil, err
	}

	s.notifier.Wake()

	s.logger.Info("Create: promotion id=%d created for center=%d", promotion.ID, promotion.CenterID)
	return models.FromDomainPromotion(promotion), nil
}

// List акции центра
func (s *Service) List(ctx context.Context, centerID int64, includeInactive bool) ([]*models.PromotionResponse, error) {
	items, err := s.promotionRepo.List(ctx, centerID, !includeInactive)
	if err != nil {
		s.logger.Error("List: repository error for center=%d: %v", centerID, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	resp := make([]*models.PromotionResponse, 0, len(items))
	for _, p := range items {
		resp = append(resp, models.FromDomainPromotion(p))
	}
	return resp, nil
}

// ValidateCode проверяет промокод и считает скидку для суммы, если она передана
func (s *Service) ValidateCode(ctx context.Context, req *models.ValidateCodeRequest) (*models.ValidateCodeResponse, error) {
	if strings.TrimSpace(req.Code) == "" {
		return nil, fmt.Errorf("%w: code is required", ErrInvalidInput)
	}
	if req.Amount != nil && *req.Amount < 0 {
		return nil, fmt.Errorf("%w: amount must not be negative", ErrInvalidInput)
	}

	promotion, err := s.promotionRepo.GetByCode(ctx, req.CenterID, req.Code)
	if err != nil {
		if errors.Is(err, promotionRepo.ErrPromotionNotFound) {
			s.logger.Warn("ValidateCode: code %s not found in center=%d", req.Code, req.CenterID)
			return nil, ErrInvalidCode
		}
		s.logger.Error("ValidateCode: repository error for center=%d: %v", req.CenterID, err)
		return nil, fmt.Errorf("%w: ValidateCode - repository error: %v", ErrInternal, err)
	}

	switch {
	case !promotion.IsActive:
		return nil, ErrInvalidCode
	case !promotion.IsRunning(s.timeProvider.Now()):
		return nil, ErrNotRunning
	case promotion.IsExhausted():
		return nil, ErrUsageLimitReached
	}

	resp := &models.ValidateCodeResponse{
		Valid:     true,
		Promotion: models.FromDomainPromotion(promotion),
	}
	if req.Amount != nil {
		resp.DiscountAmount = promotion.Discount(*req.Amount)
		final := *req.Amount - resp.DiscountAmount
		resp.FinalAmount = &final
	}

	return resp, nil
}
