package holidays

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-InspectionService/internal/domain"
	"github.com/m04kA/SMC-InspectionService/internal/events"
	holidayRepo "github.com/m04kA/SMC-InspectionService/internal/infra/storage/holiday"
	"github.com/m04kA/SMC-InspectionService/internal/service/holidays/models"
)

// Service выходные дни центра
type Service struct {
	holidayRepo  HolidayRepository
	outboxRepo   OutboxRepository
	notifier     EventNotifier
	slotCache    SlotCache
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает сервис выходных
func NewService(
	holidayRepo HolidayRepository,
	outboxRepo OutboxRepository,
	notifier EventNotifier,
	slotCache SlotCache,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		holidayRepo:  holidayRepo,
		outboxRepo:   outboxRepo,
		notifier:     notifier,
		slotCache:    slotCache,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Create добавляет выходной и публикует holiday.created в той же транзакции
// Каскадная отмена записей выполняется обработчиком события
func (s *Service) Create(ctx context.Context, req *models.CreateHolidayRequest) (*models.HolidayResponse, error) {
	s.logger.Info("Create: holiday %q for center=%d from %s", req.Name, req.CenterID, req.StartDate.Format(domain.DateFormat))

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if req.StartDate.IsZero() {
		return nil, fmt.Errorf("%w: startDate is required", ErrInvalidInput)
	}
	if req.EndDate != nil && domain.DateOnly(*req.EndDate).Before(domain.DateOnly(req.StartDate)) {
		return nil, ErrInvalidDateRange
	}

	holiday := &domain.Holiday{
		CenterID:    req.CenterID,
		Name:        name,
		Description: req.Description,
		StartDate:   domain.DateOnly(req.StartDate),
		EndDate:     req.EndDate,
		IsRecurring: req.IsRecurring,
		IsActive:    true,
	}

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		created, err := s.holidayRepo.Create(txCtx, holiday)
		if err != nil {
			return fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
		}

		event, err := events.NewHolidayCreated(created, s.timeProvider.Now())
		if err != nil {
			return fmt.Errorf("%w: Create - build event: %v", ErrInternal, err)
		}
		if err := s.outboxRepo.Add(txCtx, event); err != nil {
			return fmt.Errorf("%w: Create - outbox error: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("Create: failed to create holiday for center=%d: %v", req.CenterID, err)
		return nil, err
	}

	s.afterChange(ctx, holiday)
	s.notifier.Wake()

	s.logger.Info("Create: holiday id=%d created for center=%d", holiday.ID, holiday.CenterID)
	return models.FromDomainHoliday(holiday), nil
}

// List выходные центра с фильтром по году и месяцу
func (s *Service) List(ctx context.Context, req *models.ListHolidaysRequest) ([]*models.HolidayResponse, error) {
	if req.Month != nil && (*req.Month < 1 || *req.Month > 12) {
		return nil, fmt.Errorf("%w: month must be in 1..12", ErrInvalidInput)
	}
	if req.Month != nil && req.Year == nil {
		year := s.timeProvider.Now().Year()
		req.Year = &year
	}

	holidays, err := s.holidayRepo.List(ctx, domain.HolidayFilter{
		CenterID:        req.CenterID,
		Year:            req.Year,
		Month:           req.Month,
		IncludeInactive: req.IncludeInactive,
	})
	if err != nil {
		s.logger.Error("List: repository error for center=%d: %v", req.CenterID, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainHolidayList(holidays), nil
}

// Upcoming ближайшие выходные центра
func (s *Service) Upcoming(ctx context.Context, centerID int64, limit int) ([]*models.HolidayResponse, error) {
	if limit <= 0 {
		limit = domain.DefaultUpcomingHolidays
	}

	holidays, err := s.holidayRepo.Upcoming(ctx, centerID, s.timeProvider.Now(), limit)
	if err != nil {
		s.logger.Error("Upcoming: repository error for center=%d: %v", centerID, err)
		return nil, fmt.Errorf("%w: Upcoming - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainHolidayList(holidays), nil
}

// Toggle включает или выключает выходной
// Повторное включение публикует holiday.created, и записи на эти дни отменяются так же, как при создании
// Уже отмененные записи при выключении не восстанавливаются
func (s *Service) Toggle(ctx context.Context, centerID, id int64) (*models.HolidayResponse, error) {
	var updated *domain.Holiday
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		current, err := s.holidayRepo.GetByID(txCtx, centerID, id)
		if err != nil {
			return err
		}
		updated, err = s.holidayRepo.SetActive(txCtx, centerID, id, !current.IsActive)
		if err != nil || !updated.IsActive {
			return err
		}

		event, err := events.NewHolidayCreated(updated, s.timeProvider.Now())
		if err != nil {
			return fmt.Errorf("build event: %w", err)
		}
		if err := s.outboxRepo.Add(txCtx, event); err != nil {
			return fmt.Errorf("outbox error: %w", err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, holidayRepo.ErrHolidayNotFound) {
			s.logger.Warn("Toggle: holiday id=%d not found for center=%d", id, centerID)
			return nil, ErrHolidayNotFound
		}
		s.logger.Error("Toggle: failed to toggle holiday id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Toggle - %v", ErrInternal, err)
	}

	s.afterChange(ctx, updated)
	if updated.IsActive {
		s.notifier.Wake()
	}

	s.logger.Info("Toggle: holiday id=%d is_active=%t", id, updated.IsActive)
	return models.FromDomainHoliday(updated), nil
}

// Delete удаляет выходной
func (s *Service) Delete(ctx context.Context, centerID, id int64) error {
	var holiday *domain.Holiday
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		var err error
		holiday, err = s.holidayRepo.GetByID(txCtx, centerID, id)
		if err != nil {
			return err
		}
		return s.holidayRepo.Delete(txCtx, centerID, id)
	})
	if err != nil {
		if errors.Is(err, holidayRepo.ErrHolidayNotFound) {
			s.logger.Warn("Delete: holiday id=%d not found for center=%d", id, centerID)
			return ErrHolidayNotFound
		}
		s.logger.Error("Delete: repository error for holiday id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.afterChange(ctx, holiday)

	s.logger.Info("Delete: holiday id=%d deleted for center=%d", id, centerID)
	return nil
}

// afterChange сбрасывает кеш слотов на дни выходного
func (s *Service) afterChange(ctx context.Context, h *domain.Holiday) {
	if err := s.slotCache.Invalidate(ctx, h.CenterID, h.Dates()...); err != nil {
		s.logger.Warn("afterChange: failed to invalidate slots for center=%d: %v", h.CenterID, err)
	}
}
