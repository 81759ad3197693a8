package notifications

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-InspectionService/internal/domain"
	notificationRepo "github.com/m04kA/SMC-InspectionService/internal/infra/storage/notification"
	"github.com/m04kA/SMC-InspectionService/internal/service/notifications/models"
)

const channelInApp = "in_app"

// Service уведомления в личном кабинете
type Service struct {
	repo    NotificationRepository
	metrics Metrics
	logger  Logger
}

// NewService создает сервис уведомлений; metrics может быть nil
func NewService(repo NotificationRepository, metrics Metrics, logger Logger) *Service {
	return &Service{
		repo:    repo,
		metrics: metrics,
		logger:  logger,
	}
}

// Create сохраняет уведомление для пользователя
// data сериализуется в JSON, nil допустим
func (s *Service) Create(ctx context.Context, userID int64, title, message string, kind domain.NotificationType, data any) error {
	if userID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	n := &domain.Notification{
		UserID:  userID,
		Title:   title,
		Message: message,
		Type:    kind,
	}
	if data != nil {
		raw, err := json.Marshal(data)
		if err != nil {
			return fmt.Errorf("%w: Create - marshal data: %v", ErrInternal, err)
		}
		n.Data = raw
	}

	if _, err := s.repo.Create(ctx, n); err != nil {
		s.observe("failed")
		s.logger.Error("Create: repository error for user=%d: %v", userID, err)
		return fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.observe("sent")
	s.logger.Info("Create: notification id=%d (%s) stored for user=%d", n.ID, kind, userID)
	return nil
}

// List страница уведомлений пользователя
func (s *Service) List(ctx context.Context, req *models.ListRequest) (*models.ListResponse, error) {
	page, limit := domain.ClampPagination(req.Page, req.Limit)

	items, total, err := s.repo.List(ctx, req.UserID, req.UnreadOnly, limit, (page-1)*limit)
	if err != nil {
		s.logger.Error("List: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	resp := &models.ListResponse{
		Items:      make([]models.NotificationResponse, 0, len(items)),
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: domain.TotalPages(total, limit),
	}
	for _, n := range items {
		resp.Items = append(resp.Items, models.FromDomainNotification(n))
	}

	return resp, nil
}

// UnreadCount количество непрочитанных уведомлений
func (s *Service) UnreadCount(ctx context.Context, userID int64) (int, error) {
	count, err := s.repo.UnreadCount(ctx, userID)
	if err != nil {
		s.logger.Error("UnreadCount: repository error for user=%d: %v", userID, err)
		return 0, fmt.Errorf("%w: UnreadCount - repository error: %v", ErrInternal, err)
	}
	return count, nil
}

// MarkRead отмечает уведомление прочитанным
func (s *Service) MarkRead(ctx context.Context, userID, id int64) error {
	if err := s.repo.MarkRead(ctx, userID, id); err != nil {
		if errors.Is(err, notificationRepo.ErrNotificationNotFound) {
			s.logger.Warn("MarkRead: notification id=%d not found for user=%d", id, userID)
			return ErrNotificationNotFound
		}
		s.logger.Error("MarkRead: repository error for notification id=%d: %v", id, err)
		return fmt.Errorf("%w: MarkRead - repository error: %v", ErrInternal, err)
	}
	return nil
}

// MarkAllRead отмечает все уведомления пользователя прочитанными
func (s *Service) MarkAllRead(ctx context.Context, userID int64) (int64, error) {
	updated, err := s.repo.MarkAllRead(ctx, userID)
	if err != nil {
		s.logger.Error("MarkAllRead: repository error for user=%d: %v", userID, err)
		return 0, fmt.Errorf("%w: MarkAllRead - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("MarkAllRead: %d notifications marked read for user=%d", updated, userID)
	return updated, nil
}

// Delete удаляет уведомление пользователя
func (s *Service) Delete(ctx context.Context, userID, id int64) error {
	if err := s.repo.Delete(ctx, userID, id); err != nil {
		if errors.Is(err, notificationRepo.ErrNotificationNotFound) {
			s.logger.Warn("Delete: notification id=%d not found for user=%d", id, userID)
			return ErrNotificationNotFound
		}
		s.logger.Error("Delete: repository error for notification id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}
	return nil
}

func (s *Service) observe(outcome string) {
	if s.metrics != nil {
		s.metrics.IncNotification(channelInApp, outcome)
	}
}
