package reservations

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-InspectionService/internal/domain"
	reservationRepo "github.com/m04kA/SMC-InspectionService/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-InspectionService/internal/service/reservations/models"
)

// Service сервис чтения и удаления записей
type Service struct {
	reservationRepo ReservationRepository
	txManager       TransactionManager
	slotCache       SlotCache
	logger          Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(
	reservationRepo ReservationRepository,
	txManager TransactionManager,
	slotCache SlotCache,
	logger Logger,
) *Service {
	return &Service{
		reservationRepo: reservationRepo,
		txManager:       txManager,
		slotCache:       slotCache,
		logger:          logger,
	}
}

// GetByID получает запись с деталями
// Клиент видит только свои записи
func (s *Service) GetByID(ctx context.Context, actor domain.Actor, centerID, id int64) (*models.ReservationResponse, error) {
	s.logger.Info("GetByID: fetching reservation id=%d center=%d for user=%d", id, centerID, actor.UserID)

	details, err := s.reservationRepo.GetDetails(ctx, centerID, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("GetByID: reservation id=%d not found", id)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("GetByID: repository error for reservation id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if err := checkClientAccess(actor, details); err != nil {
		s.logger.Warn("GetByID: access denied for user=%d to reservation id=%d", actor.UserID, id)
		return nil, err
	}

	return models.FromDomainDetails(details), nil
}

// List возвращает страницу записей центра с фильтрами
func (s *Service) List(ctx context.Context, req *models.ListReservationsRequest) (*models.ReservationListResponse, error) {
	s.logger.Info("List: fetching reservations for center=%d, user=%d, page=%d", req.CenterID, req.Actor.UserID, req.Page)

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("List: invalid filter for center=%d: %v", req.CenterID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if filter.DateFrom != nil && filter.DateTo != nil && filter.DateTo.Before(*filter.DateFrom) {
		s.logger.Warn("List: dateTo before dateFrom for center=%d", req.CenterID)
		return nil, fmt.Errorf("%w: dateTo before dateFrom", ErrInvalidInput)
	}

	items, total, err := s.reservationRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error for center=%d: %v", req.CenterID, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: fetched %d of %d reservations for center=%d", len(items), total, req.CenterID)
	return models.FromDomainDetailsList(items, total, filter), nil
}

// Remove помечает запись удаленной; время в расписании освобождается
func (s *Service) Remove(ctx context.Context, centerID, id int64) error {
	s.logger.Info("Remove: removing reservation id=%d center=%d", id, centerID)

	var res *domain.Reservation
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		var err error
		res, err = s.reservationRepo.GetByID(txCtx, centerID, id)
		if err != nil {
			return err
		}
		return s.reservationRepo.SoftDelete(txCtx, centerID, id)
	})
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("Remove: reservation id=%d not found", id)
			return ErrReservationNotFound
		}
		s.logger.Error("Remove: repository error for reservation id=%d: %v", id, err)
		return fmt.Errorf("%w: Remove - repository error: %v", ErrInternal, err)
	}

	if err := s.slotCache.Invalidate(ctx, centerID, res.Date); err != nil {
		s.logger.Warn("Remove: failed to invalidate slots for center=%d: %v", centerID, err)
	}

	s.logger.Info("Remove: reservation id=%d removed", id)
	return nil
}

// checkClientAccess клиент имеет доступ только к записям своего аккаунта
func checkClientAccess(actor domain.Actor, details *domain.ReservationDetails) error {
	if !actor.IsClient() {
		return nil
	}
	if details.ClientUserID == nil || *details.ClientUserID != actor.UserID {
		return ErrAccessDenied
	}
	return nil
}
