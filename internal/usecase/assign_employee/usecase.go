package assign_employee

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-InspectionService/internal/domain"
	reservationRepo "github.com/m04kA/SMC-InspectionService/internal/infra/storage/reservation"
)

// Request назначение сотрудника; EmployeeID nil снимает назначение
type Request struct {
	CenterID   int64
	ID         int64
	EmployeeID *int64
}

// UseCase назначение сотрудника на запись
type UseCase struct {
	reservationRepo ReservationRepository
	txManager       TransactionManager
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(reservationRepo ReservationRepository, txManager TransactionManager, logger Logger) *UseCase {
	return &UseCase{reservationRepo: reservationRepo, txManager: txManager, logger: logger}
}

// Execute назначает сотрудника на незавершенную запись
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*domain.Reservation, error) {
	uc.logger.Info("AssignEmployee: center=%d, id=%d, employee=%v", req.CenterID, req.ID, req.EmployeeID)

	if req.CenterID <= 0 || req.ID <= 0 || (req.EmployeeID != nil && *req.EmployeeID <= 0) {
		return nil, fmt.Errorf("%w: invalid identifiers", ErrInvalidInput)
	}

	var result *domain.Reservation
	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		res, err := uc.reservationRepo.GetByID(txCtx, req.CenterID, req.ID)
		if err != nil {
			if errors.Is(err, reservationRepo.ErrReservationNotFound) {
				return ErrReservationNotFound
			}
			return fmt.Errorf("%w: failed to get reservation: %v", ErrInternal, err)
		}
		if res.IsTerminal() {
			uc.logger.Warn("AssignEmployee: reservation id=%d is %s", res.ID, res.Status)
			return ErrReservationClosed
		}

		res.EmployeeID = req.EmployeeID
		if err := uc.reservationRepo.Update(txCtx, res); err != nil {
			return fmt.Errorf("%w: failed to update reservation: %v", ErrInternal, err)
		}

		result = res
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrInternal) {
			uc.logger.Error("AssignEmployee: %v", err)
		}
		return nil, err
	}

	uc.logger.Info("AssignEmployee: reservation id=%d assigned to %v", result.ID, result.EmployeeID)
	return result, nil
}
