package update_result

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-InspectionService/internal/domain"
	"github.com/m04kA/SMC-InspectionService/internal/events"
	vehicleRepo "github.com/m04kA/SMC-InspectionService/internal/infra/storage/vehicle"
	"github.com/m04kA/SMC-InspectionService/internal/usecase/change_status"
	"github.com/m04kA/SMC-InspectionService/pkg/ptr"
)

// UseCase фиксирует результат осмотра и завершает запись
type UseCase struct {
	changer     StatusChanger
	vehicleRepo VehicleRepository
	txManager   TransactionManager
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(changer StatusChanger, vehicleRepo VehicleRepository, txManager TransactionManager, logger Logger) *UseCase {
	return &UseCase{
		changer:     changer,
		vehicleRepo: vehicleRepo,
		txManager:   txManager,
		logger:      logger,
	}
}

// Execute переводит запись в COMPLETED с результатом и протоколом
// и обновляет снимок последнего осмотра ТС в той же транзакции
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*domain.Reservation, error) {
	uc.logger.Info("UpdateResult: center=%d, id=%d, result=%s", req.CenterID, req.ID, req.Result)

	result := domain.InspectionResult(req.Result)
	if req.CenterID <= 0 || req.ID <= 0 || !result.IsValid() {
		uc.logger.Warn("UpdateResult: invalid result %q", req.Result)
		return nil, fmt.Errorf("%w: unknown result %q", ErrInvalidInput, req.Result)
	}
	if req.Report != nil && req.Report.Mileage != nil && *req.Report.Mileage < 0 {
		return nil, fmt.Errorf("%w: mileage must not be negative", ErrInvalidInput)
	}

	var res *domain.Reservation
	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		var err error
		res, err = uc.changer.ApplyInTx(txCtx, &change_status.Transition{
			CenterID:      req.CenterID,
			ReservationID: req.ID,
			To:            domain.StatusCompleted,
			Cause:         events.CauseManual,
			Mutate: func(r *domain.Reservation) error {
				r.Result = ptr.Ptr(result)
				r.Report = req.Report
				if req.Notes != nil {
					r.Notes = req.Notes
				}
				return nil
			},
		})
		if err != nil {
			return err
		}

		return uc.updateVehicle(txCtx, res, result, req.Report)
	})
	if err != nil {
		return nil, err
	}

	uc.changer.AfterCommit(ctx, res)

	uc.logger.Info("UpdateResult: reservation id=%d completed with result=%s", res.ID, result)
	return res, nil
}

// updateVehicle сохраняет дату, результат, пробег и срок следующего осмотра
func (uc *UseCase) updateVehicle(ctx context.Context, res *domain.Reservation, result domain.InspectionResult, report *domain.InspectionReport) error {
	vehicle, err := uc.vehicleRepo.GetByID(ctx, res.CenterID, res.VehicleID)
	if err != nil {
		if errors.Is(err, vehicleRepo.ErrVehicleNotFound) {
			uc.logger.Warn("UpdateResult: vehicle id=%d of reservation id=%d not found, snapshot skipped", res.VehicleID, res.ID)
			return nil
		}
		uc.logger.Error("UpdateResult: failed to get vehicle id=%d: %v", res.VehicleID, err)
		return fmt.Errorf("%w: failed to get vehicle: %v", ErrInternal, err)
	}

	vehicle.LastInspectionDate = ptr.Ptr(res.Date)
	vehicle.LastInspectionResult = ptr.Ptr(result)
	if report != nil {
		if report.Mileage != nil {
			vehicle.Mileage = report.Mileage
		}
		if report.ValidUntil != nil {
			vehicle.NextInspectionDue = report.ValidUntil
		}
	}

	if err := uc.vehicleRepo.UpdateInspection(ctx, vehicle); err != nil {
		uc.logger.Error("UpdateResult: failed to update vehicle id=%d: %v", vehicle.ID, err)
		return fmt.Errorf("%w: failed to update vehicle: %v", ErrInternal, err)
	}

	return nil
}
