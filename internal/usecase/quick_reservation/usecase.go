package quick_reservation

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-InspectionService/internal/domain"
	clientRepo "github.com/m04kA/SMC-InspectionService/internal/infra/storage/client"
	vehicleRepo "github.com/m04kA/SMC-InspectionService/internal/infra/storage/vehicle"
	"github.com/m04kA/SMC-InspectionService/internal/usecase/create_reservation"
	"github.com/m04kA/SMC-InspectionService/pkg/pgerrors"
)

// UseCase быстрая запись с регистрацией клиента и ТС в одной транзакции
type UseCase struct {
	clientRepo  ClientRepository
	vehicleRepo VehicleRepository
	creator     ReservationCreator
	txManager   TransactionManager
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	clientRepo ClientRepository,
	vehicleRepo VehicleRepository,
	creator ReservationCreator,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		clientRepo:  clientRepo,
		vehicleRepo: vehicleRepo,
		creator:     creator,
		txManager:   txManager,
		logger:      logger,
	}
}

// Execute находит или создает клиента (по телефону или email) и ТС (по госномеру), затем создает запись
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("QuickReservation: center=%d, phone=%s, plate=%s, date=%s, time=%s",
		req.CenterID, req.Phone, req.LicensePlate, req.Date.Format(domain.DateFormat), req.StartTime)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("QuickReservation: validation failed: %v", err)
		return nil, err
	}

	var resp *Response
	err := create_reservation.RunWithCodeRetry(func() error {
		return uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
			resp = &Response{}

			client, created, err := uc.upsertClient(txCtx, req)
			if err != nil {
				return err
			}
			resp.ClientID, resp.ClientCreated = client.ID, created

			vehicle, created, err := uc.upsertVehicle(txCtx, req, client)
			if err != nil {
				return err
			}
			resp.VehicleID, resp.VehicleCreated = vehicle.ID, created

			res, err := uc.creator.CreateInTx(txCtx, &create_reservation.Request{
				Actor:      req.Actor,
				CenterID:   req.CenterID,
				ClientID:   client.ID,
				VehicleID:  vehicle.ID,
				CategoryID: req.CategoryID,
				Date:       req.Date,
				StartTime:  req.StartTime,
				EmployeeID: req.EmployeeID,
				Notes:      req.Notes,
			})
			if err != nil {
				return err
			}
			resp.Reservation = res
			return nil
		})
	})
	if err != nil {
		return nil, create_reservation.MapTxError(err)
	}

	uc.creator.AfterCommit(ctx, resp.Reservation)

	uc.logger.Info("QuickReservation: created reservation id=%d for client=%d (new=%t), vehicle=%d (new=%t)",
		resp.Reservation.ID, resp.ClientID, resp.ClientCreated, resp.VehicleID, resp.VehicleCreated)
	return resp, nil
}

func (uc *UseCase) upsertClient(ctx context.Context, req *Request) (*domain.Client, bool, error) {
	phone := strings.TrimSpace(req.Phone)
	email := contactEmail(req)

	client, err := uc.clientRepo.FindByPhoneOrEmail(ctx, req.CenterID, phone, email)
	if err == nil {
		return client, false, nil
	}
	if !errors.Is(err, clientRepo.ErrClientNotFound) {
		uc.logger.Error("QuickReservation: failed to find client: %v", err)
		return nil, false, internalError("failed to find client", err)
	}

	client, err = uc.clientRepo.Create(ctx, &domain.Client{
		CenterID:  req.CenterID,
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
		Phone:     &phone,
		Email:     &email,
		Type:      domain.ClientTypeNormal,
	})
	if err != nil {
		uc.logger.Error("QuickReservation: failed to create client: %v", err)
		return nil, false, internalError("failed to create client", err)
	}

	uc.logger.Info("QuickReservation: created client id=%d", client.ID)
	return client, true, nil
}

func (uc *UseCase) upsertVehicle(ctx context.Context, req *Request, client *domain.Client) (*domain.Vehicle, bool, error) {
	vehicle, err := uc.vehicleRepo.FindByPlate(ctx, req.CenterID, req.LicensePlate)
	if err == nil {
		return vehicle, false, nil
	}
	if !errors.Is(err, vehicleRepo.ErrVehicleNotFound) {
		uc.logger.Error("QuickReservation: failed to find vehicle: %v", err)
		return nil, false, internalError("failed to find vehicle", err)
	}

	v := &domain.Vehicle{
		CenterID:     req.CenterID,
		ClientID:     client.ID,
		LicensePlate: domain.NormalizePlate(req.LicensePlate),
		Brand:        req.Brand,
		Model:        req.Model,
	}
	if req.VehicleType != nil {
		v.Type = domain.VehicleType(*req.VehicleType)
	}

	vehicle, err = uc.vehicleRepo.Create(ctx, v)
	if err != nil {
		uc.logger.Error("QuickReservation: failed to create vehicle: %v", err)
		return nil, false, internalError("failed to create vehicle", err)
	}

	uc.logger.Info("QuickReservation: created vehicle id=%d plate=%s", vehicle.ID, vehicle.LicensePlate)
	return vehicle, true, nil
}

// internalError оборачивает ошибку хранилища; конфликт сериализации отдается txmanager без обертки
func internalError(op string, err error) error {
	if pgerrors.IsSerializationFailure(err) {
		return err
	}
	return fmt.Errorf("%w: %s: %v", ErrInternal, op, err)
}
