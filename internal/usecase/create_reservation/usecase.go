package create_reservation

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-InspectionService/internal/domain"
	"github.com/m04kA/SMC-InspectionService/internal/events"
	categoryRepo "github.com/m04kA/SMC-InspectionService/internal/infra/storage/category"
	centerRepo "github.com/m04kA/SMC-InspectionService/internal/infra/storage/center"
	clientRepo "github.com/m04kA/SMC-InspectionService/internal/infra/storage/client"
	reservationRepo "github.com/m04kA/SMC-InspectionService/internal/infra/storage/reservation"
	vehicleRepo "github.com/m04kA/SMC-InspectionService/internal/infra/storage/vehicle"
	"github.com/m04kA/SMC-InspectionService/pkg/bookingcode"
	"github.com/m04kA/SMC-InspectionService/pkg/pgerrors"
	"github.com/m04kA/SMC-InspectionService/pkg/txmanager"
)

// UseCase use case для создания записи на техосмотр
type UseCase struct {
	reservationRepo ReservationRepository
	centers         CenterReader
	categories      CategoryReader
	clientRepo      ClientRepository
	vehicleRepo     VehicleRepository
	holidayRepo     HolidayRepository
	outboxRepo      OutboxRepository
	notifier        EventNotifier
	slotCache       SlotCache
	txManager       TransactionManager
	newCode         CodeGenerator
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	centers CenterReader,
	categories CategoryReader,
	clientRepo ClientRepository,
	vehicleRepo VehicleRepository,
	holidayRepo HolidayRepository,
	outboxRepo OutboxRepository,
	notifier EventNotifier,
	slotCache SlotCache,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		centers:         centers,
		categories:      categories,
		clientRepo:      clientRepo,
		vehicleRepo:     vehicleRepo,
		holidayRepo:     holidayRepo,
		outboxRepo:      outboxRepo,
		notifier:        notifier,
		slotCache:       slotCache,
		txManager:       txManager,
		newCode:         bookingcode.New,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute создает запись в сериализуемой транзакции
// После фиксации сбрасывает кеш слотов дня и будит outbox relay
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*domain.Reservation, error) {
	uc.logger.Info("CreateReservation: center=%d, client=%d, vehicle=%d, category=%d, date=%s, time=%s",
		req.CenterID, req.ClientID, req.VehicleID, req.CategoryID, req.Date.Format(domain.DateFormat), req.StartTime)

	var result *domain.Reservation
	err := RunWithCodeRetry(func() error {
		return uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
			created, err := uc.CreateInTx(txCtx, req)
			if err != nil {
				return err
			}
			result = created
			return nil
		})
	})
	if err != nil {
		return nil, MapTxError(err)
	}

	uc.AfterCommit(ctx, result)

	uc.logger.Info("CreateReservation: created reservation id=%d code=%s status=%s", result.ID, result.BookingCode, result.Status)
	return result, nil
}

// CreateInTx выполняет проверки и вставку внутри уже открытой транзакции
// Используется быстрой записью, которая создает клиента и ТС в той же транзакции
func (uc *UseCase) CreateInTx(ctx context.Context, req *Request) (*domain.Reservation, error) {
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateReservation: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	center, err := uc.centers.GetByID(ctx, req.CenterID)
	if err != nil {
		if errors.Is(err, centerRepo.ErrCenterNotFound) {
			uc.logger.Warn("CreateReservation: center id=%d not found", req.CenterID)
			return nil, ErrCenterNotFound
		}
		uc.logger.Error("CreateReservation: failed to get center id=%d: %v", req.CenterID, err)
		return nil, fmt.Errorf("%w: failed to get center: %v", ErrInternal, err)
	}

	if isDateInPast(req.Date, now, center.Location()) {
		uc.logger.Warn("CreateReservation: date %s is in the past", req.Date.Format(domain.DateFormat))
		return nil, ErrDateInPast
	}

	category, err := uc.categories.GetByID(ctx, req.CenterID, req.CategoryID)
	if err != nil {
		if errors.Is(err, categoryRepo.ErrCategoryNotFound) {
			uc.logger.Warn("CreateReservation: category id=%d not found in center=%d", req.CategoryID, req.CenterID)
			return nil, ErrCategoryNotFound
		}
		uc.logger.Error("CreateReservation: failed to get category id=%d: %v", req.CategoryID, err)
		return nil, fmt.Errorf("%w: failed to get category: %v", ErrInternal, err)
	}
	if !category.IsBookable() {
		uc.logger.Warn("CreateReservation: category id=%d is not bookable", category.ID)
		return nil, ErrCategoryInactive
	}

	client, err := uc.clientRepo.GetByID(ctx, req.CenterID, req.ClientID)
	if err != nil {
		if errors.Is(err, clientRepo.ErrClientNotFound) {
			uc.logger.Warn("CreateReservation: client id=%d not found in center=%d", req.ClientID, req.CenterID)
			return nil, ErrClientNotFound
		}
		uc.logger.Error("CreateReservation: failed to get client id=%d: %v", req.ClientID, err)
		return nil, fmt.Errorf("%w: failed to get client: %v", ErrInternal, err)
	}
	if req.Actor.IsClient() && (client.UserID == nil || *client.UserID != req.Actor.UserID) {
		uc.logger.Warn("CreateReservation: user=%d cannot book for client id=%d", req.Actor.UserID, client.ID)
		return nil, ErrAccessDenied
	}

	vehicle, err := uc.vehicleRepo.GetByID(ctx, req.CenterID, req.VehicleID)
	if err != nil {
		if errors.Is(err, vehicleRepo.ErrVehicleNotFound) {
			uc.logger.Warn("CreateReservation: vehicle id=%d not found in center=%d", req.VehicleID, req.CenterID)
			return nil, ErrVehicleNotFound
		}
		uc.logger.Error("CreateReservation: failed to get vehicle id=%d: %v", req.VehicleID, err)
		return nil, fmt.Errorf("%w: failed to get vehicle: %v", ErrInternal, err)
	}
	if vehicle.ClientID != client.ID {
		uc.logger.Warn("CreateReservation: vehicle id=%d belongs to client=%d, not %d", vehicle.ID, vehicle.ClientID, client.ID)
		return nil, ErrVehicleNotOwned
	}

	holiday, err := uc.holidayRepo.FindActiveCovering(ctx, req.CenterID, req.Date)
	if err != nil {
		uc.logger.Error("CreateReservation: failed to check holidays: %v", err)
		return nil, fmt.Errorf("%w: failed to check holidays: %v", ErrInternal, err)
	}
	if holiday != nil {
		uc.logger.Warn("CreateReservation: center=%d is on holiday %q on %s", req.CenterID, holiday.Name, req.Date.Format(domain.DateFormat))
		return nil, ErrHoliday
	}

	endTime, err := req.StartTime.AddMinutes(category.DurationMinutes)
	if err != nil {
		uc.logger.Warn("CreateReservation: end time overflows the day: %v", err)
		return nil, ErrOutsideOpeningHours
	}
	interval := domain.Interval{Start: req.StartTime, End: endTime}

	open, fits := center.OpeningHours.Fits(req.Date, interval)
	if !open {
		uc.logger.Warn("CreateReservation: center=%d is closed on %s", req.CenterID, domain.WeekdayKey(req.Date))
		return nil, ErrCenterClosed
	}
	if !fits {
		uc.logger.Warn("CreateReservation: interval %s-%s is outside opening hours", interval.Start, interval.End)
		return nil, ErrOutsideOpeningHours
	}

	reserved, err := uc.reservationRepo.ListBlocking(ctx, req.CenterID, req.Date, nil)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrSerialization) {
			uc.logger.Warn("CreateReservation: serialization conflict on listing reservations: %v", err)
			return nil, err
		}
		uc.logger.Error("CreateReservation: failed to list reservations: %v", err)
		return nil, fmt.Errorf("%w: failed to list reservations: %v", ErrInternal, err)
	}
	if other := domain.FindOverlap(reserved, interval); other != nil {
		uc.logger.Warn("CreateReservation: %s-%s overlaps reservation id=%d (%s-%s)",
			interval.Start, interval.End, other.ID, other.StartTime, other.EndTime)
		return nil, ErrConflict
	}

	code, err := uc.generateCode(ctx)
	if err != nil {
		return nil, err
	}

	res, err := uc.reservationRepo.Create(ctx, &domain.Reservation{
		BookingCode:     code,
		CenterID:        req.CenterID,
		ClientID:        client.ID,
		VehicleID:       vehicle.ID,
		CategoryID:      category.ID,
		EmployeeID:      req.EmployeeID,
		Date:            domain.DateOnly(req.Date),
		StartTime:       interval.Start,
		EndTime:         interval.End,
		DurationMinutes: category.DurationMinutes,
		Status:          initialStatus(req),
		Notes:           req.Notes,
	})
	if err != nil {
		if errors.Is(err, reservationRepo.ErrOverlap) {
			uc.logger.Warn("CreateReservation: insert rejected by database: %v", err)
			return nil, ErrConflict
		}
		// транзакцию повторяет вызывающая сторона
		if errors.Is(err, reservationRepo.ErrSerialization) || errors.Is(err, reservationRepo.ErrDuplicateCode) {
			uc.logger.Warn("CreateReservation: insert will be retried: %v", err)
			return nil, err
		}
		uc.logger.Error("CreateReservation: failed to create reservation: %v", err)
		return nil, fmt.Errorf("%w: failed to create reservation: %v", ErrInternal, err)
	}

	event, err := events.NewReservationCreated(res, now)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	if err := uc.outboxRepo.Add(ctx, event); err != nil {
		uc.logger.Error("CreateReservation: failed to write outbox event: %v", err)
		return nil, fmt.Errorf("%w: failed to write outbox event: %v", ErrInternal, err)
	}

	if err := uc.clientRepo.Touch(ctx, client.ID, now); err != nil {
		uc.logger.Warn("CreateReservation: failed to touch client id=%d: %v", client.ID, err)
	}

	return res, nil
}

// AfterCommit сбрасывает кеш слотов и будит relay; ошибки кеша только логируются
func (uc *UseCase) AfterCommit(ctx context.Context, res *domain.Reservation) {
	if err := uc.slotCache.Invalidate(ctx, res.CenterID, res.Date); err != nil {
		uc.logger.Warn("CreateReservation: failed to invalidate slots for center=%d: %v", res.CenterID, err)
	}
	uc.notifier.Wake()
}

// generateCode подбирает свободный код записи
func (uc *UseCase) generateCode(ctx context.Context) (string, error) {
	for attempt := 1; attempt <= domain.MaxBookingCodeRetries; attempt++ {
		code, err := uc.newCode()
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrInternal, err)
		}

		exists, err := uc.reservationRepo.ExistsByCode(ctx, code)
		if err != nil {
			uc.logger.Error("CreateReservation: failed to check booking code: %v", err)
			return "", fmt.Errorf("%w: failed to check booking code: %v", ErrInternal, err)
		}
		if !exists {
			return code, nil
		}

		uc.logger.Warn("CreateReservation: booking code %s collision, attempt %d", code, attempt)
	}

	return "", fmt.Errorf("%w: no free booking code after %d attempts", ErrInternal, domain.MaxBookingCodeRetries)
}

// RunWithCodeRetry повторяет транзакцию, если код записи заняла параллельная вставка
// Нарушение уникальности обрывает транзакцию, поэтому повторяется она целиком
func RunWithCodeRetry(run func() error) error {
	var err error
	for attempt := 1; attempt <= domain.MaxBookingCodeRetries; attempt++ {
		if err = run(); !errors.Is(err, reservationRepo.ErrDuplicateCode) {
			return err
		}
	}
	return err
}

// MapTxError переводит ошибки транзакции в ошибки use case
// Конфликт сериализации становится ErrConflict только после исчерпания повторов txmanager
func MapTxError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, txmanager.ErrSerializationFailure),
		errors.Is(err, reservationRepo.ErrSerialization),
		errors.Is(err, reservationRepo.ErrOverlap),
		pgerrors.IsSerializationFailure(err):
		return ErrConflict
	case errors.Is(err, reservationRepo.ErrDuplicateCode):
		return fmt.Errorf("%w: no free booking code after %d attempts: %v", ErrInternal, domain.MaxBookingCodeRetries, err)
	}
	return err
}
