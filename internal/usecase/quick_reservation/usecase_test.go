package quick_reservation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-InspectionService/internal/domain"
	clientRepo "github.com/m04kA/SMC-InspectionService/internal/infra/storage/client"
	reservationRepo "github.com/m04kA/SMC-InspectionService/internal/infra/storage/reservation"
	vehicleRepo "github.com/m04kA/SMC-InspectionService/internal/infra/storage/vehicle"
	"github.com/m04kA/SMC-InspectionService/internal/usecase/create_reservation"
	"github.com/m04kA/SMC-InspectionService/pkg/logger"
	"github.com/m04kA/SMC-InspectionService/pkg/ptr"
	"github.com/m04kA/SMC-InspectionService/pkg/types"
)

// clientStore клиенты центра в памяти
type clientStore struct {
	items []*domain.Client
}

func (s *clientStore) FindByPhoneOrEmail(_ context.Context, centerID int64, phone, email string) (*domain.Client, error) {
	for _, c := range s.items {
		if c.CenterID != centerID {
			continue
		}
		if (phone != "" && c.Phone != nil && *c.Phone == phone) ||
			(email != "" && c.Email != nil && strings.EqualFold(*c.Email, email)) {
			return c, nil
		}
	}
	return nil, clientRepo.ErrClientNotFound
}

func (s *clientStore) Create(_ context.Context, c *domain.Client) (*domain.Client, error) {
	c.ID = int64(len(s.items) + 1)
	s.items = append(s.items, c)
	return c, nil
}

// vehicleStore ТС центра в памяти
type vehicleStore struct {
	items []*domain.Vehicle
}

func (s *vehicleStore) FindByPlate(_ context.Context, centerID int64, plate string) (*domain.Vehicle, error) {
	for _, v := range s.items {
		if v.CenterID == centerID && v.LicensePlate == domain.NormalizePlate(plate) {
			return v, nil
		}
	}
	return nil, vehicleRepo.ErrVehicleNotFound
}

func (s *vehicleStore) Create(_ context.Context, v *domain.Vehicle) (*domain.Vehicle, error) {
	v.ID = int64(len(s.items) + 1)
	s.items = append(s.items, v)
	return v, nil
}

type creatorStub struct {
	requests  []*create_reservation.Request
	committed int
	err       error
	failOnce  error
}

func (c *creatorStub) CreateInTx(_ context.Context, req *create_reservation.Request) (*domain.Reservation, error) {
	if c.err != nil {
		return nil, c.err
	}
	if c.failOnce != nil {
		err := c.failOnce
		c.failOnce = nil
		return nil, err
	}
	c.requests = append(c.requests, req)
	return &domain.Reservation{
		ID:        int64(len(c.requests)),
		CenterID:  req.CenterID,
		ClientID:  req.ClientID,
		VehicleID: req.VehicleID,
		Date:      req.Date,
		StartTime: req.StartTime,
		Status:    domain.StatusConfirmed,
	}, nil
}

func (c *creatorStub) AfterCommit(context.Context, *domain.Reservation) { c.committed++ }

type txStub struct{ calls int }

func (t *txStub) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	t.calls++
	return fn(ctx)
}

var day = time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)

func quickRequest(start string) *Request {
	return &Request{
		Actor:        domain.Actor{UserID: 2, Role: domain.RoleEmployee},
		CenterID:     1,
		FirstName:    "Мария",
		LastName:     "Соколова",
		Phone:        "+7 900 123-45-67",
		LicensePlate: "ab-123-cd",
		Brand:        ptr.Ptr("Lada"),
		CategoryID:   3,
		Date:         day,
		StartTime:    types.TimeString(start),
	}
}

func TestExecute_SamePhoneTwiceCreatesOneClient(t *testing.T) {
	clients := &clientStore{}
	vehicles := &vehicleStore{}
	creator := &creatorStub{}
	tx := &txStub{}
	uc := NewUseCase(clients, vehicles, creator, tx, logger.Nop())

	first, err := uc.Execute(context.Background(), quickRequest("09:00"))
	require.NoError(t, err)
	assert.True(t, first.ClientCreated)
	assert.True(t, first.VehicleCreated)

	second, err := uc.Execute(context.Background(), quickRequest("10:00"))
	require.NoError(t, err)
	assert.False(t, second.ClientCreated)
	assert.False(t, second.VehicleCreated)

	assert.Len(t, clients.items, 1)
	assert.Len(t, vehicles.items, 1)
	assert.Equal(t, first.ClientID, second.ClientID)
	assert.Equal(t, "AB-123-CD", vehicles.items[0].LicensePlate)
	assert.Equal(t, 2, tx.calls)
	assert.Equal(t, 2, creator.committed)
}

func TestExecute_DefaultEmailFromPhone(t *testing.T) {
	clients := &clientStore{}
	uc := NewUseCase(clients, &vehicleStore{}, &creatorStub{}, &txStub{}, logger.Nop())

	_, err := uc.Execute(context.Background(), quickRequest("09:00"))
	require.NoError(t, err)

	require.Len(t, clients.items, 1)
	assert.Equal(t, "79001234567@temp.agendact.com", *clients.items[0].Email)
}

func TestExecute_MatchesExistingClientByEmail(t *testing.T) {
	clients := &clientStore{items: []*domain.Client{
		{ID: 1, CenterID: 1, FirstName: "Мария", Phone: ptr.Ptr("+7 900 000-00-00"), Email: ptr.Ptr("maria@example.com")},
	}}
	uc := NewUseCase(clients, &vehicleStore{}, &creatorStub{}, &txStub{}, logger.Nop())

	req := quickRequest("09:00")
	req.Email = ptr.Ptr("MARIA@example.com")

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ClientID)
	assert.False(t, resp.ClientCreated)
}

func TestExecute_CreateErrorIsReturned(t *testing.T) {
	creator := &creatorStub{err: create_reservation.ErrConflict}
	uc := NewUseCase(&clientStore{}, &vehicleStore{}, creator, &txStub{}, logger.Nop())

	_, err := uc.Execute(context.Background(), quickRequest("09:00"))
	assert.True(t, errors.Is(err, create_reservation.ErrConflict))
	assert.Zero(t, creator.committed)
}

func TestExecute_DuplicateCodeRetriesTransaction(t *testing.T) {
	creator := &creatorStub{failOnce: fmt.Errorf("%w: insert", reservationRepo.ErrDuplicateCode)}
	tx := &txStub{}
	uc := NewUseCase(&clientStore{}, &vehicleStore{}, creator, tx, logger.Nop())

	resp, err := uc.Execute(context.Background(), quickRequest("09:00"))
	require.NoError(t, err)
	assert.NotNil(t, resp.Reservation)
	assert.Equal(t, 2, tx.calls)
	assert.Equal(t, 1, creator.committed)
}

func TestExecute_Validation(t *testing.T) {
	uc := NewUseCase(&clientStore{}, &vehicleStore{}, &creatorStub{}, &txStub{}, logger.Nop())

	req := quickRequest("09:00")
	req.Phone = "—"
	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)

	req = quickRequest("09:00")
	req.VehicleType = ptr.Ptr("boat")
	_, err = uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestInternalError_KeepsSerializationFailure(t *testing.T) {
	conflict := fmt.Errorf("%w: insert: %w", clientRepo.ErrExecQuery, &pq.Error{Code: "40001"})
	assert.NotErrorIs(t, internalError("failed to create client", conflict), ErrInternal)
	assert.ErrorIs(t, internalError("failed to create client", errors.New("boom")), ErrInternal)
}
