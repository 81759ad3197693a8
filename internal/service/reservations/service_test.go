package reservations

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-InspectionService/internal/domain"
	reservationRepo "github.com/m04kA/SMC-InspectionService/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-InspectionService/internal/service/reservations/models"
	"github.com/m04kA/SMC-InspectionService/pkg/logger"
	"github.com/m04kA/SMC-InspectionService/pkg/ptr"
)

type reservationRepoMock struct {
	mock.Mock
}

func (m *reservationRepoMock) GetByID(ctx context.Context, centerID, id int64) (*domain.Reservation, error) {
	args := m.Called(ctx, centerID, id)
	res, _ := args.Get(0).(*domain.Reservation)
	return res, args.Error(1)
}

func (m *reservationRepoMock) GetDetails(ctx context.Context, centerID, id int64) (*domain.ReservationDetails, error) {
	args := m.Called(ctx, centerID, id)
	d, _ := args.Get(0).(*domain.ReservationDetails)
	return d, args.Error(1)
}

func (m *reservationRepoMock) List(ctx context.Context, filter domain.ReservationFilter) ([]*domain.ReservationDetails, int, error) {
	args := m.Called(ctx, filter)
	items, _ := args.Get(0).([]*domain.ReservationDetails)
	return items, args.Int(1), args.Error(2)
}

func (m *reservationRepoMock) SoftDelete(ctx context.Context, centerID, id int64) error {
	return m.Called(ctx, centerID, id).Error(0)
}

type cacheMock struct {
	mock.Mock
}

func (m *cacheMock) Invalidate(ctx context.Context, centerID int64, dates ...time.Time) error {
	return m.Called(ctx, centerID, dates).Error(0)
}

type txStub struct{}

func (txStub) Do(ctx context.Context, fn func(ctx context.Context) error) error { return fn(ctx) }

var day = time.Date(2026, 11, 3, 0, 0, 0, 0, time.UTC)

func details(userID *int64) *domain.ReservationDetails {
	return &domain.ReservationDetails{
		Reservation: domain.Reservation{
			ID: 5, BookingCode: "RES-0A1B2C3D", CenterID: 1, Date: day,
			StartTime: "09:00", EndTime: "09:30", Status: domain.StatusConfirmed,
		},
		ClientName:   "Иван Петров",
		ClientUserID: userID,
		LicensePlate: "AB-123-CD",
	}
}

func TestGetByID_ClientSeesOnlyOwnReservation(t *testing.T) {
	repo := &reservationRepoMock{}
	repo.On("GetDetails", mock.Anything, int64(1), int64(5)).Return(details(ptr.Ptr(int64(77))), nil)
	svc := NewService(repo, txStub{}, &cacheMock{}, logger.Nop())

	resp, err := svc.GetByID(context.Background(), domain.Actor{UserID: 77, Role: domain.RoleClient}, 1, 5)
	require.NoError(t, err)
	assert.Equal(t, "RES-0A1B2C3D", resp.BookingCode)
	assert.Equal(t, "2026-11-03", resp.Date)

	_, err = svc.GetByID(context.Background(), domain.Actor{UserID: 78, Role: domain.RoleClient}, 1, 5)
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = svc.GetByID(context.Background(), domain.Actor{UserID: 3, Role: domain.RoleEmployee}, 1, 5)
	assert.NoError(t, err)
}

func TestGetByID_NotFound(t *testing.T) {
	repo := &reservationRepoMock{}
	repo.On("GetDetails", mock.Anything, int64(1), int64(9)).Return(nil, reservationRepo.ErrReservationNotFound)
	svc := NewService(repo, txStub{}, &cacheMock{}, logger.Nop())

	_, err := svc.GetByID(context.Background(), domain.Actor{UserID: 3, Role: domain.RoleCTAdmin}, 1, 9)
	assert.ErrorIs(t, err, ErrReservationNotFound)
}

func TestList_ClampsPaginationAndScopesClient(t *testing.T) {
	repo := &reservationRepoMock{}
	repo.On("List", mock.Anything, mock.MatchedBy(func(f domain.ReservationFilter) bool {
		return f.Page == 1 && f.Limit == 100 && f.ClientUserID != nil && *f.ClientUserID == 77
	})).Return([]*domain.ReservationDetails{details(ptr.Ptr(int64(77)))}, 250, nil)
	svc := NewService(repo, txStub{}, &cacheMock{}, logger.Nop())

	resp, err := svc.List(context.Background(), &models.ListReservationsRequest{
		Actor:    domain.Actor{UserID: 77, Role: domain.RoleClient},
		CenterID: 1,
		Limit:    1000,
	})
	require.NoError(t, err)
	assert.Equal(t, 250, resp.Total)
	assert.Equal(t, 3, resp.TotalPages)
	assert.Len(t, resp.Items, 1)
	repo.AssertExpectations(t)
}

func TestList_InvalidStatus(t *testing.T) {
	svc := NewService(&reservationRepoMock{}, txStub{}, &cacheMock{}, logger.Nop())

	_, err := svc.List(context.Background(), &models.ListReservationsRequest{CenterID: 1, Status: ptr.Ptr("archived")})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestRemove_InvalidatesSlots(t *testing.T) {
	repo := &reservationRepoMock{}
	cache := &cacheMock{}
	repo.On("GetByID", mock.Anything, int64(1), int64(5)).Return(&details(nil).Reservation, nil)
	repo.On("SoftDelete", mock.Anything, int64(1), int64(5)).Return(nil)
	cache.On("Invalidate", mock.Anything, int64(1), []time.Time{day}).Return(nil)
	svc := NewService(repo, txStub{}, cache, logger.Nop())

	require.NoError(t, svc.Remove(context.Background(), 1, 5))
	repo.AssertExpectations(t)
	cache.AssertExpectations(t)
}

func TestRemove_NotFound(t *testing.T) {
	repo := &reservationRepoMock{}
	repo.On("GetByID", mock.Anything, int64(1), int64(5)).Return(nil, reservationRepo.ErrReservationNotFound)
	svc := NewService(repo, txStub{}, &cacheMock{}, logger.Nop())

	assert.ErrorIs(t, svc.Remove(context.Background(), 1, 5), ErrReservationNotFound)
}
