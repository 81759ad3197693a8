package notifications

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-InspectionService/internal/domain"
	notificationRepo "github.com/m04kA/SMC-InspectionService/internal/infra/storage/notification"
	"github.com/m04kA/SMC-InspectionService/internal/service/notifications/models"
	"github.com/m04kA/SMC-InspectionService/pkg/logger"
)

type repoMock struct {
	mock.Mock
}

func (m *repoMock) Create(ctx context.Context, n *domain.Notification) (*domain.Notification, error) {
	args := m.Called(ctx, n)
	return n, args.Error(0)
}

func (m *repoMock) List(ctx context.Context, userID int64, unreadOnly bool, limit, offset int) ([]*domain.Notification, int, error) {
	args := m.Called(ctx, userID, unreadOnly, limit, offset)
	items, _ := args.Get(0).([]*domain.Notification)
	return items, args.Int(1), args.Error(2)
}

func (m *repoMock) UnreadCount(ctx context.Context, userID int64) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

func (m *repoMock) MarkRead(ctx context.Context, userID, id int64) error {
	return m.Called(ctx, userID, id).Error(0)
}

func (m *repoMock) MarkAllRead(ctx context.Context, userID int64) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *repoMock) Delete(ctx context.Context, userID, id int64) error {
	return m.Called(ctx, userID, id).Error(0)
}

func TestCreate_SerializesData(t *testing.T) {
	repo := &repoMock{}
	ctx := context.Background()
	repo.On("Create", ctx, mock.MatchedBy(func(n *domain.Notification) bool {
		var data map[string]int64
		_ = json.Unmarshal(n.Data, &data)
		return n.UserID == 7 && n.Type == domain.NotificationReservation && data["reservationId"] == 42
	})).Return(nil)

	svc := NewService(repo, nil, logger.Nop())
	err := svc.Create(ctx, 7, "Новая запись", "Запись RES-0000AAAA", domain.NotificationReservation,
		map[string]int64{"reservationId": 42})

	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestCreate_RejectsMissingUser(t *testing.T) {
	svc := NewService(&repoMock{}, nil, logger.Nop())
	err := svc.Create(context.Background(), 0, "t", "m", domain.NotificationSystem, nil)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestList_ClampsPagination(t *testing.T) {
	repo := &repoMock{}
	ctx := context.Background()
	items := []*domain.Notification{{ID: 1, Title: "a"}, {ID: 2, Title: "b"}}
	repo.On("List", ctx, int64(7), true, 100, 100).Return(items, 102, nil)

	svc := NewService(repo, nil, logger.Nop())
	resp, err := svc.List(ctx, &models.ListRequest{UserID: 7, UnreadOnly: true, Page: 2, Limit: 500})

	require.NoError(t, err)
	assert.Equal(t, 100, resp.Limit)
	assert.Equal(t, 2, resp.TotalPages)
	assert.Len(t, resp.Items, 2)
}

func TestMarkRead_NotFound(t *testing.T) {
	repo := &repoMock{}
	ctx := context.Background()
	repo.On("MarkRead", ctx, int64(7), int64(3)).Return(notificationRepo.ErrNotificationNotFound)

	svc := NewService(repo, nil, logger.Nop())
	assert.ErrorIs(t, svc.MarkRead(ctx, 7, 3), ErrNotificationNotFound)
}
