package promotions

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-InspectionService/internal/domain"
	promotionRepo "github.com/m04kA/SMC-InspectionService/internal/infra/storage/promotion"
	"github.com/m04kA/SMC-InspectionService/internal/service/promotions/models"
	"github.com/m04kA/SMC-InspectionService/pkg/logger"
	"github.com/m04kA/SMC-InspectionService/pkg/ptr"
)

type promotionRepoMock struct {
	mock.Mock
}

func (m *promotionRepoMock) Create(ctx context.Context, p *domain.Promotion) (*domain.Promotion, error) {
	args := m.Called(ctx, p)
	p.ID = 21
	return p, args.Error(0)
}

func (m *promotionRepoMock) GetByCode(ctx context.Context, centerID int64, code string) (*domain.Promotion, error) {
	args := m.Called(ctx, centerID, code)
	p, _ := args.Get(0).(*domain.Promotion)
	return p, args.Error(1)
}

func (m *promotionRepoMock) ExistsByCode(ctx context.Context, centerID int64, code string) (bool, error) {
	args := m.Called(ctx, centerID, code)
	return args.Bool(0), args.Error(1)
}

func (m *promotionRepoMock) List(ctx context.Context, centerID int64, activeOnly bool) ([]*domain.Promotion, error) {
	args := m.Called(ctx, centerID, activeOnly)
	items, _ := args.Get(0).([]*domain.Promotion)
	return items, args.Error(1)
}

type outboxMock struct {
	mock.Mock
}

func (m *outboxMock) Add(ctx context.Context, event *domain.Event) error {
	return m.Called(ctx, event).Error(0)
}

type notifierStub struct{ woken int }

func (n *notifierStub) Wake() { n.woken++ }

type txStub struct{}

func (txStub) Do(ctx context.Context, fn func(ctx context.Context) error) error { return fn(ctx) }

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

var now = time.Date(2026, 4, 15, 12, 0, 0, 0, time.UTC)

func newService(repo *promotionRepoMock, outbox *outboxMock, notifier *notifierStub) *Service {
	svc := NewService(repo, outbox, notifier, txStub{}, logger.Nop())
	svc.timeProvider = fixedClock{now: now}
	return svc
}

func validRequest() *models.CreatePromotionRequest {
	return &models.CreatePromotionRequest{
		CenterID:      1,
		Name:          "Printemps",
		Code:          "SPRING15",
		DiscountType:  domain.DiscountPercentage,
		DiscountValue: 15,
		StartDate:     time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
		EndDate:       time.Date(2026, 4, 30, 0, 0, 0, 0, time.UTC),
	}
}

func TestCreate_EmitsEvent(t *testing.T) {
	repo, outbox, notifier := &promotionRepoMock{}, &outboxMock{}, &notifierStub{}
	ctx := context.Background()
	repo.On("ExistsByCode", ctx, int64(1), "SPRING15").Return(false, nil)
	repo.On("Create", ctx, mock.Anything).Return(nil)
	outbox.On("Add", ctx, mock.MatchedBy(func(e *domain.Event) bool {
		return e.Name == domain.EventPromotionCreated
	})).Return(nil)

	resp, err := newService(repo, outbox, notifier).Create(ctx, validRequest())

	require.NoError(t, err)
	assert.Equal(t, int64(21), resp.ID)
	assert.Equal(t, 1, notifier.woken)
	outbox.AssertExpectations(t)
}

func TestCreate_DuplicateCode(t *testing.T) {
	repo, outbox, notifier := &promotionRepoMock{}, &outboxMock{}, &notifierStub{}
	ctx := context.Background()
	repo.On("ExistsByCode", ctx, int64(1), "SPRING15").Return(true, nil)

	_, err := newService(repo, outbox, notifier).Create(ctx, validRequest())

	assert.ErrorIs(t, err, ErrDuplicateCode)
	assert.Zero(t, notifier.woken)
	outbox.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
}

func TestCreate_DuplicateCodeRace(t *testing.T) {
	repo, outbox, notifier := &promotionRepoMock{}, &outboxMock{}, &notifierStub{}
	ctx := context.Background()
	repo.On("ExistsByCode", ctx, int64(1), "SPRING15").Return(false, nil)
	repo.On("Create", ctx, mock.Anything).Return(promotionRepo.ErrDuplicateCode)

	_, err := newService(repo, outbox, notifier).Create(ctx, validRequest())

	assert.ErrorIs(t, err, ErrDuplicateCode)
}

func TestCreate_Validation(t *testing.T) {
	cases := map[string]func(r *models.CreatePromotionRequest){
		"percentage over 100": func(r *models.CreatePromotionRequest) { r.DiscountValue = 120 },
		"unknown type":        func(r *models.CreatePromotionRequest) { r.DiscountType = "bogo" },
		"inverted window":     func(r *models.CreatePromotionRequest) { r.EndDate = r.StartDate.AddDate(0, 0, -1) },
		"code with spaces":    func(r *models.CreatePromotionRequest) { r.Code = "SPRING 15" },
	}

	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			req := validRequest()
			mutate(req)
			_, err := newService(&promotionRepoMock{}, &outboxMock{}, &notifierStub{}).Create(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestValidateCode(t *testing.T) {
	running := &domain.Promotion{
		ID:            3,
		Code:          "SPRING15",
		DiscountType:  domain.DiscountPercentage,
		DiscountValue: 15,
		StartDate:     time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
		EndDate:       time.Date(2026, 4, 30, 0, 0, 0, 0, time.UTC),
		IsActive:      true,
	}
	expired := *running
	expired.EndDate = time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC)
	exhausted := *running
	exhausted.UsageLimit = ptr.Ptr(5)
	exhausted.UsedCount = 5

	ctx := context.Background()

	t.Run("computes discount", func(t *testing.T) {
		repo := &promotionRepoMock{}
		repo.On("GetByCode", ctx, int64(1), "spring15").Return(running, nil)

		resp, err := newService(repo, &outboxMock{}, &notifierStub{}).ValidateCode(ctx, &models.ValidateCodeRequest{
			CenterID: 1, Code: "spring15", Amount: ptr.Ptr(80.0),
		})

		require.NoError(t, err)
		assert.True(t, resp.Valid)
		assert.InDelta(t, 12.0, resp.DiscountAmount, 0.001)
		assert.InDelta(t, 68.0, *resp.FinalAmount, 0.001)
	})

	t.Run("expired", func(t *testing.T) {
		repo := &promotionRepoMock{}
		repo.On("GetByCode", ctx, int64(1), "SPRING15").Return(&expired, nil)
		_, err := newService(repo, &outboxMock{}, &notifierStub{}).ValidateCode(ctx, &models.ValidateCodeRequest{CenterID: 1, Code: "SPRING15"})
		assert.ErrorIs(t, err, ErrNotRunning)
	})

	t.Run("exhausted", func(t *testing.T) {
		repo := &promotionRepoMock{}
		repo.On("GetByCode", ctx, int64(1), "SPRING15").Return(&exhausted, nil)
		_, err := newService(repo, &outboxMock{}, &notifierStub{}).ValidateCode(ctx, &models.ValidateCodeRequest{CenterID: 1, Code: "SPRING15"})
		assert.ErrorIs(t, err, ErrUsageLimitReached)
	})

	t.Run("unknown", func(t *testing.T) {
		repo := &promotionRepoMock{}
		repo.On("GetByCode", ctx, int64(1), "NOPE").Return(nil, promotionRepo.ErrPromotionNotFound)
		_, err := newService(repo, &outboxMock{}, &notifierStub{}).ValidateCode(ctx, &models.ValidateCodeRequest{CenterID: 1, Code: "NOPE"})
		assert.ErrorIs(t, err, ErrInvalidCode)
	})
}
