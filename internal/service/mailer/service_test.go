package mailer

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-InspectionService/internal/integrations/emailgateway"
	"github.com/m04kA/SMC-InspectionService/pkg/logger"
)

type gatewayMock struct {
	mock.Mock
}

func (m *gatewayMock) Send(ctx context.Context, msg emailgateway.Message) error {
	return m.Called(ctx, msg).Error(0)
}

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

func newService(t *testing.T, gw Gateway, enabled bool) *Service {
	t.Helper()
	svc, err := NewService(gw, enabled, nil, logger.Nop())
	require.NoError(t, err)
	svc.timeProvider = fixedClock{now: time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)}
	return svc
}

func TestSendReservationConfirmation_RendersDetails(t *testing.T) {
	gw := &gatewayMock{}
	var sent emailgateway.Message
	gw.On("Send", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		sent = args.Get(1).(emailgateway.Message)
	}).Return(nil)

	ok := newService(t, gw, true).SendReservationConfirmation(context.Background(), "anna@example.com", ReservationData{
		ClientName:  "Anna <Petrova>",
		CenterName:  "CT Lyon",
		Date:        "2026-05-12",
		Time:        "09:00",
		VehicleInfo: "Renault Clio (AB-123-CD)",
		BookingCode: "RES-1A2B3C4D",
	})

	require.True(t, ok)
	assert.Equal(t, "anna@example.com", sent.To)
	assert.Contains(t, sent.Subject, "CT Lyon")
	assert.Contains(t, sent.HTML, "RES-1A2B3C4D")
	assert.Contains(t, sent.HTML, "Anna &lt;Petrova&gt;")
	assert.Contains(t, sent.HTML, "2026 CT Lyon")
}

func TestSendHolidayNotification_RangeAndCancellation(t *testing.T) {
	gw := &gatewayMock{}
	var sent emailgateway.Message
	gw.On("Send", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		sent = args.Get(1).(emailgateway.Message)
	}).Return(nil)

	ok := newService(t, gw, true).SendHolidayNotification(context.Background(), "anna@example.com", HolidayData{
		ClientName:  "Anna",
		CenterName:  "CT Lyon",
		HolidayName: "Inventaire",
		Date:        "2026-05-12",
		EndDate:     "2026-05-14",
		Cancelled:   true,
	})

	require.True(t, ok)
	assert.Contains(t, sent.HTML, "с 2026-05-12 по 2026-05-14")
	assert.Contains(t, sent.HTML, "отменена")
}

func TestSend_GatewayErrorReturnsFalse(t *testing.T) {
	gw := &gatewayMock{}
	gw.On("Send", mock.Anything, mock.Anything).Return(errors.New("503"))

	ok := newService(t, gw, true).SendPromotion(context.Background(), "anna@example.com", PromotionData{PromoName: "Printemps"})
	assert.False(t, ok)
}

func TestSend_DisabledOrNoRecipient(t *testing.T) {
	gw := &gatewayMock{}

	assert.False(t, newService(t, gw, false).SendPaymentReceipt(context.Background(), "anna@example.com", PaymentData{}))
	assert.False(t, newService(t, gw, true).SendPaymentReceipt(context.Background(), "", PaymentData{}))
	gw.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
}

func TestSendReservationConfirmation_PendingWording(t *testing.T) {
	gw := &gatewayMock{}
	var sent emailgateway.Message
	gw.On("Send", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		sent = args.Get(1).(emailgateway.Message)
	}).Return(nil)

	ok := newService(t, gw, true).SendReservationConfirmation(context.Background(), "anna@example.com", ReservationData{
		ClientName: "Anna",
		CenterName: "CT Lyon",
		Date:       "2026-05-12",
		Time:       "09:00",
		Pending:    true,
	})

	require.True(t, ok)
	assert.Contains(t, sent.Subject, "Заявка на запись принята")
	assert.Contains(t, sent.HTML, "ожидает подтверждения")
	assert.NotContains(t, sent.HTML, "запись на техосмотр подтверждена")
}
