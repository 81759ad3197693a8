package handlers

import (
	"context"

	"github.com/m04kA/SMC-InspectionService/internal/domain"
	"github.com/m04kA/SMC-InspectionService/internal/service/mailer"
	"github.com/m04kA/SMC-InspectionService/internal/usecase/change_status"
	"github.com/m04kA/SMC-InspectionService/internal/usecase/holiday_cascade"
)

// ReservationReader записи с данными клиента и ТС
type ReservationReader interface {
	GetDetails(ctx context.Context, centerID, id int64) (*domain.ReservationDetails, error)
}

// ClientRepository клиенты центра
type ClientRepository interface {
	GetByID(ctx context.Context, centerID, id int64) (*domain.Client, error)
	ListRecentlyActive(ctx context.Context, centerID int64, limit int) ([]*domain.Client, error)
}

// CenterReader источник центров
type CenterReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Center, error)
}

// InAppNotifier уведомления в личном кабинете
type InAppNotifier interface {
	Create(ctx context.Context, userID int64, title, message string, kind domain.NotificationType, data any) error
}

// SMSSender отправка SMS с учетом квоты центра
type SMSSender interface {
	SendSMS(ctx context.Context, to, message string, centerID int64) bool
}

// Mailer отправка писем клиентам
type Mailer interface {
	SendReservationConfirmation(ctx context.Context, to string, data mailer.ReservationData) bool
	SendStatusUpdate(ctx context.Context, to string, data mailer.StatusData) bool
	SendPaymentReceipt(ctx context.Context, to string, data mailer.PaymentData) bool
	SendPromotion(ctx context.Context, to string, data mailer.PromotionData) bool
	SendHolidayNotification(ctx context.Context, to string, data mailer.HolidayData) bool
}

// StatusChanger переходы статусов записи
type StatusChanger interface {
	Apply(ctx context.Context, t *change_status.Transition) (*domain.Reservation, error)
}

// HolidayCascader каскадная отмена записей на выходной
type HolidayCascader interface {
	Execute(ctx context.Context, req *holiday_cascade.Request) (*holiday_cascade.Result, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
