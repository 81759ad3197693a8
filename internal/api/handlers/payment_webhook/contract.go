package payment_webhook

import (
	"context"

	"github.com/m04kA/SMC-InspectionService/internal/service/payments"
)

type PaymentService interface {
	Complete(ctx context.Context, externalID string) (*payments.CompleteResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
