package sms_usage

import (
	"context"

	"github.com/m04kA/SMC-InspectionService/internal/service/sms"
)

type SMSService interface {
	GetUsage(ctx context.Context, centerID int64, month string) (*sms.UsageResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
