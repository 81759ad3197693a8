package notifications

import (
	"context"

	"github.com/m04kA/SMC-InspectionService/internal/service/notifications/models"
)

type NotificationService interface {
	List(ctx context.Context, req *models.ListRequest) (*models.ListResponse, error)
	UnreadCount(ctx context.Context, userID int64) (int, error)
	MarkRead(ctx context.Context, userID, id int64) error
	MarkAllRead(ctx context.Context, userID int64) (int64, error)
	Delete(ctx context.Context, userID, id int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
