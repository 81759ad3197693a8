package holiday_cascade

import (
	"context"
	"time"

	"github.com/m04kA/SMC-InspectionService/internal/domain"
	"github.com/m04kA/SMC-InspectionService/internal/usecase/change_status"
)

// ReservationRepository интерфейс репозитория записей
type ReservationRepository interface {
	ListCancellableInRange(ctx context.Context, centerID int64, from, to time.Time) ([]*domain.Reservation, error)
}

// StatusChanger переходы статусов записи
type StatusChanger interface {
	Apply(ctx context.Context, t *change_status.Transition) (*domain.Reservation, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
