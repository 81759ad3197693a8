package get_day_schedule

import (
	"context"
	"time"

	"github.com/m04kA/SMC-InspectionService/internal/domain"
)

// ReservationRepository интерфейс репозитория записей
type ReservationRepository interface {
	ListByDate(ctx context.Context, centerID int64, date time.Time) ([]*domain.ReservationDetails, error)
}

// HolidayRepository интерфейс репозитория выходных
type HolidayRepository interface {
	FindActiveCovering(ctx context.Context, centerID int64, date time.Time) (*domain.Holiday, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
