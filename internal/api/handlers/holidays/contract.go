package holidays

import (
	"context"

	"github.com/m04kA/SMC-InspectionService/internal/service/holidays/models"
)

type HolidayService interface {
	Create(ctx context.Context, req *models.CreateHolidayRequest) (*models.HolidayResponse, error)
	List(ctx context.Context, req *models.ListHolidaysRequest) ([]*models.HolidayResponse, error)
	Upcoming(ctx context.Context, centerID int64, limit int) ([]*models.HolidayResponse, error)
	Toggle(ctx context.Context, centerID, id int64) (*models.HolidayResponse, error)
	Delete(ctx context.Context, centerID, id int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
