package create_reservation

import (
	"time"

	"github.com/m04kA/SMC-InspectionService/internal/domain"
	"github.com/m04kA/SMC-InspectionService/pkg/types"
)

// Request модель запроса на создание записи
type Request struct {
	Actor      domain.Actor
	CenterID   int64
	ClientID   int64
	VehicleID  int64
	CategoryID int64
	Date       time.Time        // Дата записи (без времени)
	StartTime  types.TimeString // Время начала, например "09:00"
	EmployeeID *int64
	Notes      *string
	Status     *string // pending или confirmed; для клиента всегда pending
}
