package quick_reservation

import (
	"time"

	"github.com/m04kA/SMC-InspectionService/internal/domain"
	"github.com/m04kA/SMC-InspectionService/pkg/types"
)

// Request быстрая запись: клиент и ТС создаются по ходу, если их еще нет
type Request struct {
	Actor    domain.Actor
	CenterID int64

	// Клиент
	FirstName string
	LastName  string
	Phone     string
	Email     *string // по умолчанию <телефон>@temp.agendact.com

	// ТС
	LicensePlate string
	Brand        *string
	Model        *string
	VehicleType  *string

	// Запись
	CategoryID int64
	Date       time.Time
	StartTime  types.TimeString
	EmployeeID *int64
	Notes      *string
}

// Response созданная запись и признаки создания клиента и ТС
type Response struct {
	Reservation    *domain.Reservation
	ClientID       int64
	VehicleID      int64
	ClientCreated  bool
	VehicleCreated bool
}
