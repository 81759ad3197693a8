package change_status

import (
	"github.com/m04kA/SMC-InspectionService/internal/domain"
	"github.com/m04kA/SMC-InspectionService/internal/events"
)

// Request ручная смена статуса сотрудником
type Request struct {
	CenterID int64
	ID       int64
	Status   string
	Reason   *string
}

// Transition переход записи в новый статус
type Transition struct {
	CenterID      int64
	ReservationID int64
	To            domain.ReservationStatus
	Cause         events.Cause
	HolidayName   *string
	Reason        *string

	// Mutate дополнительные изменения записи в той же транзакции (заметки, результат осмотра)
	Mutate func(res *domain.Reservation) error
}
