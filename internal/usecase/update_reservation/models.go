package update_reservation

import (
	"time"

	"github.com/m04kA/SMC-InspectionService/pkg/types"
)

// Request частичное обновление записи; nil означает "не менять"
type Request struct {
	CenterID   int64
	ID         int64
	Date       *time.Time
	StartTime  *types.TimeString
	CategoryID *int64
	EmployeeID *int64
	Notes      *string
}

// reschedules запрос меняет дату, время или категорию
func (r *Request) reschedules() bool {
	return r.Date != nil || r.StartTime != nil || r.CategoryID != nil
}
