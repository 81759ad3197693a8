package update_result

import "github.com/m04kA/SMC-InspectionService/internal/domain"

// Request результат техосмотра
type Request struct {
	CenterID int64
	ID       int64
	Result   string
	Report   *domain.InspectionReport
	Notes    *string
}
