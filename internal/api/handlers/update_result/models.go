package update_result

import (
	"fmt"

	"github.com/m04kA/SMC-InspectionService/internal/api/handlers"
	"github.com/m04kA/SMC-InspectionService/internal/domain"
	updateResult "github.com/m04kA/SMC-InspectionService/internal/usecase/update_result"
)

// UpdateResultRequest HTTP request model
type UpdateResultRequest struct {
	Result string         `json:"result"`
	Report *ReportRequest `json:"report,omitempty"`
	Notes  *string        `json:"notes,omitempty"`
}

// ReportRequest протокол осмотра
type ReportRequest struct {
	Defects         []string `json:"defects,omitempty"`
	Recommendations []string `json:"recommendations,omitempty"`
	ValidUntil      *string  `json:"validUntil,omitempty"` // "2027-05-12"
	Mileage         *int     `json:"mileage,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *UpdateResultRequest) ToUseCaseRequest(centerID, id int64) (*updateResult.Request, error) {
	req := &updateResult.Request{
		CenterID: centerID,
		ID:       id,
		Result:   r.Result,
		Notes:    r.Notes,
	}

	if r.Report != nil {
		report := &domain.InspectionReport{
			Defects:         r.Report.Defects,
			Recommendations: r.Report.Recommendations,
			Mileage:         r.Report.Mileage,
		}
		if r.Report.ValidUntil != nil {
			validUntil, err := handlers.ParseDate(*r.Report.ValidUntil)
			if err != nil {
				return nil, fmt.Errorf("invalid validUntil %q: %w", *r.Report.ValidUntil, err)
			}
			report.ValidUntil = &validUntil
		}
		req.Report = report
	}

	return req, nil
}
