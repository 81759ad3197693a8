package list_reservations

import (
	"net/http"
	"strings"

	"github.com/m04kA/SMC-InspectionService/internal/api/handlers"
	"github.com/m04kA/SMC-InspectionService/internal/api/middleware"
	"github.com/m04kA/SMC-InspectionService/internal/service/reservations/models"
)

// ToServiceRequest собирает фильтр из query параметров
func ToServiceRequest(r *http.Request, p middleware.Principal) (*models.ListReservationsRequest, error) {
	req := &models.ListReservationsRequest{
		Actor:    p.Actor(),
		CenterID: p.CenterID,
		Status:   handlers.QueryString(r, "status"),
		Result:   handlers.QueryString(r, "result"),
		Search:   strings.TrimSpace(r.URL.Query().Get("search")),
	}

	var err error
	if req.DateFrom, err = handlers.QueryDate(r, "dateFrom"); err != nil {
		return nil, err
	}
	if req.DateTo, err = handlers.QueryDate(r, "dateTo"); err != nil {
		return nil, err
	}
	if req.ClientID, err = handlers.QueryInt64(r, "clientId"); err != nil {
		return nil, err
	}
	if req.EmployeeID, err = handlers.QueryInt64(r, "employeeId"); err != nil {
		return nil, err
	}
	if req.CategoryID, err = handlers.QueryInt64(r, "categoryId"); err != nil {
		return nil, err
	}
	if req.Page, err = handlers.QueryInt(r, "page", 1); err != nil {
		return nil, err
	}
	if req.Limit, err = handlers.QueryInt(r, "limit", 0); err != nil {
		return nil, err
	}

	return req, nil
}
