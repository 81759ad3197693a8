package quick_reservation

import (
	"fmt"
	"strings"

	"github.com/m04kA/SMC-InspectionService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.CenterID <= 0 || req.CategoryID <= 0 {
		return fmt.Errorf("%w: center and category are required", ErrInvalidInput)
	}
	if strings.TrimSpace(req.FirstName) == "" {
		return fmt.Errorf("%w: firstName is required", ErrInvalidInput)
	}
	if digitsOnly(req.Phone) == "" {
		return fmt.Errorf("%w: phone is required", ErrInvalidInput)
	}
	if strings.TrimSpace(req.LicensePlate) == "" {
		return fmt.Errorf("%w: licensePlate is required", ErrInvalidInput)
	}
	if req.Email != nil && !strings.Contains(*req.Email, "@") {
		return fmt.Errorf("%w: invalid email", ErrInvalidInput)
	}
	if req.VehicleType != nil {
		switch domain.VehicleType(*req.VehicleType) {
		case domain.VehicleTypeCar, domain.VehicleTypeMotorcycle, domain.VehicleTypeTruck, domain.VehicleTypeVan:
		default:
			return fmt.Errorf("%w: unknown vehicle type %q", ErrInvalidInput, *req.VehicleType)
		}
	}
	return nil
}

// contactEmail email клиента; без email подставляется технический адрес по телефону
func contactEmail(req *Request) string {
	if req.Email != nil && strings.TrimSpace(*req.Email) != "" {
		return strings.TrimSpace(*req.Email)
	}
	return digitsOnly(req.Phone) + "@" + domain.QuickClientEmailHost
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
