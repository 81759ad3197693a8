package domain

import (
	"strings"
	"time"
)

// VehicleType тип транспортного средства
type VehicleType string

const (
	VehicleTypeCar        VehicleType = "car"
	VehicleTypeMotorcycle VehicleType = "motorcycle"
	VehicleTypeTruck      VehicleType = "truck"
	VehicleTypeVan        VehicleType = "van"
)

// Vehicle транспортное средство клиента
type Vehicle struct {
	ID                   int64
	CenterID             int64
	ClientID             int64
	LicensePlate         string
	Brand                *string
	Model                *string
	Type                 VehicleType
	Mileage              *int
	LastInspectionDate   *time.Time
	LastInspectionResult *InspectionResult
	NextInspectionDue    *time.Time
	DeletedAt            *time.Time
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// Description денормализованное описание для уведомлений: "Renault Clio (AB-123-CD)"
func (v *Vehicle) Description() string {
	parts := make([]string, 0, 2)
	if v.Brand != nil && *v.Brand != "" {
		parts = append(parts, *v.Brand)
	}
	if v.Model != nil && *v.Model != "" {
		parts = append(parts, *v.Model)
	}
	if len(parts) == 0 {
		return v.LicensePlate
	}
	return strings.Join(parts, " ") + " (" + v.LicensePlate + ")"
}

// NormalizePlate приводит госномер к каноническому виду для поиска
func NormalizePlate(plate string) string {
	return strings.ToUpper(strings.TrimSpace(plate))
}
