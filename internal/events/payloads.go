package events

import "github.com/m04kA/SMC-InspectionService/internal/domain"

// Cause причина смены статуса
type Cause string

const (
	CauseManual  Cause = "manual"
	CauseHoliday Cause = "holiday"
	CausePayment Cause = "payment"
)

// ReservationCreated запись создана
type ReservationCreated struct {
	ReservationID int64   `json:"reservationId"`
	BookingCode   string  `json:"bookingCode"`
	ClientID      int64   `json:"clientId"`
	VehicleID     int64   `json:"vehicleId"`
	CategoryID    int64   `json:"categoryId"`
	EmployeeID    *int64  `json:"employeeId,omitempty"`
	Date          string  `json:"date"`
	StartTime     string  `json:"startTime"`
	EndTime       string  `json:"endTime"`
	Status        string  `json:"status"`
	Notes         *string `json:"notes,omitempty"`
}

// ReservationStatusChanged статус записи изменен
type ReservationStatusChanged struct {
	ReservationID int64                    `json:"reservationId"`
	BookingCode   string                   `json:"bookingCode"`
	ClientID      int64                    `json:"clientId"`
	OldStatus     domain.ReservationStatus `json:"oldStatus"`
	NewStatus     domain.ReservationStatus `json:"newStatus"`
	Cause         Cause                    `json:"cause"`
	HolidayName   *string                  `json:"holidayName,omitempty"`
	Reason        *string                  `json:"reason,omitempty"`
}

// PaymentCompleted платеж завершен
type PaymentCompleted struct {
	PaymentID     int64   `json:"paymentId"`
	ReservationID *int64  `json:"reservationId,omitempty"`
	ClientID      int64   `json:"clientId"`
	Amount        float64 `json:"amount"`
	Currency      string  `json:"currency"`
	ExternalID    string  `json:"externalId"`
	PaidAt        string  `json:"paidAt"`
}

// HolidayCreated добавлен выходной
type HolidayCreated struct {
	HolidayID int64   `json:"holidayId"`
	Name      string  `json:"name"`
	StartDate string  `json:"startDate"`
	EndDate   *string `json:"endDate,omitempty"`
}

// PromotionCreated создана акция
type PromotionCreated struct {
	PromotionID   int64               `json:"promotionId"`
	Name          string              `json:"name"`
	Code          string              `json:"code"`
	DiscountType  domain.DiscountType `json:"discountType"`
	DiscountValue float64             `json:"discountValue"`
	StartDate     string              `json:"startDate"`
	EndDate       string              `json:"endDate"`
}
