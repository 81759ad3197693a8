package mailer

// ReservationData письмо о записи (подтверждение, напоминание)
type ReservationData struct {
	ClientName  string
	CenterName  string
	Date        string
	Time        string
	VehicleInfo string
	BookingCode string
	// Pending запись ждет подтверждения центром
	Pending bool
}

// StatusData письмо о смене статуса записи
type StatusData struct {
	ClientName    string
	CenterName    string
	Status        string
	StatusMessage string
	BookingCode   string
}

// PaymentData квитанция об оплате
type PaymentData struct {
	ClientName    string
	CenterName    string
	Amount        float64
	Currency      string
	Date          string
	InvoiceNumber string
}

// PromotionData рассылка об акции
type PromotionData struct {
	ClientName string
	CenterName string
	PromoName  string
	PromoCode  string
	Discount   string // "15%" или "20.00 EUR"
	StartDate  string
	EndDate    string
}

// HolidayData уведомление о закрытии центра
type HolidayData struct {
	ClientName  string
	CenterName  string
	HolidayName string
	Date        string
	EndDate     string
	Cancelled   bool // запись клиента отменена
}
