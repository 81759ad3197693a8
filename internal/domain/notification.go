package domain

import (
	"encoding/json"
	"time"
)

// NotificationType тип внутреннего уведомления
type NotificationType string

const (
	NotificationReservation NotificationType = "reservation"
	NotificationPayment     NotificationType = "payment"
	NotificationPromotion   NotificationType = "promotion"
	NotificationHoliday     NotificationType = "holiday"
	NotificationSystem      NotificationType = "system"
)

// Notification уведомление в личном кабинете
type Notification struct {
	ID        int64
	UserID    int64
	Title     string
	Message   string
	Type      NotificationType
	Data      json.RawMessage
	IsRead    bool
	CreatedAt time.Time
}

// SMSUsage использование SMS центром за месяц
type SMSUsage struct {
	CenterID  int64
	Month     time.Time // первое число месяца
	SentCount int
	Quota     int
}

// Remaining оставшиеся SMS в квоте
func (u SMSUsage) Remaining() int {
	if u.SentCount >= u.Quota {
		return 0
	}
	return u.Quota - u.SentCount
}
