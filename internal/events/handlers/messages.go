package handlers

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-InspectionService/internal/domain"
)

const humanDateFormat = "02.01.2006"

// statusMessages текст для клиента по новому статусу
var statusMessages = map[domain.ReservationStatus]string{
	domain.StatusConfirmed:  "Ваша запись подтверждена",
	domain.StatusInProgress: "Техосмотр вашего автомобиля начался",
	domain.StatusCompleted:  "Техосмотр вашего автомобиля завершен",
	domain.StatusCancelled:  "Ваша запись отменена",
	domain.StatusNoShow:     "Запись отмечена как неявка",
}

func statusMessage(status domain.ReservationStatus) string {
	if msg, ok := statusMessages[status]; ok {
		return msg
	}
	return fmt.Sprintf("Статус вашей записи изменен: %s", status)
}

// createdSMS текст SMS о новой записи; ожидающая запись не называется подтвержденной
func createdSMS(center, code, date, start, vehicle string, status domain.ReservationStatus) string {
	if status == domain.StatusPending {
		return fmt.Sprintf("%s: заявка %s на %s в %s принята и ожидает подтверждения. Автомобиль: %s",
			center, code, date, start, vehicle)
	}
	return fmt.Sprintf("%s: запись %s на %s в %s подтверждена. Автомобиль: %s", center, code, date, start, vehicle)
}

// smsStatus о статусе клиенту отправляется SMS
func smsStatus(status domain.ReservationStatus) bool {
	return status == domain.StatusConfirmed || status == domain.StatusCompleted
}

// humanDate YYYY-MM-DD -> ДД.ММ.ГГГГ; при ошибке разбора строка возвращается как есть
func humanDate(s string) string {
	t, err := time.Parse(domain.DateFormat, s)
	if err != nil {
		return s
	}
	return t.Format(humanDateFormat)
}

func formatDiscount(kind domain.DiscountType, value float64, currency string) string {
	if kind == domain.DiscountPercentage {
		return fmt.Sprintf("%g%%", value)
	}
	return fmt.Sprintf("%.2f %s", value, currency)
}

func centerName(c *domain.Center) string {
	if c == nil || c.Name == "" {
		return "центр техосмотра"
	}
	return c.Name
}
