// Package mailer письма клиентам центра по встроенным HTML-шаблонам
package mailer

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"

	"github.com/m04kA/SMC-InspectionService/internal/integrations/emailgateway"
)

const channelEmail = "email"

//go:embed templates/*.html
var templateFiles embed.FS

// Service отправка писем
// Все Send-методы возвращают false при ошибке; ошибки логируются и наружу не поднимаются
type Service struct {
	gateway      Gateway
	enabled      bool
	tmpl         *template.Template
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает почтовый сервис; metrics может быть nil
func NewService(gateway Gateway, enabled bool, metrics Metrics, logger Logger) (*Service, error) {
	s := &Service{
		gateway:      gateway,
		enabled:      enabled,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}

	tmpl, err := template.New("mail").
		Funcs(template.FuncMap{"year": func() int { return s.timeProvider.Now().Year() }}).
		ParseFS(templateFiles, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParseTemplates, err)
	}
	s.tmpl = tmpl

	return s, nil
}

// SendReservationConfirmation подтверждение записи или приема заявки, если она ждет подтверждения
func (s *Service) SendReservationConfirmation(ctx context.Context, to string, data ReservationData) bool {
	subject, title := "Подтверждение записи", "Запись подтверждена"
	if data.Pending {
		subject, title = "Заявка на запись принята", "Заявка ожидает подтверждения"
	}
	return s.send(ctx, to, fmt.Sprintf("%s | %s", subject, data.CenterName), "confirmation", struct {
		Title string
		ReservationData
	}{title, data})
}

// SendReservationReminder напоминание о записи на завтра
func (s *Service) SendReservationReminder(ctx context.Context, to string, data ReservationData) bool {
	subject := fmt.Sprintf("Напоминание: техосмотр завтра | %s", data.CenterName)
	return s.send(ctx, to, subject, "reminder", struct {
		Title string
		ReservationData
	}{"Напоминание о записи", data})
}

// SendStatusUpdate смена статуса записи
func (s *Service) SendStatusUpdate(ctx context.Context, to string, data StatusData) bool {
	subject := fmt.Sprintf("%s | %s", data.StatusMessage, data.CenterName)
	return s.send(ctx, to, subject, "status", struct {
		Title string
		StatusData
	}{"Статус записи изменен", data})
}

// SendPaymentReceipt квитанция об оплате
func (s *Service) SendPaymentReceipt(ctx context.Context, to string, data PaymentData) bool {
	subject := fmt.Sprintf("Квитанция об оплате | %s", data.CenterName)
	return s.send(ctx, to, subject, "payment", struct {
		Title string
		PaymentData
	}{"Оплата получена", data})
}

// SendPromotion рассылка об акции
func (s *Service) SendPromotion(ctx context.Context, to string, data PromotionData) bool {
	subject := fmt.Sprintf("%s | %s", data.PromoName, data.CenterName)
	return s.send(ctx, to, subject, "promotion", struct {
		Title string
		PromotionData
	}{"Специальное предложение", data})
}

// SendHolidayNotification уведомление о закрытии центра
func (s *Service) SendHolidayNotification(ctx context.Context, to string, data HolidayData) bool {
	subject := fmt.Sprintf("Центр закрыт: %s | %s", data.HolidayName, data.CenterName)
	return s.send(ctx, to, subject, "holiday", struct {
		Title string
		HolidayData
	}{"Центр закрыт", data})
}

func (s *Service) send(ctx context.Context, to, subject, name string, data any) bool {
	if !s.enabled {
		s.logger.Info("send: email disabled, skipping %q to %s", name, to)
		s.observe("disabled")
		return false
	}
	if to == "" {
		s.observe("skipped")
		return false
	}

	var body bytes.Buffer
	if err := s.tmpl.ExecuteTemplate(&body, name, data); err != nil {
		s.logger.Error("send: failed to render %q: %v", name, err)
		s.observe("failed")
		return false
	}

	if err := s.gateway.Send(ctx, emailgateway.Message{To: to, Subject: subject, HTML: body.String()}); err != nil {
		s.logger.Error("send: gateway error for %q to %s: %v", name, to, err)
		s.observe("failed")
		return false
	}

	s.observe("sent")
	s.logger.Info("send: email %q sent to %s", name, to)
	return true
}

func (s *Service) observe(outcome string) {
	if s.metrics != nil {
		s.metrics.IncNotification(channelEmail, outcome)
	}
}
