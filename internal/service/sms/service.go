package sms

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-InspectionService/internal/domain"
	"github.com/m04kA/SMC-InspectionService/internal/integrations/smsgateway"
)

const channelSMS = "sms"

// Config параметры отправки
type Config struct {
	Enabled     bool
	DefaultFrom string
	Quota       int // квота по умолчанию для нового месяца
}

// UsageResponse использование SMS центром за месяц
type UsageResponse struct {
	Month     string `json:"month"`
	SentCount int    `json:"sentCount"`
	Quota     int    `json:"quota"`
	Remaining int    `json:"remaining"`
}

// Service отправка SMS с учетом месячной квоты центра
type Service struct {
	usage        UsageRepository
	centers      CenterReader
	gateway      Gateway
	cfg          Config
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает SMS-сервис; metrics может быть nil
func NewService(usage UsageRepository, centers CenterReader, gateway Gateway, cfg Config, metrics Metrics, logger Logger) *Service {
	if cfg.Quota <= 0 {
		cfg.Quota = domain.DefaultSMSQuota
	}
	return &Service{
		usage:        usage,
		centers:      centers,
		gateway:      gateway,
		cfg:          cfg,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// SendSMS отправляет SMS от имени центра
// Возвращает false без обращения к шлюзу, если квота месяца исчерпана; ошибки шлюза логируются
func (s *Service) SendSMS(ctx context.Context, to, message string, centerID int64) bool {
	if !s.cfg.Enabled {
		s.logger.Info("SendSMS: sms disabled, skipping message to %s", to)
		s.observe("disabled")
		return false
	}
	if to == "" {
		s.observe("skipped")
		return false
	}

	month := s.timeProvider.Now()
	usage, err := s.usage.Get(ctx, centerID, month, s.cfg.Quota)
	if err != nil {
		s.logger.Error("SendSMS: failed to read usage for center=%d: %v", centerID, err)
		s.observe("failed")
		return false
	}
	if usage.Remaining() == 0 {
		s.logger.Warn("SendSMS: quota exhausted for center=%d (%d/%d)", centerID, usage.SentCount, usage.Quota)
		s.observe("quota_exceeded")
		return false
	}

	msg := smsgateway.Message{To: to, Text: message, From: s.cfg.DefaultFrom}
	center, err := s.centers.GetByID(ctx, centerID)
	if err != nil {
		s.logger.Error("SendSMS: failed to load center=%d: %v", centerID, err)
		s.observe("failed")
		return false
	}
	if center.SMSSenderName != nil && *center.SMSSenderName != "" {
		msg.From = *center.SMSSenderName
	}
	if center.SMSAPIKey != nil {
		msg.APIKey = *center.SMSAPIKey
	}

	if err := s.gateway.Send(ctx, msg); err != nil {
		s.logger.Error("SendSMS: gateway error for center=%d to=%s: %v", centerID, to, err)
		s.observe("failed")
		return false
	}

	if err := s.usage.Increment(ctx, centerID, month, s.cfg.Quota); err != nil {
		// сообщение уже отправлено, результат не меняем
		s.logger.Error("SendSMS: failed to increment usage for center=%d: %v", centerID, err)
	}

	s.observe("sent")
	s.logger.Info("SendSMS: message sent for center=%d to=%s", centerID, to)
	return true
}

// GetUsage использование за месяц; month в формате YYYY-MM, пустая строка - текущий месяц
func (s *Service) GetUsage(ctx context.Context, centerID int64, month string) (*UsageResponse, error) {
	at := s.timeProvider.Now()
	if month != "" {
		parsed, err := time.Parse(domain.MonthFormat, month)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidMonth, month)
		}
		at = parsed
	}

	usage, err := s.usage.Get(ctx, centerID, at, s.cfg.Quota)
	if err != nil {
		s.logger.Error("GetUsage: repository error for center=%d: %v", centerID, err)
		return nil, fmt.Errorf("%w: GetUsage - repository error: %v", ErrInternal, err)
	}

	return &UsageResponse{
		Month:     usage.Month.Format(domain.MonthFormat),
		SentCount: usage.SentCount,
		Quota:     usage.Quota,
		Remaining: usage.Remaining(),
	}, nil
}

func (s *Service) observe(outcome string) {
	if s.metrics != nil {
		s.metrics.IncNotification(channelSMS, outcome)
	}
}
