// Package reminder напоминания клиентам о записях на завтра
package reminder

import (
	"context"
	"time"

	"github.com/m04kA/SMC-InspectionService/internal/domain"
	"github.com/m04kA/SMC-InspectionService/internal/service/mailer"
)

const (
	defaultInterval  = time.Hour
	defaultBatchSize = 100
)

// ReservationRepository записи, ожидающие напоминания
type ReservationRepository interface {
	ListForReminder(ctx context.Context, date time.Time, limit int) ([]*domain.ReservationDetails, error)
	MarkReminderSent(ctx context.Context, id int64, at time.Time) error
}

// CenterReader источник центров
type CenterReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Center, error)
}

// Mailer отправка напоминаний
type Mailer interface {
	SendReservationReminder(ctx context.Context, to string, data mailer.ReservationData) bool
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

// Worker раз в interval отправляет письма по подтвержденным записям на завтра
// Каждая запись получает не больше одного напоминания (reminder_sent_at)
type Worker struct {
	repo         ReservationRepository
	centers      CenterReader
	mailer       Mailer
	interval     time.Duration
	batchSize    int
	timeProvider TimeProvider
	logger       Logger
}

// New создает воркер напоминаний
func New(repo ReservationRepository, centers CenterReader, m Mailer, interval time.Duration, logger Logger) *Worker {
	if interval <= 0 {
		interval = defaultInterval
	}
	return &Worker{
		repo:         repo,
		centers:      centers,
		mailer:       m,
		interval:     interval,
		batchSize:    defaultBatchSize,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Run работает до отмены контекста
func (w *Worker) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.logger.Info("Reminder: started, interval=%s", w.interval)
	for {
		if _, err := w.RunOnce(ctx); err != nil {
			w.logger.Error("Reminder: run failed: %v", err)
		}
		select {
		case <-ctx.Done():
			w.logger.Info("Reminder: stopped")
			return nil
		case <-ticker.C:
		}
	}
}

// RunOnce обрабатывает записи на завтра пачками и возвращает число отправленных писем
func (w *Worker) RunOnce(ctx context.Context) (int, error) {
	tomorrow := domain.DateOnly(w.timeProvider.Now()).AddDate(0, 0, 1)
	sent := 0

	for ctx.Err() == nil {
		batch, err := w.repo.ListForReminder(ctx, tomorrow, w.batchSize)
		if err != nil {
			return sent, err
		}
		marked := 0
		for _, res := range batch {
			ok, done := w.remind(ctx, res)
			if ok {
				sent++
			}
			if done {
				marked++
			}
		}
		// неотмеченные записи вернутся в следующую пачку
		if len(batch) < w.batchSize || marked == 0 {
			break
		}
	}

	if sent > 0 {
		w.logger.Info("Reminder: %d reminders sent for %s", sent, tomorrow.Format(domain.DateFormat))
	}
	return sent, nil
}

// remind отправляет письмо и отмечает запись; запись без email отмечается без отправки
func (w *Worker) remind(ctx context.Context, res *domain.ReservationDetails) (sent bool, marked bool) {
	if res.ClientEmail != nil && *res.ClientEmail != "" {
		centerName := ""
		if center, err := w.centers.GetByID(ctx, res.CenterID); err == nil {
			centerName = center.Name
		}
		sent = w.mailer.SendReservationReminder(ctx, *res.ClientEmail, mailer.ReservationData{
			ClientName:  res.ClientName,
			CenterName:  centerName,
			Date:        res.Date.Format("02.01.2006"),
			Time:        res.StartTime.String(),
			VehicleInfo: res.VehicleDescription(),
			BookingCode: res.BookingCode,
		})
		if !sent {
			// повтор на следующем запуске
			return false, false
		}
	}

	if err := w.repo.MarkReminderSent(ctx, res.ID, w.timeProvider.Now()); err != nil {
		w.logger.Error("Reminder: failed to mark reservation id=%d: %v", res.ID, err)
		return sent, false
	}
	return sent, true
}
