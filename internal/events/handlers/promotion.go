package handlers

import (
	"context"
	"fmt"
	"sync"

	"github.com/m04kA/SMC-InspectionService/internal/domain"
	"github.com/m04kA/SMC-InspectionService/internal/events"
	"github.com/m04kA/SMC-InspectionService/internal/service/mailer"
	"github.com/m04kA/SMC-InspectionService/pkg/workerpool"
)

// BroadcastReport итог рассылки акции
type BroadcastReport struct {
	Targets     int
	EmailSent   int
	SMSAttempts int
	SMSSent     int
	SMSSkipped  int // клиенты без телефона
	Failures    int
}

// NotifyPromotionOwner уведомляет владельца центра о запуске акции
func (h *Handlers) NotifyPromotionOwner(ctx context.Context, event *domain.Event) error {
	p, err := events.Decode[events.PromotionCreated](event, domain.EventPromotionCreated)
	if err != nil {
		return err
	}
	center, err := h.center(ctx, event.CenterID)
	if err != nil {
		return err
	}
	return h.InApp.Create(ctx, center.OwnerUserID, "Акция создана",
		fmt.Sprintf("Акция «%s» (код %s) действует с %s по %s", p.Name, p.Code, humanDate(p.StartDate), humanDate(p.EndDate)),
		domain.NotificationPromotion,
		map[string]any{"promotionId": p.PromotionID},
	)
}

// OnPromotionCreated рассылает акцию недавно активным клиентам
func (h *Handlers) OnPromotionCreated(ctx context.Context, event *domain.Event) error {
	p, err := events.Decode[events.PromotionCreated](event, domain.EventPromotionCreated)
	if err != nil {
		return err
	}
	report, err := h.Broadcast(ctx, event.CenterID, p)
	if err != nil {
		return err
	}
	h.Logger.Info("OnPromotionCreated: promotion id=%d: targets=%d email=%d sms=%d/%d skipped=%d failures=%d",
		p.PromotionID, report.Targets, report.EmailSent, report.SMSSent, report.SMSAttempts, report.SMSSkipped, report.Failures)
	return nil
}

// Broadcast отправляет акцию не более чем BroadcastLimit клиентам через ограниченный пул
// Сбой по одному клиенту учитывается в отчете и не прерывает рассылку
func (h *Handlers) Broadcast(ctx context.Context, centerID int64, p *events.PromotionCreated) (*BroadcastReport, error) {
	center, err := h.center(ctx, centerID)
	if err != nil {
		return nil, err
	}
	clients, err := h.Clients.ListRecentlyActive(ctx, centerID, h.cfg.BroadcastLimit)
	if err != nil {
		return nil, fmt.Errorf("list clients for center=%d: %w", centerID, err)
	}

	discount := formatDiscount(p.DiscountType, p.DiscountValue, center.Currency)
	sms := fmt.Sprintf("%s: акция «%s», скидка %s по коду %s до %s", centerName(center), p.Name, discount, p.Code, humanDate(p.EndDate))

	var (
		mu     sync.Mutex
		report = &BroadcastReport{Targets: len(clients)}
	)
	pool := workerpool.New(h.cfg.BroadcastWorkers)

	for _, client := range clients {
		client := client
		err := pool.Go(ctx, func() {
			delta := h.sendPromotion(ctx, center, client, p, discount, sms)
			mu.Lock()
			report.EmailSent += delta.EmailSent
			report.SMSAttempts += delta.SMSAttempts
			report.SMSSent += delta.SMSSent
			report.SMSSkipped += delta.SMSSkipped
			report.Failures += delta.Failures
			mu.Unlock()
		})
		if err != nil {
			// контекст отменен, оставшиеся клиенты не обработаны
			pool.Wait()
			return report, err
		}
	}
	pool.Wait()

	return report, nil
}

func (h *Handlers) sendPromotion(ctx context.Context, center *domain.Center, client *domain.Client, p *events.PromotionCreated, discount, sms string) (r BroadcastReport) {
	defer func() {
		if rec := recover(); rec != nil {
			h.Logger.Error("Broadcast: panic for client id=%d: %v", client.ID, rec)
			r.Failures++
		}
	}()

	if client.HasEmail() {
		ok := h.Mailer.SendPromotion(ctx, *client.Email, mailer.PromotionData{
			ClientName: client.FullName(),
			CenterName: centerName(center),
			PromoName:  p.Name,
			PromoCode:  p.Code,
			Discount:   discount,
			StartDate:  humanDate(p.StartDate),
			EndDate:    humanDate(p.EndDate),
		})
		if ok {
			r.EmailSent++
		} else {
			r.Failures++
		}
	}

	r.SMSAttempts++
	if !client.HasPhone() {
		r.SMSSkipped++
		return r
	}
	if h.SMS.SendSMS(ctx, *client.Phone, sms, center.ID) {
		r.SMSSent++
	} else {
		r.Failures++
	}
	return r
}
