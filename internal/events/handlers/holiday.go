package handlers

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-InspectionService/internal/domain"
	"github.com/m04kA/SMC-InspectionService/internal/events"
	"github.com/m04kA/SMC-InspectionService/internal/service/mailer"
	"github.com/m04kA/SMC-InspectionService/internal/usecase/holiday_cascade"
)

// OnHolidayCreated отменяет записи на период выходного, уведомляет затронутых клиентов
// и отправляет владельцу сводку
func (h *Handlers) OnHolidayCreated(ctx context.Context, event *domain.Event) error {
	p, err := events.Decode[events.HolidayCreated](event, domain.EventHolidayCreated)
	if err != nil {
		return err
	}

	from, err := time.Parse(domain.DateFormat, p.StartDate)
	if err != nil {
		return fmt.Errorf("%w: startDate: %v", events.ErrDecodePayload, err)
	}
	to := from
	endLabel := ""
	if p.EndDate != nil {
		if to, err = time.Parse(domain.DateFormat, *p.EndDate); err != nil {
			return fmt.Errorf("%w: endDate: %v", events.ErrDecodePayload, err)
		}
		endLabel = humanDate(*p.EndDate)
	}

	center, err := h.center(ctx, event.CenterID)
	if err != nil {
		return err
	}

	result, err := h.Cascade.Execute(ctx, &holiday_cascade.Request{
		CenterID:    event.CenterID,
		HolidayName: p.Name,
		From:        from,
		To:          to,
	})
	if err != nil {
		return fmt.Errorf("cascade holiday id=%d: %w", p.HolidayID, err)
	}

	notified := make(map[int64]struct{}, len(result.Cancelled))
	for _, res := range result.Cancelled {
		if _, ok := notified[res.ClientID]; ok {
			continue
		}
		notified[res.ClientID] = struct{}{}
		h.notifyHolidayClient(ctx, center, res, p.Name, humanDate(p.StartDate), endLabel)
	}

	summary := fmt.Sprintf("Выходной «%s» добавлен. Отменено записей: %d", p.Name, len(result.Cancelled))
	if result.Failed > 0 {
		summary += fmt.Sprintf(", не удалось отменить: %d", result.Failed)
	}
	inAppErr := h.InApp.Create(ctx, center.OwnerUserID, "Выходной добавлен", summary,
		domain.NotificationHoliday,
		map[string]any{"holidayId": p.HolidayID, "cancelled": len(result.Cancelled), "failed": result.Failed},
	)
	if inAppErr != nil {
		h.Logger.Warn("OnHolidayCreated: failed to notify owner id=%d: %v", center.OwnerUserID, inAppErr)
	}

	h.Logger.Info("OnHolidayCreated: holiday id=%d: cancelled=%d failed=%d clients=%d",
		p.HolidayID, len(result.Cancelled), result.Failed, len(notified))

	if result.Failed > 0 {
		return errors.Join(inAppErr, fmt.Errorf("holiday id=%d: %d reservations not cancelled", p.HolidayID, result.Failed))
	}
	return inAppErr
}

func (h *Handlers) notifyHolidayClient(ctx context.Context, center *domain.Center, res *domain.Reservation, name, start, end string) {
	client, err := h.Clients.GetByID(ctx, res.CenterID, res.ClientID)
	if err != nil {
		h.Logger.Warn("OnHolidayCreated: failed to get client id=%d: %v", res.ClientID, err)
		return
	}

	period := start
	if end != "" {
		period = start + " - " + end
	}

	if client.HasPhone() {
		h.SMS.SendSMS(ctx, *client.Phone,
			fmt.Sprintf("%s закрыт (%s, %s). Запись %s отменена, пожалуйста, выберите другое время.",
				centerName(center), name, period, res.BookingCode),
			res.CenterID,
		)
	}

	if client.HasEmail() {
		h.Mailer.SendHolidayNotification(ctx, *client.Email, mailer.HolidayData{
			ClientName:  client.FullName(),
			CenterName:  centerName(center),
			HolidayName: name,
			Date:        start,
			EndDate:     end,
			Cancelled:   true,
		})
	}
}
