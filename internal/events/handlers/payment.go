package handlers

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-InspectionService/internal/domain"
	"github.com/m04kA/SMC-InspectionService/internal/events"
	"github.com/m04kA/SMC-InspectionService/internal/service/mailer"
	"github.com/m04kA/SMC-InspectionService/internal/usecase/change_status"
)

// OnPaymentCompleted уведомляет владельца центра и отправляет клиенту квитанцию
func (h *Handlers) OnPaymentCompleted(ctx context.Context, event *domain.Event) error {
	p, err := events.Decode[events.PaymentCompleted](event, domain.EventPaymentCompleted)
	if err != nil {
		return err
	}

	center, err := h.center(ctx, event.CenterID)
	if err != nil {
		return err
	}

	inAppErr := h.InApp.Create(ctx, center.OwnerUserID, "Новый платеж",
		fmt.Sprintf("Получен платеж на сумму %.2f %s", p.Amount, p.Currency),
		domain.NotificationPayment,
		map[string]any{"paymentId": p.PaymentID},
	)
	if inAppErr != nil {
		h.Logger.Warn("OnPaymentCompleted: failed to notify owner id=%d: %v", center.OwnerUserID, inAppErr)
	}

	client, err := h.Clients.GetByID(ctx, event.CenterID, p.ClientID)
	if err != nil {
		return errors.Join(inAppErr, fmt.Errorf("get client id=%d: %w", p.ClientID, err))
	}

	if client.HasEmail() {
		paidAt := p.PaidAt
		if t, err := time.Parse(time.RFC3339, p.PaidAt); err == nil {
			paidAt = t.In(center.Location()).Format(humanDateFormat)
		}
		h.Mailer.SendPaymentReceipt(ctx, *client.Email, mailer.PaymentData{
			ClientName:    client.FullName(),
			CenterName:    centerName(center),
			Amount:        p.Amount,
			Currency:      p.Currency,
			Date:          paidAt,
			InvoiceNumber: p.ExternalID,
		})
	}

	return inAppErr
}

// ConfirmPaidReservation подтверждает оплаченную запись в статусе PENDING
func (h *Handlers) ConfirmPaidReservation(ctx context.Context, event *domain.Event) error {
	p, err := events.Decode[events.PaymentCompleted](event, domain.EventPaymentCompleted)
	if err != nil {
		return err
	}
	if p.ReservationID == nil {
		return nil
	}

	details, err := h.Reservations.GetDetails(ctx, event.CenterID, *p.ReservationID)
	if err != nil {
		return fmt.Errorf("get reservation id=%d: %w", *p.ReservationID, err)
	}
	if details.Status != domain.StatusPending {
		h.Logger.Info("ConfirmPaidReservation: reservation id=%d is %s, nothing to confirm", details.ID, details.Status)
		return nil
	}

	_, err = h.Changer.Apply(ctx, &change_status.Transition{
		CenterID:      event.CenterID,
		ReservationID: details.ID,
		To:            domain.StatusConfirmed,
		Cause:         events.CausePayment,
	})
	if err != nil {
		// запись могли подтвердить или отменить параллельно
		if errors.Is(err, change_status.ErrInvalidTransition) {
			h.Logger.Info("ConfirmPaidReservation: reservation id=%d changed concurrently: %v", details.ID, err)
			return nil
		}
		return fmt.Errorf("confirm reservation id=%d: %w", details.ID, err)
	}

	h.Logger.Info("ConfirmPaidReservation: reservation id=%d confirmed by payment id=%d", details.ID, p.PaymentID)
	return nil
}
