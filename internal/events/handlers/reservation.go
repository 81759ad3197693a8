package handlers

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-InspectionService/internal/domain"
	"github.com/m04kA/SMC-InspectionService/internal/events"
	"github.com/m04kA/SMC-InspectionService/internal/service/mailer"
)

// OnReservationCreated уведомляет назначенного сотрудника и подтверждает запись клиенту
func (h *Handlers) OnReservationCreated(ctx context.Context, event *domain.Event) error {
	p, err := events.Decode[events.ReservationCreated](event, domain.EventReservationCreated)
	if err != nil {
		return err
	}

	details, err := h.Reservations.GetDetails(ctx, event.CenterID, p.ReservationID)
	if err != nil {
		return fmt.Errorf("get reservation id=%d: %w", p.ReservationID, err)
	}
	center, err := h.center(ctx, event.CenterID)
	if err != nil {
		return err
	}

	var inAppErr error
	if p.EmployeeID != nil {
		inAppErr = h.InApp.Create(ctx, *p.EmployeeID,
			"Новая запись",
			fmt.Sprintf("Новая запись на %s в %s: %s", humanDate(p.Date), p.StartTime, details.VehicleDescription()),
			domain.NotificationReservation,
			map[string]any{"reservationId": p.ReservationID},
		)
		if inAppErr != nil {
			h.Logger.Warn("OnReservationCreated: failed to notify employee id=%d: %v", *p.EmployeeID, inAppErr)
		}
	}

	if details.ClientPhone != nil && *details.ClientPhone != "" {
		h.SMS.SendSMS(ctx, *details.ClientPhone,
			createdSMS(centerName(center), p.BookingCode, humanDate(p.Date), p.StartTime, details.VehicleDescription(),
				domain.ReservationStatus(p.Status)),
			event.CenterID,
		)
	}

	if details.ClientEmail != nil && *details.ClientEmail != "" {
		h.Mailer.SendReservationConfirmation(ctx, *details.ClientEmail, mailer.ReservationData{
			ClientName:  details.ClientName,
			CenterName:  centerName(center),
			Date:        humanDate(p.Date),
			Time:        p.StartTime,
			VehicleInfo: details.VehicleDescription(),
			BookingCode: p.BookingCode,
			Pending:     domain.ReservationStatus(p.Status) == domain.StatusPending,
		})
	}

	return inAppErr
}

// OnStatusChanged сообщает клиенту о новом статусе записи
// При отмене из-за выходного SMS и письмо не отправляются: клиента уведомляет обработчик выходного
func (h *Handlers) OnStatusChanged(ctx context.Context, event *domain.Event) error {
	p, err := events.Decode[events.ReservationStatusChanged](event, domain.EventReservationStatusChanged)
	if err != nil {
		return err
	}

	client, err := h.Clients.GetByID(ctx, event.CenterID, p.ClientID)
	if err != nil {
		return fmt.Errorf("get client id=%d: %w", p.ClientID, err)
	}

	message := statusMessage(p.NewStatus)

	var inAppErr error
	if client.UserID != nil {
		inAppErr = h.InApp.Create(ctx, *client.UserID, "Обновление записи", message,
			domain.NotificationReservation,
			map[string]any{"reservationId": p.ReservationID, "status": p.NewStatus},
		)
		if inAppErr != nil {
			h.Logger.Warn("OnStatusChanged: failed to notify user id=%d: %v", *client.UserID, inAppErr)
		}
	}

	if p.Cause == events.CauseHoliday {
		return inAppErr
	}

	center, err := h.center(ctx, event.CenterID)
	if err != nil {
		return err
	}

	if smsStatus(p.NewStatus) && client.HasPhone() {
		h.SMS.SendSMS(ctx, *client.Phone, fmt.Sprintf("%s. %s, запись %s.", message, centerName(center), p.BookingCode), event.CenterID)
	}

	if p.NewStatus != domain.StatusPending && client.HasEmail() {
		h.Mailer.SendStatusUpdate(ctx, *client.Email, mailer.StatusData{
			ClientName:    client.FullName(),
			CenterName:    centerName(center),
			Status:        string(p.NewStatus),
			StatusMessage: message,
			BookingCode:   p.BookingCode,
		})
	}

	return inAppErr
}
