package notifications

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-InspectionService/internal/api/handlers"
	"github.com/m04kA/SMC-InspectionService/internal/api/middleware"
	notificationsService "github.com/m04kA/SMC-InspectionService/internal/service/notifications"
	"github.com/m04kA/SMC-InspectionService/internal/service/notifications/models"
)

const (
	msgInvalidNotificationID = "некорректный ID уведомления"
	msgInvalidParams         = "некорректные параметры страницы"
	msgNotificationNotFound  = "уведомление не найдено"
)

// UnreadCountResponse число непрочитанных
type UnreadCountResponse struct {
	Count int `json:"count"`
}

// MarkAllReadResponse число отмеченных уведомлений
type MarkAllReadResponse struct {
	Updated int64 `json:"updated"`
}

// Handler маршруты /notifications; пользователь видит только свои уведомления
type Handler struct {
	service NotificationService
	logger  Logger
}

func NewHandler(service NotificationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// List GET /api/v1/notifications
// Query params: unreadOnly, page, limit (опционально)
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	principal, _ := middleware.PrincipalFrom(r.Context())

	page, err := handlers.QueryInt(r, "page", 1)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}
	limit, err := handlers.QueryInt(r, "limit", 0)
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.service.List(r.Context(), &models.ListRequest{
		UserID:     principal.UserID,
		UnreadOnly: handlers.QueryBool(r, "unreadOnly"),
		Page:       page,
		Limit:      limit,
	})
	if err != nil {
		h.logger.Error("GET /notifications - Failed to list notifications: user_id=%d, error=%v", principal.UserID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// UnreadCount GET /api/v1/notifications/unread-count
func (h *Handler) UnreadCount(w http.ResponseWriter, r *http.Request) {
	principal, _ := middleware.PrincipalFrom(r.Context())

	count, err := h.service.UnreadCount(r.Context(), principal.UserID)
	if err != nil {
		h.logger.Error("GET /notifications/unread-count - Failed to count: user_id=%d, error=%v", principal.UserID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, UnreadCountResponse{Count: count})
}

// MarkRead PATCH /api/v1/notifications/{id}/read
func (h *Handler) MarkRead(w http.ResponseWriter, r *http.Request) {
	principal, _ := middleware.PrincipalFrom(r.Context())

	id, err := handlers.PathID(r, "id")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidNotificationID)
		return
	}

	if err := h.service.MarkRead(r.Context(), principal.UserID, id); err != nil {
		h.respondError(w, "PATCH /notifications/{id}/read", id, err)
		return
	}

	handlers.RespondNoContent(w)
}

// MarkAllRead PATCH /api/v1/notifications/read-all
func (h *Handler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	principal, _ := middleware.PrincipalFrom(r.Context())

	updated, err := h.service.MarkAllRead(r.Context(), principal.UserID)
	if err != nil {
		h.logger.Error("PATCH /notifications/read-all - Failed to mark read: user_id=%d, error=%v", principal.UserID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("PATCH /notifications/read-all - Marked %d notifications for user_id=%d", updated, principal.UserID)
	handlers.RespondJSON(w, http.StatusOK, MarkAllReadResponse{Updated: updated})
}

// Delete DELETE /api/v1/notifications/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	principal, _ := middleware.PrincipalFrom(r.Context())

	id, err := handlers.PathID(r, "id")
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidNotificationID)
		return
	}

	if err := h.service.Delete(r.Context(), principal.UserID, id); err != nil {
		h.respondError(w, "DELETE /notifications/{id}", id, err)
		return
	}

	handlers.RespondNoContent(w)
}

func (h *Handler) respondError(w http.ResponseWriter, route string, id int64, err error) {
	if errors.Is(err, notificationsService.ErrNotificationNotFound) {
		h.logger.Warn("%s - Notification not found: id=%d", route, id)
		handlers.RespondNotFound(w, msgNotificationNotFound)
		return
	}
	h.logger.Error("%s - Failed: id=%d, error=%v", route, id, err)
	handlers.RespondInternalError(w)
}
