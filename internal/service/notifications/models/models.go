package models

import (
	"encoding/json"
	"time"

	"github.com/m04kA/SMC-InspectionService/internal/domain"
)

// ListRequest параметры списка уведомлений
type ListRequest struct {
	UserID     int64
	UnreadOnly bool
	Page       int
	Limit      int
}

// NotificationResponse уведомление в ответе API
type NotificationResponse struct {
	ID        int64           `json:"id"`
	Title     string          `json:"title"`
	Message   string          `json:"message"`
	Type      string          `json:"type"`
	Data      json.RawMessage `json:"data,omitempty"`
	IsRead    bool            `json:"isRead"`
	CreatedAt time.Time       `json:"createdAt"`
}

// ListResponse страница уведомлений
type ListResponse struct {
	Items      []NotificationResponse `json:"items"`
	Total      int                    `json:"total"`
	Page       int                    `json:"page"`
	Limit      int                    `json:"limit"`
	TotalPages int                    `json:"totalPages"`
}

// FromDomainNotification конвертирует domain модель в DTO
func FromDomainNotification(n *domain.Notification) NotificationResponse {
	return NotificationResponse{
		ID:        n.ID,
		Title:     n.Title,
		Message:   n.Message,
		Type:      string(n.Type),
		Data:      n.Data,
		IsRead:    n.IsRead,
		CreatedAt: n.CreatedAt,
	}
}
