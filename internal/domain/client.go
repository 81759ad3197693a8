package domain

import "time"

// ClientType тип клиента
type ClientType string

const (
	ClientTypeNormal       ClientType = "normal"
	ClientTypeProfessional ClientType = "professional"
)

// Client клиент центра
type Client struct {
	ID             int64
	CenterID       int64
	UserID         *int64 // аккаунт клиента, если он зарегистрирован
	FirstName      string
	LastName       string
	Phone          *string
	Email          *string
	Type           ClientType
	LastActivityAt *time.Time
	DeletedAt      *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// FullName имя и фамилия
func (c *Client) FullName() string {
	if c.LastName == "" {
		return c.FirstName
	}
	if c.FirstName == "" {
		return c.LastName
	}
	return c.FirstName + " " + c.LastName
}

// HasPhone у клиента указан телефон
func (c *Client) HasPhone() bool {
	return c.Phone != nil && *c.Phone != ""
}

// HasEmail у клиента указан email
func (c *Client) HasEmail() bool {
	return c.Email != nil && *c.Email != ""
}
