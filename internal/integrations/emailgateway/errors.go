package emailgateway

import "errors"

var (
	// ErrNotConfigured возвращается, когда ключ API не задан
	ErrNotConfigured = errors.New("emailgateway client: api key not configured")

	// ErrRejected возвращается, когда шлюз отклонил письмо (4xx)
	ErrRejected = errors.New("emailgateway client: message rejected")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("emailgateway client: internal error")

	// ErrUnavailable возвращается при недоступности шлюза (сеть, 5xx)
	ErrUnavailable = errors.New("emailgateway client: gateway unavailable")
)
