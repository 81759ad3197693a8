package smsgateway

import "errors"

var (
	// ErrNoAPIKey возвращается, когда ключ API не задан ни для центра, ни глобально
	ErrNoAPIKey = errors.New("smsgateway client: api key not configured")

	// ErrRejected возвращается, когда шлюз отклонил сообщение (4xx)
	ErrRejected = errors.New("smsgateway client: message rejected")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("smsgateway client: internal error")

	// ErrUnavailable возвращается при недоступности шлюза (сеть, 5xx)
	ErrUnavailable = errors.New("smsgateway client: gateway unavailable")
)
