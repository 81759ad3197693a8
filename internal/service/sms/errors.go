package sms

import "errors"

var (
	// ErrInvalidMonth месяц не в формате YYYY-MM
	ErrInvalidMonth = errors.New("invalid month")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("sms.service: internal error")
)
