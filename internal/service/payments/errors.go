package payments

import "errors"

var (
	// ErrPaymentNotFound платеж с таким внешним идентификатором не найден
	ErrPaymentNotFound = errors.New("payment not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("payments.service: internal error")
)
