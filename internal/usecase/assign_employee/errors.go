package assign_employee

import "errors"

var (
	// ErrReservationNotFound возвращается, когда запись не найдена
	ErrReservationNotFound = errors.New("assign_employee: reservation not found")

	// ErrReservationClosed возвращается, когда запись в конечном статусе
	ErrReservationClosed = errors.New("assign_employee: reservation is in a terminal status")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("assign_employee: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("assign_employee: internal error")
)
