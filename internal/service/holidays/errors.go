package holidays

import "errors"

var (
	// ErrHolidayNotFound выходной не найден
	ErrHolidayNotFound = errors.New("holiday not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInvalidDateRange дата окончания раньше даты начала
	ErrInvalidDateRange = errors.New("end date is before start date")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("holidays.service: internal error")
)
