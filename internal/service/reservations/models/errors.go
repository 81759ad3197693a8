package models

import "errors"

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid reservation status")

	// ErrInvalidResult возвращается при некорректном результате осмотра
	ErrInvalidResult = errors.New("invalid inspection result")
)
