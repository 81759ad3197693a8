package cancel_reservation

import "errors"

// ErrInvalidInput возвращается при некорректных входных данных
var ErrInvalidInput = errors.New("cancel_reservation: invalid input data")
