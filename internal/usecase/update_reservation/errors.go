package update_reservation

import "errors"

var (
	// ErrReservationNotFound возвращается, когда запись не найдена
	ErrReservationNotFound = errors.New("update_reservation: reservation not found")

	// ErrReservationClosed возвращается при изменении записи в конечном статусе
	ErrReservationClosed = errors.New("update_reservation: reservation is in a terminal status")

	// ErrCategoryNotFound возвращается, когда категория не найдена в центре
	ErrCategoryNotFound = errors.New("update_reservation: category not found")

	// ErrCategoryInactive возвращается, когда категория отключена или удалена
	ErrCategoryInactive = errors.New("update_reservation: category is not active")

	// ErrDateInPast возвращается при переносе на прошедшую дату
	ErrDateInPast = errors.New("update_reservation: date is in the past")

	// ErrHoliday возвращается, когда на дату приходится выходной центра
	ErrHoliday = errors.New("update_reservation: center is on holiday")

	// ErrCenterClosed возвращается, когда центр не работает в этот день недели
	ErrCenterClosed = errors.New("update_reservation: center is closed on this date")

	// ErrOutsideOpeningHours возвращается, когда интервал выходит за часы работы
	ErrOutsideOpeningHours = errors.New("update_reservation: interval is outside opening hours")

	// ErrConflict возвращается, когда новый интервал пересекается с другой записью
	ErrConflict = errors.New("update_reservation: time slot is already taken")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("update_reservation: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("update_reservation: internal error")
)
