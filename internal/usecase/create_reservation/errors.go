package create_reservation

import "errors"

var (
	// ErrCenterNotFound возвращается, когда центр не найден
	ErrCenterNotFound = errors.New("create_reservation: center not found")

	// ErrCategoryNotFound возвращается, когда категория не найдена в центре
	ErrCategoryNotFound = errors.New("create_reservation: category not found")

	// ErrCategoryInactive возвращается, когда категория отключена или удалена
	ErrCategoryInactive = errors.New("create_reservation: category is not active")

	// ErrClientNotFound возвращается, когда клиент не найден в центре
	ErrClientNotFound = errors.New("create_reservation: client not found")

	// ErrVehicleNotFound возвращается, когда ТС не найдено в центре
	ErrVehicleNotFound = errors.New("create_reservation: vehicle not found")

	// ErrVehicleNotOwned возвращается, когда ТС принадлежит другому клиенту
	ErrVehicleNotOwned = errors.New("create_reservation: vehicle does not belong to the client")

	// ErrAccessDenied возвращается, когда клиент записывает чужого клиента
	ErrAccessDenied = errors.New("create_reservation: access denied")

	// ErrDateInPast возвращается при записи на прошедшую дату
	ErrDateInPast = errors.New("create_reservation: date is in the past")

	// ErrHoliday возвращается, когда на дату приходится выходной центра
	ErrHoliday = errors.New("create_reservation: center is on holiday")

	// ErrCenterClosed возвращается, когда центр не работает в этот день недели
	ErrCenterClosed = errors.New("create_reservation: center is closed on this date")

	// ErrOutsideOpeningHours возвращается, когда интервал выходит за часы работы
	ErrOutsideOpeningHours = errors.New("create_reservation: interval is outside opening hours")

	// ErrConflict возвращается, когда интервал пересекается с другой записью
	ErrConflict = errors.New("create_reservation: time slot is already taken")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_reservation: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_reservation: internal error")
)
