package promotions

import "errors"

var (
	// ErrDuplicateCode код акции уже используется в центре
	ErrDuplicateCode = errors.New("promotion code already in use")

	// ErrInvalidCode код не найден или акция выключена
	ErrInvalidCode = errors.New("promotion code is invalid")

	// ErrNotRunning акция еще не началась или уже закончилась
	ErrNotRunning = errors.New("promotion is not running")

	// ErrUsageLimitReached лимит использований исчерпан
	ErrUsageLimitReached = errors.New("promotion usage limit reached")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("promotions.service: internal error")
)
