package domain

// transitions допустимые переходы статусов
// PENDING → CONFIRMED → IN_PROGRESS → COMPLETED; PENDING/CONFIRMED → CANCELLED | NO_SHOW
var transitions = map[ReservationStatus][]ReservationStatus{
	StatusPending:    {StatusConfirmed, StatusCancelled, StatusNoShow},
	StatusConfirmed:  {StatusInProgress, StatusCompleted, StatusCancelled, StatusNoShow},
	StatusInProgress: {StatusCompleted},
}

// IsValid статус входит в допустимый набор
func (s ReservationStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusInProgress, StatusCompleted, StatusCancelled, StatusNoShow:
		return true
	}
	return false
}

// IsTerminal из статуса нет переходов
func (s ReservationStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled || s == StatusNoShow
}

// CanTransitionTo проверяет допустимость перехода
func (s ReservationStatus) CanTransitionTo(next ReservationStatus) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Cancellable запись можно отменить или перенести на выходной
func (s ReservationStatus) Cancellable() bool {
	return s.CanTransitionTo(StatusCancelled)
}
