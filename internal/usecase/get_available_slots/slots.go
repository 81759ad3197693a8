package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-InspectionService/internal/domain"
)

// generateSlots делит рабочий интервал на слоты фиксированной ширины
// Хвостовой слот, который не помещается до закрытия, отбрасывается
func generateSlots(day domain.DaySchedule, width int) ([]domain.Slot, error) {
	if !day.IsOpen() || width <= 0 {
		return []domain.Slot{}, nil
	}

	result := make([]domain.Slot, 0)
	current := day.Open

	for current.IsBefore(day.Close) {
		end, err := current.AddMinutes(width)
		if err != nil {
			// конец слота вышел за сутки
			break
		}
		if end.IsAfter(day.Close) {
			break
		}

		result = append(result, domain.Slot{StartTime: current, EndTime: end, IsAvailable: true})
		current = end
	}

	return result, nil
}

// markReserved помечает занятыми слоты, пересекающиеся с записями
// Касание границ пересечением не считается: слот 09:30-10:00 свободен при записи 09:00-09:30
func markReserved(grid []domain.Slot, reserved []*domain.Reservation) {
	for i := range grid {
		if domain.FindOverlap(reserved, grid[i].Interval()) != nil {
			grid[i].IsAvailable = false
		}
	}
}

// markAll помечает все слоты занятыми (выходной)
func markAll(grid []domain.Slot) {
	for i := range grid {
		grid[i].IsAvailable = false
	}
}

// isDateInPast проверяет, что дата раньше сегодняшнего дня
func isDateInPast(date, now time.Time) bool {
	return domain.DateOnly(date).Before(domain.DateOnly(now))
}

