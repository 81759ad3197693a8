package domain

import "github.com/m04kA/SMC-InspectionService/pkg/types"

// Interval полуоткрытый интервал времени [Start, End)
type Interval struct {
	Start types.TimeString
	End   types.TimeString
}

// Overlaps пересечение полуоткрытых интервалов: касание границ пересечением не считается
func (i Interval) Overlaps(other Interval) bool {
	return i.Start.IsBefore(other.End) && i.End.IsAfter(other.Start)
}

// Within интервал целиком внутри outer
func (i Interval) Within(outer Interval) bool {
	return !i.Start.IsBefore(outer.Start) && !i.End.IsAfter(outer.End)
}

// Slot кандидат на запись в расписании дня
type Slot struct {
	StartTime   types.TimeString
	EndTime     types.TimeString
	IsAvailable bool
}

// Interval интервал слота
func (s Slot) Interval() Interval {
	return Interval{Start: s.StartTime, End: s.EndTime}
}

// FindOverlap первая запись из reserved, пересекающая интервал; nil, если пересечений нет
func FindOverlap(reserved []*Reservation, iv Interval) *Reservation {
	for _, r := range reserved {
		if !r.BlocksSchedule() {
			continue
		}
		if r.Interval().Overlaps(iv) {
			return r
		}
	}
	return nil
}
