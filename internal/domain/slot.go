package domain

import "github.com/m04kA/SMC-BookingPortal/pkg/types"

// TimeSlot временной интервал, выданный бэкендом для даты и способа
// Клиент никогда не меняет границы слота, только фильтрует список
type TimeSlot struct {
	Start types.TimeString `json:"start"`
	End   types.TimeString `json:"end"`
}

// Equal сравнивает границы слотов
func (s TimeSlot) Equal(other TimeSlot) bool {
	return s.Start == other.Start && s.End == other.End
}

// DurationMinutes длительность слота, для некорректных границ 0
func (s TimeSlot) DurationMinutes() int {
	d := s.End.Minutes() - s.Start.Minutes()
	if s.Start.Minutes() < 0 || s.End.Minutes() < 0 || d < 0 {
		return 0
	}
	return d
}
