package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-BookingPortal/internal/domain"
)

// FilterPastSlots убирает прошедшие слоты
// date в будущем: список без изменений; сегодня: только слоты, начинающиеся строго после now;
// дата в прошлом: пустой список. "Сегодня" определяется в часовом поясе now.
// Порядок сохраняется, входной срез не изменяется
func FilterPastSlots(slots []domain.TimeSlot, date string, now time.Time) []domain.TimeSlot {
	day, err := domain.ParseDate(date, now.Location())
	if err != nil {
		return []domain.TimeSlot{}
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	switch {
	case day.After(today):
		return slots
	case day.Before(today):
		return []domain.TimeSlot{}
	}

	result := make([]domain.TimeSlot, 0, len(slots))
	for _, slot := range slots {
		start, err := slot.Start.On(day)
		if err != nil {
			continue
		}
		if start.After(now) {
			result = append(result, slot)
		}
	}
	return result
}
