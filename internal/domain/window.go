package domain

import "github.com/m04kA/SMC-BookingPortal/pkg/types"

// AvailabilityWindow окно приема на конкретную дату для способа TRYOUT или PICKUP
// Бэкенд нарезает окно на слоты длиной SlotMinutes
type AvailabilityWindow struct {
	ID          int64
	Date        string
	Type        Method
	StartTime   types.TimeString
	EndTime     types.TimeString
	SlotMinutes int
}

// DurationMinutes длина окна в минутах
func (w *AvailabilityWindow) DurationMinutes() int {
	return w.EndTime.Minutes() - w.StartTime.Minutes()
}

// SlotCount количество целых слотов в окне
func (w *AvailabilityWindow) SlotCount() int {
	if w.SlotMinutes <= 0 || w.DurationMinutes() <= 0 {
		return 0
	}
	return w.DurationMinutes() / w.SlotMinutes
}
