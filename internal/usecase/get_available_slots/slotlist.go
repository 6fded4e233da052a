package get_available_slots

import (
	"context"
	"sync"
	"time"

	"github.com/m04kA/SMC-BookingPortal/internal/domain"
)

// SlotList список слотов одной формы бронирования
// Каждый Refresh получает номер поколения; ответ устаревшего поколения отбрасывается,
// поэтому состояние всегда соответствует последнему запросу
type SlotList struct {
	fetcher Fetcher

	mu         sync.Mutex
	generation uint64
	loading    bool
	date       string
	method     domain.Method
	slots      []domain.TimeSlot
	status     Status
}

// NewSlotList создает пустой список
func NewSlotList(fetcher Fetcher) *SlotList {
	return &SlotList{fetcher: fetcher, status: StatusIdle}
}

// Refresh загружает слоты для (date, method)
// Возвращает false, если ответ был отброшен более новым запросом
func (l *SlotList) Refresh(ctx context.Context, date string, method domain.Method) bool {
	l.mu.Lock()
	l.generation++
	gen := l.generation
	l.date = date
	l.method = method
	l.slots = nil

	if date == "" || !method.NeedsSlot() {
		l.loading = false
		l.status = StatusIdle
		l.mu.Unlock()
		return true
	}
	l.loading = true
	l.mu.Unlock()

	resp, err := l.fetcher.Execute(ctx, &Request{Date: date, Method: method})

	l.mu.Lock()
	defer l.mu.Unlock()

	if gen != l.generation {
		return false
	}

	l.loading = false
	if err != nil {
		// некорректная дата: запрос не выполнялся
		l.status = StatusIdle
		return true
	}
	l.slots = resp.Slots
	l.status = resp.Status
	return true
}

// Clear сбрасывает список и отменяет учет запросов в полете
func (l *SlotList) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.generation++
	l.loading = false
	l.slots = nil
	l.status = StatusIdle
}

// Loading true, пока выполняется последний запрос
func (l *SlotList) Loading() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.loading
}

// Generation номер последнего запроса
func (l *SlotList) Generation() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.generation
}

// Visible слоты, отфильтрованные на момент now (пересчитывается при каждом чтении)
func (l *SlotList) Visible(now time.Time) []domain.TimeSlot {
	l.mu.Lock()
	slots, date := l.slots, l.date
	l.mu.Unlock()

	return FilterPastSlots(slots, date, now)
}

// Contains проверяет, что слот есть среди видимых на момент now
func (l *SlotList) Contains(slot domain.TimeSlot, now time.Time) bool {
	for _, s := range l.Visible(now) {
		if s.Equal(slot) {
			return true
		}
	}
	return false
}

// View снимок состояния для отображения
func (l *SlotList) View(now time.Time) View {
	l.mu.Lock()
	v := View{
		Date:    l.date,
		Method:  l.method,
		Loading: l.loading,
		Status:  l.status,
	}
	slots := l.slots
	l.mu.Unlock()

	if v.Loading {
		v.Slots = []domain.TimeSlot{}
		return v
	}

	v.Slots = FilterPastSlots(slots, v.Date, now)
	if v.Slots == nil {
		v.Slots = []domain.TimeSlot{}
	}
	v.Message = Message(v.Status, len(v.Slots))
	v.Hint = Hint(v.Method, v.Status, len(v.Slots))
	return v
}
