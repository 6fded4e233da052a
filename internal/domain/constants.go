package domain

import "time"

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ShippingTimeSentinel значение start_time/end_time для отправок (слот не выбирается)
const ShippingTimeSentinel = "00:00"

// DefaultAdminSessionHours длительность сессии администратора по умолчанию
const DefaultAdminSessionHours = 8

// Business validation constants
const (
	PhoneDigits          = 10
	MinWindowSlotMinutes = 5
	MaxWindowSlotMinutes = 240     // 4 hours
	MaxGuideFileBytes    = 5 << 20 // 5 MiB
)

// DefaultTimezone часовой пояс магазина, используется для определения "сегодня"
const DefaultTimezone = "America/Bogota"

// ParseDate разбирает дату YYYY-MM-DD в указанном часовом поясе
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	return time.ParseInLocation(DateFormat, s, loc)
}
