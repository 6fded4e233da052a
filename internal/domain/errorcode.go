package domain

import "strings"

// ErrorCode код бизнес-ошибки, который возвращает бэкенд при создании записи
// Закрытое перечисление: неизвестные коды сводятся к ErrorCodeUnknown
type ErrorCode string

const (
	ErrorCodeUnknown              ErrorCode = ""
	ErrorCodeSlotTaken            ErrorCode = "SLOT_TAKEN"
	ErrorCodeOutsideWindow        ErrorCode = "OUTSIDE_WINDOW"
	ErrorCodeInvalidSlotSize      ErrorCode = "INVALID_SLOT_SIZE"
	ErrorCodeUserLimitReached     ErrorCode = "USER_LIMIT_REACHED"
	ErrorCodeShippingDataRequired ErrorCode = "SHIPPING_DATA_REQUIRED"
	ErrorCodeProductRequired      ErrorCode = "PRODUCT_REQUIRED"
	ErrorCodeRateLimit            ErrorCode = "RATE_LIMIT"
	ErrorCodeCustomerBlacklisted  ErrorCode = "CUSTOMER_BLACKLISTED"
)

// ParseErrorCode сопоставляет строку бэкенда с известным кодом
func ParseErrorCode(s string) ErrorCode {
	switch c := ErrorCode(strings.ToUpper(strings.TrimSpace(s))); c {
	case ErrorCodeSlotTaken,
		ErrorCodeOutsideWindow,
		ErrorCodeInvalidSlotSize,
		ErrorCodeUserLimitReached,
		ErrorCodeShippingDataRequired,
		ErrorCodeProductRequired,
		ErrorCodeRateLimit,
		ErrorCodeCustomerBlacklisted:
		return c
	default:
		return ErrorCodeUnknown
	}
}

// InvalidatesSlot true для кодов, означающих, что выбранный слот больше не действителен
func (c ErrorCode) InvalidatesSlot() bool {
	switch c {
	case ErrorCodeSlotTaken, ErrorCodeOutsideWindow, ErrorCodeInvalidSlotSize:
		return true
	default:
		return false
	}
}

// Label значение для метрик и логов
func (c ErrorCode) Label() string {
	if c == ErrorCodeUnknown {
		return "UNKNOWN"
	}
	return string(c)
}

// LimitScope период, за который достигнут лимит записей (meta.scope)
type LimitScope string

const (
	LimitScopeDay  LimitScope = "day"
	LimitScopeWeek LimitScope = "week"
)
