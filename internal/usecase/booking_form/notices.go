package booking_form

import "github.com/m04kA/SMC-BookingPortal/internal/domain"

func successNotice(m domain.Method) *Notice {
	if m == domain.MethodShipping {
		return &Notice{Kind: NoticeSuccess, Message: msgBookedShipping}
	}
	return &Notice{Kind: NoticeSuccess, Message: msgBookedInStore}
}

// rejectionNotice сообщение для кода отказа бэкенда
// Новый код без ветки попадает в default и получает общее сообщение
func rejectionNotice(code domain.ErrorCode, scope domain.LimitScope) *Notice {
	switch code {
	case domain.ErrorCodeSlotTaken:
		return &Notice{Kind: NoticeError, Message: msgSlotTaken}
	case domain.ErrorCodeOutsideWindow:
		return &Notice{Kind: NoticeError, Message: msgOutsideWindow}
	case domain.ErrorCodeInvalidSlotSize:
		return &Notice{Kind: NoticeError, Message: msgInvalidSlotSize}
	case domain.ErrorCodeUserLimitReached:
		return &Notice{Kind: NoticeError, Message: limitMessage(scope)}
	case domain.ErrorCodeShippingDataRequired:
		return &Notice{Kind: NoticeError, Message: msgShippingData}
	case domain.ErrorCodeProductRequired:
		return &Notice{Kind: NoticeError, Message: msgProduct}
	case domain.ErrorCodeRateLimit:
		return &Notice{Kind: NoticeError, Message: msgRateLimit}
	case domain.ErrorCodeCustomerBlacklisted:
		return &Notice{Kind: NoticeWarning, Message: msgBlacklisted, Sticky: true}
	case domain.ErrorCodeUnknown:
		return &Notice{Kind: NoticeError, Message: msgGeneric}
	default:
		return &Notice{Kind: NoticeError, Message: msgGeneric}
	}
}

func limitMessage(scope domain.LimitScope) string {
	switch scope {
	case domain.LimitScopeDay:
		return msgLimitDay
	case domain.LimitScopeWeek:
		return msgLimitWeek
	default:
		return msgLimit
	}
}
