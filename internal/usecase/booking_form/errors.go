package booking_form

import "errors"

var (
	// ErrSubmitInFlight возвращается при повторной отправке, пока первая не завершилась
	ErrSubmitInFlight = errors.New("submission already in flight")

	// ErrCarrierNotOffered возвращается, если служба недоступна для города доставки
	ErrCarrierNotOffered = errors.New("carrier not offered for city")

	// ErrSlotNotNeeded возвращается при выборе слота для доставки
	ErrSlotNotNeeded = errors.New("method does not use time slots")

	// ErrSlotUnavailable возвращается, если слота нет среди доступных
	ErrSlotUnavailable = errors.New("slot is not available")

	// ErrUnknownField возвращается для поля, которое нельзя изменить через SetField
	ErrUnknownField = errors.New("unknown form field")
)
