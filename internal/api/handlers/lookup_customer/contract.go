package lookup_customer

import (
	"context"

	"github.com/m04kA/SMC-BookingPortal/internal/domain"
	bookingForm "github.com/m04kA/SMC-BookingPortal/internal/usecase/booking_form"
)

// BookingForm форма бронирования (реализуется booking_form.Controller)
type BookingForm interface {
	Load(ctx context.Context, draft domain.ReservationDraft)
	LookupCustomer(ctx context.Context, idNumber string) bool
	Snapshot() bookingForm.Snapshot
}

// FormFactory создает новую форму на каждый запрос
type FormFactory func() BookingForm

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
