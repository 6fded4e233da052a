package lookup_customer

import (
	"github.com/m04kA/SMC-BookingPortal/internal/api/handlers"
	"github.com/m04kA/SMC-BookingPortal/internal/domain"
)

// LookupCustomerRequest HTTP request model
// Draft текущее состояние формы; заполненные поля не перезаписываются
type LookupCustomerRequest struct {
	IDNumber string                  `json:"idNumber"`
	Draft    domain.ReservationDraft `json:"draft"`
}

// LookupCustomerResponse HTTP response model
type LookupCustomerResponse struct {
	Found bool                  `json:"found"`
	Form  handlers.FormResponse `json:"form"`
}
