package domain

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Field имя поля формы
type Field string

const (
	FieldFullName     Field = "fullName"
	FieldIDNumber     Field = "idNumber"
	FieldPhone        Field = "phone"
	FieldEmail        Field = "email"
	FieldProduct      Field = "product"
	FieldNotes        Field = "notes"
	FieldDate         Field = "date"
	FieldSlot         Field = "slot"
	FieldAddress      Field = "address"
	FieldNeighborhood Field = "neighborhood"
	FieldCity         Field = "city"
	FieldCarrier      Field = "carrier"
)

// ShippingFields поля, обязательные только для доставки
var ShippingFields = []Field{FieldAddress, FieldNeighborhood, FieldCity, FieldCarrier}

const (
	msgFullNameRequired     = "Ingresa tu nombre completo"
	msgIDNumberRequired     = "Ingresa tu número de documento"
	msgPhoneRequired        = "Ingresa tu número de celular"
	msgPhoneInvalid         = "El celular debe tener 10 dígitos"
	msgEmailRequired        = "Ingresa tu correo electrónico"
	msgEmailInvalid         = "Ingresa un correo válido"
	msgProductRequired      = "Indica el producto que te interesa"
	msgDateRequired         = "Selecciona una fecha"
	msgDateInvalid          = "La fecha no es válida"
	msgSlotRequired         = "Selecciona un horario"
	msgAddressRequired      = "Ingresa la dirección de entrega"
	msgNeighborhoodRequired = "Ingresa el barrio"
	msgCityRequired         = "Ingresa la ciudad"
	msgCarrierRequired      = "Selecciona la transportadora"
)

var (
	phonePattern = regexp.MustCompile(fmt.Sprintf(`^\d{%d}$`, PhoneDigits))
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// ValidationErrors поле -> сообщение для пользователя
// Пустая карта означает валидную форму
type ValidationErrors map[Field]string

// Valid возвращает true, если ошибок нет
func (v ValidationErrors) Valid() bool {
	return len(v) == 0
}

// Has проверяет наличие ошибки для поля
func (v ValidationErrors) Has(f Field) bool {
	_, ok := v[f]
	return ok
}

// Clear убирает ошибку поля (пользователь начал его редактировать)
func (v ValidationErrors) Clear(fields ...Field) {
	for _, f := range fields {
		delete(v, f)
	}
}

// validateCustomer правила для общих полей клиента
func validateCustomer(c Customer, errs ValidationErrors) {
	if strings.TrimSpace(c.FullName) == "" {
		errs[FieldFullName] = msgFullNameRequired
	}
	if strings.TrimSpace(c.IDNumber) == "" {
		errs[FieldIDNumber] = msgIDNumberRequired
	}
	if strings.TrimSpace(c.Product) == "" {
		errs[FieldProduct] = msgProductRequired
	}

	phone := NormalizePhone(c.Phone)
	switch {
	case phone == "":
		errs[FieldPhone] = msgPhoneRequired
	case !phonePattern.MatchString(phone):
		errs[FieldPhone] = msgPhoneInvalid
	}

	email := strings.TrimSpace(c.Email)
	switch {
	case email == "":
		errs[FieldEmail] = msgEmailRequired
	case !emailPattern.MatchString(email):
		errs[FieldEmail] = msgEmailInvalid
	}
}

func validateDate(date string, errs ValidationErrors) {
	date = strings.TrimSpace(date)
	if date == "" {
		errs[FieldDate] = msgDateRequired
		return
	}
	if _, err := time.Parse(DateFormat, date); err != nil {
		errs[FieldDate] = msgDateInvalid
	}
}

func validateShipping(s Shipping, errs ValidationErrors) {
	if strings.TrimSpace(s.Address) == "" {
		errs[FieldAddress] = msgAddressRequired
	}
	if strings.TrimSpace(s.Neighborhood) == "" {
		errs[FieldNeighborhood] = msgNeighborhoodRequired
	}
	if strings.TrimSpace(s.City) == "" {
		errs[FieldCity] = msgCityRequired
	}
	if s.Carrier == "" || !CarriersForCity(s.City).Contains(s.Carrier) {
		errs[FieldCarrier] = msgCarrierRequired
	}
}
