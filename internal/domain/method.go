package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Method канал исполнения заказа
type Method string

const (
	MethodTryout   Method = "TRYOUT"   // примерка в магазине
	MethodPickup   Method = "PICKUP"   // самовывоз из магазина
	MethodShipping Method = "SHIPPING" // доставка курьером
)

// ErrUnknownMethod возвращается для неизвестного способа
var ErrUnknownMethod = errors.New("unknown appointment method")

// Methods все поддерживаемые способы в порядке отображения
var Methods = []Method{MethodTryout, MethodPickup, MethodShipping}

// ParseMethod разбирает строку без учета регистра
func ParseMethod(s string) (Method, error) {
	m := Method(strings.ToUpper(strings.TrimSpace(s)))
	switch m {
	case MethodTryout, MethodPickup, MethodShipping:
		return m, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownMethod, s)
	}
}

// NeedsSlot возвращает true для очных визитов, которым нужен временной слот
func (m Method) NeedsSlot() bool {
	return m == MethodTryout || m == MethodPickup
}

// DeliveryMethod значение поля delivery_method для бэкенда
func (m Method) DeliveryMethod() string {
	if m == MethodShipping {
		return "SHIPPING"
	}
	return "IN_STORE"
}

func (m Method) String() string {
	return string(m)
}
