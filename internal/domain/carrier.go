package domain

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Carrier курьерская служба
type Carrier string

const (
	CarrierPicap           Carrier = "PICAP"
	CarrierInterrapidisimo Carrier = "INTERRAPIDISIMO"
)

// ErrUnknownCarrier возвращается для неизвестной курьерской службы
var ErrUnknownCarrier = errors.New("unknown carrier")

// bogotaCity нормализованное название Боготы
const bogotaCity = "bogota"

// CarrierSet упорядоченный набор доступных служб
type CarrierSet []Carrier

// Contains проверяет, входит ли служба в набор
func (s CarrierSet) Contains(c Carrier) bool {
	for _, item := range s {
		if item == c {
			return true
		}
	}
	return false
}

// ParseCarrier разбирает код службы без учета регистра
func ParseCarrier(s string) (Carrier, error) {
	c := Carrier(strings.ToUpper(strings.TrimSpace(s)))
	switch c {
	case CarrierPicap, CarrierInterrapidisimo:
		return c, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownCarrier, s)
	}
}

// CarriersForCity набор служб для города доставки
// В Боготе доступен еще и PICAP, в остальных городах только INTERRAPIDISIMO
func CarriersForCity(city string) CarrierSet {
	if NormalizeCity(city) == bogotaCity {
		return CarrierSet{CarrierPicap, CarrierInterrapidisimo}
	}
	return CarrierSet{CarrierInterrapidisimo}
}

// NormalizeCity приводит название к нижнему регистру без диакритики и лишних пробелов
// "  BOGOTÁ " -> "bogota"
func NormalizeCity(city string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(t, city)
	if err != nil {
		stripped = city
	}
	return strings.ToLower(strings.Join(strings.Fields(stripped), " "))
}
