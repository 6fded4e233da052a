package get_available_slots

import (
	"strings"

	"github.com/m04kA/SMC-BookingPortal/internal/domain"
)

// AvailableSlotsQuery query параметры запроса
type AvailableSlotsQuery struct {
	Date   string `schema:"date"`   // YYYY-MM-DD
	Method string `schema:"method"` // TRYOUT | PICKUP
}

// Method способ из запроса; пустой считается TRYOUT
func (q *AvailableSlotsQuery) ParseMethod() (domain.Method, error) {
	if strings.TrimSpace(q.Method) == "" {
		return domain.MethodTryout, nil
	}
	return domain.ParseMethod(q.Method)
}
