package booking_form

import (
	"github.com/m04kA/SMC-BookingPortal/internal/domain"
	"github.com/m04kA/SMC-BookingPortal/internal/usecase/get_available_slots"
)

// NoticeKind тип уведомления
type NoticeKind string

const (
	NoticeSuccess NoticeKind = "success"
	NoticeError   NoticeKind = "error"
	NoticeWarning NoticeKind = "warning"
)

// Notice уведомление для пользователя
// Sticky уведомление не скрывается автоматически
type Notice struct {
	Kind    NoticeKind `json:"kind"`
	Message string     `json:"message"`
	Sticky  bool       `json:"sticky,omitempty"`
}

// Outcome результат попытки отправки
type Outcome string

const (
	OutcomeSuccess  Outcome = "success"
	OutcomeInvalid  Outcome = "invalid"  // ошибки валидации, запрос не отправлялся
	OutcomeRejected Outcome = "rejected" // бэкенд вернул ok=false
	OutcomeNetwork  Outcome = "network"  // нет связи, ответ не JSON, неожиданный статус
)

// Snapshot состояние формы для отображения
type Snapshot struct {
	Draft    domain.ReservationDraft
	Errors   domain.ValidationErrors
	Notice   *Notice
	Pending  bool
	Carriers domain.CarrierSet
	Slots    get_available_slots.View
}

const (
	msgFixFields       = "Corrige los campos marcados"
	msgBookedInStore   = "¡Listo! Tu cita quedó agendada. Te esperamos en la tienda"
	msgBookedShipping  = "¡Listo! Registramos tu pedido. Te contactaremos para coordinar el envío"
	msgSlotTaken       = "Ese horario acaba de ser reservado. Elige otro"
	msgOutsideWindow   = "El horario seleccionado ya no está disponible. Elige otro"
	msgInvalidSlotSize = "La duración de los horarios cambió. Vuelve a elegir un horario"
	msgLimitDay        = "Alcanzaste el máximo de citas permitidas para este día"
	msgLimitWeek       = "Alcanzaste el máximo de citas permitidas para esta semana"
	msgLimit           = "Alcanzaste el máximo de citas permitidas"
	msgShippingData    = "Faltan datos de envío. Revisa la información de entrega"
	msgProduct         = "Indica el producto que te interesa"
	msgRateLimit       = "Demasiados intentos. Espera un momento e intenta de nuevo"
	msgBlacklisted     = "No es posible agendar con estos datos. Comunícate con la tienda"
	msgGeneric         = "No pudimos agendar tu cita. Intenta de nuevo"
	msgNetwork         = "Error de conexión. Verifica tu internet e intenta de nuevo"
)
