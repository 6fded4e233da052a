package get_available_slots

import "github.com/m04kA/SMC-BookingPortal/internal/domain"

// Status результат загрузки слотов
type Status string

const (
	StatusIdle     Status = "IDLE"      // запрос не выполнялся (нет даты или способ без слотов)
	StatusOK       Status = "OK"        // получен непустой список
	StatusEmpty    Status = "EMPTY"     // бэкенд вернул пустой список
	StatusNotFound Status = "NOT_FOUND" // HTTP 404
	StatusServer   Status = "SERVER"    // HTTP ошибка или ok=false
	StatusNetwork  Status = "NETWORK"   // нет связи или ответ не JSON
)

const (
	msgNoSlots     = "No hay horarios disponibles para esta fecha"
	msgNotFound    = "No encontramos disponibilidad para esta fecha"
	msgServerError = "No pudimos cargar los horarios. Intenta de nuevo en unos minutos"
	msgNetwork     = "Error de conexión. Verifica tu internet e intenta de nuevo"
	msgTryPickup   = "¿No encuentras horario para probar? Puedes elegir recoger en tienda"
)

// IsError true для статусов с ошибкой загрузки
func (s Status) IsError() bool {
	return s == StatusNotFound || s == StatusServer || s == StatusNetwork
}

// Request модель запроса на получение слотов
type Request struct {
	Date   string        // YYYY-MM-DD
	Method domain.Method // TRYOUT или PICKUP
}

// Response модель ответа
// Заполнено либо Slots (OK), либо статус ошибки; при ошибке Slots пустой
type Response struct {
	Slots  []domain.TimeSlot
	Status Status
}

// View состояние списка слотов для отображения
type View struct {
	Date    string
	Method  domain.Method
	Loading bool
	Status  Status
	Slots   []domain.TimeSlot // уже отфильтрованные
	Message string            // пусто, если показывать нечего
	Hint    string            // подсказка выбрать другой способ
}

// Message сообщение для пользователя по статусу и количеству видимых слотов
// "Все прошли" и "бэкенд ничего не вернул" выглядят одинаково
func Message(status Status, visible int) string {
	switch status {
	case StatusNotFound:
		return msgNotFound
	case StatusServer:
		return msgServerError
	case StatusNetwork:
		return msgNetwork
	case StatusOK, StatusEmpty:
		if visible == 0 {
			return msgNoSlots
		}
		return ""
	default:
		return ""
	}
}

// Hint подсказка для примерки без свободных слотов
func Hint(method domain.Method, status Status, visible int) string {
	if method != domain.MethodTryout || visible > 0 {
		return ""
	}
	if status == StatusIdle || status == StatusNetwork {
		return ""
	}
	return msgTryPickup
}
