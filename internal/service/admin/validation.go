package admin

import (
	"fmt"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-playground/validator/v10"

	"github.com/m04kA/SMC-BookingPortal/internal/domain"
)

// guideMIMETypes допустимые типы файла накладной
var guideMIMETypes = []string{"application/pdf", "image/png", "image/jpeg"}

var validate = validator.New()

func validateDate(date string) error {
	if err := validate.Var(date, "required,datetime=2006-01-02"); err != nil {
		return fmt.Errorf("%w: date must be YYYY-MM-DD", ErrInvalidInput)
	}
	return nil
}

func validateID(id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: id must be positive", ErrInvalidInput)
	}
	return nil
}

// validatePatch проверяет частичное обновление записи
func validatePatch(p domain.AppointmentPatch) error {
	if p.IsEmpty() {
		return fmt.Errorf("%w: nothing to update", ErrInvalidInput)
	}

	if p.Status != nil {
		switch *p.Status {
		case domain.AppointmentPending, domain.AppointmentConfirmed, domain.AppointmentShipped,
			domain.AppointmentCompleted, domain.AppointmentCancelled:
		default:
			return fmt.Errorf("%w: unknown status %q", ErrInvalidInput, *p.Status)
		}
	}
	if p.Date != nil {
		if err := validateDate(*p.Date); err != nil {
			return err
		}
	}
	if p.StartTime != nil {
		if err := p.StartTime.Validate(); err != nil {
			return fmt.Errorf("%w: start time: %v", ErrInvalidInput, err)
		}
	}
	if p.EndTime != nil {
		if err := p.EndTime.Validate(); err != nil {
			return fmt.Errorf("%w: end time: %v", ErrInvalidInput, err)
		}
	}
	if p.StartTime != nil && p.EndTime != nil && !p.StartTime.IsBefore(*p.EndTime) {
		return fmt.Errorf("%w: start time must be before end time", ErrInvalidInput)
	}
	if p.Product != nil && strings.TrimSpace(*p.Product) == "" {
		return fmt.Errorf("%w: product cannot be empty", ErrInvalidInput)
	}
	return nil
}

// validateShipment проверяет поля отправки для конкретной службы
// INTERRAPIDISIMO: номер накладной; PICAP: ссылка на поездку http(s)
func validateShipment(info domain.ShipmentInfo) error {
	switch info.Carrier {
	case domain.CarrierInterrapidisimo:
		if strings.TrimSpace(info.TrackingNumber) == "" {
			return fmt.Errorf("%w: tracking number is required for %s", ErrInvalidInput, info.Carrier)
		}
	case domain.CarrierPicap:
		if err := validate.Var(info.TripLink, "required,http_url"); err != nil {
			return fmt.Errorf("%w: trip link must be an http(s) URL for %s", ErrInvalidInput, info.Carrier)
		}
	default:
		return fmt.Errorf("%w: unknown carrier %q", ErrInvalidInput, info.Carrier)
	}

	if info.Cost != nil && *info.Cost < 0 {
		return fmt.Errorf("%w: cost cannot be negative", ErrInvalidInput)
	}
	return nil
}

// detectGuide проверяет размер и содержимое файла, возвращает определенный MIME тип
// Заявленный клиентом тип не учитывается
func detectGuide(file domain.GuideFile) (string, error) {
	if len(file.Data) == 0 {
		return "", fmt.Errorf("%w: guide file is empty", ErrInvalidInput)
	}
	if len(file.Data) > domain.MaxGuideFileBytes {
		return "", fmt.Errorf("%w: guide file exceeds %d bytes", ErrInvalidInput, domain.MaxGuideFileBytes)
	}

	detected := mimetype.Detect(file.Data)
	for _, allowed := range guideMIMETypes {
		if detected.Is(allowed) {
			return allowed, nil
		}
	}
	return "", fmt.Errorf("%w: unsupported guide type %s", ErrInvalidInput, detected.String())
}

// validateWindow проверяет окно доступности
func validateWindow(w domain.AvailabilityWindow) error {
	if err := validateDate(w.Date); err != nil {
		return err
	}
	if !w.Type.NeedsSlot() {
		return fmt.Errorf("%w: window type must be TRYOUT or PICKUP", ErrInvalidInput)
	}
	if err := w.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: start time: %v", ErrInvalidInput, err)
	}
	if err := w.EndTime.Validate(); err != nil {
		return fmt.Errorf("%w: end time: %v", ErrInvalidInput, err)
	}
	if !w.StartTime.IsBefore(w.EndTime) {
		return fmt.Errorf("%w: start time must be before end time", ErrInvalidInput)
	}

	if err := validate.Var(w.SlotMinutes, fmt.Sprintf("min=%d,max=%d", domain.MinWindowSlotMinutes, domain.MaxWindowSlotMinutes)); err != nil {
		return fmt.Errorf("%w: slot size must be between %d and %d minutes",
			ErrInvalidInput, domain.MinWindowSlotMinutes, domain.MaxWindowSlotMinutes)
	}
	if w.SlotMinutes > w.DurationMinutes() {
		return fmt.Errorf("%w: slot size is longer than the window", ErrInvalidInput)
	}
	return nil
}

// normalizeIDs убирает дубликаты с сохранением порядка
func normalizeIDs(ids []int64) ([]int64, error) {
	if len(ids) == 0 {
		return nil, fmt.Errorf("%w: ids list is empty", ErrInvalidInput)
	}

	seen := make(map[int64]struct{}, len(ids))
	result := make([]int64, 0, len(ids))
	for _, id := range ids {
		if err := validateID(id); err != nil {
			return nil, err
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		result = append(result, id)
	}
	return result, nil
}
