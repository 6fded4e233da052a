package admin_windows

import (
	"github.com/m04kA/SMC-BookingPortal/internal/domain"
	"github.com/m04kA/SMC-BookingPortal/pkg/types"
)

// ListQuery query параметры списка
type ListQuery struct {
	Date string `schema:"date"`
}

// WindowRequest HTTP request model
type WindowRequest struct {
	Date        string `json:"date"`
	Type        string `json:"type"` // TRYOUT | PICKUP
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
	SlotMinutes int    `json:"slotMinutes"`
}

// WindowResponse HTTP response model
type WindowResponse struct {
	ID          int64  `json:"id"`
	Date        string `json:"date"`
	Type        string `json:"type"`
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
	SlotMinutes int    `json:"slotMinutes"`
	SlotCount   int    `json:"slotCount"`
}

// ToDomain конвертирует запрос в окно доступности
func (r *WindowRequest) ToDomain(id int64) (domain.AvailabilityWindow, error) {
	method, err := domain.ParseMethod(r.Type)
	if err != nil {
		return domain.AvailabilityWindow{}, err
	}
	start, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return domain.AvailabilityWindow{}, err
	}
	end, err := types.NewTimeStringFromString(r.EndTime)
	if err != nil {
		return domain.AvailabilityWindow{}, err
	}
	return domain.AvailabilityWindow{
		ID:          id,
		Date:        r.Date,
		Type:        method,
		StartTime:   start,
		EndTime:     end,
		SlotMinutes: r.SlotMinutes,
	}, nil
}

// FromWindow конвертирует окно в HTTP response
func FromWindow(w *domain.AvailabilityWindow) *WindowResponse {
	return &WindowResponse{
		ID:          w.ID,
		Date:        w.Date,
		Type:        w.Type.String(),
		StartTime:   w.StartTime.String(),
		EndTime:     w.EndTime.String(),
		SlotMinutes: w.SlotMinutes,
		SlotCount:   w.SlotCount(),
	}
}

// FromWindows конвертирует список
func FromWindows(list []domain.AvailabilityWindow) []*WindowResponse {
	result := make([]*WindowResponse, len(list))
	for i := range list {
		result[i] = FromWindow(&list[i])
	}
	return result
}
