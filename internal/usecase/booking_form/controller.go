package booking_form

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/m04kA/SMC-BookingPortal/internal/domain"
	"github.com/m04kA/SMC-BookingPortal/internal/integrations/bookingapi"
)

// Controller форма бронирования: черновик, ошибки валидации и отправка
// Один экземпляр на одну форму; методы безопасны для конкурентного вызова
type Controller struct {
	client       AppointmentClient
	slots        SlotSource
	metrics      MetricsRecorder
	location     *time.Location
	timeProvider TimeProvider
	logger       Logger

	mu      sync.Mutex
	draft   domain.ReservationDraft
	errors  domain.ValidationErrors
	notice  *Notice
	pending bool
}

// NewController создает форму с пустым черновиком
func NewController(
	client AppointmentClient,
	slots SlotSource,
	metrics MetricsRecorder,
	location *time.Location,
	logger Logger,
) *Controller {
	if location == nil {
		location = time.UTC
	}
	return &Controller{
		client:       client,
		slots:        slots,
		metrics:      metrics,
		location:     location,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
		draft:        domain.EmptyDraft(),
		errors:       domain.ValidationErrors{},
	}
}

// WithTimeProvider подменяет источник времени (для тестов)
func (c *Controller) WithTimeProvider(tp TimeProvider) *Controller {
	c.timeProvider = tp
	return c
}

func (c *Controller) now() time.Time {
	return c.timeProvider.Now().In(c.location)
}

// Load заменяет черновик целиком (форма, пришедшая от клиента)
// Ошибки и уведомление сбрасываются; слоты загружаются для нового черновика
func (c *Controller) Load(ctx context.Context, draft domain.ReservationDraft) {
	if draft.Method == "" {
		draft.Method = domain.MethodTryout
	}

	c.mu.Lock()
	c.draft = draft
	c.errors = domain.ValidationErrors{}
	c.notice = nil
	c.mu.Unlock()

	c.refreshSlots(ctx, draft.Date, draft.Method)
}

// SetMethod меняет способ; выбранный слот сбрасывается
func (c *Controller) SetMethod(ctx context.Context, m domain.Method) {
	c.mu.Lock()
	c.draft.Method = m
	c.draft.Slot = nil
	c.errors.Clear(domain.FieldSlot)
	if m != domain.MethodShipping {
		c.errors.Clear(domain.ShippingFields...)
	}
	date := c.draft.Date
	c.mu.Unlock()

	c.refreshSlots(ctx, date, m)
}

// SetDate меняет дату; выбранный слот сбрасывается
func (c *Controller) SetDate(ctx context.Context, date string) {
	date = strings.TrimSpace(date)

	c.mu.Lock()
	c.draft.Date = date
	c.draft.Slot = nil
	c.errors.Clear(domain.FieldDate, domain.FieldSlot)
	method := c.draft.Method
	c.mu.Unlock()

	c.refreshSlots(ctx, date, method)
}

// SelectSlot выбирает слот из доступных на текущий момент
func (c *Controller) SelectSlot(slot domain.TimeSlot) error {
	c.mu.Lock()
	method := c.draft.Method
	c.mu.Unlock()

	if !method.NeedsSlot() {
		return ErrSlotNotNeeded
	}
	if !c.slots.Contains(slot, c.now()) {
		return fmt.Errorf("%w: %s-%s", ErrSlotUnavailable, slot.Start, slot.End)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	selected := slot
	c.draft.Slot = &selected
	c.errors.Clear(domain.FieldSlot)
	return nil
}

// SetField меняет текстовое поле клиента или доставки
// Город и служба доставки меняются через SetCity и SetCarrier
func (c *Controller) SetField(field domain.Field, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch field {
	case domain.FieldFullName:
		c.draft.Customer.FullName = value
	case domain.FieldIDNumber:
		c.draft.Customer.IDNumber = value
	case domain.FieldPhone:
		c.draft.Customer.Phone = value
	case domain.FieldEmail:
		c.draft.Customer.Email = value
	case domain.FieldProduct:
		c.draft.Customer.Product = value
	case domain.FieldNotes:
		c.draft.Customer.Notes = value
	case domain.FieldAddress:
		c.draft.Shipping.Address = value
	case domain.FieldNeighborhood:
		c.draft.Shipping.Neighborhood = value
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}

	c.errors.Clear(field)
	return nil
}

// SetCity меняет город доставки и пересчитывает набор служб
// Служба, которой нет в новом наборе, сбрасывается
func (c *Controller) SetCity(city string) domain.CarrierSet {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.draft.Shipping.City = city
	c.errors.Clear(domain.FieldCity)
	return c.reconcileCarrier()
}

// reconcileCarrier сбрасывает службу, которой нет в наборе текущего города
// Вызывается под c.mu
func (c *Controller) reconcileCarrier() domain.CarrierSet {
	city := c.draft.Shipping.City
	carriers := domain.CarriersForCity(city)
	if c.draft.Shipping.Carrier != "" && !carriers.Contains(c.draft.Shipping.Carrier) {
		c.logger.Info("BookingForm: carrier %s is not offered in %q, clearing", c.draft.Shipping.Carrier, city)
		c.draft.Shipping.Carrier = ""
	}
	return carriers
}

// SetCarrier выбирает службу доставки из набора для текущего города
func (c *Controller) SetCarrier(carrier domain.Carrier) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !domain.CarriersForCity(c.draft.Shipping.City).Contains(carrier) {
		return fmt.Errorf("%w: %s in %q", ErrCarrierNotOffered, carrier, c.draft.Shipping.City)
	}
	c.draft.Shipping.Carrier = carrier
	c.errors.Clear(domain.FieldCarrier)
	return nil
}

// Validate проверяет черновик без изменения состояния
func (c *Controller) Validate() domain.ValidationErrors {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draft.Validate()
}

// Pending true, пока выполняется отправка
func (c *Controller) Pending() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pending
}

// Draft копия текущего черновика
func (c *Controller) Draft() domain.ReservationDraft {
	c.mu.Lock()
	defer c.mu.Unlock()
	return copyDraft(c.draft)
}

// Errors копия текущих ошибок валидации
func (c *Controller) Errors() domain.ValidationErrors {
	c.mu.Lock()
	defer c.mu.Unlock()
	return copyErrors(c.errors)
}

// Notice текущее уведомление (nil, если его нет)
func (c *Controller) Notice() *Notice {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.notice == nil {
		return nil
	}
	n := *c.notice
	return &n
}

// Snapshot состояние формы целиком
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	s := Snapshot{
		Draft:    copyDraft(c.draft),
		Errors:   copyErrors(c.errors),
		Pending:  c.pending,
		Carriers: domain.CarriersForCity(c.draft.Shipping.City),
	}
	if c.notice != nil {
		n := *c.notice
		s.Notice = &n
	}
	c.mu.Unlock()

	s.Slots = c.slots.View(c.now())
	return s
}

// Submit валидирует и отправляет черновик
// Ошибки бэкенда не возвращаются: они отражаются в уведомлении и состоянии формы.
// Ошибка возвращается только при повторном вызове во время отправки
func (c *Controller) Submit(ctx context.Context) (Outcome, error) {
	c.mu.Lock()
	if c.pending {
		c.mu.Unlock()
		return "", ErrSubmitInFlight
	}

	// 1. Валидация: при ошибках запрос не отправляется
	errs := c.draft.Validate()
	if !errs.Valid() {
		c.errors = errs
		c.notice = &Notice{Kind: NoticeError, Message: msgFixFields}
		c.mu.Unlock()
		c.logger.Info("BookingForm: submit blocked by %d validation errors", len(errs))
		c.observe(string(OutcomeInvalid))
		return OutcomeInvalid, nil
	}

	// 2. Нормализованный запрос для выбранного варианта
	payload := c.draft.Payload()
	req := payload.Normalize()
	c.errors = domain.ValidationErrors{}
	c.notice = nil
	c.pending = true
	c.mu.Unlock()

	// 3. Единственная точка ожидания
	err := c.client.CreateAppointment(ctx, req)

	c.mu.Lock()
	c.pending = false

	// 4. Успех: черновик сбрасывается
	if err == nil {
		c.draft = domain.EmptyDraft()
		c.errors = domain.ValidationErrors{}
		c.notice = successNotice(payload.Method())
		c.mu.Unlock()

		c.slots.Clear()
		c.logger.Info("BookingForm: appointment created type=%s date=%s", req.TypeCode, req.Date)
		c.observe(string(OutcomeSuccess))
		return OutcomeSuccess, nil
	}

	// 5. Ошибка: черновик сохраняется
	var apiErr *bookingapi.APIError
	if !errors.As(err, &apiErr) {
		c.notice = &Notice{Kind: NoticeError, Message: msgNetwork}
		c.mu.Unlock()

		c.logger.Error("BookingForm: failed to submit appointment: %v", err)
		c.observe(string(OutcomeNetwork))
		return OutcomeNetwork, nil
	}

	code := domain.ParseErrorCode(apiErr.Code)
	c.notice = rejectionNotice(code, domain.LimitScope(apiErr.MetaString("scope")))

	refresh := code.InvalidatesSlot()
	if refresh {
		c.draft.Slot = nil
	}
	date, method := c.draft.Date, c.draft.Method
	c.mu.Unlock()

	c.logger.Warn("BookingForm: appointment rejected code=%s (raw %q)", code.Label(), apiErr.Code)
	c.observe(code.Label())

	if refresh {
		c.refreshSlots(ctx, date, method)
	}
	return OutcomeRejected, nil
}

// LookupCustomer дозаполняет пустые поля данными из предыдущих записей
// Введенные пользователем значения не перезаписываются; "не найден" и ошибки связи не показываются
func (c *Controller) LookupCustomer(ctx context.Context, idNumber string) bool {
	idNumber = strings.TrimSpace(idNumber)
	if idNumber == "" {
		return false
	}

	profile, err := c.client.GetCustomerByID(ctx, idNumber)
	if err != nil {
		if !errors.Is(err, bookingapi.ErrNotFound) {
			c.logger.Warn("BookingForm: customer lookup failed: %v", err)
		}
		return false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	fill := func(dst *string, value string, field domain.Field) {
		if strings.TrimSpace(*dst) == "" && value != "" {
			*dst = value
			c.errors.Clear(field)
		}
	}
	fill(&c.draft.Customer.IDNumber, idNumber, domain.FieldIDNumber)
	fill(&c.draft.Customer.FullName, profile.CustomerName, domain.FieldFullName)
	fill(&c.draft.Customer.Phone, profile.CustomerPhone, domain.FieldPhone)
	fill(&c.draft.Customer.Email, profile.CustomerEmail, domain.FieldEmail)
	fill(&c.draft.Shipping.Address, profile.ShippingAddress, domain.FieldAddress)
	fill(&c.draft.Shipping.Neighborhood, profile.ShippingNeighborhood, domain.FieldNeighborhood)
	fill(&c.draft.Shipping.City, profile.ShippingCity, domain.FieldCity)
	c.reconcileCarrier()

	return true
}

func (c *Controller) refreshSlots(ctx context.Context, date string, method domain.Method) {
	if date == "" || !method.NeedsSlot() {
		c.slots.Clear()
		return
	}
	c.slots.Refresh(ctx, date, method)
}

func (c *Controller) observe(outcome string) {
	if c.metrics != nil {
		c.metrics.ObserveSubmission(outcome)
	}
}

func copyDraft(d domain.ReservationDraft) domain.ReservationDraft {
	if d.Slot != nil {
		s := *d.Slot
		d.Slot = &s
	}
	return d
}

func copyErrors(errs domain.ValidationErrors) domain.ValidationErrors {
	out := make(domain.ValidationErrors, len(errs))
	for k, v := range errs {
		out[k] = v
	}
	return out
}
