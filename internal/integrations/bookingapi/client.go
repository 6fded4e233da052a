package bookingapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	headerAdminToken = "X-Admin-Token"
	headerRequestID  = "X-Request-ID"

	maxResponseBytes = 10 << 20
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент для работы с API записей магазина
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// Option настройка клиента
type Option func(*Client)

// WithTransport подменяет транспорт (метрики, тесты)
func WithTransport(rt http.RoundTripper) Option {
	return func(c *Client) {
		c.httpClient.Transport = rt
	}
}

// NewClient создает новый экземпляр клиента
// timeout = 0 означает отсутствие таймаута на уровне клиента
func NewClient(baseURL string, timeout time.Duration, log Logger, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// call описание одного запроса к бэкенду
type call struct {
	method string
	path   string
	query  url.Values
	body   interface{}
	token  string
}

// do выполняет запрос и разбирает конверт {ok, error, meta, data}
// Успех: HTTP 2xx и ok=true. Иначе возвращается одна из ошибок пакета
func (c *Client) do(ctx context.Context, rq call) (*envelope, error) {
	endpoint := c.baseURL + rq.path
	if len(rq.query) > 0 {
		endpoint += "?" + rq.query.Encode()
	}

	var body io.Reader
	if rq.body != nil {
		payload, err := json.Marshal(rq.body)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to encode request: %v", ErrInternal, err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, rq.method, endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Accept", "application/json")
	if rq.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set(headerRequestID, uuid.NewString())
	if rq.token != "" {
		req.Header.Set(headerAdminToken, rq.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %s: %v", ErrUnavailable, rq.method, rq.path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %v", ErrUnavailable, err)
	}

	var env envelope
	decodeErr := json.Unmarshal(raw, &env)

	// 401/403 без бизнес-кода: токен не принят. С кодом это отказ (*APIError),
	// который все равно распознается как ErrUnauthorized через errors.Is
	if isAuthStatus(resp.StatusCode) && (decodeErr != nil || env.Error == "") {
		return nil, fmt.Errorf("%w: %s %s: status %d", ErrUnauthorized, rq.method, rq.path, resp.StatusCode)
	}

	if err := decodeErr; err != nil {
		if resp.StatusCode == http.StatusNotFound {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: %s %s: status %d, non-JSON body: %v",
			ErrInvalidResponse, rq.method, rq.path, resp.StatusCode, err)
	}

	success := resp.StatusCode >= 200 && resp.StatusCode < 300
	switch {
	case success && env.OK:
		return &env, nil
	case env.Error != "" || success:
		// Бизнес-ошибка: ok=false с кодом, либо 2xx с ok=false
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Code:       env.Error,
			Message:    env.Message,
			Meta:       env.Meta,
		}
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrNotFound
	default:
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: truncate(string(raw), 256)}
	}
}

// decodeData разбирает поле data конверта
func decodeData(env *envelope, dst interface{}) error {
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return fmt.Errorf("%w: missing data", ErrInvalidResponse)
	}
	if err := json.Unmarshal(env.Data, dst); err != nil {
		return fmt.Errorf("%w: failed to decode data: %v", ErrInvalidResponse, err)
	}
	return nil
}

// IsTransport true для ошибок связи и разбора ответа
func IsTransport(err error) bool {
	return errors.Is(err, ErrUnavailable) || errors.Is(err, ErrInvalidResponse) || errors.Is(err, ErrInternal)
}

func isAuthStatus(code int) bool {
	return code == http.StatusUnauthorized || code == http.StatusForbidden
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
