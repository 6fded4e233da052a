package middleware

import (
	"net/http"
	"strconv"

	"github.com/felixge/httpsnoop"
	"github.com/gorilla/mux"
)

// HTTPMetrics интерфейс учета HTTP запросов (реализуется metrics.Metrics)
type HTTPMetrics interface {
	ObserveHTTP(method, route, status string, seconds float64)
}

// MetricsMiddleware считает запросы по шаблону маршрута, а не по фактическому пути
// httpsnoop сохраняет http.Flusher, поэтому SSE-поток продолжает работать
func MetricsMiddleware(m HTTPMetrics) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			snoop := httpsnoop.CaptureMetrics(next, w, r)
			m.ObserveHTTP(r.Method, routeTemplate(r), strconv.Itoa(snoop.Code), snoop.Duration.Seconds())
		})
	}
}

func routeTemplate(r *http.Request) string {
	route := mux.CurrentRoute(r)
	if route == nil {
		return "unmatched"
	}
	tpl, err := route.GetPathTemplate()
	if err != nil {
		return "unknown"
	}
	return tpl
}
