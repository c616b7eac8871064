package middleware

import (
	"net/http"
	"time"
)

// RequestRecorder принимает наблюдения о завершенных запросах
type RequestRecorder interface {
	ObserveRequest(method, route string, status int, duration time.Duration)
}

// MetricsMiddleware учитывает запросы по шаблону маршрута chi, а не по пути
func MetricsMiddleware(recorder RequestRecorder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			wrapped := wrapResponseWriter(w)

			next.ServeHTTP(wrapped, r)

			// Шаблон известен только после маршрутизации
			recorder.ObserveRequest(r.Method, routePattern(r), wrapped.statusCode, time.Since(start))
		})
	}
}
