package middleware

import (
	"net/http"

	"golang.org/x/time/rate"
)

// RateLimit ограничивает частоту запросов к обернутому обработчику.
// Используется на проверке билетов: сканеры на входе могут
// срабатывать сериями
func RateLimit(rps float64, burst int) func(http.Handler) http.Handler {
	limiter := rate.NewLimiter(rate.Limit(rps), burst)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				_, _ = w.Write([]byte(`{"error": "слишком много запросов"}`))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
