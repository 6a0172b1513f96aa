package middleware

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
)

// LoggingMiddleware логирует каждый запрос: метод, путь, код ответа и длительность
// 5xx пишутся как ошибки, 4xx как предупреждения
func LoggingMiddleware(logger Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := newStatusRecorder(w)

			next.ServeHTTP(rec, r)

			elapsed := time.Since(start)
			switch {
			case rec.status >= http.StatusInternalServerError:
				logger.Error("%s %s - status=%d duration=%s", r.Method, r.URL.Path, rec.status, elapsed)
			case rec.status >= http.StatusBadRequest:
				logger.Warn("%s %s - status=%d duration=%s", r.Method, r.URL.Path, rec.status, elapsed)
			default:
				logger.Info("%s %s - status=%d duration=%s", r.Method, r.URL.Path, rec.status, elapsed)
			}
		})
	}
}
