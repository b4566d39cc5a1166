package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/sirupsen/logrus"

	"github.com/taskdeck/taskdeck/internal/api/response"
	"github.com/taskdeck/taskdeck/internal/domain"
)

// Recovery catches panics and returns a 500 envelope.
func Recovery(log *logrus.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					log.WithFields(logrus.Fields{
						"panic": err,
						"stack": string(debug.Stack()),
					}).Error("panic recovered")
					response.Error(w, domain.NewInternalError(nil))
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
