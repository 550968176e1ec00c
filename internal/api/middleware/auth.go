package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AppointmentBot/internal/api/handlers"
)

// WebhookSecretHeader заголовок с общим секретом chat transport
const WebhookSecretHeader = "X-Webhook-Secret"

// Auth проверяет общий секрет входящих вебхуков
// Запрос без корректного секрета отклоняется с 401
func Auth(secret string) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			provided := r.Header.Get(WebhookSecretHeader)
			if subtle.ConstantTimeCompare([]byte(provided), []byte(secret)) != 1 {
				handlers.RespondUnauthorized(w, "отсутствует или неверный секрет вебхука")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
