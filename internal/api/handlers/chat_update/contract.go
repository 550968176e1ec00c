package chat_update

import (
	"context"

	"github.com/m04kA/SMC-AppointmentBot/internal/service/conversation"
)

// ConversationService интерфейс диалогового сервиса
type ConversationService interface {
	HandleUpdate(ctx context.Context, upd conversation.Update) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
