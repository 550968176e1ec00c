package book_appointment

import (
	"context"

	"github.com/m04kA/SMC-AppointmentBot/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error)
}

// ChatClient интерфейс клиента для отправки сообщений в чат
type ChatClient interface {
	SendMessage(ctx context.Context, userID int64, text string) error
}

// MailClient интерфейс клиента для отправки почтовых уведомлений
type MailClient interface {
	Send(ctx context.Context, to, subject, body string) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
