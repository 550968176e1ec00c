package reminder

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AppointmentBot/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	ListByScheduledAt(ctx context.Context) ([]*domain.Appointment, error)
	MarkReminded(ctx context.Context, id int64, at time.Time) error
}

// ChatClient интерфейс клиента для отправки сообщений в чат
type ChatClient interface {
	SendMessage(ctx context.Context, userID int64, text string) error
}

// MailClient интерфейс клиента для отправки почтовых уведомлений
type MailClient interface {
	Send(ctx context.Context, to, subject, body string) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
