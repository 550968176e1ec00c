package conversation

import (
	"context"

	bookAppointment "github.com/m04kA/SMC-AppointmentBot/internal/usecase/book_appointment"
)

// Booker интерфейс use case завершения бронирования
type Booker interface {
	Execute(ctx context.Context, req *bookAppointment.Request) (*bookAppointment.Response, error)
}

// ChatClient интерфейс клиента для отправки сообщений в чат
type ChatClient interface {
	SendMessage(ctx context.Context, userID int64, text string) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
