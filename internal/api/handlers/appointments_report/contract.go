package appointments_report

import (
	"context"

	"github.com/m04kA/SMC-AppointmentBot/internal/service/appointments/models"
)

// AppointmentsService интерфейс сервиса чтения записей
type AppointmentsService interface {
	List(ctx context.Context) (*models.AppointmentListResponse, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
