package appointments

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-AppointmentBot/internal/service/appointments/models"
)

// Service сервис чтения записей для отчётов и дашборда
type Service struct {
	apptRepo AppointmentRepository
	logger   Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(apptRepo AppointmentRepository, logger Logger) *Service {
	return &Service{
		apptRepo: apptRepo,
		logger:   logger,
	}
}

// List возвращает все записи, отсортированные по времени приёма
func (s *Service) List(ctx context.Context) (*models.AppointmentListResponse, error) {
	appointments, err := s.apptRepo.ListByScheduledAt(ctx)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d appointments", len(appointments))
	return models.FromDomainAppointmentList(appointments), nil
}
