package book_appointment

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-AppointmentBot/internal/domain"
)

const (
	subjectConfirmation = "✅ Appointment Confirmation"

	confirmationChatTemplate = "✅ Hi %s, your appointment is confirmed for %s."
	confirmationMailTemplate = "Hi %s,\n\nYour appointment is confirmed:\n🕒 %s\n📧 %s\n\nThanks!"
	adminSubjectTemplate     = "📥 New Booking by %s"
)

// UseCase use case завершения бронирования: сохранение записи и уведомления
//
// Порядок побочных эффектов строгий: сначала запись в хранилище, и только
// после успешной записи — уведомления. Ошибка записи прерывает переход и
// возвращается вызывающей стороне. Ошибки уведомлений логируются и никогда
// не отменяют уже сохранённое бронирование.
type UseCase struct {
	apptRepo   AppointmentRepository
	chatClient ChatClient
	mailClient MailClient
	adminEmail string
	logger     Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	apptRepo AppointmentRepository,
	chatClient ChatClient,
	mailClient MailClient,
	adminEmail string,
	logger Logger,
) *UseCase {
	return &UseCase{
		apptRepo:   apptRepo,
		chatClient: chatClient,
		mailClient: mailClient,
		adminEmail: adminEmail,
		logger:     logger,
	}
}

// Execute выполняет use case создания записи на приём
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("BookAppointment: user=%d, name=%s, scheduled_at=%s",
		req.UserID, req.DisplayName, req.ScheduledAt.Format(domain.DateTimeFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("BookAppointment: validation failed: %v", err)
		return nil, err
	}

	// 2. Сохраняем запись
	appt := &domain.Appointment{
		UserID:      req.UserID,
		DisplayName: req.DisplayName,
		Email:       req.Email,
		ScheduledAt: req.ScheduledAt,
	}

	created, err := uc.apptRepo.Create(ctx, appt)
	if err != nil {
		uc.logger.Error("BookAppointment: failed to create appointment for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	uc.logger.Info("BookAppointment: successfully created appointment id=%d", created.ID)

	// 3. Уведомления — только после успешной записи, best-effort
	uc.notify(ctx, created)

	return &Response{
		ID:          created.ID,
		UserID:      created.UserID,
		DisplayName: created.DisplayName,
		Email:       created.Email,
		ScheduledAt: created.ScheduledAt,
		CreatedAt:   created.CreatedAt,
	}, nil
}

// notify отправляет подтверждение пользователю и уведомление администратору
// Ошибки доставки логируются и не влияют на результат бронирования
func (uc *UseCase) notify(ctx context.Context, appt *domain.Appointment) {
	when := appt.FormattedScheduledAt()

	chatMsg := fmt.Sprintf(confirmationChatTemplate, appt.DisplayName, when)
	if err := uc.chatClient.SendMessage(ctx, appt.UserID, chatMsg); err != nil {
		uc.logger.Error("BookAppointment: failed to send chat confirmation to user=%d: %v", appt.UserID, err)
	}

	mailBody := fmt.Sprintf(confirmationMailTemplate, appt.DisplayName, when, appt.Email)

	if err := uc.mailClient.Send(ctx, appt.Email, subjectConfirmation, mailBody); err != nil {
		uc.logger.Error("BookAppointment: failed to send confirmation mail to %s: %v", appt.Email, err)
	}

	adminSubject := fmt.Sprintf(adminSubjectTemplate, appt.DisplayName)
	if err := uc.mailClient.Send(ctx, uc.adminEmail, adminSubject, mailBody); err != nil {
		uc.logger.Error("BookAppointment: failed to send admin notification to %s: %v", uc.adminEmail, err)
	}
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.Email == "" {
		return fmt.Errorf("%w: email must not be empty", ErrInvalidInput)
	}

	if req.ScheduledAt.IsZero() {
		return fmt.Errorf("%w: scheduledAt must be set", ErrInvalidInput)
	}

	return nil
}
