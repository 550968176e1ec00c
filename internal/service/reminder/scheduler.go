package reminder

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentBot/internal/domain"
	"github.com/m04kA/SMC-AppointmentBot/pkg/metrics"
)

const (
	subjectReminder = "🔔 Appointment Reminder"

	reminderChatTemplate = "🔔 Reminder: Appointment at %s"
	reminderMailTemplate = "Hi %s,\n\nThis is a reminder for your appointment:\n🕒 %s\n\nThanks!"
)

// Scheduler фоновый планировщик напоминаний
//
// Раз в tick сканирует хранилище и отправляет напоминания по записям,
// попавшим в окно (now, now+lookahead]. Каждая запись напоминается ровно
// один раз: после отправки она помечается reminded_at и дальше пропускается.
// Ошибка отметки даёт максимум один дубль на следующем тике.
//
// Цикл не завершается на транзиентных ошибках; останавливается только
// отменой контекста.
type Scheduler struct {
	apptRepo     AppointmentRepository
	chatClient   ChatClient
	mailClient   MailClient
	metrics      *metrics.Metrics // nil, если метрики выключены
	timeProvider TimeProvider
	logger       Logger

	tickInterval time.Duration
	lookahead    time.Duration
}

// NewScheduler создает новый экземпляр планировщика
// При нулевых интервалах используются значения по умолчанию
func NewScheduler(
	apptRepo AppointmentRepository,
	chatClient ChatClient,
	mailClient MailClient,
	m *metrics.Metrics,
	logger Logger,
	tickInterval time.Duration,
	lookahead time.Duration,
) *Scheduler {
	if tickInterval <= 0 {
		tickInterval = domain.DefaultTickInterval
	}
	if lookahead <= 0 {
		lookahead = domain.DefaultReminderLookahead
	}

	return &Scheduler{
		apptRepo:     apptRepo,
		chatClient:   chatClient,
		mailClient:   mailClient,
		metrics:      m,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
		tickInterval: tickInterval,
		lookahead:    lookahead,
	}
}

// Run запускает цикл напоминаний; блокируется до отмены контекста
func (s *Scheduler) Run(ctx context.Context) {
	s.logger.Info("ReminderScheduler: started, tick=%s, lookahead=%s", s.tickInterval, s.lookahead)

	ticker := time.NewTicker(s.tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("ReminderScheduler: stopped")
			return
		case <-ticker.C:
			s.runTick(ctx)
		}
	}
}

// runTick выполняет один цикл сканирования и отправки напоминаний
func (s *Scheduler) runTick(ctx context.Context) {
	if s.metrics != nil {
		s.metrics.ReminderTicksTotal.Inc()
	}

	now := s.timeProvider.Now()
	windowEnd := now.Add(s.lookahead)

	appointments, err := s.apptRepo.ListByScheduledAt(ctx)
	if err != nil {
		// Ошибка чтения не фатальна: тик пропускается, цикл продолжается
		s.logger.Error("ReminderScheduler: failed to list appointments, skipping tick: %v", err)
		return
	}

	for _, appt := range appointments {
		if appt.IsReminded() {
			continue
		}
		if !appt.IsDueWithin(now, windowEnd) {
			// Список отсортирован по scheduled_at: всё после конца окна
			// заведомо вне окна
			if appt.ScheduledAt.After(windowEnd) {
				break
			}
			continue
		}

		s.remind(ctx, appt, now)
	}
}

// remind отправляет напоминания по одной записи и помечает её
// Ошибка отправки одной записи не блокирует остальные записи тика
func (s *Scheduler) remind(ctx context.Context, appt *domain.Appointment, now time.Time) {
	when := appt.FormattedScheduledAt()
	failed := false

	chatMsg := fmt.Sprintf(reminderChatTemplate, when)
	if err := s.chatClient.SendMessage(ctx, appt.UserID, chatMsg); err != nil {
		s.logger.Error("ReminderScheduler: failed to send chat reminder for appointment id=%d: %v", appt.ID, err)
		failed = true
	}

	mailBody := fmt.Sprintf(reminderMailTemplate, appt.DisplayName, when)
	if err := s.mailClient.Send(ctx, appt.Email, subjectReminder, mailBody); err != nil {
		s.logger.Error("ReminderScheduler: failed to send mail reminder for appointment id=%d: %v", appt.ID, err)
		failed = true
	}

	if s.metrics != nil {
		if failed {
			s.metrics.ReminderSendFailuresTotal.Inc()
		} else {
			s.metrics.RemindersSentTotal.Inc()
		}
	}

	if err := s.apptRepo.MarkReminded(ctx, appt.ID, now); err != nil {
		s.logger.Error("ReminderScheduler: failed to mark appointment id=%d as reminded: %v", appt.ID, err)
		return
	}

	s.logger.Info("ReminderScheduler: reminded appointment id=%d scheduled at %s", appt.ID, when)
}
