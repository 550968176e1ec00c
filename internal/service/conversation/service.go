package conversation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/m04kA/SMC-AppointmentBot/internal/domain"
	bookAppointment "github.com/m04kA/SMC-AppointmentBot/internal/usecase/book_appointment"
)

const (
	msgWelcome         = "👋 Welcome! Use /book to schedule an appointment."
	msgHelp            = "📅 Use /book to book an appointment.\n❌ Use /cancel to stop."
	msgCancelled       = "❌ Booking cancelled."
	msgAskEmail        = "📧 Please enter your email:"
	msgAskDateTime     = "🕒 Enter appointment datetime (YYYY-MM-DD HH:MM):"
	msgInvalidDateTime = "❗ Format should be YYYY-MM-DD HH:MM. Try again."
	msgBookingFailed   = "❗ Booking failed, please try again."
)

// Update входящее событие от chat transport
type Update struct {
	UserID    int64
	Username  string
	FirstName string
	Text      string
}

// DisplayName возвращает имя для сообщений: username, иначе имя, иначе id
func (u Update) DisplayName() string {
	if u.Username != "" {
		return u.Username
	}
	if u.FirstName != "" {
		return u.FirstName
	}
	return fmt.Sprintf("user %d", u.UserID)
}

// Service конечный автомат диалога бронирования
//
// Владеет сессиями всех пользователей. Переходы одного пользователя строго
// последовательны (per-user mutex), диалоги разных пользователей независимы
// и выполняются параллельно.
type Service struct {
	booker     Booker
	chatClient ChatClient
	logger     Logger

	mu       sync.Mutex
	sessions map[int64]*Session
	locks    map[int64]*sync.Mutex
}

// NewService создает новый экземпляр диалогового сервиса
func NewService(booker Booker, chatClient ChatClient, logger Logger) *Service {
	return &Service{
		booker:     booker,
		chatClient: chatClient,
		logger:     logger,
		sessions:   make(map[int64]*Session),
		locks:      make(map[int64]*sync.Mutex),
	}
}

// HandleUpdate обрабатывает одно входящее событие
//
// Все диалоговые исходы (невалидный ввод, ошибка записи) обрабатываются
// внутри — пользователь получает ответ в чат. Ошибка возвращается только
// на некорректное событие.
func (s *Service) HandleUpdate(ctx context.Context, upd Update) error {
	if upd.UserID <= 0 {
		return ErrInvalidUpdate
	}

	// Сериализуем переходы одного пользователя
	lock := s.userLock(upd.UserID)
	lock.Lock()
	defer lock.Unlock()

	text := strings.TrimSpace(upd.Text)

	if strings.HasPrefix(text, "/") {
		s.handleCommand(ctx, upd, text)
		return nil
	}

	s.handleText(ctx, upd, text)
	return nil
}

// handleCommand обрабатывает команды /start, /help, /book, /cancel
func (s *Service) handleCommand(ctx context.Context, upd Update, command string) {
	switch command {
	case "/start":
		s.reply(ctx, upd.UserID, msgWelcome)

	case "/help":
		s.reply(ctx, upd.UserID, msgHelp)

	case "/book":
		// /book поверх незавершённого диалога начинает его заново
		s.setSession(upd.UserID, &Session{State: StateAwaitingEmail})
		s.logger.Info("Conversation: user=%d started booking dialog", upd.UserID)
		s.reply(ctx, upd.UserID, msgAskEmail)

	case "/cancel":
		if s.discardSession(upd.UserID) {
			s.logger.Info("Conversation: user=%d cancelled booking dialog", upd.UserID)
			s.reply(ctx, upd.UserID, msgCancelled)
		}

	default:
		s.logger.Warn("Conversation: user=%d sent unknown command %s", upd.UserID, command)
	}
}

// handleText обрабатывает свободный текст в рамках активной сессии
func (s *Service) handleText(ctx context.Context, upd Update, text string) {
	session, ok := s.session(upd.UserID)
	if !ok {
		// Текст вне диалога игнорируется
		return
	}

	switch session.State {
	case StateAwaitingEmail:
		// Email принимается как есть, без синтаксической валидации
		if text == "" {
			s.reply(ctx, upd.UserID, msgAskEmail)
			return
		}
		session.Email = text
		session.State = StateAwaitingDateTime
		s.reply(ctx, upd.UserID, msgAskDateTime)

	case StateAwaitingDateTime:
		s.handleDateTime(ctx, upd, session, text)
	}
}

// handleDateTime обрабатывает ввод даты: терминальный переход диалога
func (s *Service) handleDateTime(ctx context.Context, upd Update, session *Session, text string) {
	scheduledAt, err := time.Parse(domain.DateTimeFormat, text)
	if err != nil {
		// Невалидный ввод: переспрашиваем, собранный email сохраняется
		s.logger.Warn("Conversation: user=%d sent invalid datetime %q", upd.UserID, text)
		s.reply(ctx, upd.UserID, msgInvalidDateTime)
		return
	}

	_, err = s.booker.Execute(ctx, &bookAppointment.Request{
		UserID:      upd.UserID,
		DisplayName: upd.DisplayName(),
		Email:       session.Email,
		ScheduledAt: scheduledAt,
	})
	if err != nil {
		if errors.Is(err, bookAppointment.ErrPersistence) {
			// Запись не сохранилась — переход прерван, сессия остаётся,
			// пользователь может повторить ввод
			s.logger.Error("Conversation: user=%d booking failed: %v", upd.UserID, err)
			s.reply(ctx, upd.UserID, msgBookingFailed)
			return
		}
		s.logger.Error("Conversation: user=%d unexpected booking error: %v", upd.UserID, err)
		s.reply(ctx, upd.UserID, msgBookingFailed)
		return
	}

	// Диалог завершён, сессия уничтожается
	s.discardSession(upd.UserID)
	s.logger.Info("Conversation: user=%d completed booking dialog", upd.UserID)
}

// reply отправляет ответ в чат; доставка best-effort
func (s *Service) reply(ctx context.Context, userID int64, text string) {
	if err := s.chatClient.SendMessage(ctx, userID, text); err != nil {
		s.logger.Error("Conversation: failed to send message to user=%d: %v", userID, err)
	}
}

// Работа с сессиями

func (s *Service) session(userID int64) (*Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[userID]
	return session, ok
}

func (s *Service) setSession(userID int64, session *Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[userID] = session
}

// discardSession удаляет сессию пользователя; возвращает true, если сессия была
func (s *Service) discardSession(userID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.sessions[userID]
	delete(s.sessions, userID)
	return ok
}

// userLock возвращает мьютекс переходов конкретного пользователя
func (s *Service) userLock(userID int64) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.locks[userID]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[userID] = lock
	}
	return lock
}
