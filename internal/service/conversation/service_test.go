package conversation_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentBot/internal/domain"
	"github.com/m04kA/SMC-AppointmentBot/internal/service/conversation"
	bookAppointment "github.com/m04kA/SMC-AppointmentBot/internal/usecase/book_appointment"
)

type chatMessage struct {
	userID int64
	text   string
}

type fakeChat struct {
	messages []chatMessage
}

func (f *fakeChat) SendMessage(_ context.Context, userID int64, text string) error {
	f.messages = append(f.messages, chatMessage{userID: userID, text: text})
	return nil
}

func (f *fakeChat) lastMessage(t *testing.T) chatMessage {
	t.Helper()
	require.NotEmpty(t, f.messages)
	return f.messages[len(f.messages)-1]
}

type fakeBooker struct {
	requests []*bookAppointment.Request
	err      error
}

func (f *fakeBooker) Execute(_ context.Context, req *bookAppointment.Request) (*bookAppointment.Response, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.requests = append(f.requests, req)
	return &bookAppointment.Response{
		ID:          int64(len(f.requests)),
		UserID:      req.UserID,
		DisplayName: req.DisplayName,
		Email:       req.Email,
		ScheduledAt: req.ScheduledAt,
	}, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func send(t *testing.T, svc *conversation.Service, userID int64, text string) {
	t.Helper()
	err := svc.HandleUpdate(context.Background(), conversation.Update{
		UserID:   userID,
		Username: "alice",
		Text:     text,
	})
	require.NoError(t, err)
}

func TestStartAndHelpCommands(t *testing.T) {
	chat := &fakeChat{}
	svc := conversation.NewService(&fakeBooker{}, chat, nopLogger{})

	send(t, svc, 1, "/start")
	assert.Contains(t, chat.lastMessage(t).text, "Welcome")

	send(t, svc, 1, "/help")
	assert.Contains(t, chat.lastMessage(t).text, "/book")
}

func TestBookDialogHappyPath(t *testing.T) {
	chat := &fakeChat{}
	booker := &fakeBooker{}
	svc := conversation.NewService(booker, chat, nopLogger{})

	send(t, svc, 7, "/book")
	assert.Contains(t, chat.lastMessage(t).text, "email")

	send(t, svc, 7, "alice@example.com")
	assert.Contains(t, chat.lastMessage(t).text, "YYYY-MM-DD HH:MM")

	send(t, svc, 7, "2025-06-01 09:00")

	require.Len(t, booker.requests, 1)
	req := booker.requests[0]
	assert.Equal(t, int64(7), req.UserID)
	assert.Equal(t, "alice", req.DisplayName)
	assert.Equal(t, "alice@example.com", req.Email)
	assert.Equal(t, time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC), req.ScheduledAt)

	// Диалог завершён: свободный текст снова игнорируется
	before := len(chat.messages)
	send(t, svc, 7, "thanks!")
	assert.Len(t, chat.messages, before)
}

func TestInvalidDateTimeRetainsSession(t *testing.T) {
	chat := &fakeChat{}
	booker := &fakeBooker{}
	svc := conversation.NewService(booker, chat, nopLogger{})

	send(t, svc, 7, "/book")
	send(t, svc, 7, "alice@example.com")

	for _, input := range []string{"tomorrow", "2024-13-01 10:00", "2024-01-01", "10:00 2024-01-01"} {
		send(t, svc, 7, input)
		assert.Contains(t, chat.lastMessage(t).text, "YYYY-MM-DD HH:MM", "input %q must be rejected", input)
		assert.Empty(t, booker.requests, "input %q must not persist anything", input)
	}

	// Собранный email переживает невалидные попытки
	send(t, svc, 7, "2025-06-01 09:00")
	require.Len(t, booker.requests, 1)
	assert.Equal(t, "alice@example.com", booker.requests[0].Email)
}

func TestCancelDiscardsSession(t *testing.T) {
	chat := &fakeChat{}
	booker := &fakeBooker{}
	svc := conversation.NewService(booker, chat, nopLogger{})

	send(t, svc, 7, "/book")
	send(t, svc, 7, "old@example.com")
	send(t, svc, 7, "/cancel")
	assert.Contains(t, chat.lastMessage(t).text, "cancelled")

	// Новый /book начинает с чистого листа: первый текст — это email
	send(t, svc, 7, "/book")
	send(t, svc, 7, "new@example.com")
	send(t, svc, 7, "2025-06-01 09:00")

	require.Len(t, booker.requests, 1)
	assert.Equal(t, "new@example.com", booker.requests[0].Email)
}

func TestCancelWithoutSessionIsSilent(t *testing.T) {
	chat := &fakeChat{}
	svc := conversation.NewService(&fakeBooker{}, chat, nopLogger{})

	send(t, svc, 7, "/cancel")
	assert.Empty(t, chat.messages)
}

func TestTextOutsideDialogIgnored(t *testing.T) {
	chat := &fakeChat{}
	booker := &fakeBooker{}
	svc := conversation.NewService(booker, chat, nopLogger{})

	send(t, svc, 7, "hello there")
	assert.Empty(t, chat.messages)
	assert.Empty(t, booker.requests)
}

func TestEmptyEmailReprompts(t *testing.T) {
	chat := &fakeChat{}
	svc := conversation.NewService(&fakeBooker{}, chat, nopLogger{})

	send(t, svc, 7, "/book")
	send(t, svc, 7, "   ")
	assert.Contains(t, chat.lastMessage(t).text, "email")
}

func TestPersistenceFailureKeepsSession(t *testing.T) {
	chat := &fakeChat{}
	booker := &fakeBooker{err: fmt.Errorf("%w: db down", bookAppointment.ErrPersistence)}
	svc := conversation.NewService(booker, chat, nopLogger{})

	send(t, svc, 7, "/book")
	send(t, svc, 7, "alice@example.com")
	send(t, svc, 7, "2025-06-01 09:00")
	assert.Contains(t, chat.lastMessage(t).text, "failed")

	// Сессия сохранилась: повтор ввода после восстановления БД завершает диалог
	booker.err = nil
	send(t, svc, 7, "2025-06-01 09:00")
	require.Len(t, booker.requests, 1)
	assert.Equal(t, "alice@example.com", booker.requests[0].Email)
}

func TestBookOverwritesExistingSession(t *testing.T) {
	chat := &fakeChat{}
	booker := &fakeBooker{}
	svc := conversation.NewService(booker, chat, nopLogger{})

	send(t, svc, 7, "/book")
	send(t, svc, 7, "old@example.com")
	send(t, svc, 7, "/book")
	send(t, svc, 7, "new@example.com")
	send(t, svc, 7, "2025-06-01 09:00")

	require.Len(t, booker.requests, 1)
	assert.Equal(t, "new@example.com", booker.requests[0].Email)
}

func TestDisplayNameFallsBackToFirstName(t *testing.T) {
	booker := &fakeBooker{}
	svc := conversation.NewService(booker, &fakeChat{}, nopLogger{})

	sendUpd := func(text string) {
		err := svc.HandleUpdate(context.Background(), conversation.Update{
			UserID:    9,
			FirstName: "Bob",
			Text:      text,
		})
		require.NoError(t, err)
	}

	sendUpd("/book")
	sendUpd("bob@example.com")
	sendUpd("2025-06-01 09:00")

	require.Len(t, booker.requests, 1)
	assert.Equal(t, "Bob", booker.requests[0].DisplayName)
}

func TestInvalidUpdateRejected(t *testing.T) {
	svc := conversation.NewService(&fakeBooker{}, &fakeChat{}, nopLogger{})

	err := svc.HandleUpdate(context.Background(), conversation.Update{UserID: 0, Text: "/start"})
	assert.ErrorIs(t, err, conversation.ErrInvalidUpdate)
}

// Сквозной сценарий с настоящим use case: /book → email → дата
// даёт ровно одно подтверждение в чат, одно письмо администратору
// и одну сохранённую запись
func TestEndToEndBookingFlow(t *testing.T) {
	repo := &fakeRepo{}
	chat := &fakeChat{}
	mailClient := &fakeMail{}

	uc := bookAppointment.NewUseCase(repo, chat, mailClient, "admin@example.com", nopLogger{})
	svc := conversation.NewService(uc, chat, nopLogger{})

	send(t, svc, 7, "/book")
	send(t, svc, 7, "alice@example.com")
	send(t, svc, 7, "2025-06-01 09:00")

	// Ровно одна сохранённая запись с введёнными значениями
	require.Len(t, repo.created, 1)
	created := repo.created[0]
	assert.Equal(t, int64(7), created.UserID)
	assert.Equal(t, "alice@example.com", created.Email)
	assert.Equal(t, "2025-06-01 09:00", created.FormattedScheduledAt())

	// Три сообщения в чат: два промпта и одно подтверждение
	require.Len(t, chat.messages, 3)
	assert.Contains(t, chat.messages[2].text, "confirmed for 2025-06-01 09:00")

	// Два письма: подтверждение пользователю и уведомление администратору
	require.Len(t, mailClient.mails, 2)
	assert.Equal(t, "alice@example.com", mailClient.mails[0].to)
	assert.Equal(t, "admin@example.com", mailClient.mails[1].to)
	assert.Contains(t, mailClient.mails[1].subject, "New Booking by alice")
}

type fakeRepo struct {
	created []*domain.Appointment
}

func (f *fakeRepo) Create(_ context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	appt.ID = int64(len(f.created) + 1)
	f.created = append(f.created, appt)
	return appt, nil
}

type mailEntry struct {
	to      string
	subject string
	body    string
}

type fakeMail struct {
	mails []mailEntry
}

func (f *fakeMail) Send(_ context.Context, to, subject, body string) error {
	f.mails = append(f.mails, mailEntry{to: to, subject: subject, body: body})
	return nil
}
