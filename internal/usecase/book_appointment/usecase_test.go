package book_appointment_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentBot/internal/domain"
	bookAppointment "github.com/m04kA/SMC-AppointmentBot/internal/usecase/book_appointment"
)

type fakeRepo struct {
	created []*domain.Appointment
	err     error
}

func (f *fakeRepo) Create(_ context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	if f.err != nil {
		return nil, f.err
	}
	appt.ID = int64(len(f.created) + 1)
	appt.CreatedAt = time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	f.created = append(f.created, appt)
	return appt, nil
}

type chatMessage struct {
	userID int64
	text   string
}

type fakeChat struct {
	messages []chatMessage
	err      error
}

func (f *fakeChat) SendMessage(_ context.Context, userID int64, text string) error {
	if f.err != nil {
		return f.err
	}
	f.messages = append(f.messages, chatMessage{userID: userID, text: text})
	return nil
}

type mail struct {
	to      string
	subject string
	body    string
}

type fakeMail struct {
	mails []mail
	err   error
}

func (f *fakeMail) Send(_ context.Context, to, subject, body string) error {
	if f.err != nil {
		return f.err
	}
	f.mails = append(f.mails, mail{to: to, subject: subject, body: body})
	return nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

const adminEmail = "admin@example.com"

func newUseCase(repo *fakeRepo, chat *fakeChat, mailClient *fakeMail) *bookAppointment.UseCase {
	return bookAppointment.NewUseCase(repo, chat, mailClient, adminEmail, nopLogger{})
}

func validRequest() *bookAppointment.Request {
	return &bookAppointment.Request{
		UserID:      42,
		DisplayName: "alice",
		Email:       "alice@example.com",
		ScheduledAt: time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC),
	}
}

func TestExecuteCreatesAppointment(t *testing.T) {
	repo := &fakeRepo{}
	chat := &fakeChat{}
	mailClient := &fakeMail{}
	uc := newUseCase(repo, chat, mailClient)

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	require.Len(t, repo.created, 1)
	created := repo.created[0]
	assert.Equal(t, int64(42), created.UserID)
	assert.Equal(t, "alice", created.DisplayName)
	assert.Equal(t, "alice@example.com", created.Email)
	assert.Equal(t, "2025-06-01 09:00", created.FormattedScheduledAt())

	assert.Equal(t, created.ID, resp.ID)
	assert.Equal(t, created.ScheduledAt, resp.ScheduledAt)
}

func TestExecuteSendsConfirmations(t *testing.T) {
	repo := &fakeRepo{}
	chat := &fakeChat{}
	mailClient := &fakeMail{}
	uc := newUseCase(repo, chat, mailClient)

	_, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	// Одно сообщение в чат — подтверждение пользователю
	require.Len(t, chat.messages, 1)
	assert.Equal(t, int64(42), chat.messages[0].userID)
	assert.Contains(t, chat.messages[0].text, "alice")
	assert.Contains(t, chat.messages[0].text, "2025-06-01 09:00")

	// Два письма: пользователю и администратору
	require.Len(t, mailClient.mails, 2)
	assert.Equal(t, "alice@example.com", mailClient.mails[0].to)
	assert.Equal(t, "✅ Appointment Confirmation", mailClient.mails[0].subject)
	assert.Equal(t, adminEmail, mailClient.mails[1].to)
	assert.Equal(t, "📥 New Booking by alice", mailClient.mails[1].subject)
	assert.Contains(t, mailClient.mails[1].body, "alice@example.com")
}

func TestExecutePersistenceFailureAbortsNotifications(t *testing.T) {
	repo := &fakeRepo{err: errors.New("connection refused")}
	chat := &fakeChat{}
	mailClient := &fakeMail{}
	uc := newUseCase(repo, chat, mailClient)

	_, err := uc.Execute(context.Background(), validRequest())
	require.Error(t, err)
	assert.ErrorIs(t, err, bookAppointment.ErrPersistence)

	// Запись не сохранилась — уведомления не отправляются
	assert.Empty(t, chat.messages)
	assert.Empty(t, mailClient.mails)
}

func TestExecuteNotificationFailureDoesNotFailBooking(t *testing.T) {
	repo := &fakeRepo{}
	chat := &fakeChat{err: errors.New("chat gateway down")}
	mailClient := &fakeMail{err: errors.New("mail gateway down")}
	uc := newUseCase(repo, chat, mailClient)

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	assert.NotZero(t, resp.ID)
	assert.Len(t, repo.created, 1)
}

func TestExecuteValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*bookAppointment.Request)
	}{
		{"zero user id", func(r *bookAppointment.Request) { r.UserID = 0 }},
		{"negative user id", func(r *bookAppointment.Request) { r.UserID = -5 }},
		{"empty email", func(r *bookAppointment.Request) { r.Email = "" }},
		{"zero scheduled at", func(r *bookAppointment.Request) { r.ScheduledAt = time.Time{} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeRepo{}
			uc := newUseCase(repo, &fakeChat{}, &fakeMail{})

			req := validRequest()
			tt.mutate(req)

			_, err := uc.Execute(context.Background(), req)
			require.Error(t, err)
			assert.ErrorIs(t, err, bookAppointment.ErrInvalidInput)
			assert.Empty(t, repo.created)
		})
	}
}
