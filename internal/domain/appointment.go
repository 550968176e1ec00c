package domain

import "time"

// Appointment represents a booked appointment in the system
type Appointment struct {
	ID          int64
	UserID      int64  // Telegram ID пользователя
	DisplayName string // username или имя — только для сообщений, не ключ
	Email       string // хранится как ввёл пользователь, без валидации формата
	ScheduledAt time.Time

	// RemindedAt заполняется планировщиком после отправки напоминания,
	// чтобы напоминание уходило ровно один раз
	RemindedAt *time.Time

	CreatedAt time.Time
}

// IsDueWithin returns true if the appointment falls inside the reminder
// window (now, windowEnd]
func (a *Appointment) IsDueWithin(now, windowEnd time.Time) bool {
	return a.ScheduledAt.After(now) && !a.ScheduledAt.After(windowEnd)
}

// IsReminded returns true if a reminder has already been sent
func (a *Appointment) IsReminded() bool {
	return a.RemindedAt != nil
}

// FormattedScheduledAt returns the appointment time in the user-facing format
func (a *Appointment) FormattedScheduledAt() string {
	return a.ScheduledAt.Format(DateTimeFormat)
}
