package book_appointment

import "time"

// Request модель запроса на создание записи
type Request struct {
	UserID      int64     // Telegram ID пользователя
	DisplayName string    // username или имя пользователя
	Email       string    // email, как его ввёл пользователь
	ScheduledAt time.Time // время приёма, уже распарсенное из YYYY-MM-DD HH:MM
}

// Response модель ответа с созданной записью
type Response struct {
	ID          int64
	UserID      int64
	DisplayName string
	Email       string
	ScheduledAt time.Time
	CreatedAt   time.Time
}
