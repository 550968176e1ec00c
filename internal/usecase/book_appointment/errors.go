package book_appointment

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("book_appointment: invalid input data")

	// ErrPersistence возвращается, когда запись не удалось сохранить
	// Бронирование не считается подтверждённым, уведомления не отправляются
	ErrPersistence = errors.New("book_appointment: failed to persist appointment")
)
