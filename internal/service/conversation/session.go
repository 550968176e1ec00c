package conversation

// State шаг диалога бронирования
type State int

const (
	// StateAwaitingEmail ожидание email после команды /book
	StateAwaitingEmail State = iota + 1

	// StateAwaitingDateTime ожидание даты и времени приёма
	StateAwaitingDateTime
)

// Session состояние диалога одного пользователя
//
// Сессия существует только в памяти и только на время диалога: она создается
// командой /book и уничтожается при завершении или отмене. Терминальные
// состояния не хранятся — завершённый диалог это отсутствие сессии.
type Session struct {
	State State
	Email string // собранный email, заполняется при выходе из StateAwaitingEmail
}
