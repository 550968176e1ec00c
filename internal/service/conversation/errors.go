package conversation

import "errors"

var (
	// ErrInvalidUpdate возвращается при некорректном входящем событии
	ErrInvalidUpdate = errors.New("conversation: invalid update")
)
