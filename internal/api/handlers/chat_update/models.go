package chat_update

import "github.com/m04kA/SMC-AppointmentBot/internal/service/conversation"

// ChatUpdateRequest входящее событие от chat transport
type ChatUpdateRequest struct {
	UserID    int64  `json:"userId"`
	Username  string `json:"username,omitempty"`
	FirstName string `json:"firstName,omitempty"`
	Text      string `json:"text"`
}

// StatusResponse ответ об успешной обработке события
type StatusResponse struct {
	Status string `json:"status"`
}

// ToServiceUpdate конвертирует HTTP запрос в модель диалогового сервиса
func (r *ChatUpdateRequest) ToServiceUpdate() conversation.Update {
	return conversation.Update{
		UserID:    r.UserID,
		Username:  r.Username,
		FirstName: r.FirstName,
		Text:      r.Text,
	}
}
