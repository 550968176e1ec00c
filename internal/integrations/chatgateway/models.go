package chatgateway

// SendMessageRequest запрос на отправку сообщения в чат
type SendMessageRequest struct {
	UserID int64  `json:"user_id"`
	Text   string `json:"text"`
}

// ErrorResponse модель ошибки от chat gateway
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
