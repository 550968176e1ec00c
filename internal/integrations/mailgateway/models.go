package mailgateway

// SendMailRequest запрос на отправку письма
type SendMailRequest struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// ErrorResponse модель ошибки от mail gateway
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
