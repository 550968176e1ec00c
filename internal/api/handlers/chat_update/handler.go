package chat_update

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AppointmentBot/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentBot/internal/service/conversation"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidUpdate      = "некорректное событие"
)

type Handler struct {
	service ConversationService
	logger  Logger
}

func NewHandler(service ConversationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/webhook/update
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req ChatUpdateRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /webhook/update - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	err := h.service.HandleUpdate(r.Context(), req.ToServiceUpdate())
	if err != nil {
		switch {
		case errors.Is(err, conversation.ErrInvalidUpdate):
			h.logger.Warn("POST /webhook/update - Invalid update: user_id=%d", req.UserID)
			handlers.RespondBadRequest(w, msgInvalidUpdate)

		default:
			h.logger.Error("POST /webhook/update - Failed to handle update: user_id=%d, error=%v", req.UserID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, StatusResponse{Status: "ok"})
}
