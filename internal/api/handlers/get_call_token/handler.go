package get_call_token

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/Arunkino/MindHaven-Backend/internal/api/handlers"
	"github.com/Arunkino/MindHaven-Backend/internal/api/middleware"
	"github.com/Arunkino/MindHaven-Backend/internal/service/appointments"
)

const (
	msgInvalidCallID = "некорректный ID звонка"
	msgNotFound      = "встреча для звонка не найдена"
	msgForbidden     = "пользователь не участник встречи"
	msgCallNotActive = "звонок завершен или отменен"
	msgTokenProvider = "не удалось получить токен видеозвонка"
)

type Handler struct {
	service AppointmentService
	logger  Logger
}

func NewHandler(service AppointmentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/calls/{videoCallId}/token
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())

	videoCallID, err := uuid.Parse(mux.Vars(r)["videoCallId"])
	if err != nil {
		h.logger.Warn("GET /calls/{id}/token - Invalid call ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCallID)
		return
	}

	result, err := h.service.GetCallToken(r.Context(), videoCallID, userID)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrAppointmentNotFound):
			h.logger.Warn("GET /calls/{id}/token - Appointment not found: call=%s", videoCallID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, appointments.ErrAccessDenied):
			h.logger.Warn("GET /calls/{id}/token - Not a participant: call=%s, user_id=%d", videoCallID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, appointments.ErrCallNotActive):
			h.logger.Warn("GET /calls/{id}/token - Call not active: call=%s", videoCallID)
			handlers.RespondConflict(w, msgCallNotActive)

		case errors.Is(err, appointments.ErrTokenProvider):
			h.logger.Error("GET /calls/{id}/token - Token provider failed: call=%s, error=%v", videoCallID, err)
			handlers.RespondBadGateway(w, msgTokenProvider)

		default:
			h.logger.Error("GET /calls/{id}/token - Failed to issue token: call=%s, error=%v", videoCallID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /calls/{id}/token - Token issued: call=%s, user_id=%d", videoCallID, userID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
