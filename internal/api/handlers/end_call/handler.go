package end_call

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/Arunkino/MindHaven-Backend/internal/api/handlers"
	"github.com/Arunkino/MindHaven-Backend/internal/api/middleware"
	"github.com/Arunkino/MindHaven-Backend/internal/service/appointments/models"
	callSession "github.com/Arunkino/MindHaven-Backend/internal/usecase/call_session"
)

const (
	msgInvalidCallID      = "некорректный ID звонка"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDuration    = "длительность звонка не может быть отрицательной"
	msgNotFound           = "встреча для звонка не найдена"
	msgForbidden          = "пользователь не участник встречи"
	msgAlreadyEnded       = "звонок уже завершен"
	msgAlreadyFinalized   = "встреча отменена"
)

type Handler struct {
	useCase CallSessionUseCase
	logger  Logger
}

func NewHandler(useCase CallSessionUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/calls/{videoCallId}/end
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())

	videoCallID, err := uuid.Parse(mux.Vars(r)["videoCallId"])
	if err != nil {
		h.logger.Warn("POST /calls/{id}/end - Invalid call ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCallID)
		return
	}

	var req EndCallRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /calls/{id}/end - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.RecordCallEnd(r.Context(), &callSession.EndRequest{
		VideoCallID:     videoCallID,
		UserID:          userID,
		DurationSeconds: req.DurationSeconds,
	})
	if err != nil {
		switch {
		case errors.Is(err, callSession.ErrInvalidDuration):
			h.logger.Warn("POST /calls/{id}/end - Invalid duration: call=%s, duration=%d", videoCallID, req.DurationSeconds)
			handlers.RespondBadRequest(w, msgInvalidDuration)

		case errors.Is(err, callSession.ErrAppointmentNotFound):
			h.logger.Warn("POST /calls/{id}/end - Appointment not found: call=%s", videoCallID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, callSession.ErrUnauthorized):
			h.logger.Warn("POST /calls/{id}/end - Not a participant: call=%s, user_id=%d", videoCallID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, callSession.ErrAlreadyEnded):
			h.logger.Warn("POST /calls/{id}/end - Already ended: call=%s", videoCallID)
			handlers.RespondConflict(w, msgAlreadyEnded)

		case errors.Is(err, callSession.ErrAlreadyFinalized):
			h.logger.Warn("POST /calls/{id}/end - Already finalized: call=%s", videoCallID)
			handlers.RespondConflict(w, msgAlreadyFinalized)

		default:
			h.logger.Error("POST /calls/{id}/end - Failed to end call: call=%s, error=%v", videoCallID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /calls/{id}/end - Call ended: call=%s, user_id=%d, duration=%d",
		videoCallID, userID, req.DurationSeconds)
	handlers.RespondJSON(w, http.StatusOK, models.FromDomainAppointment(result.Appointment))
}
