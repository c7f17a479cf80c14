package join_call

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/Arunkino/MindHaven-Backend/internal/api/handlers"
	"github.com/Arunkino/MindHaven-Backend/internal/api/middleware"
	callSession "github.com/Arunkino/MindHaven-Backend/internal/usecase/call_session"
)

const (
	msgInvalidCallID    = "некорректный ID звонка"
	msgNotFound         = "встреча для звонка не найдена"
	msgForbidden        = "пользователь не участник встречи"
	msgAlreadyFinalized = "встреча уже завершена или отменена"
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

// Handle POST /api/v1/calls/{videoCallId}/join
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())

	videoCallID, err := uuid.Parse(mux.Vars(r)["videoCallId"])
	if err != nil {
		h.logger.Warn("POST /calls/{id}/join - Invalid call ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCallID)
		return
	}

	result, err := h.useCase.RecordJoin(r.Context(), &callSession.JoinRequest{
		VideoCallID: videoCallID,
		UserID:      userID,
	})
	if err != nil {
		switch {
		case errors.Is(err, callSession.ErrAppointmentNotFound):
			h.logger.Warn("POST /calls/{id}/join - Appointment not found: call=%s", videoCallID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, callSession.ErrUnauthorized):
			h.logger.Warn("POST /calls/{id}/join - Not a participant: call=%s, user_id=%d", videoCallID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, callSession.ErrAlreadyFinalized):
			h.logger.Warn("POST /calls/{id}/join - Already finalized: call=%s", videoCallID)
			handlers.RespondConflict(w, msgAlreadyFinalized)

		default:
			h.logger.Error("POST /calls/{id}/join - Failed to record join: call=%s, error=%v", videoCallID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /calls/{id}/join - Joined: call=%s, user_id=%d, role=%s, started=%t",
		videoCallID, userID, result.Role, result.CallStarted)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
