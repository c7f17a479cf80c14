package create_availability

import (
	"errors"
	"net/http"

	"github.com/Arunkino/MindHaven-Backend/internal/api/handlers"
	"github.com/Arunkino/MindHaven-Backend/internal/api/middleware"
	generateSlots "github.com/Arunkino/MindHaven-Backend/internal/usecase/generate_slots"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidTime        = "некорректный формат времени или даты, ожидается HH:MM и YYYY-MM-DD"
	msgInvalidRule        = "некорректное окно доступности: начало должно быть раньше конца, день недели 0..6"
	msgNotMentor          = "пользователь не является ментором"
	msgRuleExists         = "окно с таким временем уже существует"
)

type Handler struct {
	useCase GenerateSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GenerateSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/availabilities
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())

	var req AvailabilityRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /availabilities - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(userID, nil)
	if err != nil {
		h.logger.Warn("POST /availabilities - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, generateSlots.ErrInvalidRule):
			h.logger.Warn("POST /availabilities - Invalid rule: user_id=%d", userID)
			handlers.RespondBadRequest(w, msgInvalidRule)

		case errors.Is(err, generateSlots.ErrNotMentor):
			h.logger.Warn("POST /availabilities - Not a mentor: user_id=%d", userID)
			handlers.RespondForbidden(w, msgNotMentor)

		case errors.Is(err, generateSlots.ErrRuleExists):
			h.logger.Warn("POST /availabilities - Rule exists: user_id=%d", userID)
			handlers.RespondConflict(w, msgRuleExists)

		default:
			h.logger.Error("POST /availabilities - Failed to create availability: user_id=%d, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /availabilities - Availability saved: rule_id=%d, user_id=%d, created=%d, skipped=%d",
		result.Rule.ID, userID, len(result.CreatedSlots), result.SkippedCount)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
