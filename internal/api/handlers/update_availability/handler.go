package update_availability

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/Arunkino/MindHaven-Backend/internal/api/handlers"
	"github.com/Arunkino/MindHaven-Backend/internal/api/handlers/create_availability"
	"github.com/Arunkino/MindHaven-Backend/internal/api/middleware"
	generateSlots "github.com/Arunkino/MindHaven-Backend/internal/usecase/generate_slots"
)

const (
	msgInvalidRuleID      = "некорректный ID правила"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidTime        = "некорректный формат времени или даты, ожидается HH:MM и YYYY-MM-DD"
	msgInvalidRule        = "некорректное окно доступности: начало должно быть раньше конца, день недели 0..6"
	msgNotMentor          = "пользователь не является ментором"
	msgRuleNotFound       = "правило доступности не найдено"
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

// Handle PUT /api/v1/availabilities/{ruleId}
// Незабронированные слоты правила пересоздаются, забронированные и заблокированные сохраняются
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())

	ruleID, err := strconv.ParseInt(mux.Vars(r)["ruleId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /availabilities/{id} - Invalid rule ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRuleID)
		return
	}

	// Тело запроса совпадает с созданием окна
	var req create_availability.AvailabilityRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /availabilities/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(userID, &ruleID)
	if err != nil {
		h.logger.Warn("PUT /availabilities/{id} - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, generateSlots.ErrInvalidRule):
			h.logger.Warn("PUT /availabilities/{id} - Invalid rule: rule_id=%d", ruleID)
			handlers.RespondBadRequest(w, msgInvalidRule)

		case errors.Is(err, generateSlots.ErrNotMentor):
			h.logger.Warn("PUT /availabilities/{id} - Not a mentor: user_id=%d", userID)
			handlers.RespondForbidden(w, msgNotMentor)

		case errors.Is(err, generateSlots.ErrRuleNotFound):
			h.logger.Warn("PUT /availabilities/{id} - Rule not found: rule_id=%d, user_id=%d", ruleID, userID)
			handlers.RespondNotFound(w, msgRuleNotFound)

		case errors.Is(err, generateSlots.ErrRuleExists):
			h.logger.Warn("PUT /availabilities/{id} - Rule exists: rule_id=%d", ruleID)
			handlers.RespondConflict(w, msgRuleExists)

		default:
			h.logger.Error("PUT /availabilities/{id} - Failed to update availability: rule_id=%d, error=%v", ruleID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /availabilities/{id} - Availability updated: rule_id=%d, created=%d, skipped=%d",
		ruleID, len(result.CreatedSlots), result.SkippedCount)
	handlers.RespondJSON(w, http.StatusOK, create_availability.FromUseCaseResponse(result))
}
