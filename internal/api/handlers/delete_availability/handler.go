package delete_availability

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/Arunkino/MindHaven-Backend/internal/api/handlers"
	"github.com/Arunkino/MindHaven-Backend/internal/api/middleware"
	"github.com/Arunkino/MindHaven-Backend/internal/service/availability"
)

const (
	msgInvalidRuleID  = "некорректный ID правила"
	msgNotMentor      = "пользователь не является ментором"
	msgRuleNotFound   = "правило доступности не найдено"
	msgHasBookedSlots = "у правила есть забронированные слоты"
	msgHasHistory     = "у правила есть история встреч"
)

type Handler struct {
	service AvailabilityService
	logger  Logger
}

func NewHandler(service AvailabilityService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/availabilities/{ruleId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())

	ruleID, err := strconv.ParseInt(mux.Vars(r)["ruleId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /availabilities/{id} - Invalid rule ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRuleID)
		return
	}

	err = h.service.DeleteRule(r.Context(), ruleID, userID)
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrNotMentor):
			h.logger.Warn("DELETE /availabilities/{id} - Not a mentor: user_id=%d", userID)
			handlers.RespondForbidden(w, msgNotMentor)

		case errors.Is(err, availability.ErrRuleNotFound):
			h.logger.Warn("DELETE /availabilities/{id} - Rule not found: rule_id=%d, user_id=%d", ruleID, userID)
			handlers.RespondNotFound(w, msgRuleNotFound)

		case errors.Is(err, availability.ErrRuleHasBookedSlots):
			h.logger.Warn("DELETE /availabilities/{id} - Rule has booked slots: rule_id=%d", ruleID)
			handlers.RespondConflict(w, msgHasBookedSlots)

		case errors.Is(err, availability.ErrRuleHasHistory):
			h.logger.Warn("DELETE /availabilities/{id} - Rule has history: rule_id=%d", ruleID)
			handlers.RespondConflict(w, msgHasHistory)

		default:
			h.logger.Error("DELETE /availabilities/{id} - Failed to delete rule: rule_id=%d, error=%v", ruleID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /availabilities/{id} - Rule deleted: rule_id=%d, user_id=%d", ruleID, userID)
	w.WriteHeader(http.StatusNoContent)
}
