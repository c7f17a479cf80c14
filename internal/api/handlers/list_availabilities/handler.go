package list_availabilities

import (
	"errors"
	"net/http"

	"github.com/Arunkino/MindHaven-Backend/internal/api/handlers"
	"github.com/Arunkino/MindHaven-Backend/internal/api/middleware"
	"github.com/Arunkino/MindHaven-Backend/internal/service/availability"
)

const (
	msgNotMentor = "пользователь не является ментором"
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

// Handle GET /api/v1/availabilities
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())

	result, err := h.service.ListRules(r.Context(), userID)
	if err != nil {
		if errors.Is(err, availability.ErrNotMentor) {
			h.logger.Warn("GET /availabilities - Not a mentor: user_id=%d", userID)
			handlers.RespondForbidden(w, msgNotMentor)
			return
		}
		h.logger.Error("GET /availabilities - Failed to list rules: user_id=%d, error=%v", userID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /availabilities - Rules retrieved: user_id=%d, count=%d", userID, result.Total)
	handlers.RespondJSON(w, http.StatusOK, result)
}
