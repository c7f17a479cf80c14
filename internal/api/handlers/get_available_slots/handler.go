package get_available_slots

import (
	"net/http"
	"time"

	"github.com/Arunkino/MindHaven-Backend/internal/api/handlers"
	"github.com/Arunkino/MindHaven-Backend/internal/domain"
	"github.com/Arunkino/MindHaven-Backend/internal/service/slots/models"
)

const (
	msgInvalidDate = "некорректный формат даты, ожидается YYYY-MM-DD"
)

type Handler struct {
	service SlotService
	logger  Logger
}

func NewHandler(service SlotService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/available-slots
// Query params: date (optional, YYYY-MM-DD), specialization (optional, подстрока без учета регистра)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &models.ListAvailableRequest{}

	if dateStr := query.Get("date"); dateStr != "" {
		date, err := time.Parse(domain.DateFormat, dateStr)
		if err != nil {
			h.logger.Warn("GET /available-slots - Invalid date: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		req.Date = &date
	}

	if specialization := query.Get("specialization"); specialization != "" {
		req.Specialization = &specialization
	}

	result, err := h.service.ListAvailable(r.Context(), req)
	if err != nil {
		h.logger.Error("GET /available-slots - Failed to list slots: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /available-slots - Slots retrieved: count=%d", result.Total)
	handlers.RespondJSON(w, http.StatusOK, result)
}
