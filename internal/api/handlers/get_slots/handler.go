package get_slots

import (
	"errors"
	"net/http"
	"time"

	"github.com/Arunkino/MindHaven-Backend/internal/api/handlers"
	"github.com/Arunkino/MindHaven-Backend/internal/api/middleware"
	"github.com/Arunkino/MindHaven-Backend/internal/domain"
	"github.com/Arunkino/MindHaven-Backend/internal/service/slots"
	"github.com/Arunkino/MindHaven-Backend/internal/service/slots/models"
)

const (
	msgInvalidStartDate = "некорректный формат startDate, ожидается YYYY-MM-DD"
	msgInvalidEndDate   = "некорректный формат endDate, ожидается YYYY-MM-DD"
	msgInvalidStatus    = "некорректный статус слота"
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

// Handle GET /api/v1/slots
// Query params: startDate, endDate (YYYY-MM-DD), status (только для ментора)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())
	query := r.URL.Query()

	req := &models.ListSlotsRequest{UserID: userID}

	startDate, err := parseOptionalDate(query.Get("startDate"))
	if err != nil {
		h.logger.Warn("GET /slots - Invalid start date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStartDate)
		return
	}
	req.StartDate = startDate

	endDate, err := parseOptionalDate(query.Get("endDate"))
	if err != nil {
		h.logger.Warn("GET /slots - Invalid end date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidEndDate)
		return
	}
	req.EndDate = endDate

	if status := query.Get("status"); status != "" {
		req.Status = &status
	}

	result, err := h.service.ListForUser(r.Context(), req)
	if err != nil {
		if errors.Is(err, slots.ErrInvalidInput) {
			h.logger.Warn("GET /slots - Invalid status: user_id=%d", userID)
			handlers.RespondBadRequest(w, msgInvalidStatus)
			return
		}
		h.logger.Error("GET /slots - Failed to list slots: user_id=%d, error=%v", userID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /slots - Slots retrieved: user_id=%d, count=%d", userID, result.Total)
	handlers.RespondJSON(w, http.StatusOK, result)
}

func parseOptionalDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	date, err := time.Parse(domain.DateFormat, value)
	if err != nil {
		return nil, err
	}
	return &date, nil
}
