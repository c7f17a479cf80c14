package update_slot_status

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/Arunkino/MindHaven-Backend/internal/api/handlers"
	"github.com/Arunkino/MindHaven-Backend/internal/api/middleware"
	"github.com/Arunkino/MindHaven-Backend/internal/service/slots"
	"github.com/Arunkino/MindHaven-Backend/internal/service/slots/models"
)

const (
	msgInvalidSlotID     = "некорректный ID слота"
	msgNotMentor         = "пользователь не является ментором"
	msgSlotNotFound      = "слот не найден"
	msgForbidden         = "доступ запрещен"
	msgInvalidTransition = "переход слота в этот статус запрещен"
	msgStatusConflict    = "статус слота изменился, обновите данные"
)

// Action действие над статусом слота
type Action string

const (
	ActionBlock   Action = "block"
	ActionUnblock Action = "unblock"
)

type Handler struct {
	service SlotService
	action  Action
	logger  Logger
}

// NewHandler создает обработчик для одного действия: блокировки или разблокировки
func NewHandler(service SlotService, action Action, logger Logger) *Handler {
	return &Handler{
		service: service,
		action:  action,
		logger:  logger,
	}
}

// Handle POST /api/v1/slots/{slotId}/block и POST /api/v1/slots/{slotId}/unblock
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())

	slotID, err := strconv.ParseInt(mux.Vars(r)["slotId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /slots/{id}/%s - Invalid slot ID: %v", h.action, err)
		handlers.RespondBadRequest(w, msgInvalidSlotID)
		return
	}

	result, err := h.apply(r.Context(), slotID, userID)
	if err != nil {
		switch {
		case errors.Is(err, slots.ErrNotMentor):
			h.logger.Warn("POST /slots/{id}/%s - Not a mentor: user_id=%d", h.action, userID)
			handlers.RespondForbidden(w, msgNotMentor)

		case errors.Is(err, slots.ErrSlotNotFound):
			h.logger.Warn("POST /slots/{id}/%s - Slot not found: slot_id=%d", h.action, slotID)
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, slots.ErrAccessDenied):
			h.logger.Warn("POST /slots/{id}/%s - Access denied: slot_id=%d, user_id=%d", h.action, slotID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, slots.ErrInvalidTransition):
			h.logger.Warn("POST /slots/{id}/%s - Invalid transition: slot_id=%d", h.action, slotID)
			handlers.RespondConflict(w, msgInvalidTransition)

		case errors.Is(err, slots.ErrStatusConflict):
			h.logger.Warn("POST /slots/{id}/%s - Status conflict: slot_id=%d", h.action, slotID)
			handlers.RespondConflict(w, msgStatusConflict)

		default:
			h.logger.Error("POST /slots/{id}/%s - Failed to update slot: slot_id=%d, error=%v", h.action, slotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /slots/{id}/%s - Slot updated: slot_id=%d, status=%s", h.action, slotID, result.Status)
	handlers.RespondJSON(w, http.StatusOK, result)
}

func (h *Handler) apply(ctx context.Context, slotID, userID int64) (*models.SlotResponse, error) {
	if h.action == ActionUnblock {
		return h.service.Unblock(ctx, slotID, userID)
	}
	return h.service.Block(ctx, slotID, userID)
}
