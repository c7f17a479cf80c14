package book_slot

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/Arunkino/MindHaven-Backend/internal/api/handlers"
	"github.com/Arunkino/MindHaven-Backend/internal/api/middleware"
	"github.com/Arunkino/MindHaven-Backend/internal/service/appointments/models"
	bookSlot "github.com/Arunkino/MindHaven-Backend/internal/usecase/book_slot"
)

const (
	msgInvalidSlotID    = "некорректный ID слота"
	msgSlotNotFound     = "слот не найден"
	msgSlotNotAvailable = "слот недоступен для бронирования"
	msgOwnSlot          = "нельзя забронировать собственный слот"
	msgBookingConflict  = "слот только что забронировал другой пользователь"
)

type Handler struct {
	useCase BookSlotUseCase
	logger  Logger
}

func NewHandler(useCase BookSlotUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/slots/{slotId}/book
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())

	slotID, err := strconv.ParseInt(mux.Vars(r)["slotId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /slots/{id}/book - Invalid slot ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSlotID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &bookSlot.Request{SlotID: slotID, UserID: userID})
	if err != nil {
		switch {
		case errors.Is(err, bookSlot.ErrSlotNotFound):
			h.logger.Warn("POST /slots/{id}/book - Slot not found: slot_id=%d", slotID)
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, bookSlot.ErrSlotNotAvailable):
			h.logger.Warn("POST /slots/{id}/book - Slot not available: slot_id=%d, user_id=%d", slotID, userID)
			handlers.RespondBadRequest(w, msgSlotNotAvailable)

		case errors.Is(err, bookSlot.ErrOwnSlot):
			h.logger.Warn("POST /slots/{id}/book - Own slot: slot_id=%d, user_id=%d", slotID, userID)
			handlers.RespondForbidden(w, msgOwnSlot)

		case errors.Is(err, bookSlot.ErrBookingConflict):
			h.logger.Warn("POST /slots/{id}/book - Booking conflict: slot_id=%d, user_id=%d", slotID, userID)
			handlers.RespondConflict(w, msgBookingConflict)

		default:
			h.logger.Error("POST /slots/{id}/book - Failed to book slot: slot_id=%d, user_id=%d, error=%v",
				slotID, userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /slots/{id}/book - Slot booked: slot_id=%d, appointment_id=%d, user_id=%d",
		slotID, result.Appointment.ID, userID)
	handlers.RespondJSON(w, http.StatusCreated, models.FromDomainAppointment(result.Appointment))
}
