package book_slot

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Arunkino/MindHaven-Backend/internal/api/middleware"
	"github.com/Arunkino/MindHaven-Backend/internal/domain"
	"github.com/Arunkino/MindHaven-Backend/internal/service/appointments/models"
	bookSlot "github.com/Arunkino/MindHaven-Backend/internal/usecase/book_slot"
	"github.com/Arunkino/MindHaven-Backend/pkg/logger"
)

type fakeUseCase struct {
	err error
	req *bookSlot.Request
}

func (f *fakeUseCase) Execute(ctx context.Context, req *bookSlot.Request) (*bookSlot.Response, error) {
	f.req = req
	if f.err != nil {
		return nil, f.err
	}
	return &bookSlot.Response{Appointment: &domain.Appointment{
		ID:          9,
		SlotID:      req.SlotID,
		UserID:      req.UserID,
		Status:      domain.AppointmentScheduled,
		VideoCallID: uuid.MustParse("0d7d5c6e-2d5b-4c43-9a59-1f4f44d0a001"),
	}}, nil
}

func serve(h *Handler, slotID string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc("/slots/{slotId}/book", h.Handle).Methods(http.MethodPost)

	req := httptest.NewRequest(http.MethodPost, "/slots/"+slotID+"/book", nil)
	req = req.WithContext(middleware.WithUserID(req.Context(), 200))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHandler_Books(t *testing.T) {
	uc := &fakeUseCase{}
	rec := serve(NewHandler(uc, logger.NewNop()), "42")

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, &bookSlot.Request{SlotID: 42, UserID: 200}, uc.req)

	var body models.AppointmentResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, int64(9), body.ID)
	assert.Equal(t, "scheduled", body.Status)
	assert.Equal(t, "0d7d5c6e-2d5b-4c43-9a59-1f4f44d0a001", body.VideoCallID)
}

func TestHandler_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "not found", err: bookSlot.ErrSlotNotFound, wantStatus: http.StatusNotFound},
		{name: "not available", err: bookSlot.ErrSlotNotAvailable, wantStatus: http.StatusBadRequest},
		{name: "own slot", err: bookSlot.ErrOwnSlot, wantStatus: http.StatusForbidden},
		{name: "lost race", err: bookSlot.ErrBookingConflict, wantStatus: http.StatusConflict},
		{name: "internal", err: bookSlot.ErrInternal, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(NewHandler(&fakeUseCase{err: tt.err}, logger.NewNop()), "42")
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestHandler_InvalidSlotID(t *testing.T) {
	uc := &fakeUseCase{}
	rec := serve(NewHandler(uc, logger.NewNop()), "abc")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Nil(t, uc.req)
}
