package update_slot_status

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/Arunkino/MindHaven-Backend/internal/api/middleware"
	"github.com/Arunkino/MindHaven-Backend/internal/service/slots"
	"github.com/Arunkino/MindHaven-Backend/internal/service/slots/models"
	"github.com/Arunkino/MindHaven-Backend/pkg/logger"
)

type fakeSlotService struct {
	err    error
	called Action
	userID int64
}

func (f *fakeSlotService) Block(ctx context.Context, slotID, userID int64) (*models.SlotResponse, error) {
	f.called, f.userID = ActionBlock, userID
	if f.err != nil {
		return nil, f.err
	}
	return &models.SlotResponse{ID: slotID, Status: "blocked"}, nil
}

func (f *fakeSlotService) Unblock(ctx context.Context, slotID, userID int64) (*models.SlotResponse, error) {
	f.called, f.userID = ActionUnblock, userID
	if f.err != nil {
		return nil, f.err
	}
	return &models.SlotResponse{ID: slotID, Status: "available"}, nil
}

func TestHandler_Handle(t *testing.T) {
	tests := []struct {
		name       string
		action     Action
		path       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{name: "blocked", action: ActionBlock, path: "/slots/5/block", wantStatus: http.StatusOK, wantBody: `"status":"blocked"`},
		{name: "unblocked", action: ActionUnblock, path: "/slots/5/unblock", wantStatus: http.StatusOK, wantBody: `"status":"available"`},
		{name: "invalid id", action: ActionBlock, path: "/slots/abc/block", wantStatus: http.StatusBadRequest, wantBody: msgInvalidSlotID},
		{
			name: "not a mentor", action: ActionBlock, path: "/slots/5/block",
			err:        fmt.Errorf("%w: user_id=200", slots.ErrNotMentor),
			wantStatus: http.StatusForbidden, wantBody: msgNotMentor,
		},
		{
			name: "slot not found", action: ActionUnblock, path: "/slots/5/unblock",
			err:        fmt.Errorf("%w: id=5", slots.ErrSlotNotFound),
			wantStatus: http.StatusNotFound, wantBody: msgSlotNotFound,
		},
		{
			name: "foreign slot", action: ActionBlock, path: "/slots/5/block",
			err:        fmt.Errorf("%w: slot belongs to another mentor", slots.ErrAccessDenied),
			wantStatus: http.StatusForbidden, wantBody: msgForbidden,
		},
		{
			name: "booked slot cannot be blocked", action: ActionBlock, path: "/slots/5/block",
			err:        fmt.Errorf("%w: booked -> blocked", slots.ErrInvalidTransition),
			wantStatus: http.StatusConflict, wantBody: msgInvalidTransition,
		},
		{
			name: "available slot cannot be unblocked", action: ActionUnblock, path: "/slots/5/unblock",
			err:        fmt.Errorf("%w: available -> available", slots.ErrInvalidTransition),
			wantStatus: http.StatusConflict, wantBody: msgInvalidTransition,
		},
		{
			name: "concurrent status change", action: ActionBlock, path: "/slots/5/block",
			err:        fmt.Errorf("%w: id=5", slots.ErrStatusConflict),
			wantStatus: http.StatusConflict, wantBody: msgStatusConflict,
		},
		{
			name: "internal error", action: ActionUnblock, path: "/slots/5/unblock",
			err:        errors.New("connection reset"),
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := &fakeSlotService{err: tt.err}

			router := mux.NewRouter()
			router.HandleFunc("/slots/{slotId}/"+string(tt.action),
				NewHandler(service, tt.action, logger.NewNop()).Handle).Methods(http.MethodPost)

			req := httptest.NewRequest(http.MethodPost, tt.path, nil)
			req = req.WithContext(middleware.WithUserID(req.Context(), 200))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantBody != "" {
				assert.Contains(t, rec.Body.String(), tt.wantBody)
			}
			if tt.wantStatus != http.StatusBadRequest {
				assert.Equal(t, tt.action, service.called)
				assert.Equal(t, int64(200), service.userID)
			} else {
				assert.Empty(t, service.called)
			}
		})
	}
}
