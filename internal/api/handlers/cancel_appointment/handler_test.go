package cancel_appointment

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/Arunkino/MindHaven-Backend/internal/api/middleware"
	"github.com/Arunkino/MindHaven-Backend/internal/domain"
	cancelAppointment "github.com/Arunkino/MindHaven-Backend/internal/usecase/cancel_appointment"
	"github.com/Arunkino/MindHaven-Backend/pkg/logger"
)

type fakeUseCase struct {
	err error
}

func (f *fakeUseCase) Execute(ctx context.Context, req *cancelAppointment.Request) (*cancelAppointment.Response, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &cancelAppointment.Response{Appointment: &domain.Appointment{
		ID:     req.AppointmentID,
		Status: domain.AppointmentCancelledByUser,
	}}, nil
}

func TestHandler_Handle(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{name: "cancelled", path: "/appointments/5/cancel", wantStatus: http.StatusOK, wantBody: `"status":"cancelled_by_user"`},
		{name: "invalid id", path: "/appointments/x/cancel", wantStatus: http.StatusBadRequest},
		{name: "not found", path: "/appointments/5/cancel", err: cancelAppointment.ErrAppointmentNotFound, wantStatus: http.StatusNotFound},
		{name: "stranger", path: "/appointments/5/cancel", err: cancelAppointment.ErrUnauthorized, wantStatus: http.StatusForbidden},
		{name: "finalized", path: "/appointments/5/cancel", err: cancelAppointment.ErrAlreadyFinalized, wantStatus: http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := mux.NewRouter()
			router.HandleFunc("/appointments/{appointmentId}/cancel",
				NewHandler(&fakeUseCase{err: tt.err}, logger.NewNop()).Handle).Methods(http.MethodPost)

			req := httptest.NewRequest(http.MethodPost, tt.path, nil)
			req = req.WithContext(middleware.WithUserID(req.Context(), 200))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantBody != "" {
				assert.Contains(t, rec.Body.String(), tt.wantBody)
			}
		})
	}
}
