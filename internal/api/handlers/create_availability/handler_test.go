package create_availability

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Arunkino/MindHaven-Backend/internal/api/middleware"
	"github.com/Arunkino/MindHaven-Backend/internal/domain"
	generateSlots "github.com/Arunkino/MindHaven-Backend/internal/usecase/generate_slots"
	"github.com/Arunkino/MindHaven-Backend/pkg/logger"
)

type fakeUseCase struct {
	err error
	req *generateSlots.Request
}

func (f *fakeUseCase) Execute(ctx context.Context, req *generateSlots.Request) (*generateSlots.Response, error) {
	f.req = req
	if f.err != nil {
		return nil, f.err
	}
	return &generateSlots.Response{
		Rule: &domain.AvailabilityRule{ID: 4, MentorID: 7, DayOfWeek: req.DayOfWeek, StartTime: req.StartTime, EndTime: req.EndTime},
		CreatedSlots: []*domain.Slot{
			{ID: 1, AvailabilityID: 4, MentorID: 7, Date: time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC), StartTime: "09:00", EndTime: "09:30", Status: domain.SlotAvailable},
		},
		SkippedCount: 2,
	}, nil
}

func serve(uc *fakeUseCase, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/availabilities", strings.NewReader(body))
	req = req.WithContext(middleware.WithUserID(req.Context(), 100))
	rec := httptest.NewRecorder()
	NewHandler(uc, logger.NewNop()).Handle(rec, req)
	return rec
}

func TestHandler_CreatesAvailability(t *testing.T) {
	uc := &fakeUseCase{}
	rec := serve(uc, `{"dayOfWeek":0,"startTime":"09:00","endTime":"10:00","isRecurring":true,"currentDate":"2025-03-03"}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, uc.req)
	assert.Equal(t, int64(100), uc.req.UserID)
	assert.Nil(t, uc.req.RuleID)
	assert.True(t, uc.req.IsRecurring)
	require.NotNil(t, uc.req.CurrentDate)
	assert.Equal(t, "2025-03-03", uc.req.CurrentDate.Format(domain.DateFormat))

	var body AvailabilityResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, int64(4), body.Rule.ID)
	require.Len(t, body.CreatedSlots, 1)
	assert.Equal(t, "09:00", body.CreatedSlots[0].StartTime)
	assert.Equal(t, 2, body.SkippedCount)
}

func TestHandler_Rejections(t *testing.T) {
	valid := `{"dayOfWeek":0,"startTime":"09:00","endTime":"10:00"}`

	tests := []struct {
		name       string
		body       string
		err        error
		wantStatus int
	}{
		{name: "bad json", body: `{`, wantStatus: http.StatusBadRequest},
		{name: "bad time", body: `{"dayOfWeek":0,"startTime":"9am","endTime":"10:00"}`, wantStatus: http.StatusBadRequest},
		{name: "invalid rule", body: valid, err: generateSlots.ErrInvalidRule, wantStatus: http.StatusBadRequest},
		{name: "not a mentor", body: valid, err: generateSlots.ErrNotMentor, wantStatus: http.StatusForbidden},
		{name: "internal", body: valid, err: generateSlots.ErrInternal, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(&fakeUseCase{err: tt.err}, tt.body)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
