package send_reminders

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Arunkino/MindHaven-Backend/internal/domain"
	appointmentRepo "github.com/Arunkino/MindHaven-Backend/internal/infra/storage/appointment"
	"github.com/Arunkino/MindHaven-Backend/internal/integrations/notifier"
	"github.com/Arunkino/MindHaven-Backend/pkg/logger"
	"github.com/Arunkino/MindHaven-Backend/pkg/ptr"
)

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type fakeAppointments struct {
	due      []*domain.Appointment
	listErr  error
	from, to time.Time
	tokens   map[int64]string
	notified map[int64]bool
	markErr  map[int64]error
}

func (f *fakeAppointments) ListDueForReminder(ctx context.Context, from, to time.Time) ([]*domain.Appointment, error) {
	f.from, f.to = from, to
	return f.due, f.listErr
}

func (f *fakeAppointments) SetCallToken(ctx context.Context, id int64, token string) error {
	f.tokens[id] = token
	return nil
}

func (f *fakeAppointments) MarkNotified(ctx context.Context, id int64) error {
	if err := f.markErr[id]; err != nil {
		return err
	}
	f.notified[id] = true
	return nil
}

type fakeIssuer struct{ sessions []string }

func (f *fakeIssuer) IssueToken(sessionID string, uid int64) (string, time.Time, error) {
	f.sessions = append(f.sessions, sessionID)
	return "token-" + sessionID, time.Time{}, nil
}

type fakeNotifier struct {
	sent    map[int64][]notifier.Notification
	failFor int64
}

func (f *fakeNotifier) NotifyUser(ctx context.Context, userID int64, n notifier.Notification) error {
	if userID == f.failFor {
		return errors.New("redis unavailable")
	}
	f.sent[userID] = append(f.sent[userID], n)
	return nil
}

type fakeMetrics struct{ results map[string]int }

func (m *fakeMetrics) IncReminder(result string) { m.results[result]++ }

func appointment(id, userID, mentorUserID int64) *domain.Appointment {
	return &domain.Appointment{
		ID: id, UserID: userID, MentorUserID: mentorUserID,
		Date:          time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC),
		StartTime:     "10:00",
		EndTime:       "10:30",
		Status:        domain.AppointmentScheduled,
		VideoCallID:   uuid.New(),
		VideoCallLink: "https://mindhaven.example/video-call/x/",
	}
}

type fixture struct {
	uc       *UseCase
	repo     *fakeAppointments
	issuer   *fakeIssuer
	notifier *fakeNotifier
	metrics  *fakeMetrics
}

func newFixture(now time.Time, due ...*domain.Appointment) *fixture {
	f := &fixture{
		repo: &fakeAppointments{
			due:      due,
			tokens:   map[int64]string{},
			notified: map[int64]bool{},
			markErr:  map[int64]error{},
		},
		issuer:   &fakeIssuer{},
		notifier: &fakeNotifier{sent: map[int64][]notifier.Notification{}},
		metrics:  &fakeMetrics{results: map[string]int{}},
	}
	f.uc = NewUseCase(f.repo, f.issuer, f.notifier, f.metrics, time.UTC, 5, logger.NewNop())
	f.uc.timeProvider = fixedTime{now: now}
	return f
}

func TestUseCase_Execute_NotifiesBothParties(t *testing.T) {
	now := time.Date(2025, 3, 3, 9, 56, 0, 0, time.UTC)
	a := appointment(10, 200, 100)
	f := newFixture(now, a)

	resp, err := f.uc.Execute(context.Background())
	require.NoError(t, err)

	assert.Equal(t, &Response{Due: 1, Sent: 1}, resp)
	assert.Equal(t, now, f.repo.from)
	assert.Equal(t, now.Add(5*time.Minute), f.repo.to)

	require.Len(t, f.notifier.sent[200], 1)
	require.Len(t, f.notifier.sent[100], 1)
	n := f.notifier.sent[200][0]
	assert.Equal(t, NotificationTypeReminder, n.Type)
	assert.Equal(t, int64(10), n.AppointmentID)
	assert.Equal(t, time.Date(2025, 3, 3, 10, 0, 0, 0, time.UTC), n.StartsAt)
	assert.Contains(t, n.Message, "5 minutes")

	assert.Equal(t, []string{a.VideoCallID.String()}, f.issuer.sessions)
	assert.Equal(t, "token-"+a.VideoCallID.String(), f.repo.tokens[10])
	assert.True(t, f.repo.notified[10])
	assert.Equal(t, 1, f.metrics.results[resultSent])
}

func TestUseCase_Execute_KeepsExistingToken(t *testing.T) {
	a := appointment(10, 200, 100)
	a.CallToken = ptr.Ptr("issued-at-booking")
	f := newFixture(time.Date(2025, 3, 3, 9, 56, 0, 0, time.UTC), a)

	_, err := f.uc.Execute(context.Background())
	require.NoError(t, err)

	assert.Empty(t, f.issuer.sessions)
	assert.Empty(t, f.repo.tokens)
}

func TestUseCase_Execute_SkipsFailedAppointment(t *testing.T) {
	failing := appointment(10, 300, 100)
	ok := appointment(11, 200, 101)
	f := newFixture(time.Date(2025, 3, 3, 9, 56, 0, 0, time.UTC), failing, ok)
	f.notifier.failFor = 300

	resp, err := f.uc.Execute(context.Background())
	require.NoError(t, err)

	assert.Equal(t, &Response{Due: 2, Sent: 1, Failed: 1}, resp)
	assert.False(t, f.repo.notified[10], "failed reminder must be retried on the next run")
	assert.True(t, f.repo.notified[11])
	assert.Equal(t, 1, f.metrics.results[resultFailed])
}

func TestUseCase_Execute_AlreadyNotifiedConcurrently(t *testing.T) {
	a := appointment(10, 200, 100)
	f := newFixture(time.Date(2025, 3, 3, 9, 56, 0, 0, time.UTC), a)
	f.repo.markErr[10] = appointmentRepo.ErrStatusConflict

	resp, err := f.uc.Execute(context.Background())
	require.NoError(t, err)

	assert.Equal(t, &Response{Due: 1}, resp)
	assert.Equal(t, 1, f.metrics.results[resultDuplicate])
}

func TestUseCase_Execute_ListError(t *testing.T) {
	f := newFixture(time.Now())
	f.repo.listErr = errors.New("connection refused")

	resp, err := f.uc.Execute(context.Background())
	assert.ErrorIs(t, err, ErrInternal)
	assert.Nil(t, resp)
}
