package appointment

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Arunkino/MindHaven-Backend/internal/domain"
	"github.com/Arunkino/MindHaven-Backend/pkg/pgerrors"
	"github.com/Arunkino/MindHaven-Backend/pkg/ptr"
)

func newMock(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRepository(db), mock
}

func newAppointment() *domain.Appointment {
	id := uuid.MustParse("7f1c0c1e-3f57-4a39-9a61-2b0c3c0f4d11")
	return &domain.Appointment{
		SlotID:        7,
		UserID:        10,
		MentorID:      3,
		MentorUserID:  20,
		Date:          time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC),
		StartTime:     "10:00",
		EndTime:       "10:30",
		Status:        domain.AppointmentScheduled,
		VideoCallID:   id,
		VideoCallLink: domain.BuildVideoCallLink("https://mindhaven.example", id),
	}
}

func TestRepository_Create(t *testing.T) {
	repo, mock := newMock(t)
	now := time.Now()
	a := newAppointment()

	mock.ExpectQuery(`INSERT INTO appointments \(slot_id,user_id,mentor_id,mentor_user_id,date,start_time,end_time,status,video_call_id,video_call_link\)`).
		WithArgs(int64(7), int64(10), int64(3), int64(20), "2025-03-03", "10:00", "10:30", "scheduled",
			a.VideoCallID.String(), a.VideoCallLink).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(55), now, now))

	created, err := repo.Create(context.Background(), a)
	require.NoError(t, err)
	assert.Equal(t, int64(55), created.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Create_SlotTaken(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery(`INSERT INTO appointments`).
		WillReturnError(&pq.Error{Code: pgerrors.UniqueViolation, Constraint: "appointments_active_slot"})

	_, err := repo.Create(context.Background(), newAppointment())
	assert.ErrorIs(t, err, ErrSlotAlreadyTaken)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Create_OtherUniqueViolationIsNotSlotTaken(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery(`INSERT INTO appointments`).
		WillReturnError(&pq.Error{Code: pgerrors.UniqueViolation, Constraint: "appointments_video_call_id_key"})

	_, err := repo.Create(context.Background(), newAppointment())
	assert.ErrorIs(t, err, ErrExecQuery)
	assert.NotErrorIs(t, err, ErrSlotAlreadyTaken)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetByVideoCallID(t *testing.T) {
	repo, mock := newMock(t)
	a := newAppointment()
	now := time.Now()
	started := now.Add(-time.Minute)

	mock.ExpectQuery(`SELECT .* FROM appointments WHERE video_call_id = \$1`).
		WithArgs(a.VideoCallID.String()).
		WillReturnRows(sqlmock.NewRows(appointmentColumns).AddRow(
			int64(55), int64(7), int64(10), int64(3), int64(20), a.Date,
			[]byte("10:00:00"), []byte("10:30:00"), "scheduled",
			a.VideoCallID.String(), a.VideoCallLink, "tok", false,
			true, true, started, nil, nil, now, now,
		))

	got, err := repo.GetByVideoCallID(context.Background(), a.VideoCallID)
	require.NoError(t, err)
	assert.Equal(t, a.VideoCallID, got.VideoCallID)
	require.NotNil(t, got.CallToken)
	assert.Equal(t, "tok", *got.CallToken)
	require.NotNil(t, got.CallStartTime)
	assert.Nil(t, got.CallEndTime)
	assert.Nil(t, got.CallDurationSeconds)
	assert.True(t, got.UserJoined && got.MentorJoined)
}

func TestRepository_GetByID_NotFound(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery(`FROM appointments WHERE id = \$1`).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(appointmentColumns))

	_, err := repo.GetByID(context.Background(), 1)
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestRepository_CompleteCall(t *testing.T) {
	repo, mock := newMock(t)
	endedAt := time.Date(2025, 3, 3, 10, 31, 0, 0, time.UTC)

	mock.ExpectExec(`UPDATE appointments SET status = \$1, call_duration = \$2, call_end_time = \$3, user_joined = \$4, mentor_joined = \$5, updated_at = NOW\(\) WHERE id = \$6 AND status = \$7`).
		WithArgs("completed", 1800, endedAt, false, false, int64(55), "scheduled").
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.CompleteCall(context.Background(), 55, 1800, endedAt))

	mock.ExpectExec(`UPDATE appointments SET status`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.CompleteCall(context.Background(), 55, 1800, endedAt), ErrStatusConflict)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_UpdateStatusIf(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectExec(`UPDATE appointments SET status = \$1, updated_at = NOW\(\) WHERE id = \$2 AND status = \$3`).
		WithArgs("cancelled_by_user", int64(55), "scheduled").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpdateStatusIf(context.Background(), 55, domain.AppointmentScheduled, domain.AppointmentCancelledByUser)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_List(t *testing.T) {
	repo, mock := newMock(t)
	from := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`FROM appointments WHERE mentor_id = \$1 AND date >= \$2 ORDER BY date ASC, start_time ASC`).
		WithArgs(int64(3), "2025-03-03").
		WillReturnRows(sqlmock.NewRows(appointmentColumns))

	list, err := repo.List(context.Background(), domain.AppointmentsFilter{MentorID: ptr.Ptr(int64(3)), FromDate: &from})
	require.NoError(t, err)
	assert.Empty(t, list)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_ListDueForReminder(t *testing.T) {
	repo, mock := newMock(t)
	from := time.Date(2025, 3, 3, 9, 55, 0, 0, time.UTC)

	mock.ExpectQuery(`FROM appointments WHERE notification_sent = \$1 AND status = \$2 AND \(date \+ start_time\) BETWEEN \$3::timestamp AND \$4::timestamp`).
		WithArgs(false, "scheduled", "2025-03-03 09:55:00", "2025-03-03 10:00:00").
		WillReturnRows(sqlmock.NewRows(appointmentColumns))

	_, err := repo.ListDueForReminder(context.Background(), from, from.Add(5*time.Minute))
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_MarkNotified(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectExec(`UPDATE appointments SET notification_sent = \$1, updated_at = NOW\(\) WHERE id = \$2 AND notification_sent = \$3`).
		WithArgs(true, int64(55), false).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.MarkNotified(context.Background(), 55))
	require.NoError(t, mock.ExpectationsWereMet())
}
