package slot

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Arunkino/MindHaven-Backend/internal/domain"
	"github.com/Arunkino/MindHaven-Backend/pkg/dbmetrics"
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

func newSlot() *domain.Slot {
	return &domain.Slot{
		AvailabilityID: 5,
		MentorID:       3,
		Date:           time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC),
		StartTime:      "10:00",
		EndTime:        "10:30",
		Status:         domain.SlotAvailable,
	}
}

const insertPattern = `INSERT INTO slots \(availability_id,mentor_id,date,start_time,end_time,status\) ` +
	`SELECT \$1::bigint, \$2::bigint, \$3::date, \$4::time, \$5::time, \$6::varchar ` +
	`WHERE NOT EXISTS \(SELECT 1 FROM slots WHERE date = \$7 AND mentor_id = \$8 AND start_time < \$9 AND end_time > \$10\) ` +
	`RETURNING id, created_at, updated_at`

func TestRepository_InsertIfNoOverlap_Inserted(t *testing.T) {
	repo, mock := newMock(t)
	now := time.Now()

	mock.ExpectQuery(insertPattern).
		WithArgs(int64(5), int64(3), "2025-03-03", "10:00", "10:30", "available",
			"2025-03-03", int64(3), "10:30", "10:00").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(101), now, now))

	slot := newSlot()
	inserted, err := repo.InsertIfNoOverlap(context.Background(), slot)

	require.NoError(t, err)
	assert.True(t, inserted)
	assert.Equal(t, int64(101), slot.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_InsertIfNoOverlap_SkippedOnOverlap(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery(insertPattern).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}))

	inserted, err := repo.InsertIfNoOverlap(context.Background(), newSlot())
	require.NoError(t, err)
	assert.False(t, inserted)
}

func TestRepository_InsertIfNoOverlap_SkippedOnExclusionViolation(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery(insertPattern).
		WillReturnError(&pq.Error{Code: pgerrors.ExclusionViolation})

	inserted, err := repo.InsertIfNoOverlap(context.Background(), newSlot())
	require.NoError(t, err)
	assert.False(t, inserted)
}

func TestRepository_UpdateStatusIf(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectExec(`UPDATE slots SET status = \$1, updated_at = NOW\(\) WHERE id = \$2 AND status = \$3`).
		WithArgs("booked", int64(7), "available").
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.UpdateStatusIf(context.Background(), 7, domain.SlotAvailable, domain.SlotBooked))

	mock.ExpectExec(`UPDATE slots SET status = \$1`).
		WithArgs("booked", int64(7), "available").
		WillReturnResult(sqlmock.NewResult(0, 0))
	err := repo.UpdateStatusIf(context.Background(), 7, domain.SlotAvailable, domain.SlotBooked)
	assert.ErrorIs(t, err, ErrStatusConflict)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetByID_LocksInTransaction(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewRepository(db)
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT .* FROM slots WHERE id = \$1 FOR UPDATE`).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows(slotColumns).
			AddRow(int64(7), int64(5), int64(3), time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC),
				[]byte("10:00:00"), []byte("10:30:00"), "available", now, now))
	mock.ExpectRollback()

	tx, err := db.Begin()
	require.NoError(t, err)
	slot, err := repo.GetByID(dbmetrics.WithTx(context.Background(), tx), 7)
	require.NoError(t, err)
	require.NoError(t, tx.Rollback())

	assert.Equal(t, domain.SlotAvailable, slot.Status)
	assert.Equal(t, "10:30", slot.EndTime.String())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetByID_NotFound(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery(`SELECT .* FROM slots WHERE id = \$1$`).
		WithArgs(int64(8)).
		WillReturnRows(sqlmock.NewRows(slotColumns))

	_, err := repo.GetByID(context.Background(), 8)
	assert.ErrorIs(t, err, ErrSlotNotFound)
}

func TestRepository_ListAvailable(t *testing.T) {
	repo, mock := newMock(t)
	now := time.Now()
	day := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT s.id, .* FROM slots s JOIN mentors m ON m.id = s.mentor_id ` +
		`WHERE s.status = \$1 AND s.date >= \$2 AND s.date = \$3 AND m.specialization ILIKE \$4 ` +
		`ORDER BY s.date ASC, s.start_time ASC`).
		WithArgs("available", "2025-03-01", "2025-03-03", "%anx%").
		WillReturnRows(sqlmock.NewRows(append(append([]string{}, slotColumns...), "user_id", "specialization", "hourly_rate")).
			AddRow(int64(7), int64(5), int64(3), day, []byte("10:00:00"), []byte("10:30:00"), "available", now, now,
				int64(20), "Anxiety", []byte("1000.00")))

	listings, err := repo.ListAvailable(context.Background(), domain.AvailableSlotsFilter{
		FromDate:       time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		Date:           &day,
		Specialization: ptr.Ptr("anx"),
	})

	require.NoError(t, err)
	require.Len(t, listings, 1)
	assert.Equal(t, int64(20), listings[0].MentorUserID)
	assert.Equal(t, "1000.00", listings[0].HourlyRate.String())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_ListAvailable_DateRange(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery(`SELECT s.id, .* FROM slots s JOIN mentors m ON m.id = s.mentor_id ` +
		`WHERE s.status = \$1 AND s.date >= \$2 AND s.date <= \$3 ` +
		`ORDER BY s.date ASC, s.start_time ASC`).
		WithArgs("available", "2025-03-10", "2025-03-20").
		WillReturnRows(sqlmock.NewRows(append(append([]string{}, slotColumns...), "user_id", "specialization", "hourly_rate")))

	listings, err := repo.ListAvailable(context.Background(), domain.AvailableSlotsFilter{
		FromDate: time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		ToDate:   ptr.Ptr(time.Date(2025, 3, 20, 0, 0, 0, 0, time.UTC)),
	})

	require.NoError(t, err)
	assert.Empty(t, listings)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_CountAndDelete(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM slots WHERE availability_id = \$1 AND status = \$2`).
		WithArgs(int64(5), "booked").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	count, err := repo.CountByAvailability(context.Background(), 5, ptr.Ptr(domain.SlotBooked))
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM slots s WHERE s.availability_id = \$1 AND EXISTS`).
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	count, err = repo.CountReferenced(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	mock.ExpectExec(`DELETE FROM slots WHERE availability_id = \$1 AND status <> \$2 AND NOT EXISTS`).
		WithArgs(int64(5), "booked").
		WillReturnResult(sqlmock.NewResult(0, 12))
	deleted, err := repo.DeleteUnreferenced(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, int64(12), deleted)

	require.NoError(t, mock.ExpectationsWereMet())
}
