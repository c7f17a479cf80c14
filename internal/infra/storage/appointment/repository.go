package appointment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/Arunkino/MindHaven-Backend/internal/domain"
	"github.com/Arunkino/MindHaven-Backend/pkg/dbmetrics"
	"github.com/Arunkino/MindHaven-Backend/pkg/pgerrors"
	"github.com/Arunkino/MindHaven-Backend/pkg/psqlbuilder"
)

const timestampFormat = "2006-01-02 15:04:05"

// activeSlotIndex частичный уникальный индекс: одна действующая встреча на слот
const activeSlotIndex = "appointments_active_slot"

var appointmentColumns = []string{
	"id",
	"slot_id",
	"user_id",
	"mentor_id",
	"mentor_user_id",
	"date",
	"start_time",
	"end_time",
	"status",
	"video_call_id",
	"video_call_link",
	"call_token",
	"notification_sent",
	"user_joined",
	"mentor_joined",
	"call_start_time",
	"call_end_time",
	"call_duration",
	"created_at",
	"updated_at",
}

// Repository репозиторий встреч
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория встреч
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает встречу
// Частичный уникальный индекс по slot_id не даёт создать вторую действующую встречу на слот:
// в этом случае возвращается ErrSlotAlreadyTaken
func (r *Repository) Create(ctx context.Context, a *domain.Appointment) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("appointments").
		Columns(
			"slot_id",
			"user_id",
			"mentor_id",
			"mentor_user_id",
			"date",
			"start_time",
			"end_time",
			"status",
			"video_call_id",
			"video_call_link",
		).
		Values(
			a.SlotID,
			a.UserID,
			a.MentorID,
			a.MentorUserID,
			a.Date.Format(domain.DateFormat),
			a.StartTime,
			a.EndTime,
			a.Status,
			a.VideoCallID,
			a.VideoCallLink,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&a.ID, &createdAt, &updatedAt)
	if pgerrors.IsUniqueViolationOn(err, activeSlotIndex) {
		return nil, ErrSlotAlreadyTaken
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	a.CreatedAt = createdAt.Time
	a.UpdatedAt = updatedAt.Time

	return a, nil
}

// GetByID получает встречу по ID (FOR UPDATE внутри транзакции)
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	return r.getOne(ctx, "GetByID", squirrel.Eq{"id": id})
}

// GetByVideoCallID получает встречу по идентификатору видеозвонка (FOR UPDATE внутри транзакции)
func (r *Repository) GetByVideoCallID(ctx context.Context, videoCallID uuid.UUID) (*domain.Appointment, error) {
	return r.getOne(ctx, "GetByVideoCallID", squirrel.Eq{"video_call_id": videoCallID})
}

func (r *Repository) getOne(ctx context.Context, op string, where squirrel.Eq) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(appointmentColumns...).
		From("appointments").
		Where(where)

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	a, err := scanAppointment(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan appointment: %v", ErrScanRow, op, err)
	}

	return a, nil
}

// List возвращает встречи пользователя или ментора, отсортированные по дате и времени начала
func (r *Repository) List(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(appointmentColumns...).
		From("appointments")

	if filter.UserID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"user_id": *filter.UserID})
	}
	if filter.MentorID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"mentor_id": *filter.MentorID})
	}
	if filter.FromDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"date": filter.FromDate.Format(domain.DateFormat)})
	}
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	}

	query, args, err := selectBuilder.
		OrderBy("date ASC", "start_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	return r.query(ctx, executor, "List", query, args)
}

// ListDueForReminder возвращает назначенные встречи без отправленного напоминания,
// начало которых (локальное время) попадает в [from, to]
func (r *Repository) ListDueForReminder(ctx context.Context, from, to time.Time) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(appointmentColumns...).
		From("appointments").
		Where(squirrel.Eq{"status": domain.AppointmentScheduled, "notification_sent": false}).
		Where(squirrel.Expr("(date + start_time) BETWEEN ?::timestamp AND ?::timestamp",
			from.Format(timestampFormat), to.Format(timestampFormat))).
		OrderBy("date ASC", "start_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListDueForReminder - build select query: %v", ErrBuildQuery, err)
	}

	return r.query(ctx, executor, "ListDueForReminder", query, args)
}

// UpdateJoinState сохраняет флаги подключения и время начала звонка
func (r *Repository) UpdateJoinState(ctx context.Context, a *domain.Appointment) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("appointments").
		Set("user_joined", a.UserJoined).
		Set("mentor_joined", a.MentorJoined).
		Set("call_start_time", a.CallStartTime).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": a.ID, "status": domain.AppointmentScheduled}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateJoinState - build update query: %v", ErrBuildQuery, err)
	}

	return r.execOne(ctx, executor, "UpdateJoinState", query, args)
}

// CompleteCall завершает звонок, только если встреча еще назначена
func (r *Repository) CompleteCall(ctx context.Context, id int64, durationSeconds int, endedAt time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("appointments").
		Set("status", domain.AppointmentCompleted).
		Set("call_duration", durationSeconds).
		Set("call_end_time", endedAt).
		Set("user_joined", false).
		Set("mentor_joined", false).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": domain.AppointmentScheduled}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: CompleteCall - build update query: %v", ErrBuildQuery, err)
	}

	return r.execOne(ctx, executor, "CompleteCall", query, args)
}

// UpdateStatusIf переводит встречу из статуса from в статус to
func (r *Repository) UpdateStatusIf(ctx context.Context, id int64, from, to domain.AppointmentStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("appointments").
		Set("status", to).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": from}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatusIf - build update query: %v", ErrBuildQuery, err)
	}

	return r.execOne(ctx, executor, "UpdateStatusIf", query, args)
}

// SetCallToken сохраняет токен видеозвонка
func (r *Repository) SetCallToken(ctx context.Context, id int64, token string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("appointments").
		Set("call_token", token).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: SetCallToken - build update query: %v", ErrBuildQuery, err)
	}

	return r.execOne(ctx, executor, "SetCallToken", query, args)
}

// MarkNotified отмечает, что напоминание отправлено
func (r *Repository) MarkNotified(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("appointments").
		Set("notification_sent", true).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "notification_sent": false}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: MarkNotified - build update query: %v", ErrBuildQuery, err)
	}

	return r.execOne(ctx, executor, "MarkNotified", query, args)
}

// execOne выполняет UPDATE и возвращает ErrStatusConflict, если ни одна строка не изменилась
func (r *Repository) execOne(ctx context.Context, executor DBExecutor, op, query string, args []interface{}) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}
	if rowsAffected == 0 {
		return ErrStatusConflict
	}

	return nil
}

func (r *Repository) query(ctx context.Context, executor DBExecutor, op, query string, args []interface{}) ([]*domain.Appointment, error) {
	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, op, err)
	}
	defer rows.Close()

	appointments := make([]*domain.Appointment, 0)
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %v", ErrScanRow, op, err)
		}
		appointments = append(appointments, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %v", ErrScanRow, op, err)
	}

	return appointments, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAppointment(row rowScanner) (*domain.Appointment, error) {
	var a domain.Appointment
	var (
		callToken            sql.NullString
		callStart, callEnd   sql.NullTime
		callDuration         sql.NullInt64
		createdAt, updatedAt sql.NullTime
	)

	err := row.Scan(
		&a.ID,
		&a.SlotID,
		&a.UserID,
		&a.MentorID,
		&a.MentorUserID,
		&a.Date,
		&a.StartTime,
		&a.EndTime,
		&a.Status,
		&a.VideoCallID,
		&a.VideoCallLink,
		&callToken,
		&a.NotificationSent,
		&a.UserJoined,
		&a.MentorJoined,
		&callStart,
		&callEnd,
		&callDuration,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if callToken.Valid {
		a.CallToken = &callToken.String
	}
	if callStart.Valid {
		a.CallStartTime = &callStart.Time
	}
	if callEnd.Valid {
		a.CallEndTime = &callEnd.Time
	}
	if callDuration.Valid {
		d := int(callDuration.Int64)
		a.CallDurationSeconds = &d
	}
	a.CreatedAt = createdAt.Time
	a.UpdatedAt = updatedAt.Time

	return &a, nil
}
