package slot

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/Arunkino/MindHaven-Backend/internal/domain"
	"github.com/Arunkino/MindHaven-Backend/pkg/dbmetrics"
	"github.com/Arunkino/MindHaven-Backend/pkg/pgerrors"
	"github.com/Arunkino/MindHaven-Backend/pkg/psqlbuilder"
)

var slotColumns = []string{
	"id",
	"availability_id",
	"mentor_id",
	"date",
	"start_time",
	"end_time",
	"status",
	"created_at",
	"updated_at",
}

// Repository хранилище слотов
// Все изменения статуса выполняются условным UPDATE (compare-and-swap по статусу)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория слотов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// InsertIfNoOverlap вставляет слот, только если у ментора нет пересекающегося слота на ту же дату.
// Проверка и вставка выполняются одним запросом; EXCLUDE ограничение таблицы
// отсекает оставшиеся гонки. Возвращает false, если слот пропущен.
func (r *Repository) InsertIfNoOverlap(ctx context.Context, slot *domain.Slot) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	date := slot.Date.Format(domain.DateFormat)

	overlapping := psqlbuilder.Subquery("1").
		From("slots").
		Where(squirrel.Eq{"mentor_id": slot.MentorID, "date": date}).
		Where(squirrel.Lt{"start_time": slot.EndTime}).
		Where(squirrel.Gt{"end_time": slot.StartTime})

	values := psqlbuilder.Subquery().
		Column("?::bigint", slot.AvailabilityID).
		Column("?::bigint", slot.MentorID).
		Column("?::date", date).
		Column("?::time", slot.StartTime).
		Column("?::time", slot.EndTime).
		Column("?::varchar", slot.Status).
		Where(squirrel.Expr("NOT EXISTS (?)", overlapping))

	query, args, err := psqlbuilder.Insert("slots").
		Columns("availability_id", "mentor_id", "date", "start_time", "end_time", "status").
		Select(values).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: InsertIfNoOverlap - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&slot.ID, &createdAt, &updatedAt)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		// Пересекающийся слот уже есть
		return false, nil
	case pgerrors.IsExclusionViolation(err):
		// Параллельная вставка успела раньше
		return false, nil
	case err != nil:
		return false, fmt.Errorf("%w: InsertIfNoOverlap - execute insert: %v", ErrExecQuery, err)
	}

	slot.CreatedAt = createdAt.Time
	slot.UpdatedAt = updatedAt.Time

	return true, nil
}

// GetByID получает слот по ID
// Внутри транзакции строка блокируется (FOR UPDATE)
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(slotColumns...).
		From("slots").
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	slot, err := scanSlot(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan slot: %v", ErrScanRow, err)
	}

	return slot, nil
}

// UpdateStatusIf переводит слот из статуса from в статус to
// Если слот уже не в статусе from (или не существует), возвращает ErrStatusConflict
func (r *Repository) UpdateStatusIf(ctx context.Context, id int64, from, to domain.SlotStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("slots").
		Set("status", to).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": from}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatusIf - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatusIf - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatusIf - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrStatusConflict
	}

	return nil
}

// ListAvailable ищет свободные слоты всех менторов
// Фильтры: дата в диапазоне [FromDate, ToDate], точная дата, подстрока специализации без учета регистра
func (r *Repository) ListAvailable(ctx context.Context, filter domain.AvailableSlotsFilter) ([]*domain.SlotListing, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	columns := make([]string, 0, len(slotColumns)+3)
	for _, c := range slotColumns {
		columns = append(columns, "s."+c)
	}
	columns = append(columns, "m.user_id", "m.specialization", "m.hourly_rate")

	selectBuilder := psqlbuilder.Select(columns...).
		From("slots s").
		Join("mentors m ON m.id = s.mentor_id").
		Where(squirrel.Eq{"s.status": domain.SlotAvailable}).
		Where(squirrel.GtOrEq{"s.date": filter.FromDate.Format(domain.DateFormat)})

	if filter.ToDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"s.date": filter.ToDate.Format(domain.DateFormat)})
	}
	if filter.Date != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"s.date": filter.Date.Format(domain.DateFormat)})
	}
	if filter.Specialization != nil && *filter.Specialization != "" {
		selectBuilder = selectBuilder.Where(squirrel.ILike{"m.specialization": "%" + *filter.Specialization + "%"})
	}

	query, args, err := selectBuilder.
		OrderBy("s.date ASC", "s.start_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListAvailable - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListAvailable - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	listings := make([]*domain.SlotListing, 0)
	for rows.Next() {
		var l domain.SlotListing
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&l.Slot.ID,
			&l.Slot.AvailabilityID,
			&l.Slot.MentorID,
			&l.Slot.Date,
			&l.Slot.StartTime,
			&l.Slot.EndTime,
			&l.Slot.Status,
			&createdAt,
			&updatedAt,
			&l.MentorUserID,
			&l.Specialization,
			&l.HourlyRate,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: ListAvailable - scan row: %v", ErrScanRow, err)
		}

		l.Slot.CreatedAt = createdAt.Time
		l.Slot.UpdatedAt = updatedAt.Time
		listings = append(listings, &l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListAvailable - rows error: %v", ErrScanRow, err)
	}

	return listings, nil
}

// ListByMentor возвращает слоты ментора в любом статусе
func (r *Repository) ListByMentor(ctx context.Context, filter domain.MentorSlotsFilter) ([]*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(slotColumns...).
		From("slots").
		Where(squirrel.Eq{"mentor_id": filter.MentorID})

	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"date": filter.StartDate.Format(domain.DateFormat)})
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"date": filter.EndDate.Format(domain.DateFormat)})
	}
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	}

	query, args, err := selectBuilder.
		OrderBy("date ASC", "start_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByMentor - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByMentor - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	slots := make([]*domain.Slot, 0)
	for rows.Next() {
		slot, err := scanSlot(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListByMentor - scan row: %v", ErrScanRow, err)
		}
		slots = append(slots, slot)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByMentor - rows error: %v", ErrScanRow, err)
	}

	return slots, nil
}

// CountByAvailability считает слоты правила, опционально только в указанном статусе
func (r *Repository) CountByAvailability(ctx context.Context, availabilityID int64, status *domain.SlotStatus) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("COUNT(*)").
		From("slots").
		Where(squirrel.Eq{"availability_id": availabilityID})
	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CountByAvailability - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountByAvailability - scan count: %v", ErrScanRow, err)
	}

	return count, nil
}

// CountReferenced считает слоты правила, на которые ссылается хотя бы одна встреча
func (r *Repository) CountReferenced(ctx context.Context, availabilityID int64) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("slots s").
		Where(squirrel.Eq{"s.availability_id": availabilityID}).
		Where("EXISTS (SELECT 1 FROM appointments a WHERE a.slot_id = s.id)").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CountReferenced - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountReferenced - scan count: %v", ErrScanRow, err)
	}

	return count, nil
}

// DeleteUnreferenced удаляет незабронированные слоты правила, на которые не ссылаются встречи
func (r *Repository) DeleteUnreferenced(ctx context.Context, availabilityID int64) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("slots").
		Where(squirrel.Eq{"availability_id": availabilityID}).
		Where(squirrel.NotEq{"status": domain.SlotBooked}).
		Where("NOT EXISTS (SELECT 1 FROM appointments a WHERE a.slot_id = slots.id)").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteUnreferenced - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteUnreferenced - execute delete: %v", ErrExecQuery, err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteUnreferenced - get rows affected: %v", ErrExecQuery, err)
	}

	return deleted, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSlot(row rowScanner) (*domain.Slot, error) {
	var slot domain.Slot
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&slot.ID,
		&slot.AvailabilityID,
		&slot.MentorID,
		&slot.Date,
		&slot.StartTime,
		&slot.EndTime,
		&slot.Status,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	slot.CreatedAt = createdAt.Time
	slot.UpdatedAt = updatedAt.Time

	return &slot, nil
}
