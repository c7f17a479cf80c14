package mentor

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/Arunkino/MindHaven-Backend/internal/domain"
	"github.com/Arunkino/MindHaven-Backend/pkg/dbmetrics"
	"github.com/Arunkino/MindHaven-Backend/pkg/psqlbuilder"
)

var mentorColumns = []string{
	"id",
	"user_id",
	"specialization",
	"hourly_rate",
	"is_verified",
	"created_at",
	"updated_at",
}

// Repository репозиторий профилей менторов (только чтение)
// Профили создаются сервисом пользователей
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория менторов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает ментора по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Mentor, error) {
	return r.getOne(ctx, "GetByID", squirrel.Eq{"id": id})
}

// GetByUserID получает профиль ментора по ID пользователя
// ErrMentorNotFound означает, что пользователь не является ментором
func (r *Repository) GetByUserID(ctx context.Context, userID int64) (*domain.Mentor, error) {
	return r.getOne(ctx, "GetByUserID", squirrel.Eq{"user_id": userID})
}

func (r *Repository) getOne(ctx context.Context, op string, where squirrel.Eq) (*domain.Mentor, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(mentorColumns...).
		From("mentors").
		Where(where).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	var m domain.Mentor
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&m.ID,
		&m.UserID,
		&m.Specialization,
		&m.HourlyRate,
		&m.IsVerified,
		&createdAt,
		&updatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrMentorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan mentor: %v", ErrScanRow, op, err)
	}

	m.CreatedAt = createdAt.Time
	m.UpdatedAt = updatedAt.Time

	return &m, nil
}
