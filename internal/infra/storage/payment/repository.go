package payment

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

var paymentColumns = []string{
	"id",
	"appointment_id",
	"user_id",
	"mentor_id",
	"amount",
	"currency",
	"provider",
	"provider_order_id",
	"provider_payment_id",
	"signature",
	"status",
	"created_at",
	"updated_at",
}

// Repository репозиторий платежей
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория платежей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает платеж в статусе pending
func (r *Repository) Create(ctx context.Context, p *domain.Payment) (*domain.Payment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("payments").
		Columns("appointment_id", "user_id", "mentor_id", "amount", "currency", "provider", "provider_order_id", "status").
		Values(p.AppointmentID, p.UserID, p.MentorID, p.Amount, p.Currency, p.Provider, p.ProviderOrderID, p.Status).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&p.ID, &createdAt, &updatedAt)
	if pgerrors.IsUniqueViolation(err) {
		return nil, ErrPaymentExists
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	p.CreatedAt = createdAt.Time
	p.UpdatedAt = updatedAt.Time

	return p, nil
}

// GetByID получает платеж по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Payment, error) {
	return r.getOne(ctx, "GetByID", squirrel.Eq{"id": id})
}

// GetByAppointmentID получает платеж встречи
func (r *Repository) GetByAppointmentID(ctx context.Context, appointmentID int64) (*domain.Payment, error) {
	return r.getOne(ctx, "GetByAppointmentID", squirrel.Eq{"appointment_id": appointmentID})
}

// Complete фиксирует результат проверки подписи для платежа в статусе pending
func (r *Repository) Complete(ctx context.Context, id int64, status domain.PaymentStatus, providerPaymentID, signature string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("payments").
		Set("status", status).
		Set("provider_payment_id", providerPaymentID).
		Set("signature", signature).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": domain.PaymentPending}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Complete - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Complete - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Complete - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrNotPending
	}

	return nil
}

func (r *Repository) getOne(ctx context.Context, op string, where squirrel.Eq) (*domain.Payment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(paymentColumns...).
		From("payments").
		Where(where)

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	var p domain.Payment
	var providerPaymentID, signature sql.NullString
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&p.ID,
		&p.AppointmentID,
		&p.UserID,
		&p.MentorID,
		&p.Amount,
		&p.Currency,
		&p.Provider,
		&p.ProviderOrderID,
		&providerPaymentID,
		&signature,
		&p.Status,
		&createdAt,
		&updatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPaymentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan payment: %v", ErrScanRow, op, err)
	}

	if providerPaymentID.Valid {
		p.ProviderPaymentID = &providerPaymentID.String
	}
	if signature.Valid {
		p.Signature = &signature.String
	}
	p.CreatedAt = createdAt.Time
	p.UpdatedAt = updatedAt.Time

	return &p, nil
}
