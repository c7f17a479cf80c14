package availability

import (
	"context"

	"github.com/Arunkino/MindHaven-Backend/internal/domain"
)

// MentorRepository интерфейс репозитория менторов
type MentorRepository interface {
	GetByUserID(ctx context.Context, userID int64) (*domain.Mentor, error)
}

// AvailabilityRepository интерфейс репозитория правил доступности
type AvailabilityRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.AvailabilityRule, error)
	ListByMentor(ctx context.Context, mentorID int64) ([]*domain.AvailabilityRule, error)
	Delete(ctx context.Context, id int64) error
}

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	CountByAvailability(ctx context.Context, availabilityID int64, status *domain.SlotStatus) (int, error)
	CountReferenced(ctx context.Context, availabilityID int64) (int, error)
	DeleteUnreferenced(ctx context.Context, availabilityID int64) (int64, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
