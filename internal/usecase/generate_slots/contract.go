package generate_slots

import (
	"context"
	"time"

	"github.com/Arunkino/MindHaven-Backend/internal/domain"
)

// MentorRepository интерфейс репозитория менторов
type MentorRepository interface {
	GetByUserID(ctx context.Context, userID int64) (*domain.Mentor, error)
}

// AvailabilityRepository интерфейс репозитория правил доступности
type AvailabilityRepository interface {
	Upsert(ctx context.Context, rule *domain.AvailabilityRule) (*domain.AvailabilityRule, error)
	Update(ctx context.Context, rule *domain.AvailabilityRule) (*domain.AvailabilityRule, error)
}

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	ListByMentor(ctx context.Context, filter domain.MentorSlotsFilter) ([]*domain.Slot, error)
	InsertIfNoOverlap(ctx context.Context, slot *domain.Slot) (bool, error)
	DeleteUnreferenced(ctx context.Context, availabilityID int64) (int64, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics счетчики генерации слотов
type Metrics interface {
	AddSlots(created, skipped int)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
