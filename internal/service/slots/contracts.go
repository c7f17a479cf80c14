package slots

import (
	"context"
	"time"

	"github.com/Arunkino/MindHaven-Backend/internal/domain"
)

// MentorRepository интерфейс репозитория менторов
type MentorRepository interface {
	GetByUserID(ctx context.Context, userID int64) (*domain.Mentor, error)
}

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Slot, error)
	UpdateStatusIf(ctx context.Context, id int64, from, to domain.SlotStatus) error
	ListAvailable(ctx context.Context, filter domain.AvailableSlotsFilter) ([]*domain.SlotListing, error)
	ListByMentor(ctx context.Context, filter domain.MentorSlotsFilter) ([]*domain.Slot, error)
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
