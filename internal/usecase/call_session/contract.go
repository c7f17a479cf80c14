package call_session

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Arunkino/MindHaven-Backend/internal/domain"
)

// AppointmentRepository интерфейс репозитория встреч
type AppointmentRepository interface {
	GetByVideoCallID(ctx context.Context, videoCallID uuid.UUID) (*domain.Appointment, error)
	UpdateJoinState(ctx context.Context, appointment *domain.Appointment) error
	CompleteCall(ctx context.Context, id int64, durationSeconds int, endedAt time.Time) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
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
