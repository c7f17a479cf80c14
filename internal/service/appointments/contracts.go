package appointments

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Arunkino/MindHaven-Backend/internal/domain"
)

// MentorRepository интерфейс репозитория менторов
type MentorRepository interface {
	GetByUserID(ctx context.Context, userID int64) (*domain.Mentor, error)
}

// AppointmentRepository интерфейс репозитория встреч
type AppointmentRepository interface {
	GetByVideoCallID(ctx context.Context, videoCallID uuid.UUID) (*domain.Appointment, error)
	List(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error)
}

// TokenIssuer выпускает токены видеозвонка
type TokenIssuer interface {
	IssueToken(sessionID string, uid int64) (string, time.Time, error)
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
