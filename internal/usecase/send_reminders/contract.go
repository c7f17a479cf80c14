package send_reminders

import (
	"context"
	"time"

	"github.com/Arunkino/MindHaven-Backend/internal/domain"
	"github.com/Arunkino/MindHaven-Backend/internal/integrations/notifier"
)

// AppointmentRepository интерфейс репозитория встреч
type AppointmentRepository interface {
	ListDueForReminder(ctx context.Context, from, to time.Time) ([]*domain.Appointment, error)
	SetCallToken(ctx context.Context, id int64, token string) error
	MarkNotified(ctx context.Context, id int64) error
}

// TokenIssuer выпускает токены видеозвонка
type TokenIssuer interface {
	IssueToken(sessionID string, uid int64) (string, time.Time, error)
}

// Notifier доставляет уведомления пользователям
type Notifier interface {
	NotifyUser(ctx context.Context, userID int64, notification notifier.Notification) error
}

// Metrics счетчик отправленных напоминаний
type Metrics interface {
	IncReminder(result string)
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
