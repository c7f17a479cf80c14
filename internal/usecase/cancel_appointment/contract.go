package cancel_appointment

import (
	"context"

	"github.com/Arunkino/MindHaven-Backend/internal/domain"
)

// AppointmentRepository интерфейс репозитория встреч
type AppointmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	UpdateStatusIf(ctx context.Context, id int64, from, to domain.AppointmentStatus) error
}

// SlotRepository интерфейс репозитория слотов
type SlotRepository interface {
	UpdateStatusIf(ctx context.Context, id int64, from, to domain.SlotStatus) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
