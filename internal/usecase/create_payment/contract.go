package create_payment

import (
	"context"

	"github.com/google/uuid"

	"github.com/Arunkino/MindHaven-Backend/internal/domain"
	"github.com/Arunkino/MindHaven-Backend/pkg/types"
)

// AppointmentRepository интерфейс репозитория встреч
type AppointmentRepository interface {
	GetByVideoCallID(ctx context.Context, videoCallID uuid.UUID) (*domain.Appointment, error)
}

// MentorRepository интерфейс репозитория менторов
type MentorRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Mentor, error)
}

// PaymentRepository интерфейс репозитория платежей
type PaymentRepository interface {
	GetByAppointmentID(ctx context.Context, appointmentID int64) (*domain.Payment, error)
	Create(ctx context.Context, payment *domain.Payment) (*domain.Payment, error)
}

// PaymentProvider внешний платежный провайдер
type PaymentProvider interface {
	Name() string
	CreateOrder(ctx context.Context, amount types.Money, currency, receipt string) (string, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
