package verify_payment

import (
	"context"

	"github.com/Arunkino/MindHaven-Backend/internal/domain"
)

// PaymentRepository интерфейс репозитория платежей
type PaymentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Payment, error)
	Complete(ctx context.Context, id int64, status domain.PaymentStatus, providerPaymentID, signature string) error
}

// PaymentVerifier проверяет подпись платежа у провайдера
type PaymentVerifier interface {
	Name() string
	VerifySignature(ctx context.Context, orderID, paymentID, signature string) (bool, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
