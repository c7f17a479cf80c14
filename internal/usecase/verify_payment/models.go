package verify_payment

import "github.com/Arunkino/MindHaven-Backend/internal/domain"

// Request модель запроса на подтверждение платежа
type Request struct {
	PaymentID         int64  // ID платежа
	UserID            int64  // ID плательщика
	OrderID           string // ID заказа у провайдера (опционально, сверяется с сохраненным)
	ProviderPaymentID string // ID платежа у провайдера
	Signature         string // Подпись провайдера
}

// Response модель ответа с обновленным платежом
type Response struct {
	Payment *domain.Payment
}
