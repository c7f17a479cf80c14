package verify_payment

import verifyPayment "github.com/Arunkino/MindHaven-Backend/internal/usecase/verify_payment"

// VerifyPaymentRequest HTTP request model
type VerifyPaymentRequest struct {
	OrderID           string `json:"orderId,omitempty"`
	ProviderPaymentID string `json:"providerPaymentId"`
	Signature         string `json:"signature"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *VerifyPaymentRequest) ToUseCaseRequest(paymentID, userID int64) *verifyPayment.Request {
	return &verifyPayment.Request{
		PaymentID:         paymentID,
		UserID:            userID,
		OrderID:           r.OrderID,
		ProviderPaymentID: r.ProviderPaymentID,
		Signature:         r.Signature,
	}
}
