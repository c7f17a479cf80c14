package create_payment

import (
	"time"

	"github.com/Arunkino/MindHaven-Backend/internal/domain"
)

// PaymentResponse HTTP response model
type PaymentResponse struct {
	ID                int64   `json:"id"`
	AppointmentID     int64   `json:"appointmentId"`
	UserID            int64   `json:"userId"`
	MentorID          int64   `json:"mentorId"`
	Amount            string  `json:"amount"` // "150.00"
	Currency          string  `json:"currency"`
	Provider          string  `json:"provider"`
	ProviderOrderID   string  `json:"providerOrderId"`
	ProviderPaymentID *string `json:"providerPaymentId,omitempty"`
	Status            string  `json:"status"`
	CreatedAt         string  `json:"createdAt"`
	UpdatedAt         string  `json:"updatedAt"`
}

// FromDomainPayment конвертирует domain.Payment в HTTP response
func FromDomainPayment(p *domain.Payment) *PaymentResponse {
	return &PaymentResponse{
		ID:                p.ID,
		AppointmentID:     p.AppointmentID,
		UserID:            p.UserID,
		MentorID:          p.MentorID,
		Amount:            p.Amount.String(),
		Currency:          p.Currency,
		Provider:          p.Provider,
		ProviderOrderID:   p.ProviderOrderID,
		ProviderPaymentID: p.ProviderPaymentID,
		Status:            string(p.Status),
		CreatedAt:         p.CreatedAt.Format(time.RFC3339),
		UpdatedAt:         p.UpdatedAt.Format(time.RFC3339),
	}
}
