package domain

import (
	"time"

	"github.com/Arunkino/MindHaven-Backend/pkg/types"
)

// PaymentStatus represents the status of a payment
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
)

// Payment is the charge for one completed appointment
type Payment struct {
	ID                int64
	AppointmentID     int64
	UserID            int64
	MentorID          int64
	Amount            types.Money
	Currency          string
	Provider          string
	ProviderOrderID   string
	ProviderPaymentID *string
	Signature         *string
	Status            PaymentStatus
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// CalculateAmount derives the charge for a call: duration x hourly rate,
// rounded half-even to the minor unit and floored at minimum.
func CalculateAmount(durationSeconds int, hourlyRate, minimum types.Money) types.Money {
	if durationSeconds < 0 {
		durationSeconds = 0
	}
	amount := types.Money(types.MulDivHalfEven(int64(durationSeconds), hourlyRate.MinorUnits(), SecondsPerHour))
	if amount < minimum {
		return minimum
	}
	return amount
}
