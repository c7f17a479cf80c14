package notifier

import "time"

// Notification событие, доставляемое пользователю через чат-транспорт
type Notification struct {
	Type          string    `json:"type"`
	Message       string    `json:"message"`
	AppointmentID int64     `json:"appointmentId"`
	VideoCallID   string    `json:"videoCallId,omitempty"`
	VideoCallLink string    `json:"videoCallLink,omitempty"`
	StartsAt      time.Time `json:"startsAt"`
}
