package cancel_appointment

import "github.com/Arunkino/MindHaven-Backend/internal/domain"

// Request модель запроса на отмену встречи
type Request struct {
	AppointmentID int64 // ID встречи
	UserID        int64 // ID отменяющего пользователя (клиент или ментор)
}

// Response модель ответа с отмененной встречей
type Response struct {
	Appointment *domain.Appointment
}
