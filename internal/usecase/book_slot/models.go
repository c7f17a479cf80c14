package book_slot

import "github.com/Arunkino/MindHaven-Backend/internal/domain"

// Request модель запроса на бронирование слота
type Request struct {
	SlotID int64 // ID слота
	UserID int64 // ID бронирующего пользователя
}

// Response модель ответа с созданной встречей
type Response struct {
	Appointment *domain.Appointment
}

// Исходы бронирования для метрик
const (
	outcomeSuccess      = "success"
	outcomeNotAvailable = "not_available"
	outcomeConflict     = "conflict"
	outcomeRejected     = "rejected"
	outcomeError        = "error"
)
