package call_session

import (
	"github.com/google/uuid"

	"github.com/Arunkino/MindHaven-Backend/internal/domain"
)

// JoinRequest модель запроса на подключение к звонку
type JoinRequest struct {
	VideoCallID uuid.UUID // ID сессии звонка
	UserID      int64     // ID подключающегося пользователя
}

// JoinResponse модель ответа после подключения
type JoinResponse struct {
	Appointment *domain.Appointment
	Role        domain.CallRole
	CallStarted bool // true, если это подключение начало звонок
}

// EndRequest модель запроса на завершение звонка
type EndRequest struct {
	VideoCallID     uuid.UUID // ID сессии звонка
	UserID          int64     // ID пользователя, завершившего звонок
	DurationSeconds int       // Длительность звонка по данным клиента
}

// EndResponse модель ответа после завершения звонка
type EndResponse struct {
	Appointment *domain.Appointment
}
