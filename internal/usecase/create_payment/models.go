package create_payment

import (
	"github.com/google/uuid"

	"github.com/Arunkino/MindHaven-Backend/internal/domain"
)

// Request модель запроса на создание платежа за звонок
type Request struct {
	VideoCallID uuid.UUID // ID сессии звонка
	UserID      int64     // ID плательщика
}

// Response модель ответа с созданным платежом
type Response struct {
	Payment *domain.Payment
}
