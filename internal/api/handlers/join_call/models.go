package join_call

import (
	"github.com/Arunkino/MindHaven-Backend/internal/service/appointments/models"
	callSession "github.com/Arunkino/MindHaven-Backend/internal/usecase/call_session"
)

// JoinResponse HTTP response model
type JoinResponse struct {
	Appointment *models.AppointmentResponse `json:"appointment"`
	Role        string                      `json:"role"`
	CallStarted bool                        `json:"callStarted"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *callSession.JoinResponse) *JoinResponse {
	return &JoinResponse{
		Appointment: models.FromDomainAppointment(resp.Appointment),
		Role:        string(resp.Role),
		CallStarted: resp.CallStarted,
	}
}
