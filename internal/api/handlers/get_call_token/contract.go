package get_call_token

import (
	"context"

	"github.com/google/uuid"

	"github.com/Arunkino/MindHaven-Backend/internal/service/appointments/models"
)

type AppointmentService interface {
	GetCallToken(ctx context.Context, videoCallID uuid.UUID, userID int64) (*models.CallTokenResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
