package get_upcoming_appointments

import (
	"context"

	"github.com/Arunkino/MindHaven-Backend/internal/service/appointments/models"
)

type AppointmentService interface {
	Upcoming(ctx context.Context, userID int64) (*models.AppointmentListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
