package list_availabilities

import (
	"context"

	"github.com/Arunkino/MindHaven-Backend/internal/service/availability/models"
)

type AvailabilityService interface {
	ListRules(ctx context.Context, userID int64) (*models.RuleListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
