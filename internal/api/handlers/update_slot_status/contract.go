package update_slot_status

import (
	"context"

	"github.com/Arunkino/MindHaven-Backend/internal/service/slots/models"
)

type SlotService interface {
	Block(ctx context.Context, slotID, userID int64) (*models.SlotResponse, error)
	Unblock(ctx context.Context, slotID, userID int64) (*models.SlotResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
