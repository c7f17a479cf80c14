package domain

import (
	"time"

	"github.com/Arunkino/MindHaven-Backend/pkg/types"
)

// Mentor is the part of a mentor profile the scheduling core needs
type Mentor struct {
	ID             int64
	UserID         int64
	Specialization string
	HourlyRate     types.Money
	IsVerified     bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
