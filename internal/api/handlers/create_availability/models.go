package create_availability

import (
	"time"

	"github.com/Arunkino/MindHaven-Backend/internal/domain"
	availabilityModels "github.com/Arunkino/MindHaven-Backend/internal/service/availability/models"
	slotModels "github.com/Arunkino/MindHaven-Backend/internal/service/slots/models"
	generateSlots "github.com/Arunkino/MindHaven-Backend/internal/usecase/generate_slots"
	"github.com/Arunkino/MindHaven-Backend/pkg/types"
)

// AvailabilityRequest HTTP request model
type AvailabilityRequest struct {
	DayOfWeek   int     `json:"dayOfWeek"` // 0 - понедельник
	StartTime   string  `json:"startTime"` // "09:00"
	EndTime     string  `json:"endTime"`   // "12:00"
	IsRecurring bool    `json:"isRecurring"`
	CurrentDate *string `json:"currentDate,omitempty"` // "2025-03-03", точка отсчета генерации
}

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	Rule         availabilityModels.RuleResponse `json:"rule"`
	CreatedSlots []slotModels.SlotResponse       `json:"createdSlots"`
	SkippedCount int                             `json:"skippedCount"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *AvailabilityRequest) ToUseCaseRequest(userID int64, ruleID *int64) (*generateSlots.Request, error) {
	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	endTime, err := types.NewTimeStringFromString(r.EndTime)
	if err != nil {
		return nil, err
	}

	var currentDate *time.Time
	if r.CurrentDate != nil {
		parsed, err := time.Parse(domain.DateFormat, *r.CurrentDate)
		if err != nil {
			return nil, err
		}
		currentDate = &parsed
	}

	return &generateSlots.Request{
		UserID:      userID,
		RuleID:      ruleID,
		DayOfWeek:   r.DayOfWeek,
		StartTime:   startTime,
		EndTime:     endTime,
		IsRecurring: r.IsRecurring,
		CurrentDate: currentDate,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *generateSlots.Response) *AvailabilityResponse {
	return &AvailabilityResponse{
		Rule:         availabilityModels.FromDomainRule(resp.Rule),
		CreatedSlots: slotModels.FromDomainSlotList(resp.CreatedSlots).Slots,
		SkippedCount: resp.SkippedCount,
	}
}
