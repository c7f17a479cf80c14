package models

import (
	"time"

	"github.com/Arunkino/MindHaven-Backend/internal/domain"
)

// RuleResponse правило доступности
type RuleResponse struct {
	ID          int64  `json:"id"`
	MentorID    int64  `json:"mentorId"`
	DayOfWeek   int    `json:"dayOfWeek"`
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
	IsRecurring bool   `json:"isRecurring"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt"`
}

// RuleListResponse список правил ментора
type RuleListResponse struct {
	Rules []RuleResponse `json:"rules"`
	Total int            `json:"total"`
}

// FromDomainRule конвертирует domain.AvailabilityRule в RuleResponse
func FromDomainRule(rule *domain.AvailabilityRule) RuleResponse {
	return RuleResponse{
		ID:          rule.ID,
		MentorID:    rule.MentorID,
		DayOfWeek:   rule.DayOfWeek,
		StartTime:   rule.StartTime.String(),
		EndTime:     rule.EndTime.String(),
		IsRecurring: rule.IsRecurring,
		CreatedAt:   rule.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   rule.UpdatedAt.Format(time.RFC3339),
	}
}

// FromDomainRuleList конвертирует список правил
func FromDomainRuleList(rules []*domain.AvailabilityRule) *RuleListResponse {
	resp := &RuleListResponse{
		Rules: make([]RuleResponse, 0, len(rules)),
		Total: len(rules),
	}
	for _, rule := range rules {
		resp.Rules = append(resp.Rules, FromDomainRule(rule))
	}
	return resp
}
