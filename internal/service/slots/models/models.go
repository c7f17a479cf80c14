package models

import (
	"errors"
	"time"

	"github.com/Arunkino/MindHaven-Backend/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid slot status")
)

// Request модели

// ListAvailableRequest поиск свободных слотов
type ListAvailableRequest struct {
	StartDate      *time.Time // Начало диапазона, не раньше сегодняшнего дня (опционально)
	EndDate        *time.Time // Конец диапазона включительно (опционально)
	Date           *time.Time // Точная дата (опционально)
	Specialization *string    // Подстрока специализации (опционально)
}

// ListSlotsRequest слоты, видимые пользователю
type ListSlotsRequest struct {
	UserID    int64
	StartDate *time.Time
	EndDate   *time.Time
	Status    *string // Только для ментора
}

// Response модели

// SlotResponse слот
type SlotResponse struct {
	ID             int64   `json:"id"`
	AvailabilityID int64   `json:"availabilityId"`
	MentorID       int64   `json:"mentorId"`
	Date           string  `json:"date"`
	StartTime      string  `json:"startTime"`
	EndTime        string  `json:"endTime"`
	Status         string  `json:"status"`
	MentorUserID   *int64  `json:"mentorUserId,omitempty"`
	Specialization *string `json:"specialization,omitempty"`
	HourlyRate     *string `json:"hourlyRate,omitempty"`
}

// SlotListResponse список слотов
type SlotListResponse struct {
	Slots []SlotResponse `json:"slots"`
	Total int            `json:"total"`
}

// FromDomainSlot конвертирует domain.Slot в SlotResponse
func FromDomainSlot(slot *domain.Slot) SlotResponse {
	return SlotResponse{
		ID:             slot.ID,
		AvailabilityID: slot.AvailabilityID,
		MentorID:       slot.MentorID,
		Date:           slot.Date.Format(domain.DateFormat),
		StartTime:      slot.StartTime.String(),
		EndTime:        slot.EndTime.String(),
		Status:         string(slot.Status),
	}
}

// FromDomainListing конвертирует слот поиска вместе с данными ментора
func FromDomainListing(listing *domain.SlotListing) SlotResponse {
	resp := FromDomainSlot(&listing.Slot)
	mentorUserID := listing.MentorUserID
	specialization := listing.Specialization
	rate := listing.HourlyRate.String()
	resp.MentorUserID = &mentorUserID
	resp.Specialization = &specialization
	resp.HourlyRate = &rate
	return resp
}

// FromDomainSlotList конвертирует список слотов
func FromDomainSlotList(slots []*domain.Slot) *SlotListResponse {
	resp := &SlotListResponse{Slots: make([]SlotResponse, 0, len(slots)), Total: len(slots)}
	for _, slot := range slots {
		resp.Slots = append(resp.Slots, FromDomainSlot(slot))
	}
	return resp
}

// FromDomainListingList конвертирует результаты поиска
func FromDomainListingList(listings []*domain.SlotListing) *SlotListResponse {
	resp := &SlotListResponse{Slots: make([]SlotResponse, 0, len(listings)), Total: len(listings)}
	for _, listing := range listings {
		resp.Slots = append(resp.Slots, FromDomainListing(listing))
	}
	return resp
}

// ToDomainSlotStatus конвертирует строку в domain.SlotStatus
func ToDomainSlotStatus(status string) (domain.SlotStatus, error) {
	s := domain.SlotStatus(status)
	if !s.IsValid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}
