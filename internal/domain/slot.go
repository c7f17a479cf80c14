package domain

import (
	"time"

	"github.com/Arunkino/MindHaven-Backend/pkg/types"
)

// SlotStatus represents the status of a slot
type SlotStatus string

const (
	SlotAvailable SlotStatus = "available"
	SlotBooked    SlotStatus = "booked"
	SlotBlocked   SlotStatus = "blocked"
)

// slotTransitions lists every allowed status change
var slotTransitions = map[SlotStatus][]SlotStatus{
	SlotAvailable: {SlotBooked, SlotBlocked},
	SlotBlocked:   {SlotAvailable},
	SlotBooked:    {SlotAvailable},
}

// IsValid returns true for known statuses
func (s SlotStatus) IsValid() bool {
	_, ok := slotTransitions[s]
	return ok
}

// CanTransitionTo reports whether the state machine allows s -> to
func (s SlotStatus) CanTransitionTo(to SlotStatus) bool {
	for _, allowed := range slotTransitions[s] {
		if allowed == to {
			return true
		}
	}
	return false
}

// Slot is a concrete, dated half-hour unit generated from an availability rule.
// [StartTime, EndTime) is half-open.
type Slot struct {
	ID             int64
	AvailabilityID int64
	MentorID       int64
	Date           time.Time
	StartTime      types.TimeString
	EndTime        types.TimeString
	Status         SlotStatus
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Overlaps reports whether two slots of the same mentor intersect on the same date
func (s *Slot) Overlaps(other *Slot) bool {
	if s.MentorID != other.MentorID || !types.IsSameDay(s.Date, other.Date) {
		return false
	}
	return other.StartTime.IsBefore(s.EndTime) && other.EndTime.IsAfter(s.StartTime)
}

// StartsAt returns the slot start as an instant in loc
func (s *Slot) StartsAt(loc *time.Location) time.Time {
	return s.StartTime.OnDate(s.Date, loc)
}

// SlotListing is an available slot together with the mentor details shown in search
type SlotListing struct {
	Slot           Slot
	MentorUserID   int64
	Specialization string
	HourlyRate     types.Money
}

// AvailableSlotsFilter narrows the public search of bookable slots
type AvailableSlotsFilter struct {
	FromDate       time.Time  // Inclusive lower bound, never before today
	ToDate         *time.Time // Inclusive upper bound, optional
	Date           *time.Time // Exact date, optional
	Specialization *string    // Case-insensitive substring, optional
}

// MentorSlotsFilter narrows a mentor's view of their own slots
type MentorSlotsFilter struct {
	MentorID  int64
	StartDate *time.Time
	EndDate   *time.Time
	Status    *SlotStatus
}
