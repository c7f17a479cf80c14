package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Arunkino/MindHaven-Backend/pkg/types"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	AppointmentScheduled         AppointmentStatus = "scheduled"
	AppointmentCompleted         AppointmentStatus = "completed"
	AppointmentCancelledByUser   AppointmentStatus = "cancelled_by_user"
	AppointmentCancelledByMentor AppointmentStatus = "cancelled_by_mentor"
)

// CallRole identifies which party of an appointment acts
type CallRole string

const (
	RoleUser   CallRole = "user"
	RoleMentor CallRole = "mentor"
)

// Appointment binds a user, a mentor and a booked slot.
// Date and times are copied from the slot at booking time.
type Appointment struct {
	ID           int64
	SlotID       int64
	UserID       int64
	MentorID     int64
	MentorUserID int64

	Date      time.Time
	StartTime types.TimeString
	EndTime   types.TimeString
	Status    AppointmentStatus

	VideoCallID      uuid.UUID
	VideoCallLink    string
	CallToken        *string // Opaque token from the RTC provider
	NotificationSent bool

	UserJoined          bool
	MentorJoined        bool
	CallStartTime       *time.Time
	CallEndTime         *time.Time
	CallDurationSeconds *int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsScheduled returns true while the appointment can still be joined, ended or cancelled
func (a *Appointment) IsScheduled() bool {
	return a.Status == AppointmentScheduled
}

// IsCancelled returns true if either party cancelled
func (a *Appointment) IsCancelled() bool {
	return a.Status == AppointmentCancelledByUser || a.Status == AppointmentCancelledByMentor
}

// IsCompleted returns true once the call has ended
func (a *Appointment) IsCompleted() bool {
	return a.Status == AppointmentCompleted
}

// RoleOf returns the role userID plays in the appointment.
// The mentor check goes first so a mentor who booked through a user account is treated as mentor.
func (a *Appointment) RoleOf(userID int64) (CallRole, bool) {
	switch userID {
	case a.MentorUserID:
		return RoleMentor, true
	case a.UserID:
		return RoleUser, true
	default:
		return "", false
	}
}

// IsParticipant reports whether userID is the booking user or the mentor
func (a *Appointment) IsParticipant(userID int64) bool {
	_, ok := a.RoleOf(userID)
	return ok
}

// CancelledStatusFor returns the cancellation status for the acting role
func CancelledStatusFor(role CallRole) AppointmentStatus {
	if role == RoleMentor {
		return AppointmentCancelledByMentor
	}
	return AppointmentCancelledByUser
}

// RecordJoin marks role as joined. The call start is stamped once, when both
// parties are in. Returns true if this join started the call.
func (a *Appointment) RecordJoin(role CallRole, now time.Time) bool {
	switch role {
	case RoleUser:
		a.UserJoined = true
	case RoleMentor:
		a.MentorJoined = true
	}

	if a.UserJoined && a.MentorJoined && a.CallStartTime == nil {
		started := now
		a.CallStartTime = &started
		return true
	}
	return false
}

// RecordCallEnd completes the appointment with the reported duration
func (a *Appointment) RecordCallEnd(durationSeconds int, now time.Time) {
	ended := now
	a.CallDurationSeconds = &durationSeconds
	a.CallEndTime = &ended
	a.UserJoined = false
	a.MentorJoined = false
	a.Status = AppointmentCompleted
}

// StartsAt returns the appointment start as an instant in loc
func (a *Appointment) StartsAt(loc *time.Location) time.Time {
	return a.StartTime.OnDate(a.Date, loc)
}

// BuildVideoCallLink returns <publicURL>/video-call/<id>/
func BuildVideoCallLink(publicURL string, id uuid.UUID) string {
	return strings.TrimRight(publicURL, "/") + "/video-call/" + id.String() + "/"
}

// AppointmentsFilter narrows appointment listings.
// Exactly one of UserID or MentorID is expected.
type AppointmentsFilter struct {
	UserID   *int64
	MentorID *int64
	FromDate *time.Time
	Status   *AppointmentStatus
}
