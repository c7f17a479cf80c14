package models

import (
	"errors"
	"time"

	"github.com/Arunkino/MindHaven-Backend/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid appointment status")
)

// ListAppointmentsRequest запрос на получение встреч пользователя
type ListAppointmentsRequest struct {
	UserID int64
	Status *string
}

// AppointmentResponse встреча
type AppointmentResponse struct {
	ID                  int64   `json:"id"`
	SlotID              int64   `json:"slotId"`
	UserID              int64   `json:"userId"`
	MentorID            int64   `json:"mentorId"`
	MentorUserID        int64   `json:"mentorUserId"`
	Date                string  `json:"date"`
	StartTime           string  `json:"startTime"`
	EndTime             string  `json:"endTime"`
	Status              string  `json:"status"`
	VideoCallID         string  `json:"videoCallId"`
	VideoCallLink       string  `json:"videoCallLink"`
	NotificationSent    bool    `json:"notificationSent"`
	UserJoined          bool    `json:"userJoined"`
	MentorJoined        bool    `json:"mentorJoined"`
	CallStartTime       *string `json:"callStartTime,omitempty"`
	CallEndTime         *string `json:"callEndTime,omitempty"`
	CallDurationSeconds *int    `json:"callDurationSeconds,omitempty"`
	CreatedAt           string  `json:"createdAt"`
	UpdatedAt           string  `json:"updatedAt"`
}

// AppointmentListResponse список встреч
type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Total        int                   `json:"total"`
}

// CallTokenResponse токен подключения к видеозвонку
type CallTokenResponse struct {
	Token     string `json:"token"`
	Channel   string `json:"channel"`
	UID       int64  `json:"uid"`
	ExpiresAt string `json:"expiresAt"`
}

// FromDomainAppointment конвертирует domain.Appointment в AppointmentResponse
func FromDomainAppointment(a *domain.Appointment) *AppointmentResponse {
	return &AppointmentResponse{
		ID:                  a.ID,
		SlotID:              a.SlotID,
		UserID:              a.UserID,
		MentorID:            a.MentorID,
		MentorUserID:        a.MentorUserID,
		Date:                a.Date.Format(domain.DateFormat),
		StartTime:           a.StartTime.String(),
		EndTime:             a.EndTime.String(),
		Status:              string(a.Status),
		VideoCallID:         a.VideoCallID.String(),
		VideoCallLink:       a.VideoCallLink,
		NotificationSent:    a.NotificationSent,
		UserJoined:          a.UserJoined,
		MentorJoined:        a.MentorJoined,
		CallStartTime:       formatTime(a.CallStartTime),
		CallEndTime:         formatTime(a.CallEndTime),
		CallDurationSeconds: a.CallDurationSeconds,
		CreatedAt:           a.CreatedAt.Format(time.RFC3339),
		UpdatedAt:           a.UpdatedAt.Format(time.RFC3339),
	}
}

// FromDomainAppointmentList конвертирует список встреч
func FromDomainAppointmentList(list []*domain.Appointment) *AppointmentListResponse {
	resp := &AppointmentListResponse{
		Appointments: make([]AppointmentResponse, 0, len(list)),
		Total:        len(list),
	}
	for _, a := range list {
		resp.Appointments = append(resp.Appointments, *FromDomainAppointment(a))
	}
	return resp
}

// ToDomainAppointmentStatus конвертирует строку в domain.AppointmentStatus
func ToDomainAppointmentStatus(status string) (domain.AppointmentStatus, error) {
	switch s := domain.AppointmentStatus(status); s {
	case domain.AppointmentScheduled, domain.AppointmentCompleted,
		domain.AppointmentCancelledByUser, domain.AppointmentCancelledByMentor:
		return s, nil
	default:
		return "", ErrInvalidStatus
	}
}

func formatTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}
