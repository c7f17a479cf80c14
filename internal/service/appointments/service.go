package appointments

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Arunkino/MindHaven-Backend/internal/domain"
	appointmentRepo "github.com/Arunkino/MindHaven-Backend/internal/infra/storage/appointment"
	mentorRepo "github.com/Arunkino/MindHaven-Backend/internal/infra/storage/mentor"
	"github.com/Arunkino/MindHaven-Backend/internal/service/appointments/models"
	"github.com/Arunkino/MindHaven-Backend/pkg/types"
)

// Service сервис для просмотра встреч и выдачи токенов звонка
type Service struct {
	mentorRepo      MentorRepository
	appointmentRepo AppointmentRepository
	tokenIssuer     TokenIssuer
	location        *time.Location
	timeProvider    TimeProvider
	logger          Logger
}

// NewService создает новый экземпляр сервиса встреч
func NewService(
	mentorRepo MentorRepository,
	appointmentRepo AppointmentRepository,
	tokenIssuer TokenIssuer,
	location *time.Location,
	logger Logger,
) *Service {
	return &Service{
		mentorRepo:      mentorRepo,
		appointmentRepo: appointmentRepo,
		tokenIssuer:     tokenIssuer,
		location:        location,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// List возвращает встречи пользователя: ментор видит встречи к себе, остальные - свои бронирования
func (s *Service) List(ctx context.Context, req *models.ListAppointmentsRequest) (*models.AppointmentListResponse, error) {
	s.logger.Info("List: fetching appointments for user=%d, status=%v", req.UserID, req.Status)

	filter, err := s.ownerFilter(ctx, req.UserID, "List")
	if err != nil {
		return nil, err
	}

	if req.Status != nil {
		status, err := models.ToDomainAppointmentStatus(*req.Status)
		if err != nil {
			s.logger.Warn("List: invalid status=%s for user=%d", *req.Status, req.UserID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		filter.Status = &status
	}

	list, err := s.appointmentRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: fetched %d appointments for user=%d", len(list), req.UserID)
	return models.FromDomainAppointmentList(list), nil
}

// Upcoming возвращает встречи начиная с сегодняшнего дня;
// сегодняшние встречи, которые уже начались, исключаются
func (s *Service) Upcoming(ctx context.Context, userID int64) (*models.AppointmentListResponse, error) {
	s.logger.Info("Upcoming: fetching appointments for user=%d", userID)

	filter, err := s.ownerFilter(ctx, userID, "Upcoming")
	if err != nil {
		return nil, err
	}

	now := s.timeProvider.Now().In(s.location)
	today := types.DateOnly(now)
	filter.FromDate = &today

	list, err := s.appointmentRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("Upcoming: repository error for user=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: Upcoming - repository error: %v", ErrInternal, err)
	}

	upcoming := make([]*domain.Appointment, 0, len(list))
	for _, a := range list {
		if a.StartsAt(s.location).Before(now) {
			continue
		}
		upcoming = append(upcoming, a)
	}

	s.logger.Info("Upcoming: %d of %d appointments are upcoming for user=%d", len(upcoming), len(list), userID)
	return models.FromDomainAppointmentList(upcoming), nil
}

// GetCallToken выпускает токен подключения к звонку для участника встречи
func (s *Service) GetCallToken(ctx context.Context, videoCallID uuid.UUID, userID int64) (*models.CallTokenResponse, error) {
	s.logger.Info("GetCallToken: call=%s, user=%d", videoCallID, userID)

	appointment, err := s.appointmentRepo.GetByVideoCallID(ctx, videoCallID)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("GetCallToken: call=%s not found", videoCallID)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("GetCallToken: failed to get appointment for call=%s: %v", videoCallID, err)
		return nil, fmt.Errorf("%w: GetCallToken - repository error: %v", ErrInternal, err)
	}

	if !appointment.IsParticipant(userID) {
		s.logger.Warn("GetCallToken: user=%d is not a participant of call=%s", userID, videoCallID)
		return nil, ErrAccessDenied
	}
	if !appointment.IsScheduled() {
		s.logger.Warn("GetCallToken: appointment id=%d is %s", appointment.ID, appointment.Status)
		return nil, ErrCallNotActive
	}

	channel := appointment.VideoCallID.String()
	token, expiresAt, err := s.tokenIssuer.IssueToken(channel, userID)
	if err != nil {
		s.logger.Error("GetCallToken: failed to issue token for call=%s: %v", videoCallID, err)
		return nil, fmt.Errorf("%w: %v", ErrTokenProvider, err)
	}

	s.logger.Info("GetCallToken: token issued for user=%d, call=%s", userID, videoCallID)
	return &models.CallTokenResponse{
		Token:     token,
		Channel:   channel,
		UID:       userID,
		ExpiresAt: expiresAt.Format(time.RFC3339),
	}, nil
}

// ownerFilter строит фильтр по роли пользователя
func (s *Service) ownerFilter(ctx context.Context, userID int64, op string) (domain.AppointmentsFilter, error) {
	mentor, err := s.mentorRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, mentorRepo.ErrMentorNotFound) {
			return domain.AppointmentsFilter{UserID: &userID}, nil
		}
		s.logger.Error("%s: failed to get mentor for user=%d: %v", op, userID, err)
		return domain.AppointmentsFilter{}, fmt.Errorf("%w: %s - get mentor: %v", ErrInternal, op, err)
	}
	return domain.AppointmentsFilter{MentorID: &mentor.ID}, nil
}
