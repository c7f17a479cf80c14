package send_reminders

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Arunkino/MindHaven-Backend/internal/domain"
	appointmentRepo "github.com/Arunkino/MindHaven-Backend/internal/infra/storage/appointment"
	"github.com/Arunkino/MindHaven-Backend/internal/integrations/notifier"
)

// UseCase use case для отправки напоминаний перед звонком
type UseCase struct {
	appointmentRepo AppointmentRepository
	tokenIssuer     TokenIssuer
	notifier        Notifier
	metrics         Metrics
	location        *time.Location
	leadMinutes     int
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	tokenIssuer TokenIssuer,
	notifier Notifier,
	metrics Metrics,
	location *time.Location,
	leadMinutes int,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		tokenIssuer:     tokenIssuer,
		notifier:        notifier,
		metrics:         metrics,
		location:        location,
		leadMinutes:     leadMinutes,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute находит встречи, начинающиеся в ближайшие leadMinutes, и уведомляет обоих участников
// Ошибка по одной встрече не прерывает обработку остальных
func (uc *UseCase) Execute(ctx context.Context) (*Response, error) {
	// 1. Окно поиска в часовом поясе расписания
	now := uc.timeProvider.Now().In(uc.location)
	until := now.Add(time.Duration(uc.leadMinutes) * time.Minute)

	// 2. Получаем встречи без напоминания
	due, err := uc.appointmentRepo.ListDueForReminder(ctx, now, until)
	if err != nil {
		uc.logger.Error("SendReminders: failed to list appointments between %s and %s: %v",
			now.Format(time.RFC3339), until.Format(time.RFC3339), err)
		return nil, fmt.Errorf("%w: failed to list appointments: %v", ErrInternal, err)
	}

	resp := &Response{Due: len(due)}
	if len(due) == 0 {
		return resp, nil
	}

	uc.logger.Info("SendReminders: %d appointments due between %s and %s",
		len(due), now.Format(time.RFC3339), until.Format(time.RFC3339))

	// 3. Обрабатываем каждую встречу
	for _, appointment := range due {
		result, err := uc.remind(ctx, appointment)
		uc.observe(result)
		if err != nil {
			resp.Failed++
			uc.logger.Error("SendReminders: appointment id=%d skipped: %v", appointment.ID, err)
			continue
		}
		if result == resultSent {
			resp.Sent++
		}
	}

	uc.logger.Info("SendReminders: due=%d, sent=%d, failed=%d", resp.Due, resp.Sent, resp.Failed)

	return resp, nil
}

func (uc *UseCase) remind(ctx context.Context, appointment *domain.Appointment) (string, error) {
	// 3.1. Выпускаем общий токен звонка, если его еще нет
	if appointment.CallToken == nil {
		token, _, err := uc.tokenIssuer.IssueToken(appointment.VideoCallID.String(), sharedTokenUID)
		if err != nil {
			return resultFailed, fmt.Errorf("issue call token: %w", err)
		}
		if err := uc.appointmentRepo.SetCallToken(ctx, appointment.ID, token); err != nil {
			return resultFailed, fmt.Errorf("save call token: %w", err)
		}
		appointment.CallToken = &token
	}

	// 3.2. Уведомляем клиента и ментора
	notification := notifier.Notification{
		Type:          NotificationTypeReminder,
		Message:       reminderMessage(appointment, uc.leadMinutes),
		AppointmentID: appointment.ID,
		VideoCallID:   appointment.VideoCallID.String(),
		VideoCallLink: appointment.VideoCallLink,
		StartsAt:      appointment.StartsAt(uc.location),
	}
	for _, userID := range []int64{appointment.UserID, appointment.MentorUserID} {
		if err := uc.notifier.NotifyUser(ctx, userID, notification); err != nil {
			return resultFailed, fmt.Errorf("notify user %d: %w", userID, err)
		}
	}

	// 3.3. Отмечаем отправку; параллельный запуск мог успеть раньше
	if err := uc.appointmentRepo.MarkNotified(ctx, appointment.ID); err != nil {
		if errors.Is(err, appointmentRepo.ErrStatusConflict) {
			uc.logger.Warn("SendReminders: appointment id=%d already marked as notified", appointment.ID)
			return resultDuplicate, nil
		}
		return resultFailed, fmt.Errorf("mark notified: %w", err)
	}

	return resultSent, nil
}

func (uc *UseCase) observe(result string) {
	if uc.metrics != nil {
		uc.metrics.IncReminder(result)
	}
}
