package send_reminders

import (
	"fmt"

	"github.com/Arunkino/MindHaven-Backend/internal/domain"
)

// sharedTokenUID uid общего токена канала, выпускаемого заранее
const sharedTokenUID = 0

// NotificationTypeReminder тип события напоминания о звонке
const NotificationTypeReminder = "appointment_reminder"

// Результаты обработки встречи для метрик
const (
	resultSent      = "sent"
	resultFailed    = "failed"
	resultDuplicate = "duplicate"
)

// Response итог одного запуска
type Response struct {
	Due    int // Найдено встреч
	Sent   int // Напоминания отправлены
	Failed int // Пропущены из-за ошибок
}

func reminderMessage(a *domain.Appointment, leadMinutes int) string {
	return fmt.Sprintf("Your appointment starts in %d minutes. Join here: %s", leadMinutes, a.VideoCallLink)
}
