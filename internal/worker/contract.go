package worker

import (
	"context"

	sendReminders "github.com/Arunkino/MindHaven-Backend/internal/usecase/send_reminders"
)

// SendRemindersUseCase отправка напоминаний перед звонком
type SendRemindersUseCase interface {
	Execute(ctx context.Context) (*sendReminders.Response, error)
}

type Logger interface {
	Debug(format string, v ...interface{})
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
	Fatal(format string, v ...interface{})
}
