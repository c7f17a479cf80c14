package worker

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"
)

// TypeSendReminders задача периодического поиска встреч, которым пора напомнить
const TypeSendReminders = "reminders:send"

// NewSendRemindersTask создает задачу без полезной нагрузки: окно поиска считается от текущего времени
func NewSendRemindersTask() *asynq.Task {
	return asynq.NewTask(TypeSendReminders, nil)
}

// RemindersHandler обработчик задачи TypeSendReminders
type RemindersHandler struct {
	useCase SendRemindersUseCase
	logger  Logger
}

func NewRemindersHandler(useCase SendRemindersUseCase, logger Logger) *RemindersHandler {
	return &RemindersHandler{
		useCase: useCase,
		logger:  logger,
	}
}

// ProcessTask реализует asynq.Handler
// Ошибки по отдельным встречам учитываются в use case, здесь возвращается только сбой всего прогона
func (h *RemindersHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	resp, err := h.useCase.Execute(ctx)
	if err != nil {
		h.logger.Error("%s - run failed: %v", task.Type(), err)
		return fmt.Errorf("%s: %w", task.Type(), err)
	}

	if resp.Due > 0 {
		h.logger.Info("%s - due=%d, sent=%d, failed=%d", task.Type(), resp.Due, resp.Sent, resp.Failed)
	}
	return nil
}
