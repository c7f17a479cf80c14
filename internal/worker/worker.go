package worker

import (
	"fmt"
	"time"

	"github.com/hibiken/asynq"
)

// Config параметры фонового обработчика
type Config struct {
	Cron        string         // Расписание запуска, например "@every 1m"
	Concurrency int            // Число параллельных обработчиков
	Location    *time.Location // Часовой пояс для cron выражения
}

// Worker планировщик и обработчик фоновых задач на asynq
type Worker struct {
	server    *asynq.Server
	scheduler *asynq.Scheduler
	mux       *asynq.ServeMux
	cron      string
	logger    Logger
}

// New создает планировщик и сервер задач поверх одного Redis
func New(redisOpt asynq.RedisConnOpt, cfg Config, reminders *RemindersHandler, logger Logger) *Worker {
	asynqLog := &asynqLogger{log: logger}

	server := asynq.NewServer(redisOpt, asynq.Config{
		Concurrency: cfg.Concurrency,
		Queues:      map[string]int{"default": 1},
		Logger:      asynqLog,
	})

	scheduler := asynq.NewScheduler(redisOpt, &asynq.SchedulerOpts{
		Location: cfg.Location,
		Logger:   asynqLog,
	})

	mux := asynq.NewServeMux()
	mux.Handle(TypeSendReminders, reminders)

	return &Worker{
		server:    server,
		scheduler: scheduler,
		mux:       mux,
		cron:      cfg.Cron,
		logger:    logger,
	}
}

// Start регистрирует периодическую задачу и запускает обработку
// Повторы отключены: следующий прогон по расписанию подберет то, что не удалось отправить
func (w *Worker) Start() error {
	entryID, err := w.scheduler.Register(w.cron, NewSendRemindersTask(),
		asynq.MaxRetry(0),
		asynq.Timeout(time.Minute),
		asynq.Unique(time.Minute),
	)
	if err != nil {
		return fmt.Errorf("worker: failed to register %s: %w", TypeSendReminders, err)
	}
	w.logger.Info("Worker: %s scheduled with %q, entry=%s", TypeSendReminders, w.cron, entryID)

	if err := w.scheduler.Start(); err != nil {
		return fmt.Errorf("worker: failed to start scheduler: %w", err)
	}
	if err := w.server.Start(w.mux); err != nil {
		w.scheduler.Shutdown()
		return fmt.Errorf("worker: failed to start server: %w", err)
	}

	w.logger.Info("Worker: started")
	return nil
}

// Shutdown останавливает планировщик и дожидается завершения активных задач
func (w *Worker) Shutdown() {
	w.scheduler.Shutdown()
	w.server.Shutdown()
	w.logger.Info("Worker: stopped")
}

// asynqLogger адаптирует printf логгер к asynq.Logger
type asynqLogger struct {
	log Logger
}

func (l *asynqLogger) Debug(args ...interface{}) { l.log.Debug("asynq: %s", fmt.Sprint(args...)) }
func (l *asynqLogger) Info(args ...interface{})  { l.log.Info("asynq: %s", fmt.Sprint(args...)) }
func (l *asynqLogger) Warn(args ...interface{})  { l.log.Warn("asynq: %s", fmt.Sprint(args...)) }
func (l *asynqLogger) Error(args ...interface{}) { l.log.Error("asynq: %s", fmt.Sprint(args...)) }
func (l *asynqLogger) Fatal(args ...interface{}) { l.log.Fatal("asynq: %s", fmt.Sprint(args...)) }
