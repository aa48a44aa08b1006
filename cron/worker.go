package cron

import (
	"context"
	"time"

	"washbook/config"
	"washbook/services/booking"
	"washbook/services/tasks"
	"washbook/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// RedisOpt is the asynq connection for the booking queue.
func RedisOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
}

// SessionWorker processes delayed booking session exits.
type SessionWorker struct {
	srv *asynq.Server
	mux *asynq.ServeMux
}

// NewSessionWorker builds the worker. store is where exited sessions are deleted.
func NewSessionWorker(store booking.SessionStore) *SessionWorker {
	srv := asynq.NewServer(
		RedisOpt(),
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeSessionExit, HandleSessionExit(store))
	return &SessionWorker{srv: srv, mux: mux}
}

// Start runs the worker in the background, retrying startup with backoff.
func (w *SessionWorker) Start() {
	logger := utils.GetLogger()
	go func() {
		logger.Info("Starting session exit worker")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			err := w.srv.Start(w.mux)
			if err == nil {
				return
			}
			logger.Error("Session exit worker failed to start",
				zap.Int("attempt", attempts), zap.Int("maxAttempts", maxAttempts), zap.Error(err))
			if attempts == maxAttempts {
				logger.Error("Session exit worker gave up; exits will not run")
				return
			}
			time.Sleep(time.Duration(attempts*2) * time.Second)
		}
	}()
}

// Shutdown waits for in-flight tasks and stops the worker.
func (w *SessionWorker) Shutdown() {
	w.srv.Shutdown()
}

// HandleSessionExit deletes a successful session. Sessions that are already
// gone are skipped.
func HandleSessionExit(store booking.SessionStore) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		p, err := tasks.ParseSessionExitPayload(task)
		if err != nil {
			utils.GetLogger().Warn("Dropping session exit task", zap.Error(err))
			return asynq.SkipRetry
		}
		if err := booking.ExitSession(ctx, store, p.SessionID); err != nil {
			return err
		}
		utils.GetLogger().Debug("Session exited", zap.String("sessionId", p.SessionID))
		return nil
	}
}
