package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
)

const TypeSessionExit = "booking:session:exit"

// SessionExitPayload names the booking session to discard.
type SessionExitPayload struct {
	SessionID string `json:"sessionId"`
}

// NewSessionExitTask builds a task that fires after delay. The task id is
// derived from the session so an exit is queued at most once.
func NewSessionExitTask(sessionID string, delay time.Duration) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(SessionExitPayload{SessionID: sessionID})
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeSessionExit, b)
	opts := []asynq.Option{
		asynq.ProcessIn(delay),
		asynq.TaskID("exit:" + sessionID),
		asynq.MaxRetry(3),
	}
	return task, opts, nil
}

// ParseSessionExitPayload decodes a task created by NewSessionExitTask.
func ParseSessionExitPayload(task *asynq.Task) (SessionExitPayload, error) {
	var p SessionExitPayload
	if err := json.Unmarshal(task.Payload(), &p); err != nil {
		return p, fmt.Errorf("invalid session exit payload: %w", err)
	}
	if p.SessionID == "" {
		return p, errors.New("session exit payload has no session id")
	}
	return p, nil
}

// Enqueuer is implemented by *asynq.Client.
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// AsynqExitScheduler queues session exits on Redis so they survive a
// restart of the API process.
type AsynqExitScheduler struct {
	client Enqueuer
}

func NewAsynqExitScheduler(client Enqueuer) *AsynqExitScheduler {
	return &AsynqExitScheduler{client: client}
}

func (s *AsynqExitScheduler) ScheduleExit(ctx context.Context, sessionID string, delay time.Duration) error {
	task, opts, err := NewSessionExitTask(sessionID, delay)
	if err != nil {
		return err
	}
	_, err = s.client.EnqueueContext(ctx, task, opts...)
	if errors.Is(err, asynq.ErrTaskIDConflict) {
		return nil
	}
	return err
}
