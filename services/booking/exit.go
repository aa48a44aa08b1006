package booking

import (
	"context"
	"errors"
	"sync"
	"time"

	"washbook/utils"

	"go.uber.org/zap"
)

// ExitDelay is how long the success state stays visible before the session
// is discarded.
const ExitDelay = 3 * time.Second

// ExitScheduler arranges for a successful session to be discarded after
// delay. A scheduled exit cannot be cancelled; firing on a session that was
// already closed must do nothing.
type ExitScheduler interface {
	ScheduleExit(ctx context.Context, sessionID string, delay time.Duration) error
}

// TimerExitScheduler runs exits in-process. It is used when no task queue is
// configured.
type TimerExitScheduler struct {
	store   SessionStore
	mu      sync.Mutex
	timers  map[string]*time.Timer
	stopped bool
}

func NewTimerExitScheduler(store SessionStore) *TimerExitScheduler {
	return &TimerExitScheduler{store: store, timers: make(map[string]*time.Timer)}
}

func (t *TimerExitScheduler) ScheduleExit(_ context.Context, sessionID string, delay time.Duration) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stopped {
		return nil
	}
	if _, pending := t.timers[sessionID]; pending {
		return nil
	}
	t.timers[sessionID] = time.AfterFunc(delay, func() { t.fire(sessionID) })
	return nil
}

func (t *TimerExitScheduler) fire(sessionID string) {
	t.mu.Lock()
	delete(t.timers, sessionID)
	t.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := ExitSession(ctx, t.store, sessionID); err != nil {
		utils.GetLogger().Warn("Session exit failed", zap.String("sessionId", sessionID), zap.Error(err))
	}
}

// Pending returns the number of exits waiting to fire.
func (t *TimerExitScheduler) Pending() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.timers)
}

// Stop discards every pending exit. Later calls to ScheduleExit are ignored.
func (t *TimerExitScheduler) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopped = true
	for id, timer := range t.timers {
		timer.Stop()
		delete(t.timers, id)
	}
}

// ExitSession discards a session that reached success. Unknown sessions and
// sessions that never succeeded are left alone.
func ExitSession(ctx context.Context, store SessionStore, sessionID string) error {
	s, err := store.Get(ctx, sessionID)
	if errors.Is(err, ErrSessionNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if Step(s.Step) != StepSuccess {
		return nil
	}
	return store.Delete(ctx, sessionID)
}
