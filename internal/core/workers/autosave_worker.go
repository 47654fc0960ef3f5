package workers

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Flusher persists the pending state of one player.
type Flusher interface {
	Save(ctx context.Context, playerID string) error
	DirtyPlayers() []string
	CloseIdle(ctx context.Context, maxIdle time.Duration) []string
}

type SaveJob struct {
	PlayerID string
}

// AutosaveWorker writes dirty players in the background: on demand through
// Enqueue, and periodically for anything a full queue dropped. Each tick
// also closes sessions idle for longer than idle; zero keeps them open.
type AutosaveWorker struct {
	interval time.Duration
	idle     time.Duration
	logger   *zap.Logger
	jobs     chan SaveJob
	done     chan struct{}
}

func NewAutosaveWorker(interval, idle time.Duration, logger *zap.Logger) *AutosaveWorker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AutosaveWorker{
		interval: interval,
		idle:     idle,
		logger:   logger,
		jobs:     make(chan SaveJob, 100),
		done:     make(chan struct{}),
	}
}

// Start runs the worker until ctx is cancelled. On shutdown every dirty
// player is flushed once more with a fresh deadline.
func (w *AutosaveWorker) Start(ctx context.Context, flusher Flusher) {
	go func() {
		defer close(w.done)

		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()

		w.logger.Info("autosave worker started",
			zap.Duration("interval", w.interval),
			zap.Duration("idle_timeout", w.idle),
		)
		for {
			select {
			case job := <-w.jobs:
				w.process(ctx, flusher, job)
			case <-ticker.C:
				w.flushAll(ctx, flusher)
				w.closeIdle(ctx, flusher)
			case <-ctx.Done():
				w.logger.Info("autosave worker shutting down")
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				w.drain(shutdownCtx, flusher)
				w.flushAll(shutdownCtx, flusher)
				cancel()
				return
			}
		}
	}()
}

// Enqueue never blocks. It reports false when the queue is full; the next
// tick picks the player up instead.
func (w *AutosaveWorker) Enqueue(playerID string) bool {
	select {
	case w.jobs <- SaveJob{PlayerID: playerID}:
		return true
	default:
		w.logger.Warn("autosave queue full, deferring save", zap.String("player_id", playerID))
		return false
	}
}

// Wait blocks until the goroutine launched by Start has exited.
func (w *AutosaveWorker) Wait() {
	<-w.done
}

func (w *AutosaveWorker) drain(ctx context.Context, flusher Flusher) {
	for {
		select {
		case job := <-w.jobs:
			w.process(ctx, flusher, job)
		default:
			return
		}
	}
}

func (w *AutosaveWorker) flushAll(ctx context.Context, flusher Flusher) {
	for _, id := range flusher.DirtyPlayers() {
		w.process(ctx, flusher, SaveJob{PlayerID: id})
	}
}

func (w *AutosaveWorker) closeIdle(ctx context.Context, flusher Flusher) {
	if w.idle <= 0 {
		return
	}
	if closed := flusher.CloseIdle(ctx, w.idle); len(closed) > 0 {
		w.logger.Info("idle sessions closed", zap.Strings("player_ids", closed))
	}
}

func (w *AutosaveWorker) process(ctx context.Context, flusher Flusher, job SaveJob) {
	if err := flusher.Save(ctx, job.PlayerID); err != nil {
		w.logger.Error("autosave failed", zap.String("player_id", job.PlayerID), zap.Error(err))
		return
	}
	w.logger.Debug("progress saved", zap.String("player_id", job.PlayerID))
}
