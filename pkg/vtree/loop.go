package vtree

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// DefaultFrameInterval approximates a display refresh tick.
const DefaultFrameInterval = 16 * time.Millisecond

// Loop is the periodic tick driving a Scheduler. It also serves as the
// runtime's TaskQueue: Post is the only goroutine-safe entry point, and
// posted tasks run on the Run goroutine.
type Loop struct {
	scheduler *Scheduler
	interval  time.Duration
	logger    *slog.Logger

	mu      sync.Mutex
	pending []func()
	wake    chan struct{}

	onFlush func(rendered int, err error)
}

// NewLoop creates a Loop flushing s every interval. A non-positive
// interval uses DefaultFrameInterval.
func NewLoop(s *Scheduler, interval time.Duration, logger *slog.Logger) *Loop {
	if interval <= 0 {
		interval = DefaultFrameInterval
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Loop{
		scheduler: s,
		interval:  interval,
		logger:    logger,
		wake:      make(chan struct{}, 1),
	}
}

// OnFlush registers fn to run after every tick that rendered something.
// Call it before Run.
func (l *Loop) OnFlush(fn func(rendered int, err error)) { l.onFlush = fn }

// Interval returns the tick period.
func (l *Loop) Interval() time.Duration { return l.interval }

// Post schedules fn on the loop goroutine. It never blocks.
func (l *Loop) Post(fn func()) {
	l.mu.Lock()
	l.pending = append(l.pending, fn)
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// Run drives the loop until ctx is done.
func (l *Loop) Run(ctx context.Context) error {
	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	l.logger.Debug("render loop started", "interval", l.interval)
	for {
		select {
		case <-ctx.Done():
			l.logger.Debug("render loop stopped")
			return nil
		case <-l.wake:
			l.drain()
		case <-ticker.C:
			l.Tick()
		}
	}
}

// Tick runs pending tasks, then flushes the scheduler once.
func (l *Loop) Tick() (int, error) {
	l.drain()
	if l.scheduler == nil {
		return 0, nil
	}
	n, err := l.scheduler.Flush()
	if l.onFlush != nil && (n > 0 || err != nil) {
		l.onFlush(n, err)
	}
	return n, err
}

// Do runs fn on the loop goroutine and waits for it. It returns ctx.Err()
// if ctx ends first.
func (l *Loop) Do(ctx context.Context, fn func()) error {
	done := make(chan struct{})
	l.Post(func() {
		defer close(done)
		fn()
	})
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (l *Loop) drain() {
	l.mu.Lock()
	tasks := l.pending
	l.pending = nil
	l.mu.Unlock()

	for _, fn := range tasks {
		fn()
	}
}
