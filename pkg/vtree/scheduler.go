package vtree

import (
	"errors"
	"log/slog"
	"time"
)

// Scheduler is the dirty queue: a deduplicated FIFO of components waiting
// for a batched render. It is not safe for concurrent use; Loop drives it
// from the rendering goroutine.
type Scheduler struct {
	queue  []Component
	queued map[Component]struct{}

	logger   *slog.Logger
	observer Observer
	now      func() time.Time
}

// NewScheduler creates an empty Scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{
		queued: make(map[Component]struct{}),
		now:    time.Now,
	}
}

// bind inherits logging and observation from the first runtime using s.
func (s *Scheduler) bind(rt *Runtime) {
	if s.logger == nil {
		s.logger = rt.logger
	}
	if s.observer == nil {
		s.observer = rt.observer
	}
}

// Enqueue adds c unless it is already pending. It reports whether c was added.
func (s *Scheduler) Enqueue(c Component) bool {
	if _, ok := s.queued[c]; ok {
		return false
	}
	s.queued[c] = struct{}{}
	s.queue = append(s.queue, c)
	return true
}

// Len returns the number of pending components.
func (s *Scheduler) Len() int { return len(s.queue) }

// Pending reports whether c is queued.
func (s *Scheduler) Pending(c Component) bool {
	_, ok := s.queued[c]
	return ok
}

// Flush renders the components queued before the call, in FIFO order,
// skipping those no longer bound. Components queued while flushing wait
// for the next Flush. Every failure is logged; Flush keeps going and
// returns them joined. The count is the number of renders performed.
func (s *Scheduler) Flush() (int, error) {
	if len(s.queue) == 0 {
		return 0, nil
	}
	logger := s.logger
	if logger == nil {
		logger = slog.Default()
	}

	start := s.now()
	batch := s.queue
	s.queue = nil

	var errs []error
	rendered := 0
	for _, c := range batch {
		delete(s.queued, c)
		b := c.base()
		if !b.bound || b.unmounted {
			continue
		}
		rendered++
		if err := c.base().ForceUpdate(); err != nil {
			logger.Error("queued render failed", "component", b.Name(), "error", err)
			errs = append(errs, err)
		}
	}

	if s.observer != nil {
		s.observer.Flushed(FlushInfo{
			Start:    start,
			Duration: s.now().Sub(start),
			Rendered: rendered,
			Failed:   len(errs),
		})
	}
	logger.Debug("flushed dirty queue", "queued", len(batch), "rendered", rendered, "requeued", len(s.queue))
	return rendered, errors.Join(errs...)
}
