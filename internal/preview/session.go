package preview

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/vango-dev/vtree/internal/demo"
	"github.com/vango-dev/vtree/pkg/host/memdom"
	"github.com/vango-dev/vtree/pkg/vtree"
)

var (
	// ErrNoTarget is returned when an event selector matches nothing.
	ErrNoTarget = errors.New("preview: no element matches target")

	// ErrNoListener is returned when the target has no listener for the event.
	ErrNoListener = errors.New("preview: target has no listener")
)

// SessionConfig configures a Session.
type SessionConfig struct {
	Demo demo.Demo

	// Interval is the render loop period (default: vtree.DefaultFrameInterval).
	Interval time.Duration

	// Options are extra runtime options. Scheduler and task queue are
	// installed by the session.
	Options []vtree.Option

	Logger *slog.Logger
}

// Session is one mounted demo. All tree access goes through the loop.
type Session struct {
	demo   demo.Demo
	doc    *memdom.Document
	root   *memdom.Node
	rt     *vtree.Runtime
	loop   *vtree.Loop
	logger *slog.Logger

	onRender func(Update)
}

// Update is the state of the tree after a flush.
type Update struct {
	HTML     string
	Rendered int
	Err      error
}

// NewSession mounts cfg.Demo into a fresh document. Call Run to start
// processing updates.
func NewSession(cfg SessionConfig) (*Session, error) {
	if cfg.Demo.Root == nil {
		return nil, fmt.Errorf("preview: demo %q has no root", cfg.Demo.Name)
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	doc, err := memdom.NewDocument(`<div id="root"><div></div></div>`)
	if err != nil {
		return nil, err
	}
	root, err := doc.QuerySelector("#root")
	if err != nil {
		return nil, err
	}

	scheduler := vtree.NewScheduler()
	loop := vtree.NewLoop(scheduler, cfg.Interval, logger)
	opts := append([]vtree.Option{vtree.WithLogger(logger)}, cfg.Options...)
	opts = append(opts, vtree.WithScheduler(scheduler), vtree.WithTaskQueue(loop))

	s := &Session{
		demo:   cfg.Demo,
		doc:    doc,
		root:   root,
		rt:     vtree.NewRuntime(opts...),
		loop:   loop,
		logger: logger.With("demo", cfg.Demo.Name),
	}
	loop.OnFlush(s.flushed)

	if _, err := s.rt.Patch(root.Children()[0], cfg.Demo.Root(), nil); err != nil {
		return nil, err
	}
	return s, nil
}

// Demo returns the mounted demo.
func (s *Session) Demo() demo.Demo { return s.demo }

// OnRender registers fn to receive every flushed update. It runs on the
// loop goroutine. Call it before Run.
func (s *Session) OnRender(fn func(Update)) { s.onRender = fn }

// Run drives the render loop until ctx is done.
func (s *Session) Run(ctx context.Context) error {
	s.logger.Info("preview session started", "interval", s.loop.Interval())
	return s.loop.Run(ctx)
}

// Snapshot returns the tree's current HTML. It blocks until the loop runs
// the request, so Run must be active.
func (s *Session) Snapshot(ctx context.Context) (string, error) {
	var html string
	err := s.loop.Do(ctx, func() { html = s.root.InnerHTML() })
	return html, err
}

// Dispatch fires event on the first element matching selector, flushes the
// resulting renders and returns the updated HTML.
func (s *Session) Dispatch(ctx context.Context, selector, event, value string) (string, error) {
	var (
		html string
		derr error
	)
	err := s.loop.Do(ctx, func() {
		n, err := s.doc.QuerySelector(selector)
		if err != nil {
			derr = err
			return
		}
		if n == nil {
			derr = fmt.Errorf("%w: %s", ErrNoTarget, selector)
			return
		}
		if !n.Dispatch(event, &memdom.Event{Type: event, Target: n, Value: value}) {
			derr = fmt.Errorf("%w: %s on %s", ErrNoListener, event, selector)
			return
		}
		s.logger.Debug("event dispatched", "event", event, "target", selector)

		rendered, ferr := s.rt.Flush()
		s.flushed(rendered, ferr)
		html = s.root.InnerHTML()
		derr = ferr
	})
	if err != nil {
		return "", err
	}
	return html, derr
}

func (s *Session) flushed(rendered int, err error) {
	if err != nil {
		s.logger.Error("flush failed", "rendered", rendered, "error", err)
	}
	if s.onRender != nil && (rendered > 0 || err != nil) {
		s.onRender(Update{HTML: s.root.InnerHTML(), Rendered: rendered, Err: err})
	}
}
