package vtree

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/vango-dev/vtree/pkg/vdom"
)

func TestLoopTickRunsTasksThenFlushes(t *testing.T) {
	s := NewScheduler()
	loop := NewLoop(s, 0, quietLogger())
	rt := newTestRuntime(WithScheduler(s), WithTaskQueue(loop))
	_, main, div := newMain(t)

	var flushed []int
	loop.OnFlush(func(n int, err error) { flushed = append(flushed, n) })

	c, err := rt.Mount(FuncClass("Label", func(_ *FuncComponent, _ vdom.Props, state State, _ any) *vdom.VNode {
		return vdom.Span(vdom.Textf("%v", state["text"]))
	}), nil, nil, div)
	if err != nil {
		t.Fatal(err)
	}

	loop.Post(func() { _ = c.base().SetState(State{"text": "posted"}) })
	if n, err := loop.Tick(); n != 1 || err != nil {
		t.Fatalf("Tick() = %d, %v", n, err)
	}
	if got := main.InnerHTML(); got != "<span>posted</span>" {
		t.Errorf("InnerHTML() = %q", got)
	}

	if n, _ := loop.Tick(); n != 0 {
		t.Errorf("idle Tick() = %d", n)
	}
	if len(flushed) != 1 || flushed[0] != 1 {
		t.Errorf("OnFlush calls = %v, want [1]", flushed)
	}
}

func TestLoopDefaultInterval(t *testing.T) {
	if got := NewLoop(nil, -1, nil).Interval(); got != DefaultFrameInterval {
		t.Errorf("Interval() = %v", got)
	}
	if got := NewLoop(nil, time.Second, nil).Interval(); got != time.Second {
		t.Errorf("Interval() = %v", got)
	}
}

func TestLoopConcurrentPost(t *testing.T) {
	loop := NewLoop(nil, 0, quietLogger())

	const n = 50
	ran := 0
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			loop.Post(func() { ran++ })
		}()
	}
	wg.Wait()
	loop.Tick()
	if ran != n {
		t.Errorf("ran %d tasks, want %d", ran, n)
	}
}

func TestLoopRunAndDo(t *testing.T) {
	s := NewScheduler()
	loop := NewLoop(s, time.Millisecond, quietLogger())
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- loop.Run(ctx) }()

	called := false
	if err := loop.Do(ctx, func() { called = true }); err != nil {
		t.Fatal(err)
	}
	if !called {
		t.Error("Do returned before fn ran")
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run() = %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not stop")
	}
}

func TestLoopDoCanceled(t *testing.T) {
	loop := NewLoop(nil, 0, quietLogger())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := loop.Do(ctx, func() {}); !errors.Is(err, context.Canceled) {
		t.Errorf("Do() = %v, want context.Canceled", err)
	}
}
