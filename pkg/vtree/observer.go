package vtree

import "time"

// RenderInfo describes one completed ForceUpdate.
type RenderInfo struct {
	Component string
	Start     time.Time
	Duration  time.Duration

	// Delay is the time the component spent queued, zero for synchronous renders.
	Delay time.Duration

	Err error
}

// FlushInfo describes one Scheduler flush.
type FlushInfo struct {
	Start    time.Time
	Duration time.Duration
	Rendered int
	Failed   int
}

// Observer receives lifecycle measurements. Implementations are called on
// the rendering goroutine and must not block.
type Observer interface {
	Rendered(RenderInfo)
	Mounted(component string)
	Unmounted(component string)
	Flushed(FlushInfo)
}

// NopObserver discards all measurements.
type NopObserver struct{}

func (NopObserver) Rendered(RenderInfo) {}
func (NopObserver) Mounted(string)      {}
func (NopObserver) Unmounted(string)    {}
func (NopObserver) Flushed(FlushInfo)   {}

// Hooks are runtime-wide callbacks fired around every component's lifecycle.
type Hooks struct {
	AfterMount    func(Component)
	AfterUpdate   func(Component)
	BeforeUnmount func(Component)
}
