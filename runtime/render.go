package runtime

import "time"

// RenderStats describes one render pass.
type RenderStats struct {
	Frame          int64
	Started        time.Time
	Ended          time.Time
	RenderDuration time.Duration
	FlushDuration  time.Duration
	TotalDuration  time.Duration
	DirtyCells     int
	TotalCells     int
	FlushedCells   int
	FullRedraw     bool
	LayerCount     int
}

// RenderObserver receives stats after every render pass.
type RenderObserver interface {
	ObserveRender(stats RenderStats)
}

// RenderObserverFunc adapts a function into a RenderObserver.
type RenderObserverFunc func(RenderStats)

// ObserveRender calls f.
func (f RenderObserverFunc) ObserveRender(stats RenderStats) {
	if f != nil {
		f(stats)
	}
}
