package agent

import (
	"time"

	"github.com/odvcencio/furry-reactive/runtime"
)

// Snapshot captures a structured view of the current UI state.
type Snapshot struct {
	Timestamp  time.Time    `json:"timestamp"`
	Width      int          `json:"width"`
	Height     int          `json:"height"`
	LayerCount int          `json:"layer_count,omitempty"`
	Text       string       `json:"text,omitempty"`
	Widgets    []WidgetInfo `json:"widgets,omitempty"`
}

// WidgetInfo describes a widget in the UI tree.
type WidgetInfo struct {
	ID       string       `json:"id,omitempty"`
	Type     string       `json:"type"`
	Text     string       `json:"text,omitempty"`
	Bounds   runtime.Rect `json:"bounds"`
	Children []WidgetInfo `json:"children,omitempty"`
}
