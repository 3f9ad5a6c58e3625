package widgets

import (
	"testing"

	"github.com/odvcencio/furry-reactive/runtime"
)

func TestLabel_Render(t *testing.T) {
	label := NewLabel("hello")
	lines := screenLines(mountScreen(t, label, 10, 1))
	if lines[0] != "hello" {
		t.Fatalf("expected hello, got %q", lines[0])
	}
}

func TestLabel_AlignAndTruncate(t *testing.T) {
	label := NewLabel("hi").SetAlignment(AlignRight)
	lines := screenLines(mountScreen(t, label, 6, 1))
	if lines[0] != "    hi" {
		t.Fatalf("expected right aligned text, got %q", lines[0])
	}

	label = NewLabel("a long label")
	lines = screenLines(mountScreen(t, label, 8, 1))
	if lines[0] != "a lon..." {
		t.Fatalf("expected truncated text, got %q", lines[0])
	}
}

func TestLabel_MeasureWideRunes(t *testing.T) {
	label := NewLabel("日本")
	size := label.Measure(runtime.Loose(runtime.Size{Width: 10, Height: 3}))
	if size.Width != 4 || size.Height != 1 {
		t.Fatalf("expected 4x1, got %dx%d", size.Width, size.Height)
	}
}
