package widgets

import (
	"testing"

	"github.com/odvcencio/furry-reactive/runtime"
	"github.com/odvcencio/furry-reactive/state"
	"github.com/odvcencio/furry-reactive/terminal"
)

func TestTabs_FollowsSource(t *testing.T) {
	selected := state.NewSource(0)
	first := &probe{name: "one"}
	var second *probe
	tabs := NewTabs(selected,
		Tab{Title: "A", View: func() runtime.Widget { return first }},
		Tab{Title: "B", View: func() runtime.Widget {
			second = &probe{name: "two"}
			return second
		}},
	)
	screen := mountScreen(t, tabs, 10, 2)

	lines := screenLines(screen)
	if lines[0] != " A  B" || lines[1] != "one" {
		t.Fatalf("unexpected initial render %q", lines)
	}
	if second != nil {
		t.Fatalf("expected unselected tab not built")
	}

	selected.Set(1)
	if tabs.Selected() != 1 || first.unmounted != 1 || second.mounted != 1 {
		t.Fatalf("expected switch to second tab")
	}
	if got := screenLines(screen)[1]; got != "two" {
		t.Fatalf("expected two, got %q", got)
	}

	selected.Set(5)
	if tabs.Selected() != 1 || second.unmounted != 0 {
		t.Fatalf("expected out of range selection clamped without rebuild")
	}
}

func TestTabs_KeysWriteSource(t *testing.T) {
	selected := state.NewSource(0)
	tabs := NewTabs(selected,
		Tab{Title: "A", View: func() runtime.Widget { return NewLabel("a") }},
		Tab{Title: "B", View: func() runtime.Widget { return NewLabel("b") }},
	)
	screen := mountScreen(t, tabs, 10, 2)

	screen.HandleMessage(runtime.KeyMsg{Key: terminal.KeyRight})
	if selected.Get() != 1 {
		t.Fatalf("expected source updated, got %d", selected.Get())
	}
	screen.HandleMessage(runtime.KeyMsg{Key: terminal.KeyTab})
	if selected.Get() != 0 {
		t.Fatalf("expected tab to wrap, got %d", selected.Get())
	}
	if got := screenLines(screen)[1]; got != "a" {
		t.Fatalf("expected a, got %q", got)
	}

	screen.SetRoot(nil)
	if selected.Subscribers() != 0 {
		t.Fatalf("expected no subscribers after unmount")
	}
}
