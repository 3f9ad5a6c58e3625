package widgets

import (
	"testing"

	"github.com/odvcencio/furry-reactive/state"
)

func TestSignalLabel_Lifecycle(t *testing.T) {
	src := state.NewSource("start")
	label := NewSignalLabel(src.Observer())
	if label.Text() != "start" {
		t.Fatalf("expected initial text before mount, got %q", label.Text())
	}

	label.Mount()
	if src.Subscribers() != 1 {
		t.Fatalf("expected one subscriber after mount, got %d", src.Subscribers())
	}

	src.Set("next")
	if label.Text() != "next" {
		t.Fatalf("expected updated text next, got %q", label.Text())
	}
	if !label.NeedsRender() {
		t.Fatalf("expected label to need a render after a change")
	}

	label.Unmount()
	src.Set("final")
	if label.Text() != "next" {
		t.Fatalf("expected text to remain next after unmount, got %q", label.Text())
	}
	if src.Subscribers() != 0 {
		t.Fatalf("expected no subscribers after unmount, got %d", src.Subscribers())
	}
}

func TestSignalLabel_Mapped(t *testing.T) {
	count := state.NewSource(0)
	label := NewSignalLabel(state.Map[int, string](count.Observer(), func(v int) string {
		if v == 1 {
			return "1 item"
		}
		return string(rune('0'+v)) + " items"
	}))
	screen := mountScreen(t, label, 12, 1)

	if got := screenLines(screen)[0]; got != "0 items" {
		t.Fatalf("expected 0 items, got %q", got)
	}
	count.Set(1)
	if got := screenLines(screen)[0]; got != "1 item" {
		t.Fatalf("expected shorter text to clear the old one, got %q", got)
	}
}

func TestSignalLabel_ClosedSource(t *testing.T) {
	src := state.NewSource("gone")
	obs := src.Observer()
	src.Close()

	label := NewSignalLabel(obs)
	label.Mount()
	if label.Text() != "" {
		t.Fatalf("expected empty text for closed source, got %q", label.Text())
	}
	if label.Subs.Len() != 0 {
		t.Fatalf("expected no tracked subscription, got %d", label.Subs.Len())
	}
}
