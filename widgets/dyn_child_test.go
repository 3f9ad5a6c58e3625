package widgets

import (
	"strconv"
	"testing"

	"github.com/odvcencio/furry-reactive/runtime"
	"github.com/odvcencio/furry-reactive/state"
)

func TestDynChild_ReplacesChild(t *testing.T) {
	src := state.NewSource(1)
	var built []*probe
	dyn := NewDynChild[int](src.Observer(), func(v int) runtime.Widget {
		p := &probe{name: "item-" + strconv.Itoa(v)}
		built = append(built, p)
		return p
	})
	screen := mountScreen(t, dyn, 10, 1)

	if len(built) != 1 || built[0].mounted != 1 {
		t.Fatalf("expected first child built and mounted once, got %d builds", len(built))
	}
	if got := screenLines(screen)[0]; got != "item-1" {
		t.Fatalf("expected item-1, got %q", got)
	}

	src.Set(2)
	if len(built) != 2 {
		t.Fatalf("expected a rebuild, got %d builds", len(built))
	}
	if built[0].unmounted != 1 || built[1].mounted != 1 {
		t.Fatalf("expected old child unmounted and new child mounted")
	}
	if got := screenLines(screen)[0]; got != "item-2" {
		t.Fatalf("expected item-2, got %q", got)
	}

	screen.SetRoot(nil)
	if built[1].unmounted != 1 {
		t.Fatalf("expected child released with its parent")
	}
	if src.Subscribers() != 0 {
		t.Fatalf("expected no subscribers after unmount, got %d", src.Subscribers())
	}
}

func TestDynChild_ChildObservesSameSource(t *testing.T) {
	src := state.NewSource("a")
	dyn := NewDynChild[string](src.Observer(), func(v string) runtime.Widget {
		return NewSignalLabel(state.Map[string, string](src.Observer(), func(s string) string {
			return v + "/" + s
		}))
	})
	screen := mountScreen(t, dyn, 10, 1)
	if got := screenLines(screen)[0]; got != "a/a" {
		t.Fatalf("expected a/a, got %q", got)
	}

	src.Set("b")
	if got := screenLines(screen)[0]; got != "b/b" {
		t.Fatalf("expected b/b, got %q", got)
	}
	if n := src.Subscribers(); n != 2 {
		t.Fatalf("expected dyn child and current label subscribed, got %d", n)
	}
}

func TestDynChild_NilView(t *testing.T) {
	src := state.NewSource(0)
	dyn := NewDynChild[int](src.Observer(), func(v int) runtime.Widget {
		if v == 0 {
			return nil
		}
		return NewLabel("shown")
	})
	screen := mountScreen(t, dyn, 10, 1)
	if dyn.Child() != nil {
		t.Fatalf("expected no child")
	}
	if got := screenLines(screen)[0]; got != "" {
		t.Fatalf("expected empty row, got %q", got)
	}

	src.Set(1)
	if got := screenLines(screen)[0]; got != "shown" {
		t.Fatalf("expected shown, got %q", got)
	}
	src.Set(0)
	if got := screenLines(screen)[0]; got != "" {
		t.Fatalf("expected row cleared, got %q", got)
	}
	if dyn.Builds() != 3 {
		t.Fatalf("expected 3 builds, got %d", dyn.Builds())
	}
}
