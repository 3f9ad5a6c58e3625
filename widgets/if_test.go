package widgets

import (
	"testing"

	"github.com/odvcencio/furry-reactive/runtime"
	"github.com/odvcencio/furry-reactive/state"
)

func TestIf_ChoosesFirstTrueBranch(t *testing.T) {
	n := state.NewSource(5)
	builds := map[string]int{}
	view := func(name string) func() runtime.Widget {
		return func() runtime.Widget {
			builds[name]++
			return NewLabel(name)
		}
	}
	big := state.Map[int, bool](n.Observer(), func(v int) bool { return v > 10 })
	positive := state.Map[int, bool](n.Observer(), func(v int) bool { return v > 0 })

	w := NewIf(big, view("big")).ElseIf(positive, view("positive")).Else(view("other"))
	screen := mountScreen(t, w, 10, 1)

	if got := screenLines(screen)[0]; got != "positive" {
		t.Fatalf("expected positive, got %q", got)
	}
	if builds["other"] != 0 || builds["big"] != 0 {
		t.Fatalf("expected only the chosen branch built on mount, got %v", builds)
	}

	n.Set(7)
	if builds["positive"] != 1 {
		t.Fatalf("expected no rebuild while the branch is unchanged, got %d", builds["positive"])
	}

	n.Set(20)
	if got := screenLines(screen)[0]; got != "big" || w.Active() != 0 {
		t.Fatalf("expected big branch, got %q active=%d", got, w.Active())
	}

	n.Set(-1)
	if got := screenLines(screen)[0]; got != "other" || w.Active() != -1 {
		t.Fatalf("expected else branch, got %q active=%d", got, w.Active())
	}

	n.Set(-2)
	if builds["other"] != 1 {
		t.Fatalf("expected else view built once, got %d", builds["other"])
	}
}

func TestIf_NoElse(t *testing.T) {
	flag := state.NewSource(true)
	w := NewIf(flag.Observer(), func() runtime.Widget { return NewLabel("on") })
	screen := mountScreen(t, w, 10, 1)

	if got := screenLines(screen)[0]; got != "on" {
		t.Fatalf("expected on, got %q", got)
	}
	flag.Set(false)
	if w.Child() != nil {
		t.Fatalf("expected no child without an else view")
	}
	if got := screenLines(screen)[0]; got != "" {
		t.Fatalf("expected empty row, got %q", got)
	}
}

func TestIf_UnmountReleasesBranch(t *testing.T) {
	flag := state.NewSource(true)
	child := &probe{name: "x"}
	w := NewIf(flag.Observer(), func() runtime.Widget { return child })
	screen := mountScreen(t, w, 10, 1)

	screen.SetRoot(nil)
	if child.unmounted != 1 {
		t.Fatalf("expected branch unmounted, got %d", child.unmounted)
	}
	if flag.Subscribers() != 0 {
		t.Fatalf("expected condition subscription released, got %d", flag.Subscribers())
	}
	if w.Active() != -2 {
		t.Fatalf("expected reset branch state, got %d", w.Active())
	}
}
