package widgets

import (
	"testing"

	"github.com/odvcencio/furry-reactive/runtime"
	"github.com/odvcencio/furry-reactive/state"
)

func TestVStack_Layout(t *testing.T) {
	stack := NewVStack(NewLabel("one"), NewLabel("two"), NewLabel("three")).WithGap(1)
	lines := screenLines(mountScreen(t, stack, 10, 5))
	want := []string{"one", "", "two", "", "three"}
	for i := range want {
		if lines[i] != want[i] {
			t.Fatalf("row %d: expected %q, got %q", i, want[i], lines[i])
		}
	}
}

func TestVStack_DynamicChildResizes(t *testing.T) {
	show := state.NewSource(false)
	banner := NewIf(show.Observer(), func() runtime.Widget { return NewLabel("banner") })
	stack := NewVStack(NewLabel("top"), banner, NewLabel("bottom"))
	screen := mountScreen(t, stack, 10, 3)

	lines := screenLines(screen)
	if lines[0] != "top" || lines[1] != "bottom" {
		t.Fatalf("expected collapsed banner, got %q", lines)
	}

	show.Set(true)
	lines = screenLines(screen)
	if lines[0] != "top" || lines[1] != "banner" || lines[2] != "bottom" {
		t.Fatalf("expected banner between rows, got %q", lines)
	}
}

func TestVStack_MountsChildren(t *testing.T) {
	a, b := &probe{name: "a"}, &probe{name: "b"}
	screen := mountScreen(t, NewVStack(a, b), 5, 2)
	if a.mounted != 1 || b.mounted != 1 {
		t.Fatalf("expected children mounted once")
	}
	screen.SetRoot(nil)
	if a.unmounted != 1 || b.unmounted != 1 {
		t.Fatalf("expected children unmounted once")
	}
}
