package widgets

import (
	"testing"

	"github.com/odvcencio/furry-reactive/runtime"
	"github.com/odvcencio/furry-reactive/state"
)

func TestComponent_ID(t *testing.T) {
	var a, b Component
	if a.ID() != a.ID() {
		t.Fatalf("expected a stable id")
	}
	if a.ID() == b.ID() {
		t.Fatalf("expected distinct ids, got %s twice", a.ID())
	}
}

func TestComponent_UnbindClearsSubscriptions(t *testing.T) {
	src := state.NewSource(1)
	var c Component
	c.Bind(runtime.NewApp(runtime.AppConfig{}).Services())

	seen := 0
	if !Observe(&c, src.Observer(), func(int) { seen++ }) {
		t.Fatalf("expected observe to succeed")
	}
	if seen != 1 || !c.NeedsRender() {
		t.Fatalf("expected initial push to mark render, seen=%d", seen)
	}

	c.Unbind()
	if src.Subscribers() != 0 {
		t.Fatalf("expected unbind to cancel subscriptions, got %d", src.Subscribers())
	}
	if c.Logger() == nil {
		t.Fatalf("expected a logger after unbind")
	}
}
