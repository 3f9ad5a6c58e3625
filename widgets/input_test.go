package widgets

import (
	"testing"

	"github.com/odvcencio/furry-reactive/runtime"
	"github.com/odvcencio/furry-reactive/state"
	"github.com/odvcencio/furry-reactive/terminal"
)

func typeText(w runtime.Widget, s string) {
	for _, r := range s {
		w.HandleMessage(runtime.KeyMsg{Key: terminal.KeyRune, Rune: r})
	}
}

func TestInput_TwoWayBinding(t *testing.T) {
	name := state.NewSource("")
	greeting := NewSignalLabel(state.Map[string, string](name.Observer(), func(v string) string {
		return "hi " + v
	}))
	input := NewInput(name)
	screen := mountScreen(t, NewVStack(input, greeting), 12, 2)

	typeText(input, "bob")
	if name.Get() != "bob" {
		t.Fatalf("expected source updated, got %q", name.Get())
	}
	if got := screenLines(screen); got[0] != "bob" || got[1] != "hi bob" {
		t.Fatalf("expected typed text and greeting, got %q", got)
	}

	input.HandleMessage(runtime.KeyMsg{Key: terminal.KeyBackspace})
	if name.Get() != "bo" || input.CursorPos() != 2 {
		t.Fatalf("expected backspace to edit source, got %q cursor=%d", name.Get(), input.CursorPos())
	}

	name.Set("alice")
	if input.Text() != "alice" {
		t.Fatalf("expected outside change reflected, got %q", input.Text())
	}
}

func TestInput_CursorEditing(t *testing.T) {
	value := state.NewSource("ac")
	input := NewInput(value)
	mountScreen(t, input, 10, 1)

	input.HandleMessage(runtime.KeyMsg{Key: terminal.KeyLeft})
	typeText(input, "b")
	if value.Get() != "abc" {
		t.Fatalf("expected insert at cursor, got %q", value.Get())
	}
	input.HandleMessage(runtime.KeyMsg{Key: terminal.KeyHome})
	if input.CursorPos() != 0 {
		t.Fatalf("expected cursor at start, got %d", input.CursorPos())
	}

	var submitted string
	input.OnSubmit(func(text string) { submitted = text })
	input.HandleMessage(runtime.KeyMsg{Key: terminal.KeyEnter})
	if submitted != "abc" {
		t.Fatalf("expected submit with abc, got %q", submitted)
	}
}

func TestInput_Inactive(t *testing.T) {
	value := state.NewSource("")
	input := NewInput(value).SetPlaceholder("name")
	screen := mountScreen(t, input, 10, 1)
	input.SetActive(false)

	if result := input.HandleMessage(runtime.KeyMsg{Key: terminal.KeyRune, Rune: 'x'}); result.Handled {
		t.Fatalf("expected inactive input to ignore keys")
	}
	if got := screenLines(screen)[0]; got != "name" {
		t.Fatalf("expected placeholder, got %q", got)
	}
}
