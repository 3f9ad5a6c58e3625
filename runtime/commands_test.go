package runtime

import (
	"context"
	"testing"
)

func TestCommands_ImplementsInterface(t *testing.T) {
	commands := []Command{
		Quit{},
		Refresh{},
		SendMsg{Message: ResizeMsg{Width: 1, Height: 1}},
		Effect{Run: func(ctx context.Context, post PostFunc) {}},
		PushOverlay{Widget: nil, Modal: false},
		PopOverlay{},
	}

	for i, cmd := range commands {
		if cmd == nil {
			t.Errorf("Command %d is nil", i)
		}
	}
}

func TestSend(t *testing.T) {
	msg := ResizeMsg{Width: 10, Height: 5}
	cmd := Send(msg)
	if sendMsg, ok := cmd.(SendMsg); ok {
		if sendMsg.Message != msg {
			t.Fatalf("SendMsg.Message mismatch")
		}
	} else {
		t.Fatalf("expected Send to return SendMsg, got %T", cmd)
	}
}

func TestEffect(t *testing.T) {
	calls := 0
	cmd := Effect{Run: func(ctx context.Context, post PostFunc) {
		calls++
	}}
	if cmd.Run == nil {
		t.Fatal("expected effect run function")
	}
	cmd.Run(context.Background(), func(Message) bool { return true })
	if calls != 1 {
		t.Fatalf("expected effect run to be called once, got %d", calls)
	}
}

func TestPushOverlay(t *testing.T) {
	w := &testSimpleWidget{}
	cmd := PushOverlay{Widget: w, Modal: true}

	if cmd.Widget != w {
		t.Error("PushOverlay.Widget should be the widget")
	}
	if !cmd.Modal {
		t.Error("PushOverlay.Modal should be true")
	}
}

type testSimpleWidget struct {
	handled int
	result  HandleResult
}

func (t *testSimpleWidget) Measure(c Constraints) Size { return Size{} }
func (t *testSimpleWidget) Layout(bounds Rect)         {}
func (t *testSimpleWidget) Render(ctx RenderContext)   {}
func (t *testSimpleWidget) HandleMessage(msg Message) HandleResult {
	t.handled++
	return t.result
}

func TestScreen_OverlayCommands(t *testing.T) {
	overlay := &testSimpleWidget{}
	root := &testSimpleWidget{result: WithCommand(PushOverlay{Widget: overlay, Modal: true})}
	screen := NewScreen(10, 5)
	screen.SetRoot(root)

	screen.HandleMessage(KeyMsg{Rune: 'o'})
	if screen.LayerCount() != 2 {
		t.Fatalf("expected overlay pushed, got %d layers", screen.LayerCount())
	}

	screen.HandleMessage(KeyMsg{Rune: 'x'})
	if overlay.handled != 1 {
		t.Fatalf("expected overlay to see the message, got %d", overlay.handled)
	}
	if root.handled != 1 {
		t.Fatalf("expected modal overlay to block the root, got %d", root.handled)
	}

	overlay.result = WithCommand(PopOverlay{})
	screen.HandleMessage(KeyMsg{Rune: 'p'})
	if screen.LayerCount() != 1 {
		t.Fatalf("expected overlay popped, got %d layers", screen.LayerCount())
	}
	if screen.PopLayer() {
		t.Fatalf("expected base layer to stay")
	}
}
