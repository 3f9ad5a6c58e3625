package runtime

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/odvcencio/furry-reactive/backend"
	"github.com/odvcencio/furry-reactive/backend/sim"
	"github.com/odvcencio/furry-reactive/state"
	"github.com/odvcencio/furry-reactive/terminal"
)

type sourceLabel struct {
	obs      state.Observer[string]
	text     string
	services Services
	bound    int
	unsub    *state.Unsub
}

func (w *sourceLabel) Measure(c Constraints) Size { return c.MaxSize() }
func (w *sourceLabel) Layout(bounds Rect)         {}

func (w *sourceLabel) Render(ctx RenderContext) {
	ctx.Clear(backend.DefaultStyle())
	ctx.Buffer.SetString(ctx.Bounds.X, ctx.Bounds.Y, w.text, backend.DefaultStyle())
}

func (w *sourceLabel) HandleMessage(msg Message) HandleResult {
	if key, ok := msg.(KeyMsg); ok && key.Rune == 'q' {
		return WithCommand(Quit{})
	}
	return Unhandled()
}

func (w *sourceLabel) Bind(services Services) {
	w.services = services
	w.bound++
}

func (w *sourceLabel) Unbind() {
	w.services = Services{}
}

func (w *sourceLabel) Mount() {
	w.unsub = w.obs.Subscribe(Invalidating(w.services.Invalidator(), func(v string) {
		w.text = v
	}))
}

func (w *sourceLabel) Unmount() {
	w.unsub.Unsubscribe()
	w.unsub = nil
}

func runApp(t *testing.T, ctx context.Context, app *App) error {
	t.Helper()
	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()
	select {
	case err := <-done:
		return err
	case <-time.After(2 * time.Second):
		t.Fatalf("app did not stop")
		return nil
	}
}

func TestApp_RequiresBackend(t *testing.T) {
	app := NewApp(AppConfig{})
	if err := app.Run(context.Background()); !errors.Is(err, ErrNoBackend) {
		t.Fatalf("expected ErrNoBackend, got %v", err)
	}
}

func TestApp_QuitOnCtrlC(t *testing.T) {
	be := sim.New(10, 2)
	app := NewApp(AppConfig{Backend: be})
	be.InjectKey(terminal.KeyCtrlC, 0)

	if err := runApp(t, context.Background(), app); err != nil {
		t.Fatalf("expected clean quit, got %v", err)
	}
}

func TestApp_ContextCancel(t *testing.T) {
	be := sim.New(10, 2)
	app := NewApp(AppConfig{Backend: be})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := runApp(t, ctx, app); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestApp_DispatchMutatesOnLoop(t *testing.T) {
	src := state.NewSource("before")
	label := &sourceLabel{obs: src.Observer()}
	be := sim.New(10, 2)
	app := NewApp(AppConfig{Backend: be, Root: label})

	if !app.Dispatch(func() { src.Set("after") }) {
		t.Fatalf("expected dispatch to be queued")
	}
	be.InjectKey(terminal.KeyRune, 'q')

	if err := runApp(t, context.Background(), app); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := be.Capture(); !strings.HasPrefix(got, "after\n") {
		t.Fatalf("expected rendered update, got %q", got)
	}
	if label.bound != 1 {
		t.Fatalf("expected label bound once, got %d", label.bound)
	}
	if src.Subscribers() != 0 {
		t.Fatalf("expected label unsubscribed on shutdown, got %d", src.Subscribers())
	}
}

func TestApp_DispatchNil(t *testing.T) {
	app := NewApp(AppConfig{})
	if app.Dispatch(nil) {
		t.Fatalf("expected nil dispatch to be rejected")
	}
}

func TestApp_TryPostFull(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	app := NewApp(AppConfig{MessageBuffer: 1, Logger: zap.New(core)})

	if !app.TryPost(TickMsg{}) {
		t.Fatalf("expected first post to fit")
	}
	if app.TryPost(TickMsg{}) {
		t.Fatalf("expected second post to be dropped")
	}
	if logs.FilterMessage("message dropped").Len() != 1 {
		t.Fatalf("expected dropped message to be logged")
	}
}

func TestApp_RecoverPanics(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	be := sim.New(10, 2)
	app := NewApp(AppConfig{Backend: be, Logger: zap.New(core), RecoverPanics: true})
	app.Dispatch(func() { panic("boom") })

	err := runApp(t, context.Background(), app)
	if !errors.Is(err, ErrUpdatePanic) {
		t.Fatalf("expected ErrUpdatePanic, got %v", err)
	}
	if logs.FilterMessage("update panicked").Len() != 1 {
		t.Fatalf("expected panic to be logged")
	}
}

func TestApp_ReentrantSetSurfacesAsPanic(t *testing.T) {
	src := state.NewSource(0)
	src.Observer().Subscribe(func(v int) {
		if v == 1 {
			src.Set(2)
		}
	})
	be := sim.New(10, 2)
	app := NewApp(AppConfig{Backend: be, RecoverPanics: true})
	app.Dispatch(func() { src.Set(1) })

	err := runApp(t, context.Background(), app)
	if !errors.Is(err, ErrUpdatePanic) {
		t.Fatalf("expected ErrUpdatePanic, got %v", err)
	}
	if !strings.Contains(err.Error(), state.ErrReentrantMutation.Error()) {
		t.Fatalf("expected reentrant mutation in error, got %v", err)
	}
}

func TestApp_SpawnBeforeRun(t *testing.T) {
	be := sim.New(10, 2)
	app := NewApp(AppConfig{Backend: be})
	app.Spawn(Effect{Run: func(ctx context.Context, post PostFunc) {
		post(KeyMsg{Key: terminal.KeyCtrlC})
	}})

	if err := runApp(t, context.Background(), app); err != nil {
		t.Fatalf("expected clean quit, got %v", err)
	}
}

func TestApp_RenderObserver(t *testing.T) {
	var stats []RenderStats
	be := sim.New(4, 1)
	src := state.NewSource("hi")
	app := NewApp(AppConfig{
		Backend: be,
		Root:    &sourceLabel{obs: src.Observer()},
		RenderObserver: RenderObserverFunc(func(s RenderStats) {
			stats = append(stats, s)
		}),
	})
	app.Dispatch(func() { src.Set("yo") })
	be.InjectKey(terminal.KeyRune, 'q')

	if err := runApp(t, context.Background(), app); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(stats) == 0 {
		t.Fatalf("expected render stats")
	}
	first := stats[0]
	if first.Frame != 1 || first.TotalCells != 4 || !first.FullRedraw {
		t.Fatalf("unexpected first frame stats: %+v", first)
	}
	if be.Frames() != len(stats) {
		t.Fatalf("expected one Show per frame, got %d shows for %d frames", be.Frames(), len(stats))
	}
}

func TestApp_ResizeEvent(t *testing.T) {
	be := sim.New(4, 1)
	app := NewApp(AppConfig{Backend: be})
	be.InjectResize(8, 3)
	be.InjectKey(terminal.KeyCtrlC, 0)

	if err := runApp(t, context.Background(), app); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if w, h := app.Screen().Size(); w != 8 || h != 3 {
		t.Fatalf("expected screen resized to 8x3, got %dx%d", w, h)
	}
}
