// Package agent drives an application headlessly for tests and scripted
// runs. It runs the app loop against a simulated terminal, injects input,
// and inspects the widget tree from the update loop.
package agent

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"github.com/odvcencio/furry-reactive/backend/sim"
	"github.com/odvcencio/furry-reactive/runtime"
	"github.com/odvcencio/furry-reactive/terminal"
)

// Common errors returned by Agent methods.
var (
	ErrNotRunning     = errors.New("agent: app is not running")
	ErrAlreadyRunning = errors.New("agent: app is already running")
	ErrQueueFull      = errors.New("agent: message queue is full")
	ErrTimeout        = errors.New("agent: operation timed out")
)

// Config configures an Agent.
type Config struct {
	// Root is the widget tree to run.
	Root runtime.Widget

	// Width and Height set the terminal dimensions (default 80x24).
	Width, Height int

	// Timeout bounds Do and WaitFor calls (default 2s).
	Timeout time.Duration

	// Logger is passed to the app. Defaults to a no-op logger.
	Logger *zap.Logger
}

// Agent runs an app on a simulated backend.
type Agent struct {
	mu      sync.Mutex
	app     *runtime.App
	sim     *sim.Backend
	timeout time.Duration
	cancel  context.CancelFunc
	exited  chan struct{}
	err     error
}

// New creates an agent. The app starts with Start.
func New(cfg Config) *Agent {
	width, height := cfg.Width, cfg.Height
	if width <= 0 {
		width = 80
	}
	if height <= 0 {
		height = 24
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 2 * time.Second
	}

	s := sim.New(width, height)
	app := runtime.NewApp(runtime.AppConfig{
		Backend:       s,
		Root:          cfg.Root,
		Logger:        cfg.Logger,
		RecoverPanics: true,
	})
	return &Agent{app: app, sim: s, timeout: timeout}
}

// Backend returns the underlying simulation backend.
func (a *Agent) Backend() *sim.Backend {
	return a.sim
}

// App returns the driven app.
func (a *Agent) App() *runtime.App {
	return a.app
}

// Start runs the app loop in the background.
func (a *Agent) Start(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.exited != nil {
		return ErrAlreadyRunning
	}
	ctx, cancel := context.WithCancel(ctx)
	a.cancel = cancel
	a.exited = make(chan struct{})
	go func(exited chan struct{}) {
		err := a.app.Run(ctx)
		a.mu.Lock()
		a.err = err
		a.mu.Unlock()
		close(exited)
	}(a.exited)
	return nil
}

// Stop cancels the app and waits for it to exit.
// A cancellation is not reported as an error.
func (a *Agent) Stop() error {
	a.mu.Lock()
	cancel := a.cancel
	a.mu.Unlock()
	if cancel == nil {
		return ErrNotRunning
	}
	cancel()
	err := a.Wait()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// Wait blocks until the app exits and returns its error.
func (a *Agent) Wait() error {
	exited := a.exitedChan()
	if exited == nil {
		return ErrNotRunning
	}
	<-exited
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.err
}

func (a *Agent) exitedChan() chan struct{} {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.exited
}

// Do runs fn on the update loop and waits for it to return.
// Sources may be mutated from fn.
func (a *Agent) Do(fn func()) error {
	exited := a.exitedChan()
	if exited == nil {
		return ErrNotRunning
	}
	select {
	case <-exited:
		return ErrNotRunning
	default:
	}
	done := make(chan struct{})
	if !a.app.Dispatch(func() {
		defer close(done)
		fn()
	}) {
		return ErrQueueFull
	}
	timer := time.NewTimer(a.timeout)
	defer timer.Stop()
	select {
	case <-done:
		return nil
	case <-exited:
		return ErrNotRunning
	case <-timer.C:
		return ErrTimeout
	}
}

// Sync waits until every message posted so far has been handled and the
// resulting frame drawn.
func (a *Agent) Sync() error {
	if err := a.Do(func() {}); err != nil {
		return err
	}
	return a.Do(func() {})
}

// Press injects a key press.
func (a *Agent) Press(key terminal.Key) {
	a.sim.InjectKey(key, 0)
}

// Type injects one key press per rune of text.
func (a *Agent) Type(text string) {
	for _, r := range text {
		a.sim.InjectKey(terminal.KeyRune, r)
	}
}

// Snapshot returns the screen text and widget tree.
// The tree is read on the update loop.
func (a *Agent) Snapshot() (Snapshot, error) {
	snap := Snapshot{Timestamp: time.Now()}
	err := a.Do(func() {
		screen := a.app.Screen()
		if screen == nil {
			return
		}
		snap.Width, snap.Height = screen.Size()
		snap.LayerCount = screen.LayerCount()
		if root := screen.Root(); root != nil {
			snap.Widgets = []WidgetInfo{describe(root)}
		}
	})
	if err != nil {
		return snap, err
	}
	if err := a.Do(func() {}); err != nil {
		return snap, err
	}
	snap.Text = a.sim.Capture()
	return snap, nil
}

// WaitFor polls snapshots until cond holds or the timeout elapses.
func (a *Agent) WaitFor(cond func(Snapshot) bool) error {
	deadline := time.Now().Add(a.timeout)
	for {
		snap, err := a.Snapshot()
		if err != nil {
			return err
		}
		if cond(snap) {
			return nil
		}
		if time.Now().After(deadline) {
			return ErrTimeout
		}
		time.Sleep(5 * time.Millisecond)
	}
}

// WaitForText waits until text appears on screen.
func (a *Agent) WaitForText(text string) error {
	if err := a.WaitFor(func(s Snapshot) bool { return strings.Contains(s.Text, text) }); err != nil {
		return fmt.Errorf("wait for %q: %w", text, err)
	}
	return nil
}

// ContainsText checks if the given text appears on screen.
func (a *Agent) ContainsText(text string) bool {
	return a.sim.ContainsText(text)
}

// FindText returns the position of text on screen, or (-1, -1) if not found.
func (a *Agent) FindText(text string) (x, y int) {
	return a.sim.FindText(text)
}

// CaptureText returns the raw text content of the screen.
func (a *Agent) CaptureText() string {
	return a.sim.Capture()
}

// FindByType returns every widget whose type name contains name.
func (s Snapshot) FindByType(name string) []WidgetInfo {
	var out []WidgetInfo
	walkInfo(s.Widgets, func(w WidgetInfo) {
		if strings.Contains(w.Type, name) {
			out = append(out, w)
		}
	})
	return out
}

// FindByID returns the widget with the given component id.
func (s Snapshot) FindByID(id string) (WidgetInfo, bool) {
	var found WidgetInfo
	ok := false
	walkInfo(s.Widgets, func(w WidgetInfo) {
		if !ok && w.ID == id {
			found, ok = w, true
		}
	})
	return found, ok
}

func walkInfo(widgets []WidgetInfo, fn func(WidgetInfo)) {
	for _, w := range widgets {
		fn(w)
		walkInfo(w.Children, fn)
	}
}

type identified interface {
	ID() ulid.ULID
}

type texter interface {
	Text() string
}

type dynamicParent interface {
	Child() runtime.Widget
}

func describe(w runtime.Widget) WidgetInfo {
	info := WidgetInfo{Type: fmt.Sprintf("%T", w)}
	if c, ok := w.(identified); ok {
		info.ID = c.ID().String()
	}
	if t, ok := w.(texter); ok {
		info.Text = t.Text()
	}
	if b, ok := w.(runtime.BoundsProvider); ok {
		info.Bounds = b.Bounds()
	}
	if cp, ok := w.(runtime.ChildProvider); ok {
		for _, child := range cp.ChildWidgets() {
			if child != nil {
				info.Children = append(info.Children, describe(child))
			}
		}
	}
	if dp, ok := w.(dynamicParent); ok {
		if child := dp.Child(); child != nil {
			info.Children = append(info.Children, describe(child))
		}
	}
	return info
}
