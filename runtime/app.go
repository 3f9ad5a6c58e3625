package runtime

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/odvcencio/furry-reactive/backend"
	"github.com/odvcencio/furry-reactive/terminal"
)

// Errors returned by App.Run.
var (
	ErrNoBackend   = errors.New("backend is required")
	ErrUpdatePanic = errors.New("update panicked")
)

// UpdateFunc handles a message and returns true if a render is needed.
type UpdateFunc func(app *App, msg Message) bool

// CommandHandler handles commands emitted by widgets.
// Return true if the command requires a render.
type CommandHandler func(cmd Command) bool

// AppConfig configures a runtime App.
type AppConfig struct {
	Backend        backend.Backend
	Root           Widget
	Update         UpdateFunc
	CommandHandler CommandHandler
	MessageBuffer  int
	TickRate       time.Duration
	Logger         *zap.Logger
	RenderObserver RenderObserver
	// RecoverPanics turns panics raised while handling a message into an
	// ErrUpdatePanic returned from Run instead of crashing the process.
	RecoverPanics bool
}

// App runs a widget tree against a terminal backend.
//
// The update loop is the only goroutine allowed to mutate state sources.
// Messages are handled one at a time, so every Set and its notification
// pass completes before the next message is processed.
type App struct {
	backend        backend.Backend
	screen         *Screen
	root           Widget
	update         UpdateFunc
	commandHandler CommandHandler
	messages       chan Message
	tickRate       time.Duration
	invalidator    *Invalidator
	logger         *zap.Logger
	renderObserver RenderObserver
	recoverPanics  bool
	taskCtx        context.Context
	taskCancel     context.CancelFunc
	pendingMu      sync.Mutex
	pendingEffects []Effect

	running     bool
	dirty       bool
	renderFrame int64
}

// NewApp creates a new App from config.
func NewApp(cfg AppConfig) *App {
	bufferSize := cfg.MessageBuffer
	if bufferSize <= 0 {
		bufferSize = 128
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	app := &App{
		backend:        cfg.Backend,
		root:           cfg.Root,
		update:         cfg.Update,
		commandHandler: cfg.CommandHandler,
		messages:       make(chan Message, bufferSize),
		tickRate:       cfg.TickRate,
		logger:         logger,
		renderObserver: cfg.RenderObserver,
		recoverPanics:  cfg.RecoverPanics,
	}
	app.invalidator = NewInvalidator(app.tryPost)
	return app
}

// Screen returns the active screen, if initialized.
func (a *App) Screen() *Screen {
	return a.screen
}

// Logger returns the app logger.
func (a *App) Logger() *zap.Logger {
	return a.logger
}

// Invalidate requests a render pass.
func (a *App) Invalidate() {
	if a == nil || a.invalidator == nil {
		return
	}
	a.invalidator.Invalidate()
}

// Dispatch posts fn to run on the update loop.
// It returns false when the message queue is full.
func (a *App) Dispatch(fn func()) bool {
	if fn == nil {
		return false
	}
	return a.tryPost(UpdateMsg{Fn: fn})
}

// Spawn starts an effect using the app task context.
// If Run has not started, the effect is queued until start.
func (a *App) Spawn(effect Effect) {
	if a == nil || effect.Run == nil {
		return
	}
	if a.taskCtx == nil {
		a.pendingMu.Lock()
		a.pendingEffects = append(a.pendingEffects, effect)
		a.pendingMu.Unlock()
		return
	}
	a.runEffect(effect)
}

// After schedules a delayed message using the app task context.
func (a *App) After(delay time.Duration, msg Message) {
	a.Spawn(After(delay, msg))
}

// Every schedules a recurring message using the app task context.
func (a *App) Every(interval time.Duration, fn func(time.Time) Message) {
	a.Spawn(Every(interval, fn))
}

// SetRoot swaps the root widget.
func (a *App) SetRoot(root Widget) {
	a.root = root
	if a.screen != nil {
		a.screen.SetRoot(root)
		a.dirty = true
	}
}

// Post sends a message to the event loop, dropping it if the queue is full.
func (a *App) Post(msg Message) {
	_ = a.tryPost(msg)
}

// TryPost sends a message to the event loop without blocking.
func (a *App) TryPost(msg Message) bool {
	return a.tryPost(msg)
}

func (a *App) tryPost(msg Message) bool {
	if a == nil || a.messages == nil || msg == nil {
		return false
	}
	select {
	case a.messages <- msg:
		return true
	default:
		a.logger.Debug("message dropped", zap.String("type", fmt.Sprintf("%T", msg)))
		return false
	}
}

// Run starts the event loop until quit or context cancellation.
func (a *App) Run(ctx context.Context) (err error) {
	if a.backend == nil {
		return ErrNoBackend
	}
	if ctx == nil {
		ctx = context.Background()
	}
	taskCtx, taskCancel := context.WithCancel(ctx)
	a.taskCtx = taskCtx
	a.taskCancel = taskCancel
	defer func() {
		taskCancel()
		a.taskCtx = nil
		a.taskCancel = nil
	}()
	if err := a.backend.Init(); err != nil {
		return fmt.Errorf("init backend: %w", err)
	}
	defer a.backend.Fini()

	a.backend.HideCursor()
	w, h := a.backend.Size()
	a.screen = NewScreen(w, h)
	a.screen.SetServices(a.Services())
	if a.root != nil {
		a.screen.SetRoot(a.root)
	}
	defer func() {
		if root := a.screen.Root(); root != nil {
			DetachTree(root)
		}
	}()

	if a.update == nil {
		a.update = DefaultUpdate
	}

	a.running = true
	a.dirty = true
	a.logger.Debug("app started", zap.Int("width", w), zap.Int("height", h))
	defer a.logger.Debug("app stopped")

	a.startPendingEffects()

	go a.pollEvents(taskCtx)

	var ticks <-chan time.Time
	if a.tickRate > 0 {
		ticker := time.NewTicker(a.tickRate)
		defer ticker.Stop()
		ticks = ticker.C
	}

	for a.running {
		var msg Message
		select {
		case <-ctx.Done():
			a.running = false
			a.cancelTasks()
		case msg = <-a.messages:
		case now := <-ticks:
			msg = TickMsg{Time: now}
		}

		if msg != nil {
			if err := a.handle(msg); err != nil {
				return err
			}
			if _, ok := msg.(InvalidateMsg); ok {
				a.invalidator.resetPending()
			}
		}

		if a.running && a.dirty {
			a.render()
			a.dirty = false
		}
	}

	return ctx.Err()
}

func (a *App) handle(msg Message) (err error) {
	if a.recoverPanics {
		defer func() {
			if r := recover(); r != nil {
				a.logger.Error("update panicked",
					zap.String("type", fmt.Sprintf("%T", msg)),
					zap.Any("panic", r))
				a.running = false
				a.cancelTasks()
				err = fmt.Errorf("%w: %v", ErrUpdatePanic, r)
			}
		}()
	}
	if m, ok := msg.(UpdateMsg); ok {
		if m.Fn != nil {
			m.Fn()
			a.dirty = true
		}
		return nil
	}
	if a.update(a, msg) {
		a.dirty = true
	}
	return nil
}

// DefaultUpdate handles input messages and widget commands.
func DefaultUpdate(app *App, msg Message) bool {
	if app == nil || app.screen == nil {
		return false
	}

	switch m := msg.(type) {
	case ResizeMsg:
		app.screen.Resize(m.Width, m.Height)
		return true
	case KeyMsg:
		if m.Key == terminal.KeyCtrlC {
			app.handleCommand(Quit{})
			return false
		}
		return app.dispatchMessage(msg)
	case InvalidateMsg:
		return true
	default:
		return app.dispatchMessage(msg)
	}
}

func (a *App) dispatchMessage(msg Message) bool {
	if a == nil || a.screen == nil {
		return false
	}
	result := a.screen.HandleMessage(msg)
	dirty := result.Handled
	for _, cmd := range result.Commands {
		if a.handleCommand(cmd) {
			dirty = true
		}
	}
	return dirty
}

func (a *App) handleCommand(cmd Command) bool {
	switch c := cmd.(type) {
	case Quit:
		a.running = false
		a.cancelTasks()
		return false
	case Refresh:
		if a.screen != nil {
			a.screen.Buffer().MarkAllDirty()
		}
		return true
	case SendMsg:
		if c.Message != nil {
			a.Post(c.Message)
		}
		return false
	case Effect:
		a.runEffect(c)
		return false
	case PushOverlay, PopOverlay:
		return true
	default:
		if a.commandHandler != nil {
			return a.commandHandler(cmd)
		}
		return false
	}
}

// ExecuteCommand runs a command through the app handler.
func (a *App) ExecuteCommand(cmd Command) bool {
	if a == nil {
		return false
	}
	return a.handleCommand(cmd)
}

func (a *App) pollEvents(ctx context.Context) {
	for {
		ev := a.backend.PollEvent()
		if ev == nil {
			return
		}
		if ctx.Err() != nil {
			return
		}
		switch e := ev.(type) {
		case terminal.KeyEvent:
			a.Post(KeyMsg{
				Key:   e.Key,
				Rune:  e.Rune,
				Alt:   e.Alt,
				Ctrl:  e.Ctrl,
				Shift: e.Shift,
			})
		case terminal.ResizeEvent:
			a.Post(ResizeMsg{Width: e.Width, Height: e.Height})
		}
	}
}

func (a *App) render() {
	if a.screen == nil {
		return
	}

	observer := a.renderObserver
	var stats RenderStats
	if observer != nil {
		stats.Frame = atomic.AddInt64(&a.renderFrame, 1)
		stats.Started = time.Now()
		stats.LayerCount = a.screen.LayerCount()
	}

	a.screen.Render()
	if observer != nil {
		stats.RenderDuration = time.Since(stats.Started)
	}

	buf := a.screen.Buffer()
	w, h := buf.Size()
	totalCells := w * h
	stats.TotalCells = totalCells
	if buf.IsDirty() {
		dirtyCount := buf.DirtyCount()
		fullRedraw := dirtyCount > totalCells/2
		stats.DirtyCells = dirtyCount
		stats.FullRedraw = fullRedraw

		flushStart := time.Now()
		stats.FlushedCells = a.flush(buf, fullRedraw)
		if observer != nil {
			stats.FlushDuration = time.Since(flushStart)
		}
		buf.ClearDirty()
	}

	a.backend.Show()
	if observer != nil {
		stats.Ended = time.Now()
		stats.TotalDuration = stats.Ended.Sub(stats.Started)
		observer.ObserveRender(stats)
	}
}

func (a *App) flush(buf *Buffer, fullRedraw bool) int {
	w, h := buf.Size()
	cells := buf.Cells()
	rectWriter, hasRectWriter := a.backend.(backend.RectWriter)
	rowWriter, hasRowWriter := a.backend.(backend.RowWriter)
	switch {
	case fullRedraw && hasRectWriter:
		rectWriter.SetRect(0, 0, w, h, cells)
		return w * h
	case fullRedraw:
		for y := 0; y < h; y++ {
			row := cells[y*w : y*w+w]
			if hasRowWriter {
				rowWriter.SetRow(y, 0, row)
				continue
			}
			for x, cell := range row {
				a.backend.SetContent(x, y, cell.Rune, nil, cell.Style)
			}
		}
		return w * h
	case hasRowWriter:
		flushed := 0
		buf.ForEachDirtySpan(func(y, startX, endX int) {
			rowWriter.SetRow(y, startX, cells[y*w+startX:y*w+endX])
			flushed += endX - startX
		})
		return flushed
	default:
		flushed := 0
		buf.ForEachDirtyCell(func(x, y int, cell Cell) {
			a.backend.SetContent(x, y, cell.Rune, nil, cell.Style)
			flushed++
		})
		return flushed
	}
}

func (a *App) taskContext() context.Context {
	if a != nil && a.taskCtx != nil {
		return a.taskCtx
	}
	return context.Background()
}

func (a *App) cancelTasks() {
	if a == nil || a.taskCancel == nil {
		return
	}
	a.taskCancel()
}

func (a *App) runEffect(effect Effect) {
	if a == nil || effect.Run == nil {
		return
	}
	go effect.Run(a.taskContext(), a.tryPost)
}

func (a *App) startPendingEffects() {
	if a == nil {
		return
	}
	a.pendingMu.Lock()
	effects := a.pendingEffects
	a.pendingEffects = nil
	a.pendingMu.Unlock()
	for _, effect := range effects {
		a.runEffect(effect)
	}
}
