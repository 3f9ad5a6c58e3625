package runtime

import (
	"time"

	"go.uber.org/zap"
)

// Services exposes app-level scheduling and messaging helpers to widgets.
type Services struct {
	app *App
}

// Services returns a service handle for the app.
func (a *App) Services() Services {
	return Services{app: a}
}

func (s Services) isZero() bool {
	return s.app == nil
}

// Invalidator returns the app invalidator.
func (s Services) Invalidator() *Invalidator {
	if s.app == nil {
		return nil
	}
	return s.app.invalidator
}

// Invalidate requests a render pass.
func (s Services) Invalidate() {
	if s.app == nil {
		return
	}
	s.app.Invalidate()
}

// Post sends a message into the app loop.
func (s Services) Post(msg Message) bool {
	if s.app == nil {
		return false
	}
	return s.app.tryPost(msg)
}

// Dispatch runs fn on the app update loop.
func (s Services) Dispatch(fn func()) bool {
	if s.app == nil {
		return false
	}
	return s.app.Dispatch(fn)
}

// Spawn starts an effect using the app task context.
func (s Services) Spawn(effect Effect) {
	if s.app == nil {
		return
	}
	s.app.Spawn(effect)
}

// After schedules a delayed message.
func (s Services) After(delay time.Duration, msg Message) {
	if s.app == nil {
		return
	}
	s.app.After(delay, msg)
}

// Every schedules a recurring message.
func (s Services) Every(interval time.Duration, fn func(time.Time) Message) {
	if s.app == nil {
		return
	}
	s.app.Every(interval, fn)
}

// Logger returns the app logger, or a no-op logger when unbound.
func (s Services) Logger() *zap.Logger {
	if s.app == nil {
		return zap.NewNop()
	}
	return s.app.logger
}
