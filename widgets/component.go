package widgets

import (
	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"github.com/odvcencio/furry-reactive/runtime"
	"github.com/odvcencio/furry-reactive/state"
)

// Component is a base widget with bound services and subscriptions.
type Component struct {
	Base
	Services runtime.Services
	Subs     state.Subscriptions
	id       ulid.ULID
}

// ID returns a stable identifier for the component, assigned on first use.
func (c *Component) ID() ulid.ULID {
	if c.id == (ulid.ULID{}) {
		c.id = ulid.Make()
	}
	return c.id
}

// Bind attaches app services to the component.
func (c *Component) Bind(services runtime.Services) {
	c.Services = services
}

// Unbind releases app services and subscriptions.
func (c *Component) Unbind() {
	c.Subs.Clear()
	c.Services = runtime.Services{}
}

// Invalidate requests a render pass.
func (c *Component) Invalidate() {
	c.markRender()
	c.Services.Invalidate()
}

// Logger returns the app logger tagged with the component id.
func (c *Component) Logger() *zap.Logger {
	return c.Services.Logger().With(zap.Stringer("component", c.ID()))
}

// Observe subscribes fn to obs and tracks the token on c.
// Every notification also requests a render pass.
// It returns false if obs no longer has a live source.
func Observe[T any](c *Component, obs state.Observable[T], fn func(T)) bool {
	if c == nil || obs == nil {
		return false
	}
	return state.Observe(&c.Subs, obs, runtime.Invalidating(c.Services.Invalidator(), func(v T) {
		c.markRender()
		if fn != nil {
			fn(v)
		}
	}))
}
