package widgets

import (
	"testing"

	"github.com/odvcencio/furry-reactive/backend"
	"github.com/odvcencio/furry-reactive/runtime"
)

func mountScreen(t *testing.T, root runtime.Widget, w, h int) *runtime.Screen {
	t.Helper()
	screen := runtime.NewScreen(w, h)
	screen.SetRoot(root)
	return screen
}

func screenLines(screen *runtime.Screen) []string {
	screen.Render()
	buf := screen.Buffer()
	_, h := buf.Size()
	lines := make([]string, h)
	for y := range lines {
		lines[y] = buf.Line(y)
	}
	return lines
}

type probe struct {
	Base
	name      string
	mounted   int
	unmounted int
}

func (p *probe) Measure(c runtime.Constraints) runtime.Size {
	return c.Constrain(runtime.Size{Width: len(p.name), Height: 1})
}

func (p *probe) Render(ctx runtime.RenderContext) {
	ctx.Buffer.SetString(p.bounds.X, p.bounds.Y, p.name, backend.DefaultStyle())
}

func (p *probe) Mount()   { p.mounted++ }
func (p *probe) Unmount() { p.unmounted++ }
