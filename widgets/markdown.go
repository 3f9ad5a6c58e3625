package widgets

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"

	"github.com/odvcencio/furry-reactive/backend"
	"github.com/odvcencio/furry-reactive/runtime"
	"github.com/odvcencio/furry-reactive/scroll"
	"github.com/odvcencio/furry-reactive/state"
)

// MarkdownTheme styles Markdown elements.
type MarkdownTheme struct {
	Text      backend.Style
	Heading   backend.Style
	Code      backend.Style
	Link      backend.Style
	Quote     backend.Style
	Rule      backend.Style
	CodeStyle string
}

// DefaultMarkdownTheme returns the default Markdown styles.
func DefaultMarkdownTheme() MarkdownTheme {
	base := backend.DefaultStyle()
	return MarkdownTheme{
		Text:      base,
		Heading:   base.Bold(true).Foreground(tcell.ColorAqua),
		Code:      base.Foreground(tcell.ColorYellow),
		Link:      base.Foreground(tcell.ColorBlue).Underline(true),
		Quote:     base.Dim(true),
		Rule:      base.Dim(true),
		CodeStyle: DefaultCodeStyle,
	}
}

var markdownParser = goldmark.New(goldmark.WithExtensions(extension.Strikethrough))

// RenderMarkdown parses src and lays it out as styled lines.
// Top-level blocks are separated by a blank line. Fenced code blocks with
// a language are highlighted.
func RenderMarkdown(src string, theme MarkdownTheme) []StyledLine {
	source := []byte(src)
	doc := markdownParser.Parser().Parse(text.NewReader(source))
	r := &mdRenderer{src: source, theme: theme}
	r.block(doc, "")
	return r.lines
}

type mdRenderer struct {
	src    []byte
	theme  MarkdownTheme
	lines  []StyledLine
	cur    StyledLine
	prefix string
}

func (r *mdRenderer) start(prefix string, style backend.Style) {
	r.prefix = prefix
	r.cur = nil
	if prefix != "" {
		r.cur = StyledLine{{Text: prefix, Style: style}}
	}
}

func (r *mdRenderer) write(s string, style backend.Style) {
	if s == "" {
		return
	}
	r.cur = append(r.cur, Span{Text: s, Style: style})
}

func (r *mdRenderer) flush() {
	r.lines = append(r.lines, r.cur)
	r.cur = nil
}

func (r *mdRenderer) block(n ast.Node, prefix string) {
	switch n := n.(type) {
	case *ast.Document:
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			if c != n.FirstChild() {
				r.lines = append(r.lines, nil)
			}
			r.block(c, prefix)
		}
	case *ast.Heading:
		r.start(prefix, r.theme.Heading)
		r.inlines(n, r.theme.Heading)
		r.flush()
	case *ast.Paragraph, *ast.TextBlock:
		r.start(prefix, r.theme.Text)
		r.inlines(n, r.theme.Text)
		r.flush()
	case *ast.List:
		index := n.Start
		for item := n.FirstChild(); item != nil; item = item.NextSibling() {
			marker := "• "
			if n.IsOrdered() {
				marker = fmt.Sprintf("%d. ", index)
				index++
			}
			r.listItem(item, prefix, marker)
		}
	case *ast.FencedCodeBlock:
		r.code(n, prefix, string(n.Language(r.src)))
	case *ast.CodeBlock:
		r.code(n, prefix, "")
	case *ast.Blockquote:
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			r.block(c, prefix+"│ ")
		}
	case *ast.ThematicBreak:
		r.start(prefix, r.theme.Rule)
		r.write("───", r.theme.Rule)
		r.flush()
	default:
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			r.block(c, prefix)
		}
	}
}

func (r *mdRenderer) listItem(item ast.Node, prefix, marker string) {
	indent := strings.Repeat(" ", len([]rune(marker)))
	for c := item.FirstChild(); c != nil; c = c.NextSibling() {
		p := prefix + indent
		if c == item.FirstChild() {
			p = prefix + marker
		}
		r.block(c, p)
	}
}

func (r *mdRenderer) code(n ast.Node, prefix, language string) {
	var sb strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		sb.Write(seg.Value(r.src))
	}
	src := sb.String()

	highlighted := plainLines(src, r.theme.Code)
	if language != "" {
		if hl, err := Highlight(src, language, r.theme.CodeStyle); err == nil {
			highlighted = hl
		}
	}
	for _, line := range highlighted {
		out := StyledLine{{Text: prefix + "  ", Style: r.theme.Text}}
		r.lines = append(r.lines, append(out, line...))
	}
}

func (r *mdRenderer) inlines(parent ast.Node, style backend.Style) {
	for c := parent.FirstChild(); c != nil; c = c.NextSibling() {
		r.inline(c, style)
	}
}

func (r *mdRenderer) inline(n ast.Node, style backend.Style) {
	switch n := n.(type) {
	case *ast.Text:
		r.write(string(n.Segment.Value(r.src)), style)
		switch {
		case n.HardLineBreak():
			r.flush()
			r.start(strings.Repeat(" ", len([]rune(r.prefix))), style)
		case n.SoftLineBreak():
			r.write(" ", style)
		}
	case *ast.String:
		r.write(string(n.Value), style)
	case *ast.CodeSpan:
		r.inlines(n, r.theme.Code)
	case *ast.Emphasis:
		if n.Level >= 2 {
			style = style.Bold(true)
		} else {
			style = style.Italic(true)
		}
		r.inlines(n, style)
	case *extast.Strikethrough:
		r.inlines(n, style.StrikeThrough(true))
	case *ast.Link:
		r.inlines(n, r.theme.Link)
	case *ast.AutoLink:
		r.write(string(n.URL(r.src)), r.theme.Link)
	default:
		r.inlines(n, style)
	}
}

// Markdown renders Markdown bound to an observable string.
// Long lines wrap to the widget width.
type Markdown struct {
	Component
	source state.Observable[string]
	theme  MarkdownTheme
	lines    []StyledLine
	viewport scroll.Viewport
}

// NewMarkdown creates a Markdown view.
func NewMarkdown(source state.Observable[string]) *Markdown {
	return &Markdown{source: source, theme: DefaultMarkdownTheme()}
}

// WithTheme sets the Markdown theme.
func (m *Markdown) WithTheme(theme MarkdownTheme) *Markdown {
	m.theme = theme
	return m
}

// Lines returns the laid out lines.
func (m *Markdown) Lines() []StyledLine {
	return m.lines
}

// Mount subscribes to the source.
func (m *Markdown) Mount() {
	m.Subs.Clear()
	Observe(&m.Component, m.source, func(src string) {
		m.lines = RenderMarkdown(src, m.theme)
		m.viewport.SetContent(len(m.lines))
		m.viewport.ScrollToStart()
	})
}

// Unmount releases the subscription.
func (m *Markdown) Unmount() {
	m.Subs.Clear()
}

// Measure returns the wrapped height at the maximum width.
func (m *Markdown) Measure(constraints runtime.Constraints) runtime.Size {
	width := constraints.MaxWidth
	return constraints.Constrain(runtime.Size{
		Width:  width,
		Height: wrappedHeight(m.lines, width, true),
	})
}

// Layout stores bounds and sizes the viewport.
func (m *Markdown) Layout(bounds runtime.Rect) {
	m.Base.Layout(bounds)
	m.viewport.SetView(bounds.Height)
}

// Render draws the visible lines.
func (m *Markdown) Render(ctx runtime.RenderContext) {
	if m.bounds.Empty() {
		return
	}
	ctx.Sub(m.bounds).Clear(backend.DefaultStyle())
	drawStyledLines(ctx.Buffer, m.bounds, m.lines, m.viewport.Offset(), true)
	m.ClearInvalidation()
}

// HandleMessage scrolls with the navigation keys.
func (m *Markdown) HandleMessage(msg runtime.Message) runtime.HandleResult {
	key, ok := msg.(runtime.KeyMsg)
	if !ok {
		return runtime.Unhandled()
	}
	before := m.viewport.Offset()
	if !scroll.HandleKey(&m.viewport, key.Key) {
		return runtime.Unhandled()
	}
	if m.viewport.Offset() != before {
		m.Invalidate()
	}
	return runtime.Handled()
}
