package widgets

import (
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/gdamore/tcell/v2"

	"github.com/odvcencio/furry-reactive/backend"
)

// DefaultCodeStyle is the chroma style used when none is set.
const DefaultCodeStyle = "monokai"

// Highlight tokenizes src for language and returns styled lines.
// An unknown language falls back to content analysis, then plain text.
func Highlight(src, language, styleName string) ([]StyledLine, error) {
	src = strings.TrimSuffix(src, "\n")
	lexer := lexers.Get(language)
	if lexer == nil {
		lexer = lexers.Analyse(src)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	if styleName == "" {
		styleName = DefaultCodeStyle
	}
	style := styles.Get(styleName)

	it, err := lexer.Tokenise(nil, src)
	if err != nil {
		return plainLines(src, backend.DefaultStyle()), fmt.Errorf("tokenise %s: %w", language, err)
	}

	var lines []StyledLine
	var cur StyledLine
	for _, tok := range it.Tokens() {
		tokStyle := tokenStyle(style.Get(tok.Type))
		parts := strings.Split(tok.Value, "\n")
		for i, part := range parts {
			if i > 0 {
				lines = append(lines, cur)
				cur = nil
			}
			if part != "" {
				cur = append(cur, Span{Text: part, Style: tokStyle})
			}
		}
	}
	if len(cur) > 0 {
		lines = append(lines, cur)
	}
	return lines, nil
}

func tokenStyle(entry chroma.StyleEntry) backend.Style {
	style := backend.DefaultStyle()
	if entry.Colour.IsSet() {
		style = style.Foreground(tcell.NewRGBColor(
			int32(entry.Colour.Red()),
			int32(entry.Colour.Green()),
			int32(entry.Colour.Blue()),
		))
	}
	if entry.Bold == chroma.Yes {
		style = style.Bold(true)
	}
	if entry.Italic == chroma.Yes {
		style = style.Italic(true)
	}
	if entry.Underline == chroma.Yes {
		style = style.Underline(true)
	}
	return style
}
