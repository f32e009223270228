package tui

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

const ansiReset = "\x1b[0m"

// highlighter renders YAML with chroma and caches the last result per buffer
type highlighter struct {
	lexer     chroma.Lexer
	style     *chroma.Style
	formatter chroma.Formatter
	cache     map[string]highlighted
}

type highlighted struct {
	source string
	lines  []string
}

func newHighlighter(theme string) *highlighter {
	lexer := lexers.Get("yaml")
	if lexer == nil {
		lexer = lexers.Fallback
	}
	style := styles.Get(theme)
	if style == nil {
		style = styles.Fallback
	}
	formatter := formatters.Get("terminal256")
	if formatter == nil {
		formatter = formatters.Fallback
	}

	return &highlighter{
		lexer:     chroma.Coalesce(lexer),
		style:     style,
		formatter: formatter,
		cache:     make(map[string]highlighted),
	}
}

// Lines returns the highlighted lines of text, one per source line.
// On any chroma failure the plain lines are returned.
func (h *highlighter) Lines(key, text string) []string {
	if cached, ok := h.cache[key]; ok && cached.source == text {
		return cached.lines
	}

	plain := strings.Split(text, "\n")
	lines := plain

	iterator, err := h.lexer.Tokenise(nil, text)
	if err == nil {
		var sb strings.Builder
		if err := h.formatter.Format(&sb, h.style, iterator); err == nil {
			rendered := strings.Split(sb.String(), "\n")
			if len(rendered) >= len(plain) {
				lines = make([]string, len(plain))
				for i := range plain {
					// tokens may span lines; never let a color leak past the line end
					lines[i] = rendered[i] + ansiReset
				}
			}
		}
	}

	h.cache[key] = highlighted{source: text, lines: lines}
	return lines
}
