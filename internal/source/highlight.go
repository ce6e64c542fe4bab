package source

import (
	"bytes"
	"strings"
	"sync"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

var jsonLexer = sync.OnceValue(func() chroma.Lexer {
	lexer := lexers.Get("json")
	if lexer == nil {
		return nil
	}
	return chroma.Coalesce(lexer)
})

func chromaStyle() *chroma.Style {
	if s := styles.Get("monokai"); s != nil {
		return s
	}
	return styles.Fallback
}

func ttyFormatter() chroma.Formatter {
	if f := formatters.Get("terminal16m"); f != nil {
		return f
	}
	return formatters.Fallback
}

// HighlightJSON colours a JSON document for the terminal. The input is
// returned unchanged if it cannot be highlighted.
func HighlightJSON(code string) string {
	lexer := jsonLexer()
	if code == "" || lexer == nil {
		return code
	}
	it, err := lexer.Tokenise(nil, code)
	if err != nil {
		return code
	}
	var buf bytes.Buffer
	if err := ttyFormatter().Format(&buf, chromaStyle(), it); err != nil {
		return code
	}
	return strings.TrimRight(buf.String(), "\n")
}

// Highlighted wraps a render callback so that records it displays as their
// raw JSON are syntax highlighted. Everything else is left alone.
func Highlighted(render func(Record) string) func(Record) string {
	return func(r Record) string {
		text := render(r)
		if r.IsJSON() && text == r.Raw {
			return HighlightJSON(text)
		}
		return text
	}
}
