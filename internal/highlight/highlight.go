// Package highlight renders RESP command lines with ANSI syntax
// highlighting for the gofast-top dashboard, grounded on the sql-tap
// highlight package's lexer/formatter/style wiring.
package highlight

import (
	"bytes"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

var (
	lexer     chroma.Lexer
	formatter chroma.Formatter
	style     *chroma.Style
)

func init() {
	lexer = lexers.Get("bash")
	if lexer == nil {
		lexer = lexers.Fallback
	}
	formatter = formatters.Get("terminal256")
	style = styles.Get("monokai")
}

// Command returns a command line with ANSI syntax highlighting
// applied. On error or empty input, the original string is returned
// unchanged. There's no dedicated RESP/redis-CLI lexer in the chroma
// grammar set, so the bash lexer stands in — it colors the command
// name and quoted bulk-string arguments close enough for a log view.
func Command(s string) string {
	if s == "" {
		return s
	}

	iterator, err := lexer.Tokenise(nil, s)
	if err != nil {
		return s
	}

	var buf bytes.Buffer
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return s
	}

	return strings.TrimRight(buf.String(), "\n")
}
