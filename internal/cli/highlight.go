package cli

import (
	"bytes"
	"io"
	"os"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/mattn/go-isatty"
)

// highlightStyle is the chroma style for structured output
const highlightStyle = "monokai"

// emit writes output, syntax highlighting json and yaml when out is a terminal
func emit(out io.Writer, output, format string) {
	if format == FormatJSON || format == FormatYAML {
		if f, ok := out.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
			var buf bytes.Buffer
			if err := quick.Highlight(&buf, output, format, "terminal256", highlightStyle); err == nil {
				io.Copy(out, &buf)
				return
			}
		}
	}
	io.WriteString(out, output)
}
