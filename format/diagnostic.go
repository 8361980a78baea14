package format

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/dhamidi/oxiparse/oxiby/parser"
)

var (
	colorError = lipgloss.Color("#EF4444")
	colorMuted = lipgloss.Color("#6B7280")

	headerStyle = lipgloss.NewStyle().Bold(true)
	classStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorError)
	gutterStyle = lipgloss.NewStyle().Foreground(colorMuted)
	caretStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorError)
)

// DiagnosticRenderer prints parse errors with the offending source line
// and a caret under the token that caused them:
//
//	main.oxi:3:8: syntax error: expected type identifier, found invalid token "@"
//	  3 | struct @
//	    |        ^
type DiagnosticRenderer struct {
	w     io.Writer
	color bool
}

func NewDiagnosticRenderer(w io.Writer, color bool) *DiagnosticRenderer {
	return &DiagnosticRenderer{w: w, color: color}
}

func (r *DiagnosticRenderer) style(s lipgloss.Style, text string) string {
	if !r.color {
		return text
	}
	return s.Render(text)
}

// Render writes one diagnostic. src is the full text of the file the
// error refers to; when it is nil only the header line is written.
func (r *DiagnosticRenderer) Render(src []byte, e *parser.Error) error {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s: %s %s\n",
		r.style(headerStyle, e.Pos.String()),
		r.style(classStyle, e.Class.String()+":"),
		e.Message)

	if line, ok := sourceLine(src, e.Pos.Line); ok {
		num := fmt.Sprintf("%d", e.Pos.Line)
		pad := strings.Repeat(" ", len(num))
		col := e.Pos.Column - 1
		if col > len(line) {
			col = len(line)
		}
		width := caretWidth(e, line, col)

		fmt.Fprintf(&sb, "  %s %s\n", r.style(gutterStyle, num+" |"), line)
		fmt.Fprintf(&sb, "  %s %s%s\n",
			r.style(gutterStyle, pad+" |"),
			indentLike(line[:col]),
			r.style(caretStyle, strings.Repeat("^", width)))
	}

	_, err := io.WriteString(r.w, sb.String())
	return err
}

// RenderAll writes every error in errs against the same source.
func (r *DiagnosticRenderer) RenderAll(src []byte, errs []*parser.Error) error {
	for _, e := range errs {
		if err := r.Render(src, e); err != nil {
			return err
		}
	}
	return nil
}

func sourceLine(src []byte, n int) (string, bool) {
	if src == nil || n < 1 {
		return "", false
	}
	lines := bytes.Split(src, []byte("\n"))
	if n > len(lines) {
		return "", false
	}
	return strings.TrimRight(string(lines[n-1]), "\r"), true
}

// caretWidth underlines the offending token, clipped to the end of the
// line. End of input and empty tokens get a single caret.
func caretWidth(e *parser.Error, line string, col int) int {
	width := 1
	if e.Got != nil && e.Got.Span.End.Line == e.Pos.Line {
		if w := e.Got.Span.End.Offset - e.Got.Span.Start.Offset; w > width {
			width = w
		}
	}
	if rest := len(line) - col; rest > 0 && width > rest {
		width = rest
	}
	return width
}

// indentLike returns whitespace of the same width as prefix, keeping tabs
// so the caret lines up in terminals.
func indentLike(prefix string) string {
	var sb strings.Builder
	for _, ch := range prefix {
		if ch == '\t' {
			sb.WriteByte('\t')
		} else {
			sb.WriteByte(' ')
		}
	}
	return sb.String()
}
