// Package report emits all human-facing diagnostics for arbor.
//
// Every line the user sees goes through a Reporter with a severity tag
// ([INFO], [SUCCESS], [WARNING], [ERROR]). Coloring is a presentation
// flag, not a behavior: disabling it changes escape codes, never content.
package report

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

var (
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
)

// Reporter writes severity-tagged lines to the configured writers.
// Info, Success, and Warning go to out; Error goes to errOut.
type Reporter struct {
	out    io.Writer
	errOut io.Writer
	color  bool
}

// New creates a Reporter. Pass color=false to emit plain tags.
func New(out, errOut io.Writer, color bool) *Reporter {
	return &Reporter{out: out, errOut: errOut, color: color}
}

func (r *Reporter) Info(format string, args ...any) {
	r.line(r.out, infoStyle, "[INFO]", format, args...)
}

func (r *Reporter) Success(format string, args ...any) {
	r.line(r.out, successStyle, "[SUCCESS]", format, args...)
}

func (r *Reporter) Warning(format string, args ...any) {
	r.line(r.out, warningStyle, "[WARNING]", format, args...)
}

func (r *Reporter) Error(format string, args ...any) {
	r.line(r.errOut, errorStyle, "[ERROR]", format, args...)
}

// Plain writes an untagged line to out. Used for listings and the
// next-steps block after a successful create.
func (r *Reporter) Plain(format string, args ...any) {
	fmt.Fprintf(r.out, format+"\n", args...)
}

func (r *Reporter) line(w io.Writer, style lipgloss.Style, tag, format string, args ...any) {
	if r.color {
		tag = style.Render(tag)
	}
	fmt.Fprintf(w, "%s %s\n", tag, fmt.Sprintf(format, args...))
}
