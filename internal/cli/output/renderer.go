// Package output renders command results in a mode-aware way: styled text
// for interactive terminals, plain text when piped, and JSON for machine
// consumers.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/jedib0t/go-pretty/v6/table"
	"golang.org/x/term"
)

// Mode selects the output format.
type Mode string

const (
	// ModeAuto picks ModeText on a TTY and ModeJSON otherwise.
	ModeAuto Mode = "auto"
	ModeText Mode = "text"
	ModeJSON Mode = "json"
)

// StyleSet holds the lipgloss styles used by text output.
type StyleSet struct {
	Bold    lipgloss.Style
	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Dim     lipgloss.Style
}

func defaultStyles() StyleSet {
	return StyleSet{
		Bold:    lipgloss.NewStyle().Bold(true),
		Success: lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
		Warning: lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		Dim:     lipgloss.NewStyle().Faint(true),
	}
}

// Renderer writes command output in the configured mode.
type Renderer struct {
	out    io.Writer
	errOut io.Writer
	mode   Mode
	styles StyleSet
}

// NewRenderer creates a renderer. An empty or unknown mode behaves as
// ModeAuto.
func NewRenderer(out, errOut io.Writer, mode Mode) *Renderer {
	switch mode {
	case ModeText, ModeJSON:
	default:
		mode = ModeAuto
	}
	return &Renderer{out: out, errOut: errOut, mode: mode, styles: defaultStyles()}
}

// EffectiveMode resolves ModeAuto against the output destination.
func (r *Renderer) EffectiveMode() Mode {
	if r.mode != ModeAuto {
		return r.mode
	}
	if f, ok := r.out.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return ModeText
	}
	return ModeJSON
}

// Styles returns the style set for callers that compose their own lines.
func (r *Renderer) Styles() StyleSet { return r.styles }

// Println writes a line to standard output.
func (r *Renderer) Println(a ...any) {
	_, _ = fmt.Fprintln(r.out, a...)
}

// Printf writes formatted text to standard output.
func (r *Renderer) Printf(format string, a ...any) {
	_, _ = fmt.Fprintf(r.out, format, a...)
}

// Success writes a checkmarked success line.
func (r *Renderer) Success(msg string) {
	r.Println(r.styles.Success.Render("✓") + " " + msg)
}

// Error writes an error line to standard error.
func (r *Renderer) Error(msg string) {
	_, _ = fmt.Fprintln(r.errOut, r.styles.Error.Render("✗")+" "+msg)
}

// Warning writes a warning line.
func (r *Renderer) Warning(msg string) {
	r.Println(r.styles.Warning.Render("!") + " " + msg)
}

// Info writes an informational line.
func (r *Renderer) Info(msg string) {
	r.Println(r.styles.Dim.Render(msg))
}

// Header writes a section header at the given level.
func (r *Renderer) Header(level int, text string) {
	switch level {
	case 1:
		r.Println(r.styles.Bold.Render(text))
		r.Println(strings.Repeat("=", len(text)))
	default:
		r.Println(r.styles.Bold.Render(text))
	}
}

// StatusLine writes a per-item status line (e.g. one line per written file).
func (r *Renderer) StatusLine(name, status, detail string) {
	marker := r.styles.Dim.Render("-")
	switch status {
	case "success":
		marker = r.styles.Success.Render("✓")
	case "error":
		marker = r.styles.Error.Render("✗")
	}
	if detail != "" {
		r.Printf("%s %s (%s)\n", marker, name, detail)
		return
	}
	r.Printf("%s %s\n", marker, name)
}

// JSON writes v as indented JSON.
func (r *Renderer) JSON(v any) error {
	enc := json.NewEncoder(r.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// ArtifactTable renders written artifact paths grouped into a table with one
// row per path.
func (r *Renderer) ArtifactTable(paths []string) {
	t := table.NewWriter()
	t.SetOutputMirror(r.out)
	t.AppendHeader(table.Row{"#", "Artifact"})
	for i, p := range paths {
		t.AppendRow(table.Row{i + 1, p})
	}
	t.Render()
}
