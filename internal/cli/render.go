package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Colors follow the green palette of the footprint report.
const (
	colorHeader  = lipgloss.Color("42")
	colorBorder  = lipgloss.Color("28")
	colorLabel   = lipgloss.Color("245")
	colorValue   = lipgloss.Color("255")
	colorOK      = lipgloss.Color("42")
	colorWarning = lipgloss.Color("214")
	colorError   = lipgloss.Color("196")
	colorMuted   = lipgloss.Color("240")
)

var titleStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(colorHeader).
	Border(lipgloss.NormalBorder()).
	BorderForeground(colorBorder).
	Padding(0, 1)

var (
	labelStyle   = lipgloss.NewStyle().Foreground(colorLabel)
	valueStyle   = lipgloss.NewStyle().Foreground(colorValue).Bold(true)
	okStyle      = lipgloss.NewStyle().Foreground(colorOK).Bold(true)
	warningStyle = lipgloss.NewStyle().Foreground(colorWarning)
	errorStyle   = lipgloss.NewStyle().Foreground(colorError)
	mutedStyle   = lipgloss.NewStyle().Foreground(colorMuted).Italic(true)
)

// section accumulates labelled lines under a boxed title.
type section struct {
	sb strings.Builder
}

func newSection(title string) *section {
	s := &section{}
	s.sb.WriteString(titleStyle.Render(title))
	s.sb.WriteString("\n")
	return s
}

func (s *section) field(label, format string, args ...any) {
	s.sb.WriteString(labelStyle.Render(label + ": "))
	s.sb.WriteString(valueStyle.Render(fmt.Sprintf(format, args...)))
	s.sb.WriteString("\n")
}

func (s *section) line(text string) {
	s.sb.WriteString(text)
	s.sb.WriteString("\n")
}

func (s *section) blank() {
	s.sb.WriteString("\n")
}

func (s *section) writeTo(w io.Writer) error {
	_, err := io.WriteString(w, s.sb.String())
	return err
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
