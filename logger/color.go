package logger

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

var levelColors = map[Level]lipgloss.Color{
	DebugLevel:   "6",
	ReleaseLevel: "4",
	InfoLevel:    "2",
	WarnLevel:    "3",
	FatalLevel:   "1",
	TraceLevel:   "5",
	UnknownLevel: "7",
}

// newLevelStyles returns the label styles for colorized output. The ANSI
// profile is forced because the choice to colorize is made by Config, not by
// probing the writer.
func newLevelStyles(out io.Writer) map[Level]lipgloss.Style {
	r := lipgloss.NewRenderer(out)
	r.SetColorProfile(termenv.ANSI)
	styles := make(map[Level]lipgloss.Style, len(levelColors))
	for level, color := range levelColors {
		styles[level] = r.NewStyle().Foreground(color).Bold(level == FatalLevel)
	}
	return styles
}

// levelLabel returns the display label, colorized when styles are set.
func levelLabel(styles map[Level]lipgloss.Style, level Level) string {
	label := level.String()
	if styles == nil {
		return label
	}
	style, ok := styles[level]
	if !ok {
		return label
	}
	return style.Render(label)
}
