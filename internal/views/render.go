package views

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/sandeepkv93/todod/internal/model"
)

type AppData struct {
	Header       string
	LeftPane     string
	RightPane    string
	StatusLine   string
	StatusError  bool
	Footer       string
	Notification string
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	panelStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	cursorStyle = lipgloss.NewStyle().Bold(true)

	pendingStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	inProgressStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("33"))
	completeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("34"))
)

func RenderApp(data AppData) string {
	panes := []string{panelStyle.Width(58).Render(data.LeftPane)}
	if strings.TrimSpace(data.RightPane) != "" {
		panes = append(panes, panelStyle.Width(46).Render(data.RightPane))
	}
	row := lipgloss.JoinHorizontal(lipgloss.Top, panes...)

	status := statusStyle.Render(data.StatusLine)
	if data.StatusError {
		status = errorStyle.Render(data.StatusLine)
	}

	lines := []string{
		headerStyle.Render(data.Header),
		row,
		status,
	}
	if data.Notification != "" {
		lines = append(lines, panelStyle.Render(data.Notification))
	}
	if data.Footer != "" {
		lines = append(lines, footerStyle.Render(data.Footer))
	}
	return strings.Join(lines, "\n")
}

// StatusBadge renders the status label in its color. Unknown statuses show
// as pending.
func StatusBadge(s model.Status) string {
	label := "[" + s.Label() + "]"
	switch s.Normalize() {
	case model.StatusComplete:
		return completeStyle.Render(label)
	case model.StatusInProgress:
		return inProgressStyle.Render(label)
	default:
		return pendingStyle.Render(label)
	}
}

func ProgressBar(percent, width int) string {
	if width <= 0 {
		return ""
	}
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	filled := percent * width / 100
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", width-filled) + "]"
}

// MarkdownRenderer renders task descriptions. Build it once; a glamour
// renderer is costly to construct.
type MarkdownRenderer struct {
	term *glamour.TermRenderer
}

// NewMarkdownRenderer wraps at width. When glamour cannot be set up the
// renderer passes text through unchanged.
func NewMarkdownRenderer(width int) *MarkdownRenderer {
	term, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return &MarkdownRenderer{}
	}
	return &MarkdownRenderer{term: term}
}

func (r *MarkdownRenderer) Render(md string) string {
	if strings.TrimSpace(md) == "" {
		return ""
	}
	if r == nil || r.term == nil {
		return md
	}
	out, err := r.term.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimSpace(out)
}
