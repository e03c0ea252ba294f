package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/dd0wney/cluso-align/pkg/align"
)

// Pretty renders a bordered summary for terminals.
type Pretty struct {
	box   lipgloss.Style
	title lipgloss.Style
	label lipgloss.Style
	score lipgloss.Style
	warn  lipgloss.Style
	dim   lipgloss.Style
}

// NewPretty creates the terminal renderer.
func NewPretty() Pretty {
	return Pretty{
		box: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#00FF00")).
			Padding(1, 2),
		title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00FF00")),
		label: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00FFFF")).
			Width(18),
		score: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFF00")),
		warn: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF8800")),
		dim: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")),
	}
}

func (p Pretty) Render(w io.Writer, s *Summary) error {
	r := s.Result
	row := func(label, value string) string {
		return lipgloss.JoinHorizontal(lipgloss.Top, p.label.Render(label), value)
	}

	lines := []string{
		p.title.Render("Verification successful!"),
		"",
		row("Alignment score", p.score.Render(fmt.Sprintf("%d", r.Score))),
		row("Best possible", p.maxScore(r)),
		row("Edges preserved", fmt.Sprintf("%d / %d", r.PreservedEdges, r.SourceEdges)),
		row("Edges weakened", fmt.Sprintf("%d", r.PartialEdges)),
		row("Edges missing", fmt.Sprintf("%d", r.MissingEdges)),
		row("Nodes", fmt.Sprintf("%d source, %d target, %d mapped", r.SourceNodes, r.TargetNodes, r.MappedNodes)),
		"",
		p.dim.Render("run " + s.RunID),
	}
	if s.Name != "" {
		lines = append([]string{p.dim.Render(s.Name)}, lines...)
	}

	_, err := fmt.Fprintln(w, p.box.Render(strings.Join(lines, "\n")))
	return err
}

func (p Pretty) maxScore(r *align.Result) string {
	if r.MaxScoreCapped {
		return p.warn.Render(fmt.Sprintf("over %d (clamped)", r.MaxScore))
	}
	return fmt.Sprintf("%d (%.2f%%)", r.MaxScore, 100*r.Ratio())
}
