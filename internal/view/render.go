package view

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"pmconsole/internal/api"
)

const defaultBarWidth = 30

// RenderBar draws a bar of width cells followed by its label.
func RenderBar(bar Bar, width int, noColor bool) string {
	if width <= 0 {
		width = defaultBarWidth
	}
	filled := int(bar.Percent / 100 * float64(width))
	if filled < 0 {
		filled = 0
	}
	if filled > width {
		filled = width
	}
	done := strings.Repeat("█", filled)
	rest := strings.Repeat("░", width-filled)
	if !noColor {
		done = lipgloss.NewStyle().Foreground(barColor(bar.Percent)).Render(done)
		rest = lipgloss.NewStyle().Foreground(lipgloss.Color("238")).Render(rest)
	}
	return done + rest + " " + bar.Label
}

// RenderPanel renders the progress region and the stage counters.
func RenderPanel(p *Panel, width int, noColor bool) string {
	overall, stages, completed, tasks, loaded := p.Snapshot()
	if !loaded {
		return stylize("Waiting for project data...", noColor, lipgloss.Color("244"))
	}
	nameWidth := 0
	for _, stage := range stages {
		nameWidth = max(nameWidth, lipgloss.Width(stage.Name))
	}
	nameWidth = max(nameWidth, len("Overall"))
	barWidth := max(width-nameWidth-10, 10)

	lines := []string{pad("Overall", nameWidth) + "  " + RenderBar(overall, barWidth, noColor)}
	for _, stage := range stages {
		lines = append(lines, pad(stage.Name, nameWidth)+"  "+RenderBar(stage, barWidth, noColor))
	}
	counters := "Completed stages: " + strconv.Itoa(completed) + "   Total tasks: " + strconv.Itoa(tasks)
	lines = append(lines, "", stylize(counters, noColor, lipgloss.Color("42")))
	return strings.Join(lines, "\n")
}

// RenderSummary renders the server-wide totals on one line.
func RenderSummary(s api.Summary) string {
	return fmt.Sprintf("%d active, %d completed | tasks %d/%d | overall %s",
		s.ActiveProjects, s.CompletedProjects, s.CompletedTasks, s.TotalTasks, FormatPercent(s.OverallProgress))
}

// RenderLine renders a one-line summary for plain output.
func RenderLine(v ProjectView) string {
	parts := []string{"overall " + v.Overall.Label}
	for _, stage := range v.Stages {
		parts = append(parts, stage.Name+" "+stage.Label)
	}
	parts = append(parts,
		"completed stages "+strconv.Itoa(v.CompletedStages),
		"tasks "+strconv.Itoa(v.TotalTasks))
	return strings.Join(parts, " | ")
}

func barColor(percent float64) lipgloss.Color {
	switch {
	case percent >= 100:
		return lipgloss.Color("42")
	case percent >= 50:
		return lipgloss.Color("39")
	default:
		return lipgloss.Color("33")
	}
}

func pad(text string, width int) string {
	if gap := width - lipgloss.Width(text); gap > 0 {
		return text + strings.Repeat(" ", gap)
	}
	return text
}

func stylize(text string, noColor bool, color lipgloss.Color) string {
	if noColor {
		return text
	}
	return lipgloss.NewStyle().Foreground(color).Render(text)
}
