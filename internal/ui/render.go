package ui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"pmconsole/internal/alert"
	"pmconsole/internal/api"
	"pmconsole/internal/view"
)

// View renders the console.
func (m Model) View() string {
	sections := []string{m.renderHeader()}
	if alerts := m.renderAlerts(); alerts != "" {
		sections = append(sections, alerts)
	}
	switch m.state.Screen {
	case ScreenProject:
		sections = append(sections, m.renderProject())
	default:
		sections = append(sections, m.renderProjects())
	}
	if m.modal != nil {
		sections = append(sections, renderModal(m.modal, m.noColor))
	}
	if help := m.renderHelp(); help != "" {
		sections = append(sections, help)
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderHeader() string {
	line := stylize("pmconsole", m.noColor, lipgloss.Color("33")) + "  " + m.location.Path()
	if m.busy.Busy() {
		line += "  " + m.spinner.View() + " working"
	}
	return line
}

// renderAlerts draws the stack newest first.
func (m Model) renderAlerts() string {
	entries := m.alerts.Alerts()
	if len(entries) == 0 {
		return ""
	}
	lines := make([]string, 0, len(entries))
	for _, entry := range entries {
		label := "[" + entry.Severity.String() + "]"
		if !m.noColor {
			label = alert.Style(entry.Severity).Bold(true).Render(label)
		}
		lines = append(lines, label+" "+entry.Message)
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderProjects() string {
	title := stylize("Projects", m.noColor, lipgloss.Color("252"))
	if m.state.LastError != "" && len(m.state.Projects) == 0 {
		return title + "\n" + stylize("Could not load projects.", m.noColor, lipgloss.Color("244"))
	}
	if len(m.state.Projects) == 0 {
		return title + "\n" + stylize("No projects yet. Press n to create one.", m.noColor, lipgloss.Color("244"))
	}
	if summary := m.state.Summary; summary != nil {
		title += "  " + stylize(view.RenderSummary(*summary), m.noColor, lipgloss.Color("244"))
	}
	return title + "\n" + m.table.View()
}

func (m Model) renderProject() string {
	name := m.state.Project.Name
	if name == "" {
		name = "Project " + m.state.ProjectID
	}
	parts := []string{stylize(name, m.noColor, lipgloss.Color("252"))}
	if deadline := m.state.Project.Deadline; m.state.Loaded && deadline.Set {
		color := lipgloss.Color("244")
		if deadline.Overdue {
			color = lipgloss.Color("196")
		}
		parts = append(parts, stylize(view.FormatDeadline(deadline), m.noColor, color))
	}
	parts = append(parts, view.RenderPanel(m.panel, m.width, m.noColor))
	if m.state.Loaded {
		if len(m.state.Project.Tasks) == 0 {
			parts = append(parts, stylize("No tasks.", m.noColor, lipgloss.Color("244")))
		} else {
			parts = append(parts, m.table.View())
		}
	}
	return strings.Join(parts, "\n")
}

func (m Model) renderHelp() string {
	if !m.tooltips {
		return ""
	}
	if m.modal != nil {
		return m.help.View(m.modalKeys)
	}
	return m.help.View(m.keys.forScreen(m.state.Screen))
}

// renderModal draws the dialog with invalid fields flagged.
func renderModal(modal *Modal, noColor bool) string {
	lines := []string{stylize(modal.form.Title, noColor, lipgloss.Color("33"))}
	for i, field := range modal.form.Fields {
		label := field.Label
		if field.Required {
			label += " *"
		}
		line := pad(label, 14) + modal.inputs[i].View()
		if field.Invalid {
			line += "  " + stylize("required", noColor, lipgloss.Color("196"))
		}
		lines = append(lines, line)
	}
	body := strings.Join(lines, "\n")
	if noColor {
		return body
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1).
		Render(body)
}

func projectColumns(width int) []table.Column {
	nameWidth := max(width-44, 16)
	return []table.Column{
		{Title: "ID", Width: 10},
		{Title: "Name", Width: nameWidth},
		{Title: "Progress", Width: 10},
		{Title: "Stages", Width: 12},
	}
}

func projectRows(projects []api.ProjectSnapshot) []table.Row {
	rows := make([]table.Row, 0, len(projects))
	for _, project := range projects {
		v := view.Build(project.ID, project)
		rows = append(rows, table.Row{
			shortID(project.ID),
			project.Name,
			v.Overall.Label,
			strconv.Itoa(v.CompletedStages) + "/" + strconv.Itoa(len(v.Stages)),
		})
	}
	return rows
}

func taskColumns(width int) []table.Column {
	nameWidth := max(width-54, 16)
	return []table.Column{
		{Title: "Task", Width: nameWidth},
		{Title: "Stage", Width: 16},
		{Title: "Assignee", Width: 14},
		{Title: "Status", Width: 12},
	}
}

func taskRows(tasks []view.TaskRow) []table.Row {
	rows := make([]table.Row, 0, len(tasks))
	for _, task := range tasks {
		rows = append(rows, table.Row{
			task.Name,
			task.Stage,
			task.Assignee,
			strings.ReplaceAll(task.Status, "_", " "),
		})
	}
	return rows
}

// tableStyles returns table styles for the UI.
func tableStyles(noColor bool) table.Styles {
	styles := table.DefaultStyles()
	if noColor {
		styles.Selected = lipgloss.NewStyle().Reverse(true)
		return styles
	}
	styles.Header = styles.Header.Foreground(lipgloss.Color("252"))
	return styles
}

// tableKeyMap keeps table navigation off the action shortcuts.
func tableKeyMap() table.KeyMap {
	km := table.DefaultKeyMap()
	km.PageUp = key.NewBinding(key.WithKeys("pgup"))
	km.PageDown = key.NewBinding(key.WithKeys("pgdown"))
	km.HalfPageUp = key.NewBinding(key.WithKeys("ctrl+u"))
	km.HalfPageDown = key.NewBinding(key.WithKeys("ctrl+d"))
	return km
}

func shortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}

func pad(text string, width int) string {
	if gap := width - lipgloss.Width(text); gap > 0 {
		return text + strings.Repeat(" ", gap)
	}
	return text
}

// stylize applies optional color styling.
func stylize(text string, noColor bool, color lipgloss.Color) string {
	if noColor {
		return text
	}
	return lipgloss.NewStyle().Foreground(color).Render(text)
}
