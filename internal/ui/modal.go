package ui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"pmconsole/internal/form"
)

// modalKind identifies which dialog is open.
type modalKind int

const (
	modalCreateProject modalKind = iota
	modalAddTask
)

// Modal is a form dialog. Fields and inputs share indexes.
type Modal struct {
	kind      modalKind
	projectID string
	form      *form.Form
	inputs    []textinput.Model
	focus     int
}

func newCreateProjectModal() *Modal {
	return newModal(modalCreateProject, "", form.New("New project",
		form.Field{Name: "name", Label: "Name", Required: true},
		form.Field{Name: "description", Label: "Description"},
	))
}

func newAddTaskModal(projectID string) *Modal {
	return newModal(modalAddTask, projectID, form.New("Add task",
		form.Field{Name: "name", Label: "Name", Required: true},
		form.Field{Name: "description", Label: "Description"},
		form.Field{Name: "assignee", Label: "Assignee"},
	))
}

func newModal(kind modalKind, projectID string, f *form.Form) *Modal {
	m := &Modal{kind: kind, projectID: projectID, form: f}
	for _, field := range f.Fields {
		input := textinput.New()
		input.Placeholder = field.Label
		input.CharLimit = 200
		input.Width = 40
		m.inputs = append(m.inputs, input)
	}
	m.setFocus(0)
	return m
}

// Form returns the dialog's form after copying the input values into it.
func (m *Modal) Form() *form.Form {
	for i := range m.inputs {
		m.form.Fields[i].Value = m.inputs[i].Value()
	}
	return m.form
}

// SetValue fills the named field's input.
func (m *Modal) SetValue(name, value string) {
	for i, field := range m.form.Fields {
		if field.Name == name {
			m.inputs[i].SetValue(value)
			return
		}
	}
}

func (m *Modal) setFocus(index int) tea.Cmd {
	if len(m.inputs) == 0 {
		return nil
	}
	index = (index + len(m.inputs)) % len(m.inputs)
	m.focus = index
	var cmd tea.Cmd
	for i := range m.inputs {
		if i == index {
			cmd = m.inputs[i].Focus()
			continue
		}
		m.inputs[i].Blur()
	}
	return cmd
}

func (m *Modal) next() tea.Cmd {
	return m.setFocus(m.focus + 1)
}

func (m *Modal) prev() tea.Cmd {
	return m.setFocus(m.focus - 1)
}

// focusFirstInvalid moves the cursor to the first field marked invalid.
func (m *Modal) focusFirstInvalid() tea.Cmd {
	for i, field := range m.form.Fields {
		if field.Invalid {
			return m.setFocus(i)
		}
	}
	return nil
}

// update forwards a message to the focused input.
func (m *Modal) update(msg tea.Msg) tea.Cmd {
	if len(m.inputs) == 0 {
		return nil
	}
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return cmd
}
