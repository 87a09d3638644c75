package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap lists the shortcuts available outside a modal.
type keyMap struct {
	NewProject key.Binding
	AddTask    key.Binding
	Advance    key.Binding
	Previous   key.Binding
	Complete   key.Binding
	Status     key.Binding
	Refresh    key.Binding
	Open       key.Binding
	Back       key.Binding
	Dismiss    key.Binding
	Help       key.Binding
	Quit       key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		NewProject: key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new project")),
		AddTask:    key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "add task")),
		Advance:    key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "next stage")),
		Previous:   key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "previous stage")),
		Complete:   key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "complete task")),
		Status:     key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "cycle status")),
		Refresh:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Open:       key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		Back:       key.NewBinding(key.WithKeys("esc", "backspace"), key.WithHelp("esc", "projects")),
		Dismiss:    key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "dismiss alert")),
		Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// forScreen enables the bindings that apply to the current screen.
func (k keyMap) forScreen(screen Screen) keyMap {
	detail := screen == ScreenProject
	k.AddTask.SetEnabled(detail)
	k.Advance.SetEnabled(detail)
	k.Previous.SetEnabled(detail)
	k.Complete.SetEnabled(detail)
	k.Status.SetEnabled(detail)
	k.Back.SetEnabled(detail)
	k.Open.SetEnabled(!detail)
	return k
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NewProject, k.AddTask, k.Advance, k.Open, k.Refresh, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NewProject, k.AddTask, k.Complete, k.Status},
		{k.Advance, k.Previous, k.Refresh},
		{k.Open, k.Back, k.Dismiss},
		{k.Help, k.Quit},
	}
}

// modalKeyMap lists the shortcuts available while a modal is open.
// Terminals report ctrl+enter as ctrl+j; ctrl+s is accepted as well.
type modalKeyMap struct {
	Submit key.Binding
	Close  key.Binding
	Next   key.Binding
	Prev   key.Binding
}

func defaultModalKeyMap() modalKeyMap {
	return modalKeyMap{
		Submit: key.NewBinding(key.WithKeys("ctrl+j", "ctrl+s"), key.WithHelp("ctrl+enter", "submit")),
		Close:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
		Next:   key.NewBinding(key.WithKeys("tab", "down", "enter"), key.WithHelp("tab", "next field")),
		Prev:   key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("shift+tab", "previous field")),
	}
}

// ShortHelp implements help.KeyMap.
func (k modalKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Submit, k.Close, k.Next, k.Prev}
}

// FullHelp implements help.KeyMap.
func (k modalKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
