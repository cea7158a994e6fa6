package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the application.
type keyMap struct {
	// Global
	Quit       key.Binding
	Help       key.Binding
	CycleTheme key.Binding
	Refresh    key.Binding
	Back       key.Binding

	// View switching
	ViewOrders   key.Binding
	ViewProducts key.Binding
	ViewLogs     key.Binding

	// Navigation
	Up     key.Binding
	Down   key.Binding
	Top    key.Binding
	Bottom key.Binding

	// Collection actions
	New    key.Binding
	Edit   key.Binding
	Delete key.Binding

	// Editor
	Save        key.Binding
	CycleStatus key.Binding
	AddLine     key.Binding
	RemoveLine  key.Binding
	NextField   key.Binding

	// Modals
	Confirm key.Binding
	Yes     key.Binding
	No      key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("q", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "Toggle help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cycle theme"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "Reload"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Back"),
		),

		ViewOrders: key.NewBinding(
			key.WithKeys("o", "1"),
			key.WithHelp("o", "Orders"),
		),
		ViewProducts: key.NewBinding(
			key.WithKeys("p", "2"),
			key.WithHelp("p", "Products"),
		),
		ViewLogs: key.NewBinding(
			key.WithKeys("l", "3"),
			key.WithHelp("l", "Logs"),
		),

		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "Move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "Move down"),
		),
		Top: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "Go to top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "Go to bottom"),
		),

		New: key.NewBinding(
			key.WithKeys("n", "a"),
			key.WithHelp("n", "New"),
		),
		Edit: key.NewBinding(
			key.WithKeys("enter", "e"),
			key.WithHelp("enter", "Open"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d", "delete"),
			key.WithHelp("d", "Delete"),
		),

		Save: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "Save order"),
		),
		CycleStatus: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "Cycle status"),
		),
		AddLine: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "Add product"),
		),
		RemoveLine: key.NewBinding(
			key.WithKeys("x", "d"),
			key.WithHelp("x", "Remove product"),
		),
		NextField: key.NewBinding(
			key.WithKeys("tab", "shift+tab"),
			key.WithHelp("tab", "Switch field"),
		),

		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Confirm"),
		),
		Yes: key.NewBinding(
			key.WithKeys("y", "Y", "enter"),
			key.WithHelp("y", "Yes"),
		),
		No: key.NewBinding(
			key.WithKeys("n", "N", "esc"),
			key.WithHelp("n", "No"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Quit}
}

// FullHelp returns key bindings grouped by help section.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.ViewOrders, k.ViewProducts, k.ViewLogs, k.Back},
		{k.Up, k.Down, k.Top, k.Bottom},
		{k.New, k.Edit, k.Delete, k.Refresh},
		{k.Save, k.CycleStatus, k.AddLine, k.RemoveLine, k.NextField},
		{k.CycleTheme, k.Help, k.Quit},
	}
}
