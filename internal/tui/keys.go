package tui

import "github.com/charmbracelet/bubbles/key"

type KeyMap struct {
	Quit key.Binding
	Back key.Binding

	// Navigation
	Punch    key.Binding
	Records  key.Binding
	Clients  key.Binding
	Report   key.Binding
	Settings key.Binding

	// Actions
	Select key.Binding
	New    key.Binding
	Edit   key.Binding
	Delete key.Binding
	Off    key.Binding
	Note   key.Binding

	// Movement
	Up    key.Binding
	Down  key.Binding
	Left  key.Binding
	Right key.Binding
}

var DefaultKeyMap = KeyMap{
	Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	Back:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	Punch:    key.NewBinding(key.WithKeys("P"), key.WithHelp("P", "punch")),
	Records:  key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "records")),
	Clients:  key.NewBinding(key.WithKeys("C"), key.WithHelp("C", "clients")),
	Report:   key.NewBinding(key.WithKeys("E"), key.WithHelp("E", "export")),
	Settings: key.NewBinding(key.WithKeys(","), key.WithHelp(",", "settings")),
	Select:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
	New:      key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new")),
	Edit:     key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
	Delete:   key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
	Off:      key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "toggle day off")),
	Note:     key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "memo")),
	Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Left:     key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "left")),
	Right:    key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "right")),
}
