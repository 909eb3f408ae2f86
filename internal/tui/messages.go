package tui

import "github.com/hayasakashogo/worklog/internal/events"

// SwitchScreenMsg requests a screen change
type SwitchScreenMsg struct {
	Screen Screen
}

// RefreshDataMsg requests data refresh
type RefreshDataMsg struct{}

// ErrorMsg carries error information
type ErrorMsg struct {
	Err error
}

// OpenNewClientFormMsg tells the clients screen to open the new client form
type OpenNewClientFormMsg struct{}

// firstRunCheckMsg reports the registered clients at startup
type firstRunCheckMsg struct {
	clientID   string
	hasClients bool
}

// changeMsg carries a record change from the broker
type changeMsg struct {
	change events.Change
}

// deferredRefreshMsg fires once a throttled refresh window has passed
type deferredRefreshMsg struct{}
