// Package action defines how popup components report back to the app.
package action

import tea "github.com/charmbracelet/bubbletea"

// Action is something a popup asks the app to do. ActionType names it for
// logs.
type Action interface {
	ActionType() string
}

// Msg carries an Action together with the component that raised it.
type Msg struct {
	Source string // "confirm", "helpbindings"
	Action Action
}

var _ tea.Msg = Msg{}
