package descriptor

import "fmt"

// State captures the tenant descriptor derived from its event history.
//
// State is a value: transitions return a new State and never modify the
// receiver, so snapshots can be shared and compared with ==.
type State struct {
	title   string
	present bool
}

// Empty is the state before any event and after a delete.
var Empty = State{}

// NewState returns a state holding title.
func NewState(title string) State {
	return State{title: title, present: true}
}

// WithTitle returns a copy of s holding title.
func (s State) WithTitle(title string) State {
	return NewState(title)
}

// Title returns the descriptor title and whether one is set.
func (s State) Title() (string, bool) {
	return s.title, s.present
}

// Exists reports whether the descriptor has been created and not deleted.
func (s State) Exists() bool {
	return s.present
}

func (s State) String() string {
	return fmt.Sprintf("Tenant(Title: %s)", s.title)
}
