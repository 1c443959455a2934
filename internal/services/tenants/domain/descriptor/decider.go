package descriptor

import "fmt"

// Decision represents the pure outcome of handling a command.
type Decision struct {
	Event    Event
	Failures ValidationFailures
}

// Accepted reports whether the decision carries an event.
func (d Decision) Accepted() bool {
	return d.Event != nil && len(d.Failures) == 0
}

// Accept returns a decision that emits evt.
func Accept(evt Event) Decision {
	return Decision{Event: evt}
}

// Reject returns a decision that carries the provided failures.
func Reject(failures ...ValidationFailure) Decision {
	return Decision{Failures: append(ValidationFailures(nil), failures...)}
}

// Derive maps an accepted command to the event it produces. The mapping copies
// fields unchanged; callers run Validate first.
func Derive(cmd Command) Event {
	switch c := cmd.(type) {
	case CreateCommand:
		return CreatedEvent{Title: c.Title}
	case UpdateCommand:
		return UpdatedEvent{Title: c.Title}
	case DeleteCommand:
		return DeletedEvent{}
	default:
		panic(fmt.Sprintf("descriptor: unhandled command %T", cmd))
	}
}

// Decide validates cmd and, when it passes, derives its event.
func Decide(cmd Command, templates MessageTemplates) Decision {
	if failures := Validate(cmd, templates); len(failures) > 0 {
		return Reject(failures...)
	}
	return Accept(Derive(cmd))
}
