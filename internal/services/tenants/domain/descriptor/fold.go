package descriptor

import "fmt"

// Reduce folds one event into the prior state.
//
// Every current event fully determines the next state, so prior is unused
// today. It stays in the signature for variants that apply partial updates.
func Reduce(prior State, evt Event) State {
	switch e := evt.(type) {
	case CreatedEvent:
		return prior.WithTitle(e.Title)
	case UpdatedEvent:
		return prior.WithTitle(e.Title)
	case DeletedEvent:
		return Empty
	default:
		panic(fmt.Sprintf("descriptor: unhandled event %T", evt))
	}
}

// Replay folds events left to right starting from Empty.
func Replay(events ...Event) State {
	state := Empty
	for _, evt := range events {
		state = Reduce(state, evt)
	}
	return state
}
