package domain

import "fmt"

// Action names a guided status change offered on the board.
type Action string

const (
	ActionProcess Action = "process"
	ActionShip    Action = "ship"
	ActionCancel  Action = "cancel"
	ActionDeliver Action = "deliver"
	ActionReorder Action = "reorder"
)

// Transition is one allowed move out of a status.
type Transition struct {
	Action Action
	Label  string
	Target Status
}

// DELIVERED has no entry: it is terminal.
var transitions = map[Status][]Transition{
	StatusPlaced: {
		{Action: ActionProcess, Label: "Process", Target: StatusProcessing},
	},
	StatusProcessing: {
		{Action: ActionShip, Label: "Ship", Target: StatusShipped},
		{Action: ActionCancel, Label: "Cancel", Target: StatusCancelled},
	},
	StatusShipped: {
		{Action: ActionDeliver, Label: "Deliver", Target: StatusDelivered},
	},
	StatusCancelled: {
		{Action: ActionReorder, Label: "Reorder", Target: StatusPlaced},
	},
}

// Transitions lists the moves offered for an order in the given status.
func Transitions(from Status) []Transition {
	allowed := transitions[from]
	if len(allowed) == 0 {
		return nil
	}
	return append([]Transition(nil), allowed...)
}

// LookupTransition resolves an action against the current status.
func LookupTransition(from Status, action Action) (Transition, error) {
	for _, t := range transitions[from] {
		if t.Action == action {
			return t, nil
		}
	}
	return Transition{}, fmt.Errorf("%w: %q from %s", ErrTransitionNotAllowed, action, from)
}

// IsTerminal reports whether no transition leaves the status.
func IsTerminal(s Status) bool {
	return s.Valid() && len(transitions[s]) == 0
}
