// Package game holds the shared vocabulary of a two-action matrix game: actions, seats,
// reward tables, player identities and the per-round encounter reports an environment hands
// to every agent.
package game

import (
	"fmt"

	"github.com/pkg/errors"
)

// Action is one of the two moves available every round.
type Action uint8

const (
	Defect Action = iota
	Cooperate
)

// Actions lists every legal action. No action is ever masked.
var Actions = [2]Action{Cooperate, Defect}

// Index is the discrete index of the action, Defect=0 and Cooperate=1.
func (a Action) Index() int {
	return int(a)
}

// ActionFromIndex is the inverse of Index.
func ActionFromIndex(i int) (Action, error) {
	switch i {
	case 0:
		return Defect, nil
	case 1:
		return Cooperate, nil
	}
	return 0, errors.Errorf("no action with index %d", i)
}

// Other returns the opposite action.
func (a Action) Other() Action {
	if a == Defect {
		return Cooperate
	}
	return Defect
}

func (a Action) String() string {
	switch a {
	case Defect:
		return "Defect"
	case Cooperate:
		return "Cooperate"
	}
	return fmt.Sprintf("Action(%d)", uint8(a))
}

// Short is the one letter form used in compact history dumps.
func (a Action) Short() string {
	if a == Defect {
		return "D"
	}
	return "C"
}

// Side is the seat a player takes in one encounter. It only matters for asymmetric tables.
type Side uint8

const (
	Left Side = iota
	Right
)

// Other returns the opposite seat.
func (s Side) Other() Side {
	if s == Left {
		return Right
	}
	return Left
}

func (s Side) String() string {
	if s == Left {
		return "Left"
	}
	return "Right"
}
