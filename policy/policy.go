// Package policy holds the built-in decision rules. A policy derives every choice from the
// information set it is handed and keeps no decision state between calls.
package policy

import (
	"classicgame/agent"
	"classicgame/game"
)

// Policy picks the next action from state. ok is false when the policy abstains.
type Policy[S any] interface {
	SelectAction(state S) (action game.Action, ok bool)
}

// HistoryPolicy is a policy over any information set that keeps its history.
type HistoryPolicy = Policy[agent.History]

// Func adapts a plain function to the Policy interface.
type Func func(agent.History) (game.Action, bool)

func (f Func) SelectAction(state agent.History) (game.Action, bool) {
	return f(state)
}

// lastRepeated walks the opponent history from the most recent round backwards and returns
// the action of the most recent pair of equal consecutive moves. The last round itself takes
// part in the comparison.
func lastRepeated(h agent.History) (game.Action, bool) {
	n := h.Len()
	if n == 0 {
		return 0, false
	}
	next := h.OtherActionAt(n - 1)
	for i := n - 2; i >= 0; i-- {
		cur := h.OtherActionAt(i)
		if cur == next {
			return cur, true
		}
		next = cur
	}
	return 0, false
}
