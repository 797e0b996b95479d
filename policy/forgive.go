package policy

import (
	"math"

	"classicgame/agent"
	"classicgame/game"
)

// SwitchAfterTwo copies the opponent once it has played the same move twice in a row, and
// otherwise cooperates.
type SwitchAfterTwo struct{}

func (SwitchAfterTwo) SelectAction(state agent.History) (game.Action, bool) {
	if a, ok := lastRepeated(state); ok {
		return a, true
	}
	return game.Cooperate, true
}

// SwitchOnTwoSubsequent is the name the fixed-roster players used for SwitchAfterTwo.
type SwitchOnTwoSubsequent = SwitchAfterTwo

// ForgiveAfterTwo defects after any opponent defection that has not been followed by two
// cooperations.
type ForgiveAfterTwo struct{}

func (ForgiveAfterTwo) SelectAction(state agent.History) (game.Action, bool) {
	coops := 0
	for i := state.Len() - 1; i >= 0; i-- {
		if state.OtherActionAt(i) == game.Defect {
			return game.Defect, true
		}
		coops++
		if coops >= 2 {
			return game.Cooperate, true
		}
	}
	return game.Cooperate, true
}

// FibonacciForgive defects while fib(opponent defections) exceeds opponent cooperations.
type FibonacciForgive struct{}

func (FibonacciForgive) SelectAction(state agent.History) (game.Action, bool) {
	defects := state.CountOtherActions(game.Defect)
	coops := state.CountOtherActions(game.Cooperate)
	if Fibonacci(uint64(defects)) > uint64(coops) {
		return game.Defect, true
	}
	return game.Cooperate, true
}

// Fibonacci returns fib(n) with fib(0)=0 and fib(1)=1. Values past fib(93) do not fit in
// uint64 and saturate at math.MaxUint64.
func Fibonacci(n uint64) uint64 {
	if n > 93 {
		return math.MaxUint64
	}
	var a, b uint64 = 0, 1
	for i := uint64(0); i < n; i++ {
		a, b = b, a+b
	}
	return a
}

// ForgiveAfterOne tolerates a single opponent defection.
type ForgiveAfterOne struct{}

func (ForgiveAfterOne) SelectAction(state agent.History) (game.Action, bool) {
	if state.CountOtherActions(game.Defect) > 1 {
		return game.Defect, true
	}
	return game.Cooperate, true
}

// BetrayRatio defects while the opponent has defected more often than it cooperated.
type BetrayRatio struct{}

func (BetrayRatio) SelectAction(state agent.History) (game.Action, bool) {
	if state.CountOtherActions(game.Defect) > state.CountOtherActions(game.Cooperate) {
		return game.Defect, true
	}
	return game.Cooperate, true
}
