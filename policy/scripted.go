package policy

import (
	"golang.org/x/exp/rand"

	"classicgame/agent"
	"classicgame/game"
)

type AlwaysCooperate struct{}

func (AlwaysCooperate) SelectAction(agent.History) (game.Action, bool) {
	return game.Cooperate, true
}

type AlwaysDefect struct{}

func (AlwaysDefect) SelectAction(agent.History) (game.Action, bool) {
	return game.Defect, true
}

// TitForTat repeats the opponent's last move and opens with cooperation.
type TitForTat struct{}

func (TitForTat) SelectAction(state agent.History) (game.Action, bool) {
	if n := state.Len(); n > 0 && state.OtherActionAt(n-1) == game.Defect {
		return game.Defect, true
	}
	return game.Cooperate, true
}

// ReverseTitForTat punishes cooperation and rewards defection.
type ReverseTitForTat struct{}

func (ReverseTitForTat) SelectAction(state agent.History) (game.Action, bool) {
	if n := state.Len(); n > 0 && state.OtherActionAt(n-1) == game.Cooperate {
		return game.Defect, true
	}
	return game.Cooperate, true
}

// RandomDefect cooperates but defects with probability 1/OneIn.
type RandomDefect struct {
	rng   *rand.Rand
	oneIn int
}

func NewRandomDefect(rng *rand.Rand, oneIn int) RandomDefect {
	if oneIn < 1 {
		oneIn = 1
	}
	return RandomDefect{rng: rng, oneIn: oneIn}
}

func (p RandomDefect) SelectAction(agent.History) (game.Action, bool) {
	if p.rng.Intn(p.oneIn) == 0 {
		return game.Defect, true
	}
	return game.Cooperate, true
}
