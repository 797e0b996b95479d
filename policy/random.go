package policy

import (
	"golang.org/x/exp/rand"

	"classicgame/agent"
	"classicgame/game"
)

// Random picks uniformly among the available actions. The source is injected so runs can
// be replayed; it is not safe for concurrent use.
type Random struct {
	rng *rand.Rand
}

func NewRandom(rng *rand.Rand) Random {
	return Random{rng: rng}
}

func NewSeededRandom(seed uint64) Random {
	return Random{rng: rand.New(rand.NewSource(seed))}
}

func (p Random) SelectAction(state agent.History) (game.Action, bool) {
	actions := state.AvailableActions()
	if len(actions) == 0 {
		return 0, false
	}
	return actions[p.rng.Intn(len(actions))], true
}
