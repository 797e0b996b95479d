package env

import (
	"context"

	"golang.org/x/exp/rand"

	"classicgame/game"
	"classicgame/policy"
)

// Match is a fixed number of rounds between Alice and Bob.
type Match struct {
	env    *Environment[game.PrisonerID]
	rounds int
}

// NewMatch seats two policies against each other.
func NewMatch(table game.RewardTable, alice, bob policy.HistoryPolicy, rounds int, rng *rand.Rand, opts ...Option) (*Match, error) {
	players := []*Player[game.PrisonerID]{
		NewPlayer(game.Alice, game.Alice.String(), table, alice),
		NewPlayer(game.Bob, game.Bob.String(), table, bob),
	}
	e, err := New(players, rng, opts...)
	if err != nil {
		return nil, err
	}
	return &Match{env: e, rounds: rounds}, nil
}

func (m *Match) GameOver() bool {
	return m.env.Round() >= m.rounds
}

// Play runs the match to the end, starting from a fresh state.
func (m *Match) Play(ctx context.Context) error {
	_, err := m.env.RunEpisode(ctx, m.rounds)
	return err
}

// Scores returns each prisoner's table payoff, or its penalty if it failed to act.
func (m *Match) Scores() game.PrisonerMap[int64] {
	p := m.env.Players()
	return game.NewPrisonerMap(p[game.Alice].Score().TablePayoff(), p[game.Bob].Score().TablePayoff())
}

// Player returns the seat of one prisoner.
func (m *Match) Player(id game.PrisonerID) *Player[game.PrisonerID] {
	return m.env.Players()[id.Index()]
}
