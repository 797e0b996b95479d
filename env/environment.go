// Package env runs rounds between players: it seats them, collects their actions, builds the
// per-player encounter reports and hands every information set its update.
package env

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/exp/rand"
	"golang.org/x/sync/errgroup"

	"classicgame/agent"
	"classicgame/game"
	"classicgame/policy"
)

var (
	ErrOddPopulation = errors.New("odd number of players")
	ErrNoPlayers     = errors.New("no players")
	// ErrBadPairing is returned when a pairing does not seat every player exactly once.
	ErrBadPairing = errors.New("pairing does not seat every player exactly once")
)

// Player binds an information set to the policy that reads it. Ledger keeps the running
// payoff across episodes and is never renewed by the environment.
type Player[ID game.Identifier[ID]] struct {
	Name    string
	InfoSet *agent.OwnHistoryInfoSet[ID]
	Ledger  *agent.HistorylessInfoSet[ID]
	Policy  policy.HistoryPolicy

	illegal bool
}

// NewPlayer creates a player whose id is its index in the population.
func NewPlayer[ID game.Identifier[ID]](id ID, name string, table game.RewardTable, p policy.HistoryPolicy) *Player[ID] {
	return &Player[ID]{
		Name:    name,
		InfoSet: agent.NewOwnHistoryInfoSet(id, table),
		Ledger:  agent.NewHistorylessInfoSet(id, table),
		Policy:  p,
	}
}

// Score is the episode score, or the penalty if the player failed to act at some point.
func (p *Player[ID]) Score() agent.IntVerboseReward {
	if p.illegal {
		return p.InfoSet.PenaltyForIllegal()
	}
	return p.InfoSet.CurrentSubjectiveScore()
}

// Illegal reports whether the player abstained or played an invalid action this episode.
func (p *Player[ID]) Illegal() bool {
	return p.illegal
}

type Option func(*options)

type options struct {
	parallel bool
	logger   logrus.FieldLogger
	penalty  *int64
}

// WithParallelUpdates fans update delivery out over goroutines.
func WithParallelUpdates(parallel bool) Option {
	return func(o *options) { o.parallel = parallel }
}

func WithLogger(l logrus.FieldLogger) Option {
	return func(o *options) { o.logger = l }
}

// WithIllegalPenalty sets the table payoff reported for players that fail to act.
func WithIllegalPenalty(p int64) Option {
	return func(o *options) { o.penalty = &p }
}

// Environment plays repeated rounds within a fixed population.
type Environment[ID game.Identifier[ID]] struct {
	id      uuid.UUID
	players []*Player[ID]
	rng     *rand.Rand
	opts    options
	log     logrus.FieldLogger
	round   int
}

// New checks that players can be paired and that player i has index i.
func New[ID game.Identifier[ID]](players []*Player[ID], rng *rand.Rand, opts ...Option) (*Environment[ID], error) {
	if len(players) == 0 {
		return nil, ErrNoPlayers
	}
	if len(players)%2 != 0 {
		return nil, errors.Wrapf(ErrOddPopulation, "got %d", len(players))
	}
	for i, p := range players {
		if got := p.InfoSet.AgentID().Index(); got != i {
			return nil, errors.Errorf("player %q at position %d has index %d", p.Name, i, got)
		}
	}
	o := options{logger: logrus.StandardLogger()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.penalty != nil {
		for _, p := range players {
			p.InfoSet.WithIllegalPenalty(*o.penalty)
		}
	}
	id := uuid.New()
	return &Environment[ID]{
		id:      id,
		players: players,
		rng:     rng,
		opts:    o,
		log:     o.logger.WithField("run", id.String()),
	}, nil
}

func (e *Environment[ID]) ID() uuid.UUID {
	return e.id
}

func (e *Environment[ID]) Players() []*Player[ID] {
	return e.players
}

// Round is the number of rounds played in the current episode.
func (e *Environment[ID]) Round() int {
	return e.round
}

// Histories exposes every player's information set in index order.
func (e *Environment[ID]) Histories() []agent.History {
	h := make([]agent.History, len(e.players))
	for i, p := range e.players {
		h[i] = p.InfoSet
	}
	return h
}

// Pair shuffles the population and seats neighbours against each other.
func (e *Environment[ID]) Pair() game.Pairing[ID] {
	order := e.rng.Perm(len(e.players))
	pairing := make(game.Pairing[ID], 0, len(order)/2)
	for i := 0; i+1 < len(order); i += 2 {
		pairing = append(pairing, game.Pair[ID]{
			Left:  e.players[order[i]].InfoSet.AgentID(),
			Right: e.players[order[i+1]].InfoSet.AgentID(),
		})
	}
	return pairing
}

// Renew starts a new episode. Ledgers are kept.
func (e *Environment[ID]) Renew() {
	for _, p := range e.players {
		p.InfoSet.Renew()
		p.illegal = false
	}
	e.round = 0
}

func (e *Environment[ID]) act(p *Player[ID]) game.Action {
	a, ok := p.Policy.SelectAction(p.InfoSet)
	if !ok || !p.InfoSet.IsActionValid(a) {
		e.log.WithFields(logrus.Fields{
			"round":  e.round,
			"player": p.Name,
		}).Warn("player did not produce a valid action, cooperating in its place")
		p.illegal = true
		return game.Cooperate
	}
	return a
}

// Resolve turns the chosen actions of a pairing into one report per player. Every player
// must be seated exactly once.
func Resolve[ID game.Identifier[ID]](pairing game.Pairing[ID], actions []game.Action) (game.ClassicGameUpdate[ID], error) {
	seated := make([]bool, len(actions))
	seat := func(id ID) error {
		i := id.Index()
		if i < 0 || i >= len(actions) {
			return errors.Wrapf(ErrBadPairing, "%s is not in a population of %d", id, len(actions))
		}
		if seated[i] {
			return errors.Wrapf(ErrBadPairing, "%s is seated twice", id)
		}
		seated[i] = true
		return nil
	}
	reports := make([]game.EncounterReport[ID], len(actions))
	for _, pair := range pairing {
		if err := seat(pair.Left); err != nil {
			return game.ClassicGameUpdate[ID]{}, err
		}
		if err := seat(pair.Right); err != nil {
			return game.ClassicGameUpdate[ID]{}, err
		}
		l, r := pair.Left.Index(), pair.Right.Index()
		reports[l] = game.EncounterReport[ID]{
			OwnAction:   actions[l],
			OtherAction: actions[r],
			Side:        game.Left,
			OtherID:     pair.Right,
		}
		reports[r] = game.EncounterReport[ID]{
			OwnAction:   actions[r],
			OtherAction: actions[l],
			Side:        game.Right,
			OtherID:     pair.Left,
		}
	}
	for i, ok := range seated {
		if !ok {
			return game.ClassicGameUpdate[ID]{}, errors.Wrapf(ErrBadPairing, "player %d is not seated", i)
		}
	}
	return game.ClassicGameUpdate[ID]{Encounters: reports, Pairing: pairing}, nil
}

// PlayRound pairs the population, asks every policy for an action and delivers the update.
func (e *Environment[ID]) PlayRound(ctx context.Context) error {
	pairing := e.Pair()
	actions := make([]game.Action, len(e.players))
	for i, p := range e.players {
		actions[i] = e.act(p)
	}
	update, err := Resolve(pairing, actions)
	if err != nil {
		return errors.Wrapf(err, "round %d", e.round)
	}
	if err := e.Deliver(ctx, update); err != nil {
		return errors.Wrapf(err, "round %d", e.round)
	}
	e.log.WithField("round", e.round).Debug("round resolved")
	e.round++
	return nil
}

// Deliver hands update to every information set and ledger. Nobody is updated unless the
// update carries a report for every player.
func (e *Environment[ID]) Deliver(ctx context.Context, update game.ClassicGameUpdate[ID]) error {
	for _, p := range e.players {
		if _, ok := update.Report(p.InfoSet.AgentID()); !ok {
			err := &game.EncounterNotReportedError{Agent: p.InfoSet.AgentID().Index()}
			return errors.Wrapf(err, "player %s", p.Name)
		}
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	deliver := func(p *Player[ID]) error {
		if err := p.InfoSet.Update(update); err != nil {
			return errors.Wrapf(err, "player %s", p.Name)
		}
		return errors.Wrapf(p.Ledger.Update(update), "player %s ledger", p.Name)
	}
	if !e.opts.parallel {
		for _, p := range e.players {
			if err := deliver(p); err != nil {
				return err
			}
		}
		return nil
	}
	g, gctx := errgroup.WithContext(ctx)
	for _, p := range e.players {
		p := p
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			return deliver(p)
		})
	}
	return g.Wait()
}

// RunEpisode renews the population and plays the given number of rounds.
func (e *Environment[ID]) RunEpisode(ctx context.Context, rounds int) ([]agent.IntVerboseReward, error) {
	e.Renew()
	for e.round < rounds {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := e.PlayRound(ctx); err != nil {
			return nil, err
		}
	}
	scores := make([]agent.IntVerboseReward, len(e.players))
	for i, p := range e.players {
		scores[i] = p.Score()
		e.log.WithFields(logrus.Fields{
			"player": p.Name,
			"payoff": scores[i].TablePayoff(),
		}).Debug("episode finished")
	}
	return scores, nil
}
