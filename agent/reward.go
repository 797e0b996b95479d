package agent

import (
	"fmt"

	"classicgame/game"
)

// VerboseReward is a table payoff together with the tally of rounds that produced it.
// It is a value type: arithmetic always returns a new reward, so the two parts never drift.
type VerboseReward[R Number] struct {
	tablePayoff  R
	actionCounts ActionCounter[int64]
}

// IntVerboseReward is the reward the own-history information set reports.
type IntVerboseReward = VerboseReward[int64]

func NewVerboseReward[R Number](tablePayoff R, counts ActionCounter[int64]) VerboseReward[R] {
	return VerboseReward[R]{tablePayoff: tablePayoff, actionCounts: counts}
}

// VerboseRewardFromPayoff builds a reward with no rounds behind it.
func VerboseRewardFromPayoff[R Number](payoff R) VerboseReward[R] {
	return VerboseReward[R]{tablePayoff: payoff}
}

// NeutralVerboseReward is the additive identity.
func NeutralVerboseReward[R Number]() VerboseReward[R] {
	return VerboseReward[R]{}
}

func (v VerboseReward[R]) TablePayoff() R {
	return v.tablePayoff
}

func (v VerboseReward[R]) ActionCounts() ActionCounter[int64] {
	return v.actionCounts
}

func (v VerboseReward[R]) Add(o VerboseReward[R]) VerboseReward[R] {
	return VerboseReward[R]{
		tablePayoff:  v.tablePayoff + o.tablePayoff,
		actionCounts: v.actionCounts.Add(o.actionCounts),
	}
}

func (v VerboseReward[R]) Sub(o VerboseReward[R]) VerboseReward[R] {
	return VerboseReward[R]{
		tablePayoff:  v.tablePayoff - o.tablePayoff,
		actionCounts: v.actionCounts.Sub(o.actionCounts),
	}
}

// Less orders rewards by table payoff only.
func (v VerboseReward[R]) Less(o VerboseReward[R]) bool {
	return v.tablePayoff < o.tablePayoff
}

func (v VerboseReward[R]) CountOwnActions(a game.Action) int64 {
	return v.actionCounts.Own(a)
}

func (v VerboseReward[R]) CountOtherActions(a game.Action) int64 {
	return v.actionCounts.Other(a)
}

// OtherCoopAsReward counts how often the opponents cooperated.
func (v VerboseReward[R]) OtherCoopAsReward() int64 {
	return v.actionCounts.Other(game.Cooperate)
}

// CombineTableWithOtherCoop blends the table payoff with the opponents' cooperation count.
func (v VerboseReward[R]) CombineTableWithOtherCoop(weight float32) float32 {
	return float32(v.tablePayoff) + weight*float32(v.CountOtherActions(game.Cooperate))
}

func (v VerboseReward[R]) String() string {
	return fmt.Sprintf("payoff: %v %s", v.tablePayoff, v.actionCounts)
}
