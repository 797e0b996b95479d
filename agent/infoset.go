package agent

import "classicgame/game"

// InformationSet is a player's private, evolving view of the game.
type InformationSet[ID game.Identifier[ID]] interface {
	AgentID() ID
	IsActionValid(a game.Action) bool
	AvailableActions() [2]game.Action
	// Update folds the update into the set. It fails without changing anything when the
	// update has no report for this player.
	Update(update game.ClassicGameUpdate[ID]) error
	// Renew clears everything but the identity and the reward table.
	Renew()
}

// ScoringInformationSet also reports how well its owner is doing.
type ScoringInformationSet[ID game.Identifier[ID], R any] interface {
	InformationSet[ID]
	CurrentSubjectiveScore() R
	PenaltyForIllegal() R
}

// History is the read-only view of past rounds that policies and encoders consume.
type History interface {
	Len() int
	OwnActionAt(round int) game.Action
	OtherActionAt(round int) game.Action
	CountOtherActions(a game.Action) int64
	AvailableActions() [2]game.Action
}

const (
	// DefaultHistorylessPenalty is reported for an illegal move by a historyless player.
	DefaultHistorylessPenalty int64 = -10
	// DefaultOwnHistoryPenalty is the table payoff reported for an illegal move by a player
	// that keeps its history.
	DefaultOwnHistoryPenalty int64 = -100
)
