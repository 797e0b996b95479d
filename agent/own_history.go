package agent

import (
	"fmt"
	"strings"

	"classicgame/game"
)

// OwnHistoryInfoSet remembers every encounter of its owner. The action counter and the
// cached table payoff always describe exactly the stored encounters.
type OwnHistoryInfoSet[ID game.Identifier[ID]] struct {
	id                 ID
	rewardTable        game.RewardTable
	previousEncounters []game.EncounterReport[ID]
	countActions       ActionCounter[int64]
	cacheTablePayoff   int64
	penalty            int64
}

func NewOwnHistoryInfoSet[ID game.Identifier[ID]](id ID, table game.RewardTable) *OwnHistoryInfoSet[ID] {
	return &OwnHistoryInfoSet[ID]{id: id, rewardTable: table, penalty: DefaultOwnHistoryPenalty}
}

// WithIllegalPenalty replaces the table payoff reported for illegal moves.
func (s *OwnHistoryInfoSet[ID]) WithIllegalPenalty(p int64) *OwnHistoryInfoSet[ID] {
	s.penalty = p
	return s
}

func (s *OwnHistoryInfoSet[ID]) AgentID() ID {
	return s.id
}

func (s *OwnHistoryInfoSet[ID]) RewardTable() game.RewardTable {
	return s.rewardTable
}

// PreviousEncounters returns the stored encounters, oldest first. Callers must not modify it.
func (s *OwnHistoryInfoSet[ID]) PreviousEncounters() []game.EncounterReport[ID] {
	return s.previousEncounters
}

func (s *OwnHistoryInfoSet[ID]) ActionCounter() ActionCounter[int64] {
	return s.countActions
}

func (s *OwnHistoryInfoSet[ID]) TablePayoff() int64 {
	return s.cacheTablePayoff
}

func (s *OwnHistoryInfoSet[ID]) Len() int {
	return len(s.previousEncounters)
}

func (s *OwnHistoryInfoSet[ID]) OwnActionAt(round int) game.Action {
	return s.previousEncounters[round].OwnAction
}

func (s *OwnHistoryInfoSet[ID]) OtherActionAt(round int) game.Action {
	return s.previousEncounters[round].OtherAction
}

// CountOwnActions counts own plays of a from the tally.
func (s *OwnHistoryInfoSet[ID]) CountOwnActions(a game.Action) int64 {
	return s.countActions.Own(a)
}

// CountOtherActions counts opponent plays of a from the tally.
func (s *OwnHistoryInfoSet[ID]) CountOtherActions(a game.Action) int64 {
	return s.countActions.Other(a)
}

func (s *OwnHistoryInfoSet[ID]) IsActionValid(game.Action) bool {
	return true
}

func (s *OwnHistoryInfoSet[ID]) AvailableActions() [2]game.Action {
	return game.Actions
}

func (s *OwnHistoryInfoSet[ID]) Update(update game.ClassicGameUpdate[ID]) error {
	report, ok := update.Report(s.id)
	if !ok {
		return &game.EncounterNotReportedError{Agent: s.id.Index()}
	}
	s.countActions.Inc(report.OwnAction, report.OtherAction)
	s.previousEncounters = append(s.previousEncounters, report)
	s.cacheTablePayoff += report.CalculateReward(s.rewardTable)
	return nil
}

func (s *OwnHistoryInfoSet[ID]) Renew() {
	s.previousEncounters = nil
	s.countActions = ActionCounter[int64]{}
	s.cacheTablePayoff = 0
}

func (s *OwnHistoryInfoSet[ID]) CurrentSubjectiveScore() IntVerboseReward {
	return NewVerboseReward(s.cacheTablePayoff, s.countActions)
}

// MeanPayoff is the table payoff per round played, zero before the first round.
func (s *OwnHistoryInfoSet[ID]) MeanPayoff() float64 {
	if len(s.previousEncounters) == 0 {
		return 0
	}
	return float64(s.cacheTablePayoff) / float64(len(s.previousEncounters))
}

func (s *OwnHistoryInfoSet[ID]) PenaltyForIllegal() IntVerboseReward {
	return VerboseRewardFromPayoff(s.penalty)
}

func (s *OwnHistoryInfoSet[ID]) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Own HistoryInfoSet:: Agent: %s, Rounds: %d\n", s.id, len(s.previousEncounters))
	for r, enc := range s.previousEncounters {
		fmt.Fprintf(&b, "\tround: %3d, paired against %s,\tplayed %s\tagainst %s;\n",
			r, enc.OtherID, enc.OwnAction, enc.OtherAction)
	}
	fmt.Fprintf(&b, "Current table payoff: %d.\t", s.cacheTablePayoff)
	fmt.Fprintf(&b, "Previous observations: %s\n", s.countActions)
	return b.String()
}
