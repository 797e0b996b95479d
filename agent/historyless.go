package agent

import (
	"fmt"

	"classicgame/game"
)

// HistorylessInfoSet keeps only a running payoff.
type HistorylessInfoSet[ID game.Identifier[ID]] struct {
	id          ID
	rewardTable game.RewardTable
	payoff      int64
	penalty     int64
}

func NewHistorylessInfoSet[ID game.Identifier[ID]](id ID, table game.RewardTable) *HistorylessInfoSet[ID] {
	return &HistorylessInfoSet[ID]{id: id, rewardTable: table, penalty: DefaultHistorylessPenalty}
}

// WithIllegalPenalty replaces the penalty reported for illegal moves.
func (s *HistorylessInfoSet[ID]) WithIllegalPenalty(p int64) *HistorylessInfoSet[ID] {
	s.penalty = p
	return s
}

func (s *HistorylessInfoSet[ID]) AgentID() ID {
	return s.id
}

func (s *HistorylessInfoSet[ID]) RewardTable() game.RewardTable {
	return s.rewardTable
}

func (s *HistorylessInfoSet[ID]) IsActionValid(game.Action) bool {
	return true
}

func (s *HistorylessInfoSet[ID]) AvailableActions() [2]game.Action {
	return game.Actions
}

func (s *HistorylessInfoSet[ID]) Update(update game.ClassicGameUpdate[ID]) error {
	report, ok := update.Report(s.id)
	if !ok {
		return &game.EncounterNotReportedError{Agent: s.id.Index()}
	}
	s.payoff += report.CalculateReward(s.rewardTable)
	return nil
}

func (s *HistorylessInfoSet[ID]) Renew() {
	s.payoff = 0
}

func (s *HistorylessInfoSet[ID]) CurrentSubjectiveScore() int64 {
	return s.payoff
}

func (s *HistorylessInfoSet[ID]) PenaltyForIllegal() int64 {
	return s.penalty
}

func (s *HistorylessInfoSet[ID]) String() string {
	return fmt.Sprintf("Historyless InfoSet:: Agent: %s, payoff: %d", s.id, s.payoff)
}
