package agent

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"classicgame/game"
)

// seatedUpdate builds a two-player update where player 0 sits left.
func seatedUpdate(a0, a1 game.Action) game.ClassicGameUpdate[game.AgentNum] {
	return game.ClassicGameUpdate[game.AgentNum]{
		Encounters: []game.EncounterReport[game.AgentNum]{
			{OwnAction: a0, OtherAction: a1, Side: game.Left, OtherID: 1},
			{OwnAction: a1, OtherAction: a0, Side: game.Right, OtherID: 0},
		},
		Pairing: game.Pairing[game.AgentNum]{{Left: 0, Right: 1}},
	}
}

func asymmetric() game.AsymmetricRewardTable {
	return game.NewAsymmetric(game.NewSymmetric(3, 0, 5, 1), game.NewSymmetric(10, 20, 30, 40))
}

func TestOwnHistoryUpdate(t *testing.T) {
	s := NewOwnHistoryInfoSet(game.AgentNum(1), asymmetric())

	require.NoError(t, s.Update(seatedUpdate(game.Cooperate, game.Defect)))
	require.NoError(t, s.Update(seatedUpdate(game.Defect, game.Defect)))

	require.Equal(t, 2, s.Len())
	// Player 1 sits right: own Defect vs Cooperate pays 30, own Defect vs Defect pays 40.
	assert.Equal(t, int64(70), s.TablePayoff())
	assert.Equal(t, game.Defect, s.OwnActionAt(0))
	assert.Equal(t, game.Cooperate, s.OtherActionAt(0))
	assert.Equal(t, int64(2), s.CountOwnActions(game.Defect))
	assert.Equal(t, int64(1), s.CountOtherActions(game.Cooperate))

	score := s.CurrentSubjectiveScore()
	assert.Equal(t, int64(70), score.TablePayoff())
	assert.Equal(t, s.ActionCounter(), score.ActionCounts())
}

// TestOwnHistoryCounterLockstep folds a long mixed sequence and compares the tally and the
// payoff cache against a recount of the raw history.
func TestOwnHistoryCounterLockstep(t *testing.T) {
	tbl := asymmetric()
	s := NewOwnHistoryInfoSet(game.AgentNum(0), tbl)
	seq := []game.Action{game.Cooperate, game.Defect, game.Defect, game.Cooperate, game.Cooperate, game.Defect}
	for i := 0; i < 40; i++ {
		require.NoError(t, s.Update(seatedUpdate(seq[i%len(seq)], seq[(i*5+1)%len(seq)])))
	}

	var want ActionCounter[int64]
	var payoff int64
	for _, enc := range s.PreviousEncounters() {
		want.Inc(enc.OwnAction, enc.OtherAction)
		payoff += enc.CalculateReward(tbl)
	}
	assert.Equal(t, want, s.ActionCounter())
	assert.Equal(t, int64(s.Len()), s.ActionCounter().Sum())
	assert.Equal(t, payoff, s.TablePayoff())
}

// TestOwnHistoryMissingReport verifies a failed update leaves the set untouched.
func TestOwnHistoryMissingReport(t *testing.T) {
	s := NewOwnHistoryInfoSet(game.AgentNum(5), asymmetric())
	before := s.CurrentSubjectiveScore()

	err := s.Update(seatedUpdate(game.Cooperate, game.Cooperate))
	require.Error(t, err)
	assert.True(t, errors.Is(err, game.ErrEncounterNotReported))
	var missing *game.EncounterNotReportedError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, 5, missing.Agent)

	assert.Equal(t, 0, s.Len())
	assert.Equal(t, before, s.CurrentSubjectiveScore())
}

func TestOwnHistoryRenew(t *testing.T) {
	tbl := asymmetric()
	s := NewOwnHistoryInfoSet(game.AgentNum(0), tbl)
	for i := 0; i < 3; i++ {
		require.NoError(t, s.Update(seatedUpdate(game.Defect, game.Cooperate)))
	}
	s.Renew()

	assert.Equal(t, 0, s.Len())
	assert.Equal(t, NeutralVerboseReward[int64](), s.CurrentSubjectiveScore())
	assert.Equal(t, game.AgentNum(0), s.AgentID())
	assert.Equal(t, game.RewardTable(tbl), s.RewardTable())

	require.NoError(t, s.Update(seatedUpdate(game.Cooperate, game.Cooperate)))
	assert.Equal(t, int64(3), s.TablePayoff())
}

func TestOwnHistoryActionsAndPenalty(t *testing.T) {
	s := NewOwnHistoryInfoSet(game.Alice, game.PrisonersDilemma())
	assert.ElementsMatch(t, []game.Action{game.Cooperate, game.Defect}, s.AvailableActions())
	assert.True(t, s.IsActionValid(game.Defect))
	assert.True(t, s.IsActionValid(game.Cooperate))
	assert.Equal(t, int64(-100), s.PenaltyForIllegal().TablePayoff())
	assert.Equal(t, int64(0), s.PenaltyForIllegal().ActionCounts().Sum())

	s.WithIllegalPenalty(-7)
	assert.Equal(t, int64(-7), s.PenaltyForIllegal().TablePayoff())
}

// TestOwnHistoryNamedPlayers runs the same information set over the fixed roster.
func TestOwnHistoryNamedPlayers(t *testing.T) {
	s := NewOwnHistoryInfoSet(game.Bob, game.PrisonersDilemma())
	u := game.ClassicGameUpdate[game.PrisonerID]{Encounters: []game.EncounterReport[game.PrisonerID]{
		{OwnAction: game.Defect, OtherAction: game.Cooperate, Side: game.Left, OtherID: game.Bob},
		{OwnAction: game.Cooperate, OtherAction: game.Defect, Side: game.Right, OtherID: game.Alice},
	}}
	require.NoError(t, s.Update(u))
	assert.Equal(t, int64(0), s.TablePayoff())
	assert.Equal(t, game.Alice, s.PreviousEncounters()[0].OtherID)
}

func TestOwnHistoryString(t *testing.T) {
	s := NewOwnHistoryInfoSet(game.AgentNum(0), game.PrisonersDilemma())
	require.NoError(t, s.Update(seatedUpdate(game.Cooperate, game.Defect)))
	out := s.String()
	assert.Contains(t, out, "Agent: 0, Rounds: 1")
	assert.Contains(t, out, "paired against 1")
	assert.Contains(t, out, "played Cooperate\tagainst Defect")
	assert.Contains(t, out, "Current table payoff: 0.")
	assert.Contains(t, out, "(c-c: 0, c-d: 1, d-c: 0, d-d: 0)")
}

func TestHistorylessUpdate(t *testing.T) {
	s := NewHistorylessInfoSet(game.AgentNum(0), asymmetric())
	require.NoError(t, s.Update(seatedUpdate(game.Defect, game.Cooperate)))
	require.NoError(t, s.Update(seatedUpdate(game.Cooperate, game.Cooperate)))
	assert.Equal(t, int64(8), s.CurrentSubjectiveScore())

	right := NewHistorylessInfoSet(game.AgentNum(1), asymmetric())
	require.NoError(t, right.Update(seatedUpdate(game.Defect, game.Cooperate)))
	assert.Equal(t, int64(20), right.CurrentSubjectiveScore())
}

func TestHistorylessMissingReport(t *testing.T) {
	s := NewHistorylessInfoSet(game.AgentNum(0), asymmetric())
	require.NoError(t, s.Update(seatedUpdate(game.Defect, game.Defect)))

	err := s.Update(game.ClassicGameUpdate[game.AgentNum]{})
	assert.True(t, errors.Is(err, game.ErrEncounterNotReported))
	assert.Equal(t, int64(1), s.CurrentSubjectiveScore())
}

func TestHistorylessRenewAndPenalty(t *testing.T) {
	tbl := asymmetric()
	s := NewHistorylessInfoSet(game.AgentNum(1), tbl)
	require.NoError(t, s.Update(seatedUpdate(game.Defect, game.Defect)))
	s.Renew()
	assert.Equal(t, int64(0), s.CurrentSubjectiveScore())
	assert.Equal(t, game.AgentNum(1), s.AgentID())
	assert.Equal(t, game.RewardTable(tbl), s.RewardTable())
	assert.Equal(t, int64(-10), s.PenaltyForIllegal())
	assert.True(t, s.IsActionValid(game.Defect))
	assert.Len(t, s.AvailableActions(), 2)
	assert.Equal(t, int64(-1), s.WithIllegalPenalty(-1).PenaltyForIllegal())
}

// Both variants satisfy the scoring contract.
var (
	_ ScoringInformationSet[game.AgentNum, int64]              = (*HistorylessInfoSet[game.AgentNum])(nil)
	_ ScoringInformationSet[game.PrisonerID, IntVerboseReward] = (*OwnHistoryInfoSet[game.PrisonerID])(nil)
	_ History                                                  = (*OwnHistoryInfoSet[game.AgentNum])(nil)
)

func TestOwnHistoryMeanPayoff(t *testing.T) {
	s := NewOwnHistoryInfoSet(game.Alice, game.PrisonersDilemma())
	assert.Zero(t, s.MeanPayoff())

	for _, r := range [][2]game.Action{{game.Cooperate, game.Cooperate}, {game.Defect, game.Cooperate}, {game.Defect, game.Defect}} {
		require.NoError(t, s.Update(game.ClassicGameUpdate[game.PrisonerID]{
			Encounters: []game.EncounterReport[game.PrisonerID]{
				{OwnAction: r[0], OtherAction: r[1], Side: game.Left, OtherID: game.Bob},
				{OwnAction: r[1], OtherAction: r[0], Side: game.Right, OtherID: game.Alice},
			},
		}))
	}
	assert.InDelta(t, float64(3+5+1)/3, s.MeanPayoff(), 1e-9)

	s.Renew()
	assert.Zero(t, s.MeanPayoff())
}
