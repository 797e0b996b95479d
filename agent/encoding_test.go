package agent

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"classicgame/game"
)

func historyOf(t *testing.T, own, other []game.Action) *OwnHistoryInfoSet[game.AgentNum] {
	t.Helper()
	require.Equal(t, len(own), len(other))
	s := NewOwnHistoryInfoSet(game.AgentNum(0), game.PrisonersDilemma())
	for i := range own {
		require.NoError(t, s.Update(seatedUpdate(own[i], other[i])))
	}
	return s
}

func TestHistoryEncodingShape(t *testing.T) {
	e := NewHistoryEncoding(5)
	assert.Equal(t, []int{2, 5}, e.Shape())
	assert.Equal(t, 10, e.Size())
	assert.Equal(t, 5, e.Rounds())
}

// TestEncodeLayout checks own actions come first, opponent actions second, padding last.
func TestEncodeLayout(t *testing.T) {
	s := historyOf(t,
		[]game.Action{game.Cooperate, game.Defect},
		[]game.Action{game.Defect, game.Defect})

	buf, err := NewHistoryEncoding(4).Encode(s)
	require.NoError(t, err)
	assert.Equal(t, []float32{1, 0, -1, -1, 0, 0, -1, -1}, buf)
}

func TestEncodeEmptyHistory(t *testing.T) {
	s := NewOwnHistoryInfoSet(game.AgentNum(0), game.PrisonersDilemma())
	buf, err := NewHistoryEncoding(3).Encode(s)
	require.NoError(t, err)
	for _, v := range buf {
		assert.Equal(t, PaddingCode, v)
	}
}

func TestEncodeExactFit(t *testing.T) {
	s := historyOf(t,
		[]game.Action{game.Defect, game.Cooperate, game.Cooperate},
		[]game.Action{game.Cooperate, game.Cooperate, game.Defect})
	buf, err := NewHistoryEncoding(3).Encode(s)
	require.NoError(t, err)
	assert.Equal(t, []float32{0, 1, 1, 1, 1, 0}, buf)
}

// TestEncodeOverflow verifies an over-long history fails instead of being truncated.
func TestEncodeOverflow(t *testing.T) {
	s := historyOf(t,
		[]game.Action{game.Defect, game.Cooperate, game.Cooperate},
		[]game.Action{game.Cooperate, game.Cooperate, game.Defect})

	buf, err := NewHistoryEncoding(2).Encode(s)
	require.Error(t, err)
	assert.Nil(t, buf)
	assert.True(t, errors.Is(err, ErrInfoSetNotFit))
	var shape *ShapeError
	require.True(t, errors.As(err, &shape))
	assert.Equal(t, []int{2, 2}, shape.Shape)
	assert.Contains(t, shape.InfoSet, "length 3")
}

func TestEncodeIntoWrongBuffer(t *testing.T) {
	s := NewOwnHistoryInfoSet(game.AgentNum(0), game.PrisonersDilemma())
	err := NewHistoryEncoding(3).EncodeInto(s, make([]float32, 5))
	assert.True(t, errors.Is(err, ErrInfoSetNotFit))
}

// TestEncodeIntoOverwritesBuffer verifies a reused buffer carries nothing over.
func TestEncodeIntoOverwritesBuffer(t *testing.T) {
	e := NewHistoryEncoding(2)
	buf := []float32{7, 7, 7, 7}
	s := historyOf(t, []game.Action{game.Cooperate}, []game.Action{game.Defect})
	require.NoError(t, e.EncodeInto(s, buf))
	assert.Equal(t, []float32{1, -1, 0, -1}, buf)
}

func TestDecodeRoundTrip(t *testing.T) {
	own := []game.Action{game.Cooperate, game.Defect, game.Defect}
	other := []game.Action{game.Defect, game.Cooperate, game.Defect}
	e := NewHistoryEncoding(5)
	buf, err := e.Encode(historyOf(t, own, other))
	require.NoError(t, err)

	gotOwn, gotOther, err := e.Decode(buf)
	require.NoError(t, err)
	assert.Equal(t, own, gotOwn)
	assert.Equal(t, other, gotOther)
}

func TestDecodeRejectsBadCodes(t *testing.T) {
	e := NewHistoryEncoding(2)
	_, _, err := e.Decode([]float32{0.5, -1, 1, -1})
	assert.Error(t, err)
	_, _, err = e.Decode([]float32{1, -1, 3, -1})
	assert.Error(t, err)
	_, _, err = e.Decode([]float32{1})
	assert.True(t, errors.Is(err, ErrInfoSetNotFit))
}
