package agent

import (
	"fmt"

	"github.com/pkg/errors"

	"classicgame/game"
)

// PaddingCode fills the slots of rounds that have not been played yet. Real actions are
// encoded by their index (Defect=0, Cooperate=1), so the sentinel never collides with them.
const PaddingCode float32 = -1

// ErrInfoSetNotFit matches any ShapeError with errors.Is.
var ErrInfoSetNotFit = errors.New("information set does not fit tensor shape")

// ShapeError reports a history or buffer that does not fit an encoding.
type ShapeError struct {
	InfoSet string
	Shape   []int
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("%s does not fit shape %v", e.InfoSet, e.Shape)
}

func (e *ShapeError) Is(target error) bool {
	return target == ErrInfoSetNotFit
}

// HistoryEncoding projects up to Rounds rounds of history into a flat buffer of 2*Rounds
// values: own actions first, then opponent actions, each padded with PaddingCode.
type HistoryEncoding struct {
	rounds int
}

func NewHistoryEncoding(rounds int) HistoryEncoding {
	return HistoryEncoding{rounds: rounds}
}

func (e HistoryEncoding) Rounds() int {
	return e.rounds
}

// Shape is the logical shape of the buffer before flattening.
func (e HistoryEncoding) Shape() []int {
	return []int{2, e.rounds}
}

func (e HistoryEncoding) Size() int {
	return 2 * e.rounds
}

// Encode allocates a new buffer holding the encoded history.
func (e HistoryEncoding) Encode(h History) ([]float32, error) {
	buf := make([]float32, e.Size())
	if err := e.EncodeInto(h, buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// EncodeInto writes the encoded history into buf, which must have length Size. A history
// longer than Rounds is an error; it is never truncated.
func (e HistoryEncoding) EncodeInto(h History, buf []float32) error {
	if len(buf) != e.Size() {
		return &ShapeError{
			InfoSet: fmt.Sprintf("buffer of length %d", len(buf)),
			Shape:   e.Shape(),
		}
	}
	if h.Len() > e.rounds {
		return &ShapeError{
			InfoSet: fmt.Sprintf("own encounter history information set with history of length %d", h.Len()),
			Shape:   e.Shape(),
		}
	}
	own, other := buf[:e.rounds], buf[e.rounds:]
	for r := 0; r < e.rounds; r++ {
		if r < h.Len() {
			own[r] = float32(h.OwnActionAt(r).Index())
			other[r] = float32(h.OtherActionAt(r).Index())
			continue
		}
		own[r] = PaddingCode
		other[r] = PaddingCode
	}
	return nil
}

// Decode reads back the own and opponent actions from an encoded buffer. Decoding stops at
// the first padded round.
func (e HistoryEncoding) Decode(buf []float32) (own, other []game.Action, err error) {
	if len(buf) != e.Size() {
		return nil, nil, &ShapeError{
			InfoSet: fmt.Sprintf("buffer of length %d", len(buf)),
			Shape:   e.Shape(),
		}
	}
	for r := 0; r < e.rounds; r++ {
		o, t := buf[r], buf[e.rounds+r]
		if o == PaddingCode && t == PaddingCode {
			break
		}
		oa, err := game.ActionFromIndex(int(o))
		if err != nil || float32(oa.Index()) != o {
			return nil, nil, errors.Errorf("round %d: invalid own action code %v", r, o)
		}
		ta, err := game.ActionFromIndex(int(t))
		if err != nil || float32(ta.Index()) != t {
			return nil, nil, errors.Errorf("round %d: invalid opponent action code %v", r, t)
		}
		own = append(own, oa)
		other = append(other, ta)
	}
	return own, other, nil
}
