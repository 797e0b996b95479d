// Package agent implements the private state a player keeps between rounds: encounter
// history, action tallies, scores, and the fixed-shape encoding fed to learners.
package agent

import (
	"fmt"

	"classicgame/game"
)

// Number is any value an ActionCounter can tally.
type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// ActionCounter tallies rounds by (own action, other action). Cells may go negative when
// the counter holds the difference of two snapshots.
type ActionCounter[T Number] [2][2]T

func (c ActionCounter[T]) Get(own, other game.Action) T {
	return c[own][other]
}

func (c *ActionCounter[T]) Set(own, other game.Action, v T) {
	c[own][other] = v
}

// Inc records one more round of own against other.
func (c *ActionCounter[T]) Inc(own, other game.Action) {
	c[own][other]++
}

func (c ActionCounter[T]) Add(o ActionCounter[T]) ActionCounter[T] {
	c.AddAssign(o)
	return c
}

func (c *ActionCounter[T]) AddAssign(o ActionCounter[T]) {
	c[game.Cooperate][game.Cooperate] += o[game.Cooperate][game.Cooperate]
	c[game.Cooperate][game.Defect] += o[game.Cooperate][game.Defect]
	c[game.Defect][game.Cooperate] += o[game.Defect][game.Cooperate]
	c[game.Defect][game.Defect] += o[game.Defect][game.Defect]
}

func (c ActionCounter[T]) Sub(o ActionCounter[T]) ActionCounter[T] {
	c[game.Cooperate][game.Cooperate] -= o[game.Cooperate][game.Cooperate]
	c[game.Cooperate][game.Defect] -= o[game.Cooperate][game.Defect]
	c[game.Defect][game.Cooperate] -= o[game.Defect][game.Cooperate]
	c[game.Defect][game.Defect] -= o[game.Defect][game.Defect]
	return c
}

// Sum adds all four cells.
func (c ActionCounter[T]) Sum() T {
	return c[0][0] + c[0][1] + c[1][0] + c[1][1]
}

// Own sums the row of one own action.
func (c ActionCounter[T]) Own(a game.Action) T {
	return c[a][game.Cooperate] + c[a][game.Defect]
}

// Other sums the column of one opponent action.
func (c ActionCounter[T]) Other(a game.Action) T {
	return c[game.Cooperate][a] + c[game.Defect][a]
}

func (c ActionCounter[T]) String() string {
	return fmt.Sprintf("(c-c: %v, c-d: %v, d-c: %v, d-d: %v)",
		c[game.Cooperate][game.Cooperate],
		c[game.Cooperate][game.Defect],
		c[game.Defect][game.Cooperate],
		c[game.Defect][game.Defect])
}
