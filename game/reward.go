package game

import (
	"fmt"

	"github.com/pkg/errors"
)

// RewardTable maps the actions played from the left and right seats to the reward of the
// player sitting at side.
type RewardTable interface {
	RewardForSide(side Side, left, right Action) int64
}

// SymmetricRewardTable is seen from the point of view of the player being scored:
// CoopDefect is what you get for cooperating against a defector.
type SymmetricRewardTable struct {
	CoopCoop     int64 `yaml:"coop_coop"`
	CoopDefect   int64 `yaml:"coop_defect"`
	DefectCoop   int64 `yaml:"defect_coop"`
	DefectDefect int64 `yaml:"defect_defect"`
}

// NewSymmetric builds a table from the classic reward, sucker, temptation and punishment values.
func NewSymmetric(reward, sucker, temptation, punishment int64) SymmetricRewardTable {
	return SymmetricRewardTable{
		CoopCoop:     reward,
		CoopDefect:   sucker,
		DefectCoop:   temptation,
		DefectDefect: punishment,
	}
}

// Reward returns the payoff for playing own against other.
func (t SymmetricRewardTable) Reward(own, other Action) int64 {
	switch {
	case own == Cooperate && other == Cooperate:
		return t.CoopCoop
	case own == Cooperate && other == Defect:
		return t.CoopDefect
	case own == Defect && other == Cooperate:
		return t.DefectCoop
	default:
		return t.DefectDefect
	}
}

func (t SymmetricRewardTable) RewardForSide(side Side, left, right Action) int64 {
	if side == Left {
		return t.Reward(left, right)
	}
	return t.Reward(right, left)
}

// AsAsymmetric returns the same game with both seats sharing one table.
func (t SymmetricRewardTable) AsAsymmetric() AsymmetricRewardTable {
	return AsymmetricRewardTable{Left: t, Right: t}
}

func (t SymmetricRewardTable) String() string {
	return fmt.Sprintf("[c-c: %d, c-d: %d, d-c: %d, d-d: %d]",
		t.CoopCoop, t.CoopDefect, t.DefectCoop, t.DefectDefect)
}

// AsymmetricRewardTable gives each seat its own payoff table. Each side table is read from
// that seat's own point of view.
type AsymmetricRewardTable struct {
	Left  SymmetricRewardTable `yaml:"left"`
	Right SymmetricRewardTable `yaml:"right"`
}

func NewAsymmetric(left, right SymmetricRewardTable) AsymmetricRewardTable {
	return AsymmetricRewardTable{Left: left, Right: right}
}

func (t AsymmetricRewardTable) RewardForSide(side Side, left, right Action) int64 {
	if side == Left {
		return t.Left.Reward(left, right)
	}
	return t.Right.Reward(right, left)
}

// Symmetric reports whether both seats are paid the same way.
func (t AsymmetricRewardTable) Symmetric() bool {
	return t.Left == t.Right
}

func (t AsymmetricRewardTable) String() string {
	return fmt.Sprintf("left: %s right: %s", t.Left, t.Right)
}

// PrisonersDilemma is the textbook T > R > P > S table.
func PrisonersDilemma() SymmetricRewardTable {
	return NewSymmetric(3, 0, 5, 1)
}

// Chicken punishes mutual defection hardest.
func Chicken() SymmetricRewardTable {
	return NewSymmetric(0, -1, 1, -10)
}

// StagHunt rewards mutual cooperation above temptation.
func StagHunt() SymmetricRewardTable {
	return NewSymmetric(4, 0, 3, 2)
}

// TitForTatClassic is the small table the first round-robin bots were scored with.
func TitForTatClassic() SymmetricRewardTable {
	return NewSymmetric(1, -2, 3, -1)
}

// LookupTable resolves a table by name, as used in config files and on the command line.
func LookupTable(name string) (AsymmetricRewardTable, error) {
	switch name {
	case "", "prisoners_dilemma", "pd":
		return PrisonersDilemma().AsAsymmetric(), nil
	case "chicken":
		return Chicken().AsAsymmetric(), nil
	case "stag_hunt":
		return StagHunt().AsAsymmetric(), nil
	case "titfortat":
		return TitForTatClassic().AsAsymmetric(), nil
	}
	return AsymmetricRewardTable{}, errors.Errorf("unknown reward table %q", name)
}
