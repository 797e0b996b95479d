package env

import (
	"context"
	"fmt"
	"sort"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat"

	"classicgame/game"
	"classicgame/policy"
)

// Entrant is a named policy constructor taking part in a tournament.
type Entrant struct {
	Name string
	New  policy.Constructor
}

// Standing summarises how one entrant did against the whole field.
type Standing struct {
	Name       string
	Games      int
	Wins       int
	Losses     int
	Draws      int
	TotalScore int64
	MeanScore  float64
	StdDev     float64
}

func (s Standing) WinRate() float64  { return rate(s.Wins, s.Games) }
func (s Standing) LossRate() float64 { return rate(s.Losses, s.Games) }
func (s Standing) DrawRate() float64 { return rate(s.Draws, s.Games) }

func rate(n, of int) float64 {
	if of == 0 {
		return 0
	}
	return float64(n) / float64(of) * 100
}

func (s Standing) String() string {
	return fmt.Sprintf("%s winRate %.2f lossRate %.2f drawRate %.2f score %d (mean %.2f, sd %.2f)",
		s.Name, s.WinRate(), s.LossRate(), s.DrawRate(), s.TotalScore, s.MeanScore, s.StdDev)
}

// Tournament plays every entrant against every entrant, itself included, Games times.
type Tournament struct {
	Table   game.RewardTable
	Rounds  int
	Games   int
	Seed    uint64
	Logger  logrus.FieldLogger
	Options []Option
}

// Run returns standings sorted by total score, best first.
func (t Tournament) Run(ctx context.Context, entrants []Entrant) ([]Standing, error) {
	if t.Rounds <= 0 || t.Games <= 0 {
		return nil, errors.Errorf("tournament needs positive rounds and games, got %d and %d", t.Rounds, t.Games)
	}
	log := t.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}
	rng := rand.New(rand.NewSource(t.Seed))
	opts := append([]Option{WithLogger(log)}, t.Options...)

	standings := make([]Standing, len(entrants))
	for i, a := range entrants {
		scores := make([]float64, 0, len(entrants)*t.Games)
		standings[i].Name = a.Name
		for _, b := range entrants {
			for g := 0; g < t.Games; g++ {
				m, err := NewMatch(t.Table, a.New(rng), b.New(rng), t.Rounds, rng, opts...)
				if err != nil {
					return nil, err
				}
				if err = m.Play(ctx); err != nil {
					return nil, errors.Wrapf(err, "%s vs %s", a.Name, b.Name)
				}
				s := m.Scores()
				own, other := s.Get(game.Alice), s.Get(game.Bob)
				switch {
				case own > other:
					standings[i].Wins++
				case own < other:
					standings[i].Losses++
				default:
					standings[i].Draws++
				}
				standings[i].Games++
				standings[i].TotalScore += own
				scores = append(scores, float64(own))
			}
		}
		standings[i].MeanScore, standings[i].StdDev = meanStdDev(scores)
		log.WithFields(logrus.Fields{
			"entrant": a.Name,
			"games":   standings[i].Games,
			"score":   standings[i].TotalScore,
		}).Info("entrant finished")
	}
	sort.SliceStable(standings, func(i, j int) bool {
		return standings[i].TotalScore > standings[j].TotalScore
	})
	return standings, nil
}

// meanStdDev is the mean and sample standard deviation of scores. The deviation of fewer
// than two scores is zero.
func meanStdDev(scores []float64) (mean, sd float64) {
	switch len(scores) {
	case 0:
		return 0, 0
	case 1:
		return scores[0], 0
	}
	return stat.MeanStdDev(scores, nil)
}

// EntrantsByName resolves registered policy names.
func EntrantsByName(names []string) ([]Entrant, error) {
	entrants := make([]Entrant, 0, len(names))
	for _, n := range names {
		c, err := policy.Lookup(n)
		if err != nil {
			return nil, err
		}
		entrants = append(entrants, Entrant{Name: n, New: c})
	}
	return entrants, nil
}
