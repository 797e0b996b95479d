package main

import (
	"context"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/yaricom/goNEAT/v2/experiment"
	"github.com/yaricom/goNEAT/v2/neat"
	"github.com/yaricom/goNEAT/v2/neat/genetics"
	"golang.org/x/exp/rand"

	"classicgame/agent"
	"classicgame/env"
	"classicgame/game"
	"classicgame/policy"
)

var (
	evolveTrials int
	evolveTarget float64
	evolveOut    string
)

var evolveCmd = &cobra.Command{
	Use:   "evolve",
	Short: "Evolve a NEAT network that plays from the encoded history",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		tbl, err := cfg.RewardTable()
		if err != nil {
			return err
		}
		opponents, err := env.EntrantsByName(cfg.NEAT.Opponents)
		if err != nil {
			return err
		}

		// Load NEAT options configuration
		optionsFile, err := os.Open(cfg.NEAT.OptionsPath)
		if err != nil {
			return errors.Wrap(err, "open NEAT options")
		}
		defer optionsFile.Close()
		options, err := neat.LoadNeatOptions(optionsFile)
		if err != nil {
			return errors.Wrap(err, "load NEAT options")
		}
		if evolveTrials > 0 {
			options.NumRuns = evolveTrials
		}

		encoding := agent.NewHistoryEncoding(cfg.EncodingRounds())
		start, err := loadStartGenome(cfg.NEAT.StartGenesPath, encoding)
		if err != nil {
			return err
		}

		evaluator := &generationEvaluator{
			ctx:       cmd.Context(),
			table:     tbl,
			encoding:  encoding,
			rounds:    cfg.Rounds,
			opponents: opponents,
			target:    evolveTarget,
			seed:      cfg.Seed,
			log:       logrus.WithField("command", "evolve"),
		}

		exp := experiment.Experiment{
			Id:       0,
			Trials:   make(experiment.Trials, options.NumRuns),
			RandSeed: int64(cfg.Seed),
		}
		exp.MaxFitnessScore = 1

		began := time.Now()
		err = exp.Execute(neat.NewContext(cmd.Context(), options), start, evaluator, nil)
		if err != nil {
			return errors.Wrap(err, "run experiment")
		}
		evaluator.log.WithFields(logrus.Fields{
			"generations": evaluator.generations,
			"best":        evaluator.bestFitness,
			"solved":      exp.TrialsSolved(),
			"elapsed":     time.Since(began).String(),
		}).Info("evolution finished")

		out := evolveOut
		if out == "" {
			out = cfg.NEAT.GenomePath
		}
		if out == "" {
			return nil
		}
		best, _, found := exp.BestOrganism(false)
		if !found {
			return errors.New("experiment produced no organism")
		}
		return writeGenome(out, best.Genotype)
	},
}

// loadStartGenome reads the start genes file at path, or builds the zero-weight start genome
// for encoding when path is empty. The genome must have one input per encoded value.
func loadStartGenome(path string, encoding agent.HistoryEncoding) (*genetics.Genome, error) {
	if path == "" {
		return policy.StartGenome(encoding)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open start genes")
	}
	defer f.Close()
	genome, err := genetics.ReadGenome(f, 1)
	if err != nil {
		return nil, errors.Wrapf(err, "read start genes %s", path)
	}
	if n := policy.InputCount(genome.Nodes); n != encoding.Size() {
		return nil, errors.Wrapf(policy.ErrSensorMismatch, "%s has %d inputs, encoding needs %d", path, n, encoding.Size())
	}
	return genome, nil
}

func writeGenome(path string, genome *genetics.Genome) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "create genome file")
	}
	if err = genome.Write(f); err != nil {
		_ = f.Close()
		return errors.Wrapf(err, "write genome %s", path)
	}
	logrus.WithField("path", path).Info("best genome written")
	return errors.Wrapf(f.Close(), "close %s", path)
}

// generationEvaluator scores every organism by the normalised payoff its network earns
// against the opponent field.
type generationEvaluator struct {
	ctx       context.Context
	table     game.RewardTable
	encoding  agent.HistoryEncoding
	rounds    int
	opponents []env.Entrant
	target    float64
	seed      uint64
	log       logrus.FieldLogger

	generations int
	bestFitness float64
}

var _ experiment.GenerationEvaluator = (*generationEvaluator)(nil)

func (e *generationEvaluator) GenerationEvaluate(pop *genetics.Population, epoch *experiment.Generation, opts *neat.Options) error {
	rng := rand.New(rand.NewSource(e.seed + uint64(e.generations)))
	e.generations++

	for _, org := range pop.Organisms {
		if err := e.ctx.Err(); err != nil {
			return err
		}
		fitness, err := e.evaluate(org, rng)
		if err != nil {
			return err
		}
		org.Fitness = fitness
		org.IsWinner = fitness >= e.target
		if org.IsWinner && (epoch.Best == nil || org.Fitness > epoch.Best.Fitness) {
			epoch.Solved = true
			epoch.WinnerNodes = len(org.Genotype.Nodes)
			epoch.WinnerGenes = org.Genotype.Extrons()
			epoch.WinnerEvals = opts.PopSize*epoch.Id + org.Genotype.Id
			epoch.Best = org
		}
		if org.Fitness > e.bestFitness {
			e.bestFitness = org.Fitness
		}
	}
	epoch.FillPopulationStatistics(pop)

	e.log.WithFields(logrus.Fields{
		"generation": epoch.Id,
		"trial":      epoch.TrialId,
		"best":       e.bestFitness,
		"solved":     epoch.Solved,
	}).Debug("generation evaluated")
	return nil
}

// evaluate plays the organism's network against every opponent. A network whose inputs do
// not match the encoding scores zero.
func (e *generationEvaluator) evaluate(org *genetics.Organism, rng *rand.Rand) (float64, error) {
	bot, err := policy.NewNetwork(org.Phenotype, e.encoding)
	if err != nil {
		e.log.WithError(err).Warn("organism cannot play")
		return 0, nil
	}
	lo, hi := payoffRange(e.table)
	played := float64(e.rounds * len(e.opponents))
	var total int64
	for _, opp := range e.opponents {
		m, err := env.NewMatch(e.table, bot, opp.New(rng), e.rounds, rng, env.WithLogger(e.log))
		if err != nil {
			return 0, err
		}
		if err = m.Play(e.ctx); err != nil {
			return 0, errors.Wrapf(err, "organism %d vs %s", org.Genotype.Id, opp.Name)
		}
		total += m.Scores().Get(game.Alice)
	}
	return normalise(float64(total), float64(lo)*played, float64(hi)*played), nil
}

// payoffRange returns the smallest and largest reward any seat can receive.
func payoffRange(t game.RewardTable) (lo, hi int64) {
	first := true
	for _, side := range []game.Side{game.Left, game.Right} {
		for _, l := range game.Actions {
			for _, r := range game.Actions {
				v := t.RewardForSide(side, l, r)
				if first || v < lo {
					lo = v
				}
				if first || v > hi {
					hi = v
				}
				first = false
			}
		}
	}
	return lo, hi
}

// normalise maps v from [lo, hi] onto [0, 1]. Penalties below lo clamp to zero.
func normalise(v, lo, hi float64) float64 {
	if hi <= lo {
		return 0
	}
	f := (v - lo) / (hi - lo)
	if f < 0 {
		return 0
	}
	return f
}

func init() {
	evolveCmd.Flags().IntVar(&evolveTrials, "trials", 0, "Number of independent evolution trials (default: num_runs from the NEAT options)")
	evolveCmd.Flags().Float64Var(&evolveTarget, "target", 0.8, "Normalised fitness an organism needs to count as a winner")
	evolveCmd.Flags().StringVarP(&evolveOut, "out", "o", "", "Write the best genome here (default: neat.genome_path)")
	rootCmd.AddCommand(evolveCmd)
}
