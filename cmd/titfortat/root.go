package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"classicgame/internal/config"
)

var (
	cfgFile  string
	verbose  bool
	seed     uint64
	rounds   int
	games    int
	table    string
	parallel bool
)

var rootCmd = &cobra.Command{
	Use:   "titfortat",
	Short: "Iterated two-action matrix games between scripted and evolved players",
	Long: `titfortat runs repeated prisoner's dilemma style games.

Commands:
  tournament  Round robin of every policy against every policy
  evolve      Evolve a NEAT network against a field of scripted opponents
  encode      Play episodes in a numbered population and export history encodings`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			logrus.SetLevel(logrus.DebugLevel)
		}
	},
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		logrus.WithError(err).Error("command failed")
		stop()
		os.Exit(1)
	}
}

func init() {
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default: ./classicgame.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().Uint64Var(&seed, "seed", 0, "Random seed")
	rootCmd.PersistentFlags().IntVar(&rounds, "rounds", 0, "Rounds per game")
	rootCmd.PersistentFlags().IntVar(&games, "games", 0, "Games per pairing, or episodes for encode")
	rootCmd.PersistentFlags().StringVar(&table, "table", "", "Reward table name")
	rootCmd.PersistentFlags().BoolVar(&parallel, "parallel", false, "Deliver updates to players in parallel")
}

// loadConfig resolves the configuration with the flags the user actually set on top.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(cfgFile, flagOverrides(cmd.Flags().Changed)...)
	if err != nil {
		return nil, err
	}
	if cfg.Verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}
	return cfg, nil
}

// flagOverrides returns one override per persistent flag for which changed reports true.
func flagOverrides(changed func(name string) bool) []config.Override {
	var overrides []config.Override
	add := func(name string, o config.Override) {
		if changed(name) {
			overrides = append(overrides, o)
		}
	}
	add("seed", func(c *config.Config) { c.Seed = seed })
	add("rounds", func(c *config.Config) { c.Rounds = rounds })
	add("games", func(c *config.Config) { c.Games = games })
	add("table", func(c *config.Config) { c.Table, c.CustomTable = table, nil })
	add("parallel", func(c *config.Config) { c.Parallel = parallel })
	add("verbose", func(c *config.Config) { c.Verbose = verbose })
	return overrides
}
