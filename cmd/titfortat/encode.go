package main

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/exp/rand"

	"classicgame/agent"
	"classicgame/env"
	"classicgame/game"
	"classicgame/internal/export"
	"classicgame/policy"
)

var encodeOut string

var encodeCmd = &cobra.Command{
	Use:   "encode",
	Short: "Play episodes in a numbered population and export the history encodings",
	Long: `Seat a population of numbered players, assigning the configured policies in turn,
play the configured number of episodes and write one (population, 2*rounds) matrix per
episode to an npz archive.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		tbl, err := cfg.RewardTable()
		if err != nil {
			return err
		}
		if len(cfg.Policies) == 0 {
			return errors.New("no policies configured")
		}

		rng := rand.New(rand.NewSource(cfg.Seed))
		players := make([]*env.Player[game.AgentNum], cfg.Population)
		for i := range players {
			name := cfg.Policies[i%len(cfg.Policies)]
			c, err := policy.Lookup(name)
			if err != nil {
				return err
			}
			id := game.AgentNum(i)
			players[i] = env.NewPlayer(id, fmt.Sprintf("%s#%d", name, i), tbl, c(rng))
		}
		e, err := env.New(players, rng,
			env.WithParallelUpdates(cfg.Parallel),
			env.WithIllegalPenalty(cfg.IllegalPenalty),
			env.WithLogger(logrus.StandardLogger()))
		if err != nil {
			return err
		}

		encoding := agent.NewHistoryEncoding(cfg.EncodingRounds())
		episodes := make([]export.Episode, 0, cfg.Games)
		for ep := 0; ep < cfg.Games; ep++ {
			if _, err := e.RunEpisode(cmd.Context(), cfg.Rounds); err != nil {
				return err
			}
			m, err := export.Batch(e.Histories(), encoding)
			if err != nil {
				return err
			}
			episodes = append(episodes, export.Episode{Name: fmt.Sprintf("episode_%d.npy", ep), Encodings: m})
			if cfg.Verbose {
				for _, p := range e.Players() {
					fmt.Print(p.InfoSet)
				}
			}
		}

		out := encodeOut
		if out == "" {
			out = cfg.Export.Path
		}
		if err := export.WriteFile(out, episodes); err != nil {
			return err
		}

		for _, p := range e.Players() {
			fmt.Println(p.Name, "total payoff", p.Ledger.CurrentSubjectiveScore())
		}
		logrus.WithFields(logrus.Fields{
			"run":      e.ID().String(),
			"episodes": len(episodes),
			"path":     out,
		}).Info("encodings exported")
		return nil
	},
}

func init() {
	encodeCmd.Flags().StringVarP(&encodeOut, "out", "o", "", "Output npz archive (default from config)")
	rootCmd.AddCommand(encodeCmd)
}
