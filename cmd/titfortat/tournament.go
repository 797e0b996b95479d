package main

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/exp/rand"

	"classicgame/agent"
	"classicgame/env"
	"classicgame/policy"
)

var tournamentGenome string

var tournamentCmd = &cobra.Command{
	Use:   "tournament [policy...]",
	Short: "Play every policy against every policy",
	Long: `Play every policy against every policy, itself included, and print win, loss and
draw rates together with scores. Policies default to the configured list.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		tbl, err := cfg.RewardTable()
		if err != nil {
			return err
		}
		names := cfg.Policies
		if len(args) > 0 {
			names = args
		}
		entrants, err := env.EntrantsByName(names)
		if err != nil {
			return err
		}

		genomePath := tournamentGenome
		if genomePath == "" {
			genomePath = cfg.NEAT.GenomePath
		}
		if genomePath != "" {
			bot, err := loadNetworkPolicy(genomePath, agent.NewHistoryEncoding(cfg.EncodingRounds()))
			if err != nil {
				return err
			}
			entrants = append(entrants, env.Entrant{
				Name: "neat",
				New:  func(*rand.Rand) policy.HistoryPolicy { return bot },
			})
		}

		t := env.Tournament{
			Table:   tbl,
			Rounds:  cfg.Rounds,
			Games:   cfg.Games,
			Seed:    cfg.Seed,
			Logger:  logrus.StandardLogger(),
			Options: []env.Option{env.WithParallelUpdates(cfg.Parallel), env.WithIllegalPenalty(cfg.IllegalPenalty)},
		}
		standings, err := t.Run(cmd.Context(), entrants)
		if err != nil {
			return err
		}
		for _, s := range standings {
			fmt.Println()
			fmt.Println(s.Name, "winRate", s.WinRate())
			fmt.Println(s.Name, "lossRate", s.LossRate())
			fmt.Println(s.Name, "drawRate", s.DrawRate())
			fmt.Println(s.Name, "win+DrawRate", s.WinRate()+s.DrawRate())
		}
		fmt.Println("")
		for _, s := range standings {
			fmt.Println(s.Name, "score", s.TotalScore, "mean", s.MeanScore, "sd", s.StdDev)
		}
		return nil
	},
}

func loadNetworkPolicy(path string, encoding agent.HistoryEncoding) (*policy.Network, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open genome")
	}
	defer f.Close()
	return policy.NewNetworkFromGenome(f, encoding)
}

func init() {
	tournamentCmd.Flags().StringVar(&tournamentGenome, "genome", "", "Genome file of an evolved network to enter as \"neat\"")
	rootCmd.AddCommand(tournamentCmd)
}
