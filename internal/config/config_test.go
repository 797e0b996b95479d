package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"classicgame/game"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "classicgame.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, cfg.Rounds, cfg.EncodingRounds())

	table, err := cfg.RewardTable()
	require.NoError(t, err)
	assert.Equal(t, game.PrisonersDilemma().AsAsymmetric(), table)
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
table: chicken
rounds: 20
population: 4
policies: [tit_for_tat, always_defect]
encoding:
  rounds: 32
neat:
  genome_path: champion.genome
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "chicken", cfg.Table)
	assert.Equal(t, 20, cfg.Rounds)
	assert.Equal(t, 4, cfg.Population)
	assert.Equal(t, 100, cfg.Games)
	assert.Equal(t, []string{"tit_for_tat", "always_defect"}, cfg.Policies)
	assert.Equal(t, 32, cfg.EncodingRounds())
	assert.Equal(t, "champion.genome", cfg.NEAT.GenomePath)
	assert.Equal(t, "./titfortat.neat", cfg.NEAT.OptionsPath)
}

func TestLoadCustomTable(t *testing.T) {
	path := writeConfig(t, `
custom_table:
  left:  {coop_coop: 3, coop_defect: 0, defect_coop: 5, defect_defect: 1}
  right: {coop_coop: 10, coop_defect: 20, defect_coop: 30, defect_defect: 40}
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	table, err := cfg.RewardTable()
	require.NoError(t, err)
	assert.Equal(t, int64(30), table.RewardForSide(game.Right, game.Cooperate, game.Defect))
	assert.Equal(t, int64(0), table.RewardForSide(game.Left, game.Cooperate, game.Defect))
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadBrokenYAML(t *testing.T) {
	_, err := Load(writeConfig(t, "rounds: [oops"))
	assert.Error(t, err)
}

func TestEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "rounds: 20\ntable: chicken\n")
	t.Setenv("CLASSICGAME_ROUNDS", "7")
	t.Setenv("CLASSICGAME_TABLE", "stag_hunt")
	t.Setenv("CLASSICGAME_PARALLEL", "true")
	t.Setenv("CLASSICGAME_SEED", "42")
	t.Setenv("CLASSICGAME_POLICIES", " tit_for_tat, ,random ")
	t.Setenv("CLASSICGAME_ILLEGAL_PENALTY", "-5")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Rounds)
	assert.Equal(t, "stag_hunt", cfg.Table)
	assert.True(t, cfg.Parallel)
	assert.Equal(t, uint64(42), cfg.Seed)
	assert.Equal(t, []string{"tit_for_tat", "random"}, cfg.Policies)
	assert.Equal(t, int64(-5), cfg.IllegalPenalty)
}

func TestEnvConfigPath(t *testing.T) {
	t.Setenv("CLASSICGAME_CONFIG", writeConfig(t, "games: 3\n"))
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Games)
}

func TestInvalidEnvValue(t *testing.T) {
	t.Setenv("CLASSICGAME_GAMES", "lots")
	_, err := Load(writeConfig(t, ""))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CLASSICGAME_GAMES")
}

func TestOverridesWin(t *testing.T) {
	t.Setenv("CLASSICGAME_ROUNDS", "7")
	cfg, err := Load(writeConfig(t, "rounds: 20\nparallel: true\n"),
		func(c *Config) { c.Rounds = 12 },
		func(c *Config) { c.Parallel = false },
	)
	require.NoError(t, err)
	assert.Equal(t, 12, cfg.Rounds)
	assert.False(t, cfg.Parallel)
	assert.Equal(t, "prisoners_dilemma", cfg.Table)
}

// TestFileZeroValues checks that zero values written in the file replace non-zero defaults.
func TestFileZeroValues(t *testing.T) {
	cfg, err := Load(writeConfig(t, "seed: 0\nillegal_penalty: 0\nneat:\n  start_genes_path: genes\n"))
	require.NoError(t, err)
	assert.Equal(t, uint64(0), cfg.Seed)
	assert.Equal(t, int64(0), cfg.IllegalPenalty)
	assert.Equal(t, "genes", cfg.NEAT.StartGenesPath)
	assert.Equal(t, "./titfortat.neat", cfg.NEAT.OptionsPath)
	assert.Equal(t, Default().NEAT.Opponents, cfg.NEAT.Opponents)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero rounds", func(c *Config) { c.Rounds = 0 }},
		{"zero games", func(c *Config) { c.Games = 0 }},
		{"odd population", func(c *Config) { c.Population = 3 }},
		{"short encoding", func(c *Config) { c.Encoding.Rounds = c.Rounds - 1 }},
		{"unknown table", func(c *Config) { c.Table = "poker" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
