// Package config loads run settings. Values are resolved from (highest to lowest priority):
// 1. Command-line flags
// 2. Environment variables (CLASSICGAME_*), optionally seeded from a .env file
// 3. Config file (--config, CLASSICGAME_CONFIG, or ./classicgame.yaml)
// 4. Defaults
package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"

	"classicgame/game"
)

const (
	envPrefix         = "CLASSICGAME_"
	defaultConfigPath = "classicgame.yaml"
)

// Config holds all run settings.
type Config struct {
	// Table names a built-in reward table (prisoners_dilemma, chicken, stag_hunt, titfortat).
	Table string `yaml:"table"`
	// CustomTable, when set, replaces Table.
	CustomTable *game.AsymmetricRewardTable `yaml:"custom_table,omitempty"`

	Rounds     int      `yaml:"rounds"`
	Games      int      `yaml:"games"`
	Population int      `yaml:"population"`
	Seed       uint64   `yaml:"seed"`
	Parallel   bool     `yaml:"parallel"`
	Verbose    bool     `yaml:"verbose"`
	Policies   []string `yaml:"policies"`

	// IllegalPenalty is the table payoff given to a player that fails to act.
	IllegalPenalty int64 `yaml:"illegal_penalty"`

	Encoding EncodingConfig `yaml:"encoding"`
	NEAT     NEATConfig     `yaml:"neat"`
	Export   ExportConfig   `yaml:"export"`
}

// EncodingConfig sizes the fixed-shape history encoding.
type EncodingConfig struct {
	// Rounds is the longest history the encoding accepts. Zero means Config.Rounds.
	Rounds int `yaml:"rounds"`
}

// NEATConfig drives the evolve command.
type NEATConfig struct {
	OptionsPath string `yaml:"options_path"`
	// GenomePath receives the best evolved genome and is entered in tournaments as "neat".
	GenomePath string `yaml:"genome_path"`
	// StartGenesPath is a plain text start genome. Empty means a zero-weight genome sized to
	// the encoding.
	StartGenesPath string   `yaml:"start_genes_path"`
	Opponents      []string `yaml:"opponents"`
}

type ExportConfig struct {
	Path string `yaml:"path"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Table:          "prisoners_dilemma",
		Rounds:         10,
		Games:          100,
		Population:     8,
		Seed:           1,
		IllegalPenalty: -100,
		Policies: []string{
			"always_cooperate", "always_defect", "tit_for_tat", "reverse_tit_for_tat",
			"random", "random_defect", "often_random_defect",
		},
		NEAT: NEATConfig{
			OptionsPath: "./titfortat.neat",
			Opponents:   []string{"tit_for_tat", "always_defect", "switch_after_two", "fibonacci_forgive"},
		},
		Export: ExportConfig{Path: "encodings.npz"},
	}
}

// Override sets one explicitly requested value, typically a command-line flag.
type Override func(*Config)

// Load resolves the configuration. path may be empty. Only fields present in the config file
// or environment replace defaults, so zero values can be configured explicitly.
func Load(path string, overrides ...Override) (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, errors.Wrap(err, "load .env")
	}

	cfg := Default()

	explicit := path != ""
	if !explicit {
		if v := strings.TrimSpace(os.Getenv(envPrefix + "CONFIG")); v != "" {
			path, explicit = v, true
		} else {
			path = defaultConfigPath
		}
	}
	err := loadFromPath(path, cfg)
	if err != nil && (explicit || !os.IsNotExist(errors.Cause(err))) {
		return nil, errors.Wrapf(err, "load config %s", path)
	}

	if cfg, err = applyEnv(cfg); err != nil {
		return nil, err
	}

	for _, o := range overrides {
		o(cfg)
	}
	return cfg, cfg.Validate()
}

// loadFromPath decodes the file at path onto cfg. Keys absent from the file keep their value.
func loadFromPath(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return errors.Wrap(yaml.Unmarshal(data, cfg), "parse yaml")
}

func applyEnv(cfg *Config) (*Config, error) {
	var err error
	if v, ok := getEnv("TABLE"); ok {
		cfg.Table = v
	}
	if v, ok := getEnv("ROUNDS"); ok {
		if cfg.Rounds, err = cast.ToIntE(v); err != nil {
			return nil, envError("ROUNDS", err)
		}
	}
	if v, ok := getEnv("GAMES"); ok {
		if cfg.Games, err = cast.ToIntE(v); err != nil {
			return nil, envError("GAMES", err)
		}
	}
	if v, ok := getEnv("POPULATION"); ok {
		if cfg.Population, err = cast.ToIntE(v); err != nil {
			return nil, envError("POPULATION", err)
		}
	}
	if v, ok := getEnv("SEED"); ok {
		if cfg.Seed, err = cast.ToUint64E(v); err != nil {
			return nil, envError("SEED", err)
		}
	}
	if v, ok := getEnv("PARALLEL"); ok {
		if cfg.Parallel, err = cast.ToBoolE(v); err != nil {
			return nil, envError("PARALLEL", err)
		}
	}
	if v, ok := getEnv("VERBOSE"); ok {
		if cfg.Verbose, err = cast.ToBoolE(v); err != nil {
			return nil, envError("VERBOSE", err)
		}
	}
	if v, ok := getEnv("ILLEGAL_PENALTY"); ok {
		if cfg.IllegalPenalty, err = cast.ToInt64E(v); err != nil {
			return nil, envError("ILLEGAL_PENALTY", err)
		}
	}
	if v, ok := getEnv("ENCODING_ROUNDS"); ok {
		if cfg.Encoding.Rounds, err = cast.ToIntE(v); err != nil {
			return nil, envError("ENCODING_ROUNDS", err)
		}
	}
	if v, ok := getEnv("POLICIES"); ok {
		cfg.Policies = splitList(v)
	}
	if v, ok := getEnv("NEAT_OPTIONS"); ok {
		cfg.NEAT.OptionsPath = v
	}
	if v, ok := getEnv("NEAT_GENOME"); ok {
		cfg.NEAT.GenomePath = v
	}
	if v, ok := getEnv("NEAT_START_GENES"); ok {
		cfg.NEAT.StartGenesPath = v
	}
	if v, ok := getEnv("EXPORT_PATH"); ok {
		cfg.Export.Path = v
	}
	return cfg, nil
}

func getEnv(key string) (string, bool) {
	v := strings.TrimSpace(os.Getenv(envPrefix + key))
	return v, v != ""
}

func envError(key string, err error) error {
	return errors.Wrapf(err, "invalid %s%s", envPrefix, key)
}

func splitList(v string) []string {
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// RewardTable resolves the configured table.
func (c *Config) RewardTable() (game.RewardTable, error) {
	if c.CustomTable != nil {
		return *c.CustomTable, nil
	}
	t, err := game.LookupTable(c.Table)
	if err != nil {
		return nil, err
	}
	return t, nil
}

// EncodingRounds is the capacity of the history encoding.
func (c *Config) EncodingRounds() int {
	if c.Encoding.Rounds > 0 {
		return c.Encoding.Rounds
	}
	return c.Rounds
}

// Validate reports the first setting that cannot be run.
func (c *Config) Validate() error {
	if c.Rounds <= 0 {
		return errors.Errorf("rounds must be positive, got %d", c.Rounds)
	}
	if c.Games <= 0 {
		return errors.Errorf("games must be positive, got %d", c.Games)
	}
	if c.Population <= 0 || c.Population%2 != 0 {
		return errors.Errorf("population must be a positive even number, got %d", c.Population)
	}
	if c.EncodingRounds() < c.Rounds {
		return errors.Errorf("encoding holds %d rounds but episodes last %d", c.EncodingRounds(), c.Rounds)
	}
	if _, err := c.RewardTable(); err != nil {
		return errors.Wrap(err, "table")
	}
	return nil
}
