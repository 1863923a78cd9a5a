package main

import (
	"fmt"
	"strings"

	"cosmossdk.io/math"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/pooldrift/pooldrift/x/amm/sim"
	"github.com/pooldrift/pooldrift/x/amm/types"
)

// Config holds runner settings merged from flags, environment and an
// optional config file, in that order of precedence.
type Config struct {
	Sessions int
	Calls    int
	Seed     int64

	AssetA string
	AssetB string
	SeedA  string
	SeedB  string

	FeeNumerator   int64
	FeeDenominator int64
	MinSeed        string
	BonusInterval  uint64
	BonusAmount    string
	BonusEnabled   bool

	LogLevel  string
	LogFormat string
}

// Load merges config file, environment variables, and flags into Config
func Load(cfgFile string, flags *pflag.FlagSet) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("POOLDRIFT")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return Config{}, fmt.Errorf("bind flags: %w", err)
		}
	}

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	} else {
		v.SetConfigName("pooldrift")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return Config{}, fmt.Errorf("read config: %w", err)
			}
		}
	}

	cfg := Config{
		Sessions:       v.GetInt("sessions"),
		Calls:          v.GetInt("calls"),
		Seed:           v.GetInt64("seed"),
		AssetA:         v.GetString("asset-a"),
		AssetB:         v.GetString("asset-b"),
		SeedA:          v.GetString("seed-a"),
		SeedB:          v.GetString("seed-b"),
		FeeNumerator:   v.GetInt64("fee-numerator"),
		FeeDenominator: v.GetInt64("fee-denominator"),
		MinSeed:        v.GetString("min-seed"),
		BonusInterval:  v.GetUint64("bonus-interval"),
		BonusAmount:    v.GetString("bonus-amount"),
		BonusEnabled:   v.GetBool("bonus-enabled"),
		LogLevel:       v.GetString("log-level"),
		LogFormat:      v.GetString("log-format"),
	}
	return cfg, nil
}

// SessionConfig converts the runner settings into a sim session config
func (c Config) SessionConfig() (sim.SessionConfig, error) {
	base := sim.DefaultSessionConfig()

	seedA, err := parseAmount("seed-a", c.SeedA, base.SeedA)
	if err != nil {
		return sim.SessionConfig{}, err
	}
	seedB, err := parseAmount("seed-b", c.SeedB, base.SeedB)
	if err != nil {
		return sim.SessionConfig{}, err
	}
	minSeed, err := parseAmount("min-seed", c.MinSeed, base.Params.MinimumSeedDeposit)
	if err != nil {
		return sim.SessionConfig{}, err
	}
	bonusAmount, err := parseAmount("bonus-amount", c.BonusAmount, base.Params.BonusAmount)
	if err != nil {
		return sim.SessionConfig{}, err
	}

	cfg := sim.SessionConfig{
		Params: types.Params{
			FeeNumerator:       math.NewInt(c.FeeNumerator),
			FeeDenominator:     math.NewInt(c.FeeDenominator),
			MinimumSeedDeposit: minSeed,
			BonusInterval:      c.BonusInterval,
			BonusAmount:        bonusAmount,
			BonusEnabled:       c.BonusEnabled,
		},
		AssetA: c.AssetA,
		AssetB: c.AssetB,
		SeedA:  seedA,
		SeedB:  seedB,
		Calls:  c.Calls,
		Seed:   c.Seed,
	}
	return cfg, cfg.Validate()
}

func parseAmount(name, value string, fallback math.Int) (math.Int, error) {
	if value == "" {
		return fallback, nil
	}
	amount, ok := math.NewIntFromString(value)
	if !ok {
		return math.Int{}, fmt.Errorf("%s: %q is not an integer amount", name, value)
	}
	return amount, nil
}
