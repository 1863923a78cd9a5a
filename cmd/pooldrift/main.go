// pooldrift drives randomized call sequences against the constant-product
// pool engine and reports every reserve-delta mismatch the invariant oracle
// finds.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"cosmossdk.io/log"
	"github.com/spf13/cobra"

	"github.com/pooldrift/pooldrift/x/amm/sim"
)

func main() {
	root := &cobra.Command{
		Use:          "pooldrift",
		Short:        "Invariant fuzzer for the constant-product pool engine",
		SilenceUsage: true,
	}

	root.PersistentFlags().String("config", "", "config file path")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Run independent fuzz sessions and report reserve drift",
		RunE:  runSessions,
	}

	runCmd.Flags().Int("sessions", 20, "number of independent sessions")
	runCmd.Flags().Int("calls", 200, "generated calls per session")
	runCmd.Flags().Int64("seed", 1, "base random seed (session i uses seed+i)")
	runCmd.Flags().String("asset-a", "upool", "denom of asset A")
	runCmd.Flags().String("asset-b", "uweth", "denom of asset B")
	runCmd.Flags().String("seed-a", "", "initial reserve of asset A (integer, default 100e18)")
	runCmd.Flags().String("seed-b", "", "initial reserve of asset B (integer, default 50e18)")
	runCmd.Flags().Int64("fee-numerator", 997, "fee numerator")
	runCmd.Flags().Int64("fee-denominator", 1000, "fee denominator")
	runCmd.Flags().String("min-seed", "", "minimum seed deposit (integer, default 1e9)")
	runCmd.Flags().Uint64("bonus-interval", 10, "swaps between bonus payouts")
	runCmd.Flags().String("bonus-amount", "", "bonus payout amount (integer, default 1e18)")
	runCmd.Flags().Bool("bonus-enabled", true, "enable the periodic bonus hook")
	runCmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")
	runCmd.Flags().String("log-format", "plain", "log format (plain, json)")

	root.AddCommand(runCmd)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func runSessions(cmd *cobra.Command, _ []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := Load(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}

	sessionCfg, err := cfg.SessionConfig()
	if err != nil {
		return err
	}
	if cfg.Sessions <= 0 {
		return fmt.Errorf("sessions must be positive, got %d", cfg.Sessions)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("fuzzer start",
		"sessions", cfg.Sessions,
		"calls", sessionCfg.Calls,
		"base_seed", sessionCfg.Seed,
		"pair", sessionCfg.AssetA+"/"+sessionCfg.AssetB,
		"bonus_enabled", sessionCfg.Params.BonusEnabled,
	)

	violations := 0
	for i := 0; i < cfg.Sessions; i++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		runCfg := sessionCfg
		runCfg.Seed = sessionCfg.Seed + int64(i)

		session, err := sim.NewSession(ctx, runCfg, logger)
		if err != nil {
			return fmt.Errorf("session %d: %w", i, err)
		}

		ghost, executed, err := session.Run(ctx)
		if err != nil {
			return fmt.Errorf("session %d: %w", i, err)
		}
		if ghost != nil {
			violations++
			logger.Error("reserve drift detected",
				"session", i,
				"seed", runCfg.Seed,
				"executed", executed,
				"ghost", ghost.String(),
			)
			continue
		}
		logger.Info("session clean", "session", i, "seed", runCfg.Seed, "executed", executed)
	}

	if violations > 0 {
		return fmt.Errorf("%d of %d sessions violated the reserve-delta invariant", violations, cfg.Sessions)
	}
	logger.Info("no drift detected", "sessions", cfg.Sessions)
	return nil
}

func newLogger(level, format string) (log.Logger, error) {
	filter, err := log.ParseLogLevel(level)
	if err != nil {
		return nil, fmt.Errorf("parse log level: %w", err)
	}
	opts := []log.Option{log.FilterOption(filter)}
	if format == "json" {
		opts = append(opts, log.OutputJSONOption())
	}
	return log.NewLogger(os.Stderr, opts...), nil
}
