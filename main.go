package main

import (
	"os"
	"runtime"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/thechriswalker/go-electionguard/cmds/common"
	"github.com/thechriswalker/go-electionguard/cmds/dlog"
	"github.com/thechriswalker/go-electionguard/cmds/keys"
	"github.com/thechriswalker/go-electionguard/cmds/precompute"
	"github.com/thechriswalker/go-electionguard/cmds/selftest"
	"github.com/thechriswalker/go-electionguard/internal/config"
)

var configFile string
var logLevel string

func preamble(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configFile)
	if err != nil {
		return err
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	lvl, err := cfg.Level()
	if err != nil {
		return err
	}
	// DEBUG in the environment wins, as it always has
	if os.Getenv("DEBUG") != "" {
		lvl = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(lvl)
	common.SetConfig(cfg)

	log.Debug().
		Str("version", common.Version).
		Str("commit", shortCommit()).
		Str("built", common.BuildDate).
		Str("arch", runtime.GOARCH).
		Str("os", runtime.GOOS).
		Str("config", configFile).
		Msg("Build Info")
	return nil
}

func shortCommit() string {
	if len(common.Commit) > 8 {
		return common.Commit[0:8]
	}
	return common.Commit
}

const timeFormatMs = "2006-01-02T15:04:05.000Z07:00"
const timeFormatLocal = "2006-01-02 15:04:05.000"

func main() {
	// configure the logger.
	// remember pretty logs are only good on the console
	zerolog.TimeFieldFormat = timeFormatMs
	log.Logger = log.Output(zerolog.NewConsoleWriter(func(cw *zerolog.ConsoleWriter) {
		cw.TimeFormat = timeFormatLocal
		cw.NoColor = true
	}))
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	var rootCmd = &cobra.Command{
		Use:               "electionguard",
		Short:             "ElectionGuard cryptographic core tools",
		Version:           common.Version,
		PersistentPreRunE: preamble,
		SilenceUsage:      true,
	}
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "TOML configuration file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (overrides log_level)")

	// commands:
	//
	// - keys: generate key pairs with a proof of knowledge, check key files
	// - precompute: fill a precompute buffer, optionally exposing its metrics
	// - dlog: build and check the discrete log snapshot database
	// - selftest: run a whole contest through encryption, proofs and decryption

	keys.Register(rootCmd)
	precompute.Register(rootCmd)
	dlog.Register(rootCmd)
	selftest.Register(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		log.Err(err).Msg("An Error Occured")
		os.Exit(1)
	}
}
