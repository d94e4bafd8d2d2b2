package dlog

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/thechriswalker/go-electionguard/cmds/common"
	"github.com/thechriswalker/go-electionguard/crypto/dlog"
)

// Register the discrete log table commands
func Register(rootCmd *cobra.Command) {
	var dlogCmd = &cobra.Command{
		Use:   "dlog",
		Short: "Discrete log table snapshots",
	}
	rootCmd.AddCommand(dlogCmd)

	var db string
	var maxExponent uint64

	// flags override the configuration file
	configure := func() error {
		cfg := common.Config()
		if db != "" {
			cfg.DLog.Database = db
		}
		if maxExponent != 0 {
			cfg.DLog.MaxExponent = maxExponent
		}
		if cfg.DLog.Database == "" {
			return fmt.Errorf("no database configured, set dlog.database or --db")
		}
		return nil
	}

	var buildCmd = &cobra.Command{
		Use:   "build",
		Short: "Build the table up to dlog.max_exponent and save it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := configure(); err != nil {
				return err
			}
			table, done, err := common.OpenTable()
			if err != nil {
				return err
			}
			to := table.Max()
			log.Info().Uint64("from", table.Frontier()).Uint64("to", to).Msg("building discrete log table")
			bar := common.MaybeProgress(int(to))
			bar.Start()
			table.Extend(to, func(n uint64) { bar.SetCurrent(int64(n)) })
			bar.Finish()
			if err := done(); err != nil {
				return err
			}
			log.Info().Uint64("frontier", table.Frontier()).Msg("discrete log table saved")
			return nil
		},
	}

	var checkCmd = &cobra.Command{
		Use:   "check",
		Short: "Validate the saved table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := configure(); err != nil {
				return err
			}
			store, err := dlog.NewSQLiteStore(common.Config().DLog.Database)
			if err != nil {
				return err
			}
			defer store.Close()
			n, err := store.Count()
			if err != nil {
				return err
			}
			// load everything that is stored, whatever the configured max
			table := dlog.New(n + 1)
			if err := store.Load(table); err != nil {
				return err
			}
			log.Info().Uint64("entries", n).Uint64("frontier", table.Frontier()).Msg("discrete log table is valid")
			return nil
		},
	}

	dlogCmd.PersistentFlags().StringVar(&db, "db", "", "SQLite file holding the table (overrides dlog.database)")
	buildCmd.Flags().Uint64Var(&maxExponent, "max", 0, "Largest exponent to build (overrides dlog.max_exponent)")
	dlogCmd.AddCommand(buildCmd, checkCmd)
}
