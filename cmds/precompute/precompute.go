package precompute

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/thechriswalker/go-electionguard/cmds/common"
	"github.com/thechriswalker/go-electionguard/crypto/precompute"
)

// Register the precompute command
func Register(rootCmd *cobra.Command) {
	var keyFile string
	var size int
	var metricsAddr string

	var precomputeCmd = &cobra.Command{
		Use:   "precompute",
		Short: "Fill a precompute buffer for a public key and report how long it took",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := common.Config()
			if size > 0 {
				cfg.Precompute.BufferSize = size
			}
			if metricsAddr != "" {
				cfg.Precompute.MetricsAddr = metricsAddr
			}
			kf, err := common.LoadKeyFile(keyFile)
			if err != nil {
				return err
			}
			pk, err := kf.PublicKey()
			if err != nil {
				return err
			}

			if addr := cfg.Precompute.MetricsAddr; addr != "" {
				mux := http.NewServeMux()
				mux.Handle("/metrics", promhttp.HandlerFor(precompute.Metrics, promhttp.HandlerOpts{Registry: precompute.Metrics}))
				go func() {
					log.Info().Str("addr", addr).Msg("serving precompute metrics")
					if err := http.ListenAndServe(addr, mux); err != nil {
						log.Warn().Err(err).Msg("metrics server stopped")
					}
				}()
			}

			n := cfg.Precompute.BufferSize
			buf := precompute.NewBuffer()
			buf.Initialize(pk, n)
			start := time.Now()
			if err := buf.Start(); err != nil {
				return err
			}
			defer buf.Clear()

			bar := common.MaybeProgress(2 * n)
			bar.Start()
			for {
				triples, units := buf.Status()
				bar.SetCurrent(int64(triples + units))
				if triples >= n && units >= n {
					break
				}
				time.Sleep(100 * time.Millisecond)
			}
			bar.Finish()
			buf.Stop()

			elapsed := time.Since(start)
			log.Info().
				Int("triples", n).
				Int("units", n).
				Dur("elapsed", elapsed).
				Dur("per_item", elapsed/time.Duration(2*n)).
				Msg("precompute buffer full")
			return nil
		},
	}
	precomputeCmd.Flags().StringVar(&keyFile, "key", "key.toml", "Key file holding the public key")
	precomputeCmd.Flags().IntVar(&size, "size", 0, "Items of each kind to buffer (overrides precompute.buffer_size)")
	precomputeCmd.Flags().StringVar(&metricsAddr, "metrics", "", "Address to serve prometheus metrics on (overrides precompute.metrics_addr)")

	rootCmd.AddCommand(precomputeCmd)
}
