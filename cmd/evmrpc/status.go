package main

import (
	"errors"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/dmagro/evm-rpc-client/internal/config"
	"github.com/dmagro/evm-rpc-client/internal/output"
	"github.com/dmagro/evm-rpc-client/internal/provider"
)

var errAllDown = errors.New("no provider answered eth_blockNumber")

func statusCmd(a *app) *cobra.Command {
	var (
		samples  int
		interval time.Duration
	)

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Probe every configured provider",
		Long: `Probe all configured providers concurrently.

Each provider is asked for its chain id once and its head block number
--samples times. The table shows head height, lag behind the best head,
latency percentiles and how many samples succeeded.

With --provider only that provider is probed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if samples <= 0 {
				samples = a.cfg.Defaults.HealthSamples
			}

			providers := a.cfg.Providers
			if a.providerName != "" {
				p, err := a.cfg.Provider(a.providerName)
				if err != nil {
					return err
				}
				providers = []config.Provider{p}
			}

			health := provider.ProbeAll(cmd.Context(), a.pool, providers, samples, interval)
			a.log.Debug("status probe finished", "providers", len(health), "samples", samples)

			err := a.render(output.NewStatusReport(health, samples), func(w io.Writer) {
				output.RenderStatus(w, health, samples)
			})
			if err != nil {
				return err
			}

			for _, h := range health {
				if h.Successes > 0 {
					return nil
				}
			}
			return errAllDown
		},
	}

	cmd.Flags().IntVar(&samples, "samples", 0, "eth_blockNumber samples per provider (default: defaults.health_samples)")
	cmd.Flags().DurationVar(&interval, "interval", provider.DefaultSampleInterval, "Pause between samples to the same provider")
	return cmd
}
