package main

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/dmagro/evm-rpc-client/internal/config"
	"github.com/dmagro/evm-rpc-client/internal/env"
	"github.com/dmagro/evm-rpc-client/internal/logger"
	"github.com/dmagro/evm-rpc-client/internal/output"
	"github.com/dmagro/evm-rpc-client/internal/provider"
	"github.com/dmagro/evm-rpc-client/pkg/rpc"
)

// offline marks commands that need neither config nor a provider.
const offline = "offline"

// app is the state shared by every command once the root's pre-run has
// loaded configuration.
type app struct {
	// flags
	cfgPath      string
	envPath      string
	providerName string
	url          string
	timeout      time.Duration
	format       string
	logLevel     string

	out    io.Writer
	now    func() time.Time
	cfg    *config.Config
	log    *slog.Logger
	closer io.Closer
	pool   *provider.ClientPool
	outFmt output.Format
}

func newRootCmd(out io.Writer) *cobra.Command {
	return newApp(out).rootCmd()
}

func newApp(out io.Writer) *app {
	return &app{out: out, now: time.Now}
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "evmrpc",
		Short: "Query Ethereum-compatible JSON-RPC providers",
		Long: `evmrpc sends JSON-RPC 2.0 requests to the providers listed in a YAML
config file, or to a single endpoint given with --url, and prints the
decoded results.

Numeric results are shown both as the hex quantity the node returned and
in decimal.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.cfgPath, "config", "config/providers.yaml", "Config file path")
	flags.StringVar(&a.envPath, "env-file", env.DefaultPath, "Environment file loaded before the config")
	flags.StringVar(&a.providerName, "provider", "", "Provider name from config (default: first provider)")
	flags.StringVar(&a.url, "url", "", "Query this endpoint directly instead of the config file")
	flags.DurationVar(&a.timeout, "timeout", 10*time.Second, "Request timeout used with --url")
	flags.StringVar(&a.format, "format", "terminal", "Output format: terminal|json")
	flags.StringVar(&a.logLevel, "log-level", "", "Log level: debug|info|warn|error (overrides config)")

	root.AddCommand(
		blockNumberCmd(a),
		chainIDCmd(a),
		gasPriceCmd(a),
		balanceCmd(a),
		codeCmd(a),
		blockCmd(a),
		txCmd(a),
		receiptCmd(a),
		statusCmd(a),
		compareCmd(a),
		convertCmd(a),
	)
	a.closeAfter(root)

	return root
}

// closeAfter wraps every RunE in the tree so the log output is closed when
// the command returns. cobra skips PersistentPostRunE after a RunE error.
func (a *app) closeAfter(cmd *cobra.Command) {
	if run := cmd.RunE; run != nil {
		cmd.RunE = func(cmd *cobra.Command, args []string) (err error) {
			defer func() {
				if cerr := a.close(); err == nil {
					err = cerr
				}
			}()
			return run(cmd, args)
		}
	}
	for _, sub := range cmd.Commands() {
		a.closeAfter(sub)
	}
}

func (a *app) close() error {
	if a.closer == nil {
		return nil
	}
	c := a.closer
	a.closer = nil
	return c.Close()
}

// setup loads .env, config and logger for commands that talk to providers.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	format, err := output.ParseFormat(a.format)
	if err != nil {
		return err
	}
	a.outFmt = format
	if format == output.FormatJSON || !output.IsTerminal() {
		output.DisableColors()
	}

	if cmd.Annotations[offline] == "true" {
		return nil
	}

	if err := env.Load(a.envPath); err != nil {
		return err
	}

	if a.url != "" {
		a.cfg, err = config.AdHoc(a.url, a.timeout)
	} else {
		a.cfg, err = config.Load(a.cfgPath)
	}
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logCfg := a.cfg.Log
	if a.logLevel != "" {
		logCfg.Level = a.logLevel
	}
	a.log, a.closer, err = logger.New(logCfg)
	if err != nil {
		return err
	}

	a.pool = provider.NewClientPool(a.log)
	return nil
}

// client returns the client for --provider, or the first configured one.
func (a *app) client() (*rpc.Client, error) {
	p, err := a.cfg.Provider(a.providerName)
	if err != nil {
		return nil, err
	}
	return a.pool.Get(p), nil
}

// render writes v as JSON, or calls terminal for terminal output.
func (a *app) render(v any, terminal func(w io.Writer)) error {
	if a.outFmt == output.FormatJSON {
		return output.WriteJSON(a.out, v)
	}
	terminal(a.out)
	return nil
}

// timed runs fn and reports how long it took.
func timed[T any](fn func() (T, error)) (T, time.Duration, error) {
	start := time.Now()
	v, err := fn()
	return v, time.Since(start), err
}
