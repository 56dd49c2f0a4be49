package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"trustable/internal/app"
	"trustable/internal/infra/config"
	"trustable/internal/infra/telemetry"
)

type cliOptions struct {
	configPath string
	logLevel   string
	logFormat  string
	logger     *zap.Logger
	level      zap.AtomicLevel
}

func newRootCmd() *cobra.Command {
	opts := cliOptions{
		logger: zap.NewNop(),
	}

	root := &cobra.Command{
		Use:           app.Program,
		Short:         "MCP server exposing Trustable Score tools for AI visibility",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			applyRootFlagBindings(cmd.Flags(), &opts)
			return buildLogger(cmd.Context(), &opts)
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			_ = opts.logger.Sync()
		},
	}

	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to YAML config file (optional)")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn, error (default from config)")
	root.PersistentFlags().StringVar(&opts.logFormat, "log-format", "", "log format: json or console (default from config)")

	root.AddCommand(
		newServeCmd(&opts),
		newToolsCmd(),
		newCallCmd(&opts),
		newEstimateCmd(),
		newValidateCmd(&opts),
		newClientConfigCmd(&opts),
		newVersionCmd(),
	)

	return root
}

func applyRootFlagBindings(flags *pflag.FlagSet, opts *cliOptions) {
	flags.Visit(func(f *pflag.Flag) {
		switch f.Name {
		case "config":
			opts.configPath, _ = flags.GetString("config")
		case "log-level":
			opts.logLevel, _ = flags.GetString("log-level")
		case "log-format":
			opts.logFormat, _ = flags.GetString("log-format")
		}
	})
}

// buildLogger resolves log settings from flags first, then the config file.
// A broken config file is reported later by the command that loads it.
func buildLogger(ctx context.Context, opts *cliOptions) error {
	level := strings.TrimSpace(opts.logLevel)
	format := strings.TrimSpace(opts.logFormat)
	if (level == "" || format == "") && opts.configPath != "" {
		if ctx == nil {
			ctx = context.Background()
		}
		if cfg, err := config.NewLoader(nil).Load(ctx, opts.configPath); err == nil {
			if level == "" {
				level = cfg.Log.Level
			}
			if format == "" {
				format = cfg.Log.Format
			}
		}
	}

	logger, atomic, err := telemetry.NewLogger(telemetry.LoggerOptions{Level: level, Format: format})
	if err != nil {
		return err
	}
	opts.logger = logger.With(zap.String(telemetry.FieldLogSource, telemetry.LogSourceCLI))
	opts.level = atomic
	return nil
}

func signalAwareContext(parent context.Context) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithCancel(parent)

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		defer signal.Stop(signals)
		select {
		case <-signals:
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, cancel
}
