package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"trustable/internal/app"
	"trustable/internal/domain"
)

type serveFlags struct {
	transport         string
	httpAddr          string
	httpPath          string
	httpToken         string
	httpOrigins       []string
	httpJSONResponse  bool
	httpStateless     bool
	metrics           bool
	healthz           bool
	observabilityAddr string
}

func newServeCmd(opts *cliOptions) *cobra.Command {
	var flags serveFlags

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the MCP server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := signalAwareContext(cmd.Context())
			defer cancel()

			application, err := app.InitializeApplication(ctx, app.ServeConfig{
				ConfigPath: opts.configPath,
				Overrides:  serveOverrides(cmd.Flags(), &flags, opts),
			}, app.LoggingConfig{
				Logger: opts.logger,
				Level:  opts.level,
			})
			if err != nil {
				return err
			}
			return application.Run()
		},
	}

	cmd.Flags().StringVar(&flags.transport, "transport", string(domain.DefaultTransport), "transport: stdio or streamable-http")
	cmd.Flags().StringVar(&flags.httpAddr, "http-addr", domain.DefaultHTTPListenAddress, "listen address for streamable-http")
	cmd.Flags().StringVar(&flags.httpPath, "http-path", domain.DefaultHTTPPath, "endpoint path for streamable-http")
	cmd.Flags().StringVar(&flags.httpToken, "http-token", "", "bearer token required by streamable-http")
	cmd.Flags().StringSliceVar(&flags.httpOrigins, "http-allowed-origin", nil, "allowed browser origin (repeatable, * for any)")
	cmd.Flags().BoolVar(&flags.httpJSONResponse, "http-json-response", false, "answer POSTs with application/json instead of SSE")
	cmd.Flags().BoolVar(&flags.httpStateless, "http-stateless", false, "run streamable-http without sessions")
	cmd.Flags().BoolVar(&flags.metrics, "metrics", false, "expose /metrics on the observability listener")
	cmd.Flags().BoolVar(&flags.healthz, "healthz", false, "expose /healthz on the observability listener")
	cmd.Flags().StringVar(&flags.observabilityAddr, "observability-addr", domain.DefaultObservabilityListenAddress, "observability listen address")

	return cmd
}

// serveOverrides returns a config mutator that applies only the flags the
// user actually set, so file and environment values survive otherwise.
func serveOverrides(fs *pflag.FlagSet, flags *serveFlags, opts *cliOptions) func(*domain.Config) {
	return func(cfg *domain.Config) {
		fs.Visit(func(f *pflag.Flag) {
			switch f.Name {
			case "transport":
				cfg.Transport = domain.NormalizeTransport(domain.TransportKind(flags.transport))
			case "http-addr":
				cfg.HTTP.ListenAddress = flags.httpAddr
			case "http-path":
				cfg.HTTP.Path = flags.httpPath
			case "http-token":
				cfg.HTTP.Token = flags.httpToken
			case "http-allowed-origin":
				cfg.HTTP.AllowedOrigins = append([]string(nil), flags.httpOrigins...)
			case "http-json-response":
				cfg.HTTP.JSONResponse = flags.httpJSONResponse
			case "http-stateless":
				cfg.HTTP.Stateless = flags.httpStateless
			case "metrics":
				cfg.Observability.Metrics = flags.metrics
			case "healthz":
				cfg.Observability.Healthz = flags.healthz
			case "observability-addr":
				cfg.Observability.ListenAddress = flags.observabilityAddr
			case "log-level":
				cfg.Log.Level = opts.logLevel
			case "log-format":
				cfg.Log.Format = opts.logFormat
			}
		})
	}
}
