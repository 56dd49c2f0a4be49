package domain

// Config is the validated server configuration.
type Config struct {
	Server                 ServerIdentity      `json:"server"`
	Transport              TransportKind       `json:"transport"`
	HTTP                   HTTPConfig          `json:"http"`
	Log                    LogConfig           `json:"log"`
	Observability          ObservabilityConfig `json:"observability"`
	ShutdownTimeoutSeconds int                 `json:"shutdownTimeoutSeconds"`
}

// ServerIdentity is advertised to MCP clients during initialization.
type ServerIdentity struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// HTTPConfig configures the streamable HTTP transport.
type HTTPConfig struct {
	ListenAddress  string   `json:"listenAddress"`
	Path           string   `json:"path"`
	Token          string   `json:"-"`
	AllowedOrigins []string `json:"allowedOrigins,omitempty"`
	JSONResponse   bool     `json:"jsonResponse"`
	Stateless      bool     `json:"stateless"`
}

type LogConfig struct {
	Level  string `json:"level"`
	Format string `json:"format"`
}

// ObservabilityConfig configures the /metrics and /healthz listener. The
// listener starts only when at least one endpoint is enabled.
type ObservabilityConfig struct {
	ListenAddress string `json:"listenAddress"`
	Metrics       bool   `json:"metrics"`
	Healthz       bool   `json:"healthz"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() Config {
	return Config{
		Server: ServerIdentity{
			Name:    DefaultServerName,
			Version: DefaultServerVersion,
		},
		Transport: DefaultTransport,
		HTTP: HTTPConfig{
			ListenAddress: DefaultHTTPListenAddress,
			Path:          DefaultHTTPPath,
		},
		Log: LogConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
		Observability: ObservabilityConfig{
			ListenAddress: DefaultObservabilityListenAddress,
		},
		ShutdownTimeoutSeconds: DefaultShutdownTimeoutSeconds,
	}
}
