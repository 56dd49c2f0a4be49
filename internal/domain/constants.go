package domain

const (
	DefaultServerName                 = "trustable-mcp-server"
	DefaultServerVersion              = "1.0.0"
	DefaultTransport                  = TransportStdio
	DefaultHTTPListenAddress          = "127.0.0.1:8090"
	DefaultHTTPPath                   = "/mcp"
	DefaultObservabilityListenAddress = "127.0.0.1:9090"
	DefaultLogLevel                   = "info"
	DefaultLogFormat                  = "json"
	DefaultShutdownTimeoutSeconds     = 5
)

// TransportKind selects how the MCP server is exposed.
type TransportKind string

const (
	TransportStdio          TransportKind = "stdio"
	TransportStreamableHTTP TransportKind = "streamable-http"
)

func NormalizeTransport(kind TransportKind) TransportKind {
	switch kind {
	case "", TransportStdio:
		return TransportStdio
	case TransportStreamableHTTP, "http", "streamable_http":
		return TransportStreamableHTTP
	default:
		return kind
	}
}
