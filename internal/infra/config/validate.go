package config

import (
	"fmt"
	"net"
	"strings"

	"golang.org/x/mod/semver"

	"trustable/internal/domain"
	"trustable/internal/infra/telemetry"
)

// Validate returns every problem found in cfg.
func Validate(cfg domain.Config) []string {
	var errs []string

	if cfg.Server.Name == "" {
		errs = append(errs, "server.name is required")
	}
	if !semver.IsValid("v" + cfg.Server.Version) {
		errs = append(errs, fmt.Sprintf("server.version %q is not a semantic version", cfg.Server.Version))
	}

	switch cfg.Transport {
	case domain.TransportStdio:
	case domain.TransportStreamableHTTP:
		errs = append(errs, validateHTTP(cfg.HTTP)...)
	default:
		errs = append(errs, fmt.Sprintf("transport %q must be stdio or streamable-http", cfg.Transport))
	}

	if _, err := telemetry.ParseLevel(cfg.Log.Level); err != nil {
		errs = append(errs, "log.level: "+err.Error())
	}
	if cfg.Log.Format != telemetry.LogFormatJSON && cfg.Log.Format != telemetry.LogFormatConsole {
		errs = append(errs, fmt.Sprintf("log.format %q must be json or console", cfg.Log.Format))
	}

	if (cfg.Observability.Metrics || cfg.Observability.Healthz) && cfg.Observability.ListenAddress == "" {
		errs = append(errs, "observability.listenAddress is required when metrics or healthz is enabled")
	}
	if cfg.ShutdownTimeoutSeconds < 0 {
		errs = append(errs, "shutdownTimeoutSeconds must be >= 0")
	}
	return errs
}

func validateHTTP(cfg domain.HTTPConfig) []string {
	var errs []string
	if cfg.ListenAddress == "" {
		errs = append(errs, "http.listenAddress is required")
	} else if !IsLocalhostAddr(cfg.ListenAddress) && cfg.Token == "" {
		errs = append(errs, "http.token is required when binding to a non-localhost address")
	}
	if !strings.HasPrefix(cfg.Path, "/") {
		errs = append(errs, fmt.Sprintf("http.path %q must start with /", cfg.Path))
	}
	return errs
}

// IsLocalhostAddr reports whether addr binds only to the loopback interface.
func IsLocalhostAddr(addr string) bool {
	host := addr
	if h, _, err := net.SplitHostPort(addr); err == nil {
		host = h
	}
	host = strings.TrimSpace(host)
	if host == "localhost" {
		return true
	}
	ip := net.ParseIP(host)
	if ip == nil {
		return false
	}
	return ip.IsLoopback()
}
