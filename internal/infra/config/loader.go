// Package config loads the server configuration from YAML, environment
// variables and defaults.
package config

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"trustable/internal/domain"
)

// EnvPrefix namespaces environment overrides, e.g. TRUSTABLE_LOG_LEVEL.
const EnvPrefix = "TRUSTABLE"

type Loader struct {
	logger *zap.Logger
	lookup func(string) (string, bool)
}

type rawConfig struct {
	Server                 rawServer        `mapstructure:"server"`
	Transport              string           `mapstructure:"transport"`
	HTTP                   rawHTTP          `mapstructure:"http"`
	Log                    rawLog           `mapstructure:"log"`
	Observability          rawObservability `mapstructure:"observability"`
	ShutdownTimeoutSeconds int              `mapstructure:"shutdownTimeoutSeconds"`
}

type rawServer struct {
	Name    string `mapstructure:"name"`
	Version string `mapstructure:"version"`
}

type rawHTTP struct {
	ListenAddress  string   `mapstructure:"listenAddress"`
	Path           string   `mapstructure:"path"`
	Token          string   `mapstructure:"token"`
	AllowedOrigins []string `mapstructure:"allowedOrigins"`
	JSONResponse   bool     `mapstructure:"jsonResponse"`
	Stateless      bool     `mapstructure:"stateless"`
}

type rawLog struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type rawObservability struct {
	ListenAddress string `mapstructure:"listenAddress"`
	Metrics       bool   `mapstructure:"metrics"`
	Healthz       bool   `mapstructure:"healthz"`
}

func NewLoader(logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{logger: logger.Named("config"), lookup: os.LookupEnv}
}

func newViper(lookup func(string) (string, bool)) *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindEnv(v, lookup)
	return v
}

func setDefaults(v *viper.Viper) {
	def := domain.DefaultConfig()
	v.SetDefault("server.name", def.Server.Name)
	v.SetDefault("server.version", def.Server.Version)
	v.SetDefault("transport", string(def.Transport))
	v.SetDefault("http.listenAddress", def.HTTP.ListenAddress)
	v.SetDefault("http.path", def.HTTP.Path)
	v.SetDefault("http.token", "")
	v.SetDefault("http.allowedOrigins", []string{})
	v.SetDefault("http.jsonResponse", false)
	v.SetDefault("http.stateless", false)
	v.SetDefault("log.level", def.Log.Level)
	v.SetDefault("log.format", def.Log.Format)
	v.SetDefault("observability.listenAddress", def.Observability.ListenAddress)
	v.SetDefault("observability.metrics", false)
	v.SetDefault("observability.healthz", false)
	v.SetDefault("shutdownTimeoutSeconds", def.ShutdownTimeoutSeconds)
}

// bindEnv applies overrides from a custom lookup. AutomaticEnv only consults
// the process environment, so tests inject values through Set instead.
func bindEnv(v *viper.Viper, lookup func(string) (string, bool)) {
	if lookup == nil {
		return
	}
	replacer := strings.NewReplacer(".", "_")
	for _, key := range v.AllKeys() {
		name := EnvPrefix + "_" + strings.ToUpper(replacer.Replace(key))
		if value, ok := lookup(name); ok {
			v.Set(key, value)
		}
	}
}

// Load reads path, expands ${VAR} references, applies TRUSTABLE_* overrides
// and validates the result. An empty path yields defaults plus overrides.
func (l *Loader) Load(ctx context.Context, path string) (domain.Config, error) {
	var data []byte
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return domain.Config{}, fmt.Errorf("read config: %w", err)
		}
		data = raw
	}
	cfg, err := l.Parse(data)
	if err != nil {
		if path != "" {
			return domain.Config{}, fmt.Errorf("%s: %w", path, err)
		}
		return domain.Config{}, err
	}
	if err := ctx.Err(); err != nil {
		return domain.Config{}, err
	}
	return cfg, nil
}

// Parse decodes YAML config bytes.
func (l *Loader) Parse(data []byte) (domain.Config, error) {
	expanded, missing, err := expandEnv(data, l.lookup)
	if err != nil {
		return domain.Config{}, err
	}
	if len(missing) > 0 {
		l.logger.Warn("missing environment variables in config", zap.Strings("missing", missing))
	}

	v := newViper(l.lookup)
	if err := v.ReadConfig(bytes.NewBufferString(expanded)); err != nil {
		return domain.Config{}, fmt.Errorf("parse config: %w", err)
	}

	var raw rawConfig
	if err := v.Unmarshal(&raw); err != nil {
		return domain.Config{}, fmt.Errorf("decode config: %w", err)
	}

	cfg := normalize(raw)
	if errs := Validate(cfg); len(errs) > 0 {
		return domain.Config{}, errors.New(strings.Join(errs, "; "))
	}
	return cfg, nil
}

func normalize(raw rawConfig) domain.Config {
	origins := make([]string, 0, len(raw.HTTP.AllowedOrigins))
	for _, origin := range raw.HTTP.AllowedOrigins {
		for _, part := range strings.Split(origin, ",") {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				origins = append(origins, trimmed)
			}
		}
	}
	if len(origins) == 0 {
		origins = nil
	}

	return domain.Config{
		Server: domain.ServerIdentity{
			Name:    strings.TrimSpace(raw.Server.Name),
			Version: strings.TrimPrefix(strings.TrimSpace(raw.Server.Version), "v"),
		},
		Transport: domain.NormalizeTransport(domain.TransportKind(strings.ToLower(strings.TrimSpace(raw.Transport)))),
		HTTP: domain.HTTPConfig{
			ListenAddress:  strings.TrimSpace(raw.HTTP.ListenAddress),
			Path:           strings.TrimSpace(raw.HTTP.Path),
			Token:          strings.TrimSpace(raw.HTTP.Token),
			AllowedOrigins: origins,
			JSONResponse:   raw.HTTP.JSONResponse,
			Stateless:      raw.HTTP.Stateless,
		},
		Log: domain.LogConfig{
			Level:  strings.ToLower(strings.TrimSpace(raw.Log.Level)),
			Format: strings.ToLower(strings.TrimSpace(raw.Log.Format)),
		},
		Observability: domain.ObservabilityConfig{
			ListenAddress: strings.TrimSpace(raw.Observability.ListenAddress),
			Metrics:       raw.Observability.Metrics,
			Healthz:       raw.Observability.Healthz,
		},
		ShutdownTimeoutSeconds: raw.ShutdownTimeoutSeconds,
	}
}
