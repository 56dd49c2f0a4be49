// Package httpserver serves MCP over streamable HTTP behind a chi router.
package httpserver

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"trustable/internal/domain"
	"trustable/internal/infra/telemetry"
)

type Options struct {
	Addr            string
	Path            string
	Token           string
	AllowedOrigins  []string
	JSONResponse    bool
	Stateless       bool
	ShutdownTimeout time.Duration
}

// OptionsFromConfig maps the http section of the config.
func OptionsFromConfig(cfg domain.Config) Options {
	return Options{
		Addr:            cfg.HTTP.ListenAddress,
		Path:            cfg.HTTP.Path,
		Token:           cfg.HTTP.Token,
		AllowedOrigins:  cfg.HTTP.AllowedOrigins,
		JSONResponse:    cfg.HTTP.JSONResponse,
		Stateless:       cfg.HTTP.Stateless,
		ShutdownTimeout: time.Duration(cfg.ShutdownTimeoutSeconds) * time.Second,
	}
}

// NewHandler mounts the streamable MCP endpoint at opts.Path.
func NewHandler(server *mcp.Server, opts Options, logger *zap.Logger) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.With(zap.String(telemetry.FieldLogSource, telemetry.LogSourceHTTP))
	path := opts.Path
	if path == "" {
		path = domain.DefaultHTTPPath
	}

	streamable := mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return server
	}, &mcp.StreamableHTTPOptions{
		JSONResponse: opts.JSONResponse,
		Stateless:    opts.Stateless,
	})

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(telemetry.RequestMetaMiddleware(func(r *http.Request) string {
		return middleware.GetReqID(r.Context())
	}))
	r.Use(requestLogger(logger))
	r.Use(middleware.Recoverer)

	r.Group(func(r chi.Router) {
		r.Use(originGuard(opts.AllowedOrigins, logger))
		r.Use(bearerAuth(opts.Token, logger))
		r.Handle(path, streamable)
	})
	return r
}

// Serve listens on opts.Addr until ctx is canceled.
func Serve(ctx context.Context, server *mcp.Server, opts Options, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	if strings.TrimSpace(opts.Addr) == "" {
		return errors.New("http address is required")
	}
	timeout := opts.ShutdownTimeout
	if timeout <= 0 {
		timeout = time.Duration(domain.DefaultShutdownTimeoutSeconds) * time.Second
	}

	listener, err := net.Listen("tcp", opts.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", opts.Addr, err)
	}

	httpServer := &http.Server{
		Handler:           NewHandler(server, opts, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		logger.Info("mcp server listening",
			telemetry.EventField(telemetry.EventServeStart),
			telemetry.TransportField(string(domain.TransportStreamableHTTP)),
			zap.String("addr", listener.Addr().String()),
			zap.String("path", opts.Path),
			zap.Bool("auth", opts.Token != ""),
		)
		if err := httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
		close(errChan)
	}()

	select {
	case err, ok := <-errChan:
		if ok {
			return fmt.Errorf("mcp http server: %w", err)
		}
		return nil
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Warn("mcp http server shutdown error", zap.Error(err))
			return err
		}
		logger.Info("mcp server stopped", telemetry.EventField(telemetry.EventServeStop))
		return nil
	}
}

func bearerAuth(token string, logger *zap.Logger) func(http.Handler) http.Handler {
	expected := []byte("Bearer " + token)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if token == "" || r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}
			got := []byte(r.Header.Get("Authorization"))
			if subtle.ConstantTimeCompare(got, expected) != 1 {
				telemetry.LoggerWithRequest(r.Context(), logger).Warn("request rejected",
					telemetry.EventField(telemetry.EventAuthRejected),
					zap.String("reason", "bad bearer token"),
				)
				writeError(w, http.StatusUnauthorized, "unauthorized")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// originGuard rejects browser requests from origins that are not allowed.
// With no configured origins only loopback origins pass. Requests without
// an Origin header are not browser initiated and always pass.
func originGuard(allowed []string, logger *zap.Logger) func(http.Handler) http.Handler {
	allowAll := false
	set := make(map[string]struct{}, len(allowed))
	for _, origin := range allowed {
		if origin == "*" {
			allowAll = true
			continue
		}
		set[strings.TrimRight(origin, "/")] = struct{}{}
	}

	permitted := func(origin string) bool {
		if allowAll {
			return true
		}
		if len(set) == 0 {
			return isLoopbackOrigin(origin)
		}
		_, ok := set[strings.TrimRight(origin, "/")]
		return ok
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin == "" {
				next.ServeHTTP(w, r)
				return
			}
			if !permitted(origin) {
				telemetry.LoggerWithRequest(r.Context(), logger).Warn("request rejected",
					telemetry.EventField(telemetry.EventAuthRejected),
					zap.String("reason", "origin not allowed"),
					zap.String("origin", origin),
				)
				writeError(w, http.StatusForbidden, "origin not allowed")
				return
			}
			h := w.Header()
			h.Set("Access-Control-Allow-Origin", origin)
			h.Add("Vary", "Origin")
			h.Set("Access-Control-Allow-Headers", "Authorization, Content-Type, Mcp-Session-Id, Mcp-Protocol-Version, Last-Event-ID")
			h.Set("Access-Control-Expose-Headers", "Mcp-Session-Id")
			h.Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func isLoopbackOrigin(origin string) bool {
	u, err := url.Parse(origin)
	if err != nil || u.Host == "" {
		return false
	}
	host := u.Hostname()
	if host == "localhost" {
		return true
	}
	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}

func requestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			telemetry.LoggerWithRequest(r.Context(), logger).Debug("http request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.String("remote", r.RemoteAddr),
				telemetry.DurationField(time.Since(start)),
			)
		})
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
