package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"

	"trustable/internal/app"
	"trustable/internal/infra/config"
)

const (
	clientClaude = "claude"
	clientCodex  = "codex"
)

func newValidateCmd(opts *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate the configuration without serving",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.NewLoader(opts.logger).Load(cmd.Context(), opts.configPath)
			if err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
				return exitSilent(1)
			}
			source := opts.configPath
			if source == "" {
				source = "defaults"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "configuration valid (%s): transport=%s server=%s@%s\n",
				source, cfg.Transport, cfg.Server.Name, cfg.Server.Version)
			return nil
		},
	}
}

type stdioEntry struct {
	Command string   `json:"command" toml:"command"`
	Args    []string `json:"args" toml:"args"`
}

type httpEntry struct {
	Type string `json:"type" toml:"-"`
	URL  string `json:"url" toml:"url"`
}

func newClientConfigCmd(opts *cliOptions) *cobra.Command {
	var (
		client  string
		name    string
		command string
		url     string
	)

	cmd := &cobra.Command{
		Use:   "client-config",
		Short: "Print an MCP client registration snippet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			entry := clientEntry(opts.configPath, command, url)
			out := cmd.OutOrStdout()
			switch strings.ToLower(strings.TrimSpace(client)) {
			case clientClaude:
				return writeJSON(out, map[string]any{
					"mcpServers": map[string]any{name: entry},
				})
			case clientCodex:
				data, err := toml.Marshal(map[string]any{
					"mcp_servers": map[string]any{name: entry},
				})
				if err != nil {
					return fmt.Errorf("encode codex config: %w", err)
				}
				_, err = out.Write(data)
				return err
			default:
				return fmt.Errorf("unsupported client %q (claude or codex)", client)
			}
		},
	}

	cmd.Flags().StringVar(&client, "client", clientClaude, "client flavor: claude or codex")
	cmd.Flags().StringVar(&name, "name", "trustable", "server name in the client config")
	cmd.Flags().StringVar(&command, "command", "", "binary path for stdio clients (default: this executable)")
	cmd.Flags().StringVar(&url, "url", "", "streamable-http endpoint; registers a remote server instead of stdio")

	return cmd
}

func clientEntry(configPath, command, url string) any {
	if url != "" {
		return httpEntry{Type: "http", URL: url}
	}
	if command == "" {
		command = app.Program
		if exe, err := os.Executable(); err == nil {
			command = exe
		}
	}
	args := []string{"serve"}
	if configPath != "" {
		args = append(args, "--config", configPath)
	}
	return stdioEntry{Command: command, Args: args}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), app.VersionInfo())
			return err
		},
	}
}
