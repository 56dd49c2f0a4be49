package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"trustable/internal/app"
	"trustable/internal/infra/mcpserver"
	"trustable/internal/scoring"
	"trustable/internal/tools"
)

func newToolsCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "tools",
		Short: "List the tools the server advertises",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return printTools(cmd.OutOrStdout(), tools.List(), format)
		},
	}

	cmd.Flags().StringVar(&format, "format", formatText, "output format: text, json or yaml")

	return cmd
}

func newCallCmd(opts *cliOptions) *cobra.Command {
	var args string

	cmd := &cobra.Command{
		Use:   "call <tool>",
		Short: "Invoke a tool in-process and print its result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, positional []string) error {
			raw := json.RawMessage(strings.TrimSpace(args))
			if len(raw) > 0 && !json.Valid(raw) {
				return errors.New("--args must be valid JSON")
			}

			ctx, cancel := signalAwareContext(cmd.Context())
			defer cancel()

			application, err := app.InitializeApplication(ctx, app.ServeConfig{
				ConfigPath: opts.configPath,
			}, app.LoggingConfig{
				Logger: opts.logger,
				Level:  opts.level,
			})
			if err != nil {
				return err
			}

			result, err := application.Server().CallTool(ctx, positional[0], raw)
			if err != nil {
				return err
			}
			text := mcpserver.ResultText(result)
			if result.IsError {
				return exitError{code: 2, message: text}
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), text)
			return err
		},
	}

	cmd.Flags().StringVar(&args, "args", "{}", "tool arguments as a JSON object")

	return cmd
}

type estimateFlags struct {
	platforms      int
	wikidata       bool
	googleBusiness bool
	schema         bool
	contentAge     int
	comparison     bool
	jsonOutput     bool
}

func newEstimateCmd() *cobra.Command {
	var flags estimateFlags

	cmd := &cobra.Command{
		Use:   "estimate",
		Short: "Estimate a Trustable Score from signals and show the breakdown",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			signals := scoring.Signals{
				PlatformCount:        flags.platforms,
				HasWikidata:          flags.wikidata,
				HasGoogleBusiness:    flags.googleBusiness,
				HasSchemaMarkup:      flags.schema,
				ContentAge:           flags.contentAge,
				HasComparisonContent: flags.comparison,
			}
			return printEstimate(cmd.OutOrStdout(), newEstimateReport(signals), flags.jsonOutput)
		},
	}

	cmd.Flags().IntVar(&flags.platforms, "platforms", scoring.DefaultPlatformCount, "number of platforms the brand publishes on")
	cmd.Flags().BoolVar(&flags.wikidata, "wikidata", false, "brand has a Wikidata entry")
	cmd.Flags().BoolVar(&flags.googleBusiness, "google-business", false, "brand has a Google Business profile")
	cmd.Flags().BoolVar(&flags.schema, "schema", false, "site uses JSON-LD schema markup")
	cmd.Flags().IntVar(&flags.contentAge, "content-age", scoring.DefaultContentAge, "average content age in months")
	cmd.Flags().BoolVar(&flags.comparison, "comparison", false, "brand publishes comparison content")
	cmd.Flags().BoolVar(&flags.jsonOutput, "json", false, "output JSON")

	return cmd
}
