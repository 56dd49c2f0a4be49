package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"trustable/internal/domain"
	"trustable/internal/scoring"
)

const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

func writeJSON(out io.Writer, value any) error {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, string(data))
	return err
}

func writeYAML(out io.Writer, value any) error {
	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(value); err != nil {
		return err
	}
	return enc.Close()
}

func printTools(out io.Writer, descriptors []domain.ToolDescriptor, format string) error {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", formatText:
		for _, d := range descriptors {
			fmt.Fprintln(out, d.Name)
			fmt.Fprintf(out, "  %s\n", d.Description)
			for _, f := range d.Fields {
				required := ""
				if f.Required {
					required = ", required"
				}
				fmt.Fprintf(out, "  - %s (%s%s)\n", f.Name, f.Type, required)
			}
		}
		return nil
	case formatJSON:
		return writeJSON(out, map[string]any{"tools": descriptors})
	case formatYAML:
		return writeYAML(out, map[string]any{"tools": descriptors})
	default:
		return fmt.Errorf("unsupported format %q (text, json or yaml)", format)
	}
}

type estimateReport struct {
	Score          int               `json:"score"`
	Rating         string            `json:"rating"`
	Interpretation string            `json:"interpretation"`
	Signals        scoring.Signals   `json:"signals"`
	Breakdown      scoring.Breakdown `json:"breakdown"`
	RawScore       int               `json:"rawScore"`
}

func newEstimateReport(signals scoring.Signals) estimateReport {
	result := scoring.Evaluate(signals)
	breakdown := scoring.Explain(signals)
	return estimateReport{
		Score:          result.Score,
		Rating:         result.Rating.String(),
		Interpretation: result.Rating.Label(),
		Signals:        signals,
		Breakdown:      breakdown,
		RawScore:       breakdown.Total(),
	}
}

func printEstimate(out io.Writer, report estimateReport, jsonOutput bool) error {
	if jsonOutput {
		return writeJSON(out, report)
	}
	fmt.Fprintf(out, "Trustable Score: %d (%s)\n", report.Score, report.Rating)
	fmt.Fprintf(out, "%s\n\n", report.Interpretation)

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "CATEGORY\tPOINTS")
	fmt.Fprintf(tw, "base\t%d\n", report.Breakdown.Base)
	fmt.Fprintf(tw, "platform diversity\t%d\n", report.Breakdown.PlatformDiversity)
	fmt.Fprintf(tw, "entity recognition\t%d\n", report.Breakdown.EntityRecognition)
	fmt.Fprintf(tw, "technical\t%d\n", report.Breakdown.Technical)
	fmt.Fprintf(tw, "content\t%d\n", report.Breakdown.Content)
	fmt.Fprintf(tw, "raw total\t%d\n", report.RawScore)
	return tw.Flush()
}
