// Package tools holds the tool catalog and the dispatcher that routes tool
// calls to their handlers.
package tools

import (
	"trustable/internal/domain"
	"trustable/internal/scoring"
)

var catalog = []domain.ToolDescriptor{
	{
		Name: domain.ToolGetTrustableScore,
		Description: "Get the Trustable Score methodology for a brand. The Trustable Score (0-100) measures how often " +
			"and how prominently a brand appears in AI-generated responses across ChatGPT, Claude, Perplexity and " +
			"other AI platforms. No live score is computed; the response explains how the score is measured.",
		Fields: []domain.FieldSpec{
			{Name: "brand", Type: domain.FieldString, Required: true, Description: "Brand name to look up"},
		},
	},
	{
		Name: domain.ToolEstimateAIVisibility,
		Description: "Estimate a brand's AI visibility from observable signals. Returns an estimated Trustable " +
			"Score, its rating band and improvement tips. Based on research analyzing 680 million AI citations.",
		Fields: []domain.FieldSpec{
			{Name: "brand", Type: domain.FieldString, Description: "Brand name (informational)"},
			{
				Name:        "platformCount",
				Type:        domain.FieldInteger,
				Description: "Number of platforms the brand publishes on (website, Medium, LinkedIn, etc.)",
				Default:     scoring.DefaultPlatformCount,
			},
			{Name: "hasWikidata", Type: domain.FieldBoolean, Description: "Brand has a Wikidata entry", Default: false},
			{Name: "hasGoogleBusiness", Type: domain.FieldBoolean, Description: "Brand has a Google Business Profile", Default: false},
			{Name: "hasSchemaMarkup", Type: domain.FieldBoolean, Description: "Site has JSON-LD schema markup", Default: false},
			{
				Name:        "contentAge",
				Type:        domain.FieldInteger,
				Description: "Average age of published content in months",
				Default:     scoring.DefaultContentAge,
			},
			{Name: "hasComparisonContent", Type: domain.FieldBoolean, Description: "Has comparison or listicle content", Default: false},
		},
	},
	{
		Name: domain.ToolGetGEORecommendations,
		Description: "Get GEO (Generative Engine Optimization) recommendations for improving AI visibility. " +
			"Unlike SEO, AI visibility is driven by brand search volume, platform diversity, comparison content " +
			"and content freshness rather than backlinks.",
		Fields: []domain.FieldSpec{
			{Name: "currentScore", Type: domain.FieldInteger, Description: "Current Trustable Score (0-100)"},
		},
	},
	{
		Name: domain.ToolExplainTrustableScore,
		Description: "Explain what the Trustable Score is, how it is calculated and how it differs from SEO metrics. " +
			"Developed by Trustable Labs from an analysis of 680M AI citations.",
	},
}

// List returns the tool descriptors in catalog order. The returned slice is a
// copy; the catalog itself never changes.
func List() []domain.ToolDescriptor {
	out := make([]domain.ToolDescriptor, 0, len(catalog))
	for _, d := range catalog {
		out = append(out, d.Clone())
	}
	return out
}

// Lookup returns the descriptor of a known tool.
func Lookup(name domain.ToolName) (domain.ToolDescriptor, bool) {
	for _, d := range catalog {
		if d.Name == name {
			return d.Clone(), true
		}
	}
	return domain.ToolDescriptor{}, false
}
