package tools

import (
	"fmt"

	"trustable/internal/scoring"
)

const (
	sourceLabel     = "Trustable Labs - https://trustablelabs.com"
	learnMoreURL    = "https://trustablelabs.com/trustable-score"
	studyName       = "Trustable's 680M AI citation study"
	maintainTipText = "Maintain your AI visibility: keep content fresh, stay active on 4+ platforms and re-check your Trustable Score monthly"
)

// component is one weighted input of the measured Trustable Score.
type component struct {
	weight      int
	summary     string
	description string
}

var (
	citationFrequency = component{
		weight:      30,
		summary:     "How often AI mentions the brand",
		description: "How often AI platforms mention the brand in responses to relevant queries",
	}
	citationQuality = component{
		weight:      25,
		summary:     "Prominence and context of mentions",
		description: "Where the brand appears in a response and whether it is recommended, compared or only listed",
	}
	queryCoverage = component{
		weight:      25,
		summary:     "% of relevant queries where brand appears",
		description: "Share of category, comparison and problem queries in which the brand is cited",
	}
	crossPlatform = component{
		weight:      20,
		summary:     "Consistency across AI platforms",
		description: "Consistency of visibility across ChatGPT, Claude, Perplexity, Gemini and other AI platforms",
	}
)

func (c component) weighted() string {
	return fmt.Sprintf("%d%% - %s", c.weight, c.summary)
}

func (c component) detail() WeightedComponent {
	return WeightedComponent{Weight: fmt.Sprintf("%d%%", c.weight), Description: c.description}
}

var keyInsights = []string{
	"Brand search volume is the #1 predictor of AI visibility (0.334 correlation)",
	"Sites on 4+ platforms are 2.8x more likely to be cited",
	"32.5% of AI citations come from comparison content",
	"65% of cited content is less than 1 year old",
	"Backlinks have weak/neutral correlation with AI visibility",
}

var researchFindings = []string{
	"Brand search volume is the #1 predictor of AI visibility (0.334 correlation)",
	"Sites on 4+ platforms are 2.8x more likely to be cited by ChatGPT",
	"32.5% of AI citations come from comparison content",
	"65% of cited content is less than 1 year old",
	"Adding source citations to content can increase visibility by up to 115%",
	"Structured data (JSON-LD schema) makes content easier for AI systems to extract",
	"Wikidata entries establish entity recognition in knowledge graphs that feed AI",
	"Backlinks have weak/neutral correlation with AI visibility",
}

var geoRecommendations = []Recommendation{
	{
		Priority: 1,
		Action:   "Expand to 4+ platforms",
		Impact:   "2.8x more likely to appear in ChatGPT",
		Effort:   "medium",
		Details:  "Publish content on website, Medium, LinkedIn, Substack, industry publications",
	},
	{
		Priority: 2,
		Action:   "Create comparison content",
		Impact:   "32.5% of all AI citations come from comparisons",
		Effort:   "medium",
		Details:  "Create 'X vs Y vs Z' articles with structured HTML tables",
	},
	{
		Priority: 3,
		Action:   "Implement JSON-LD schema",
		Impact:   "Makes content machine-readable for AI extraction",
		Effort:   "low",
		Details:  "Add Organization, FAQPage, HowTo schemas to your site",
	},
	{
		Priority: 4,
		Action:   "Create Wikidata entry",
		Impact:   "Establishes entity recognition in knowledge graphs",
		Effort:   "low",
		Details:  "Wikidata feeds Google Knowledge Graph which feeds AI",
	},
	{
		Priority: 5,
		Action:   "Add source citations",
		Impact:   "Up to 115% visibility increase",
		Effort:   "low",
		Details:  "Reference statistics, research, and authoritative sources in content",
	},
	{
		Priority: 6,
		Action:   "Update content monthly",
		Impact:   "65% of AI citations are from past year",
		Effort:   "ongoing",
		Details:  "Fresh content gets priority in AI responses",
	},
}

var improvementTips = []string{
	"Expand to 4+ platforms (website, Medium, LinkedIn, Substack) - 2.8x more likely to be cited",
	"Create comparison content ('X vs Y') - 32.5% of AI citations come from comparisons",
	"Add JSON-LD schema markup (Organization, FAQPage, HowTo)",
	"Create a Wikidata entry to establish entity recognition",
	"Update content monthly - 65% of AI citations are from the past year",
}

// WeightedSummary lists the four score components as "weight - summary" strings.
type WeightedSummary struct {
	CitationFrequency string `json:"citationFrequency"`
	CitationQuality   string `json:"citationQuality"`
	QueryCoverage     string `json:"queryCoverage"`
	CrossPlatform     string `json:"crossPlatform"`
}

// WeightedComponent is the detailed form of a score component.
type WeightedComponent struct {
	Weight      string `json:"weight"`
	Description string `json:"description"`
}

// ComponentWeights lists the four score components in detail.
type ComponentWeights struct {
	CitationFrequency WeightedComponent `json:"citationFrequency"`
	CitationQuality   WeightedComponent `json:"citationQuality"`
	QueryCoverage     WeightedComponent `json:"queryCoverage"`
	CrossPlatform     WeightedComponent `json:"crossPlatform"`
}

type Methodology struct {
	Description string          `json:"description"`
	Components  WeightedSummary `json:"components"`
	KeyInsights []string        `json:"keyInsights"`
}

// ScoreReport is the get_trustable_score result.
type ScoreReport struct {
	Brand          string      `json:"brand"`
	Message        string      `json:"message"`
	EstimatedScore *int        `json:"estimatedScore"`
	Methodology    Methodology `json:"methodology"`
	LearnMore      string      `json:"learnMore"`
}

// VisibilityEstimate is the estimate_ai_visibility result.
type VisibilityEstimate struct {
	EstimatedTrustableScore int      `json:"estimatedTrustableScore"`
	Rating                  string   `json:"rating"`
	Interpretation          string   `json:"interpretation"`
	Methodology             string   `json:"methodology"`
	ImprovementTips         []string `json:"improvementTips"`
	Source                  string   `json:"source"`
}

// Recommendation is one GEO action.
type Recommendation struct {
	Priority int    `json:"priority"`
	Action   string `json:"action"`
	Impact   string `json:"impact"`
	Effort   string `json:"effort"`
	Details  string `json:"details"`
}

// GEORecommendations is the get_geo_recommendations result.
type GEORecommendations struct {
	Title           string           `json:"title"`
	Source          string           `json:"source"`
	BasedOn         string           `json:"basedOn"`
	Recommendations []Recommendation `json:"recommendations"`
	KeyInsight      string           `json:"keyInsight"`
	GetStarted      string           `json:"getStarted"`
}

// RatingDescriptions maps each rating band to its description.
type RatingDescriptions struct {
	Excellent string `json:"excellent"`
	Good      string `json:"good"`
	Moderate  string `json:"moderate"`
	Low       string `json:"low"`
	Minimal   string `json:"minimal"`
}

// ScoreExplanation is the explain_trustable_score result.
type ScoreExplanation struct {
	What                string             `json:"what"`
	Developer           string             `json:"developer"`
	Range               string             `json:"range"`
	Ratings             RatingDescriptions `json:"ratings"`
	Components          ComponentWeights   `json:"components"`
	KeyResearchFindings []string           `json:"keyResearchFindings"`
	DifferenceFromSEO   string             `json:"differenceFromSEO"`
	LearnMore           string             `json:"learnMore"`
}

func newScoreReport(brand string) *ScoreReport {
	return &ScoreReport{
		Brand: brand,
		Message: fmt.Sprintf("A live Trustable Score for %s requires a full AI citation analysis across ChatGPT, "+
			"Claude, Perplexity and Gemini. This tool does not compute a live score; use estimate_ai_visibility "+
			"for a signal-based estimate.", brand),
		EstimatedScore: nil,
		Methodology: Methodology{
			Description: "The Trustable Score (0-100) measures how often and how prominently a brand appears in " +
				"AI-generated responses. Based on research analyzing 680 million AI citations.",
			Components: WeightedSummary{
				CitationFrequency: citationFrequency.weighted(),
				CitationQuality:   citationQuality.weighted(),
				QueryCoverage:     queryCoverage.weighted(),
				CrossPlatform:     crossPlatform.weighted(),
			},
			KeyInsights: append([]string(nil), keyInsights...),
		},
		LearnMore: learnMoreURL,
	}
}

func newVisibilityEstimate(result scoring.Result) *VisibilityEstimate {
	tips := []string{maintainTipText}
	if result.Score < tipsBelowScore() {
		tips = append([]string(nil), improvementTips...)
	}
	return &VisibilityEstimate{
		EstimatedTrustableScore: result.Score,
		Rating:                  result.Rating.String(),
		Interpretation:          result.Rating.Label(),
		Methodology: "Estimated from observable signals (platform diversity, entity recognition, technical " +
			"markup, content freshness, comparison content) using " + studyName + ". This is an estimate, not a " +
			"measured score.",
		ImprovementTips: tips,
		Source:          sourceLabel,
	}
}

// tipsBelowScore is the lowest score that gets only the maintain tip: the
// bottom of the good band.
func tipsBelowScore() int {
	for _, b := range scoring.Bands() {
		if b.Rating == scoring.RatingGood {
			return b.Min
		}
	}
	return scoring.MaxScore
}

func newGEORecommendations() *GEORecommendations {
	return &GEORecommendations{
		Title:           "GEO (Generative Engine Optimization) Recommendations",
		Source:          sourceLabel,
		BasedOn:         "Analysis of 680 million AI citations",
		Recommendations: append([]Recommendation(nil), geoRecommendations...),
		KeyInsight: "Backlinks don't predict AI visibility. Brand awareness and platform diversity are the " +
			"key drivers.",
		GetStarted: "Start with the low-effort wins (JSON-LD schema, Wikidata entry, source citations), then " +
			"expand to 4+ platforms and publish comparison content. Track progress at " + learnMoreURL,
	}
}

func newScoreExplanation() *ScoreExplanation {
	ratings := RatingDescriptions{}
	for _, b := range scoring.Bands() {
		text := fmt.Sprintf("%d-%d: %s", b.Min, b.Max, b.Label)
		switch b.Rating {
		case scoring.RatingExcellent:
			ratings.Excellent = text
		case scoring.RatingGood:
			ratings.Good = text
		case scoring.RatingModerate:
			ratings.Moderate = text
		case scoring.RatingLow:
			ratings.Low = text
		case scoring.RatingMinimal:
			ratings.Minimal = text
		}
	}
	return &ScoreExplanation{
		What:      "The Trustable Score is a 0-100 metric measuring how often a brand appears in AI-generated responses",
		Developer: "Trustable Labs (https://trustablelabs.com)",
		Range:     fmt.Sprintf("%d-%d", scoring.MinScore, scoring.MaxScore),
		Ratings:   ratings,
		Components: ComponentWeights{
			CitationFrequency: citationFrequency.detail(),
			CitationQuality:   citationQuality.detail(),
			QueryCoverage:     queryCoverage.detail(),
			CrossPlatform:     crossPlatform.detail(),
		},
		KeyResearchFindings: append([]string(nil), researchFindings...),
		DifferenceFromSEO: "SEO optimizes for ranked links in search results; the Trustable Score measures whether " +
			"AI systems cite the brand in generated answers. AI visibility is driven by brand awareness, platform " +
			"diversity, comparison content and freshness, while backlinks matter little.",
		LearnMore: learnMoreURL,
	}
}
