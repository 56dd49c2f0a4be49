// Package scoring estimates the Trustable Score from observable brand signals.
//
// The estimate is a capped additive sum: a base of 20 points plus independent
// terms for platform diversity, entity recognition, technical markup, content
// freshness and comparison content. The result is clamped to [0, 100].
package scoring

const (
	MinScore = 0
	MaxScore = 100

	basePoints = 20

	platformTierCount  = 4
	platformTierPoints = 25
	platformMinCount   = 2
	pointsPerPlatform  = 5

	wikidataPoints       = 10
	googleBusinessPoints = 8
	schemaMarkupPoints   = 10
	comparisonPoints     = 15

	freshAgeMonths  = 6
	freshPoints     = 12
	recentAgeMonths = 12
	recentPoints    = 8
)

const (
	DefaultPlatformCount = 1
	DefaultContentAge    = 12
)

// Signals are the observable inputs of the estimate.
type Signals struct {
	PlatformCount        int  `json:"platformCount"`
	HasWikidata          bool `json:"hasWikidata"`
	HasGoogleBusiness    bool `json:"hasGoogleBusiness"`
	HasSchemaMarkup      bool `json:"hasSchemaMarkup"`
	ContentAge           int  `json:"contentAge"`
	HasComparisonContent bool `json:"hasComparisonContent"`
}

// DefaultSignals returns the signals assumed when a caller supplies nothing.
func DefaultSignals() Signals {
	return Signals{
		PlatformCount: DefaultPlatformCount,
		ContentAge:    DefaultContentAge,
	}
}

// Breakdown splits the raw (unclamped) score into its categories.
type Breakdown struct {
	Base              int `json:"base"`
	PlatformDiversity int `json:"platformDiversity"`
	EntityRecognition int `json:"entityRecognition"`
	Technical         int `json:"technical"`
	Content           int `json:"content"`
}

// Total is the unclamped sum of all categories.
func (b Breakdown) Total() int {
	return b.Base + b.PlatformDiversity + b.EntityRecognition + b.Technical + b.Content
}

// Result is a clamped score and its rating.
type Result struct {
	Score  int    `json:"score"`
	Rating Rating `json:"rating"`
}

// Estimate returns the Trustable Score for s, always within [MinScore, MaxScore].
func Estimate(s Signals) int {
	return clamp(Explain(s).Total())
}

// Evaluate returns the clamped score together with its rating.
func Evaluate(s Signals) Result {
	score := Estimate(s)
	return Result{Score: score, Rating: RatingFor(score)}
}

// Explain returns the per-category contribution of each signal.
func Explain(s Signals) Breakdown {
	b := Breakdown{
		Base:              basePoints,
		PlatformDiversity: platformPoints(s.PlatformCount),
		Content:           freshnessPoints(s.ContentAge),
	}
	if s.HasWikidata {
		b.EntityRecognition += wikidataPoints
	}
	if s.HasGoogleBusiness {
		b.EntityRecognition += googleBusinessPoints
	}
	if s.HasSchemaMarkup {
		b.Technical += schemaMarkupPoints
	}
	if s.HasComparisonContent {
		b.Content += comparisonPoints
	}
	return b
}

// platformPoints is tiered: linear from two platforms, flat from four.
func platformPoints(count int) int {
	switch {
	case count >= platformTierCount:
		return platformTierPoints
	case count >= platformMinCount:
		return pointsPerPlatform * count
	default:
		return 0
	}
}

func freshnessPoints(ageMonths int) int {
	switch {
	case ageMonths <= freshAgeMonths:
		return freshPoints
	case ageMonths <= recentAgeMonths:
		return recentPoints
	default:
		return 0
	}
}

func clamp(score int) int {
	if score < MinScore {
		return MinScore
	}
	if score > MaxScore {
		return MaxScore
	}
	return score
}
