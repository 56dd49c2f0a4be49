package scoring

// SignalsInput is the caller-facing form of Signals. Nil fields take the
// documented defaults: one platform, twelve months of content age and every
// boolean false.
type SignalsInput struct {
	Brand                *string `json:"brand,omitempty"`
	PlatformCount        *int    `json:"platformCount,omitempty"`
	HasWikidata          *bool   `json:"hasWikidata,omitempty"`
	HasGoogleBusiness    *bool   `json:"hasGoogleBusiness,omitempty"`
	HasSchemaMarkup      *bool   `json:"hasSchemaMarkup,omitempty"`
	ContentAge           *int    `json:"contentAge,omitempty"`
	HasComparisonContent *bool   `json:"hasComparisonContent,omitempty"`
}

// Resolve merges the input over DefaultSignals.
func (in SignalsInput) Resolve() Signals {
	s := DefaultSignals()
	if in.PlatformCount != nil {
		s.PlatformCount = *in.PlatformCount
	}
	if in.HasWikidata != nil {
		s.HasWikidata = *in.HasWikidata
	}
	if in.HasGoogleBusiness != nil {
		s.HasGoogleBusiness = *in.HasGoogleBusiness
	}
	if in.HasSchemaMarkup != nil {
		s.HasSchemaMarkup = *in.HasSchemaMarkup
	}
	if in.ContentAge != nil {
		s.ContentAge = *in.ContentAge
	}
	if in.HasComparisonContent != nil {
		s.HasComparisonContent = *in.HasComparisonContent
	}
	return s
}
