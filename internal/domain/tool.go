package domain

// ToolName identifies one of the tools served by this process.
type ToolName string

const (
	ToolGetTrustableScore     ToolName = "get_trustable_score"
	ToolEstimateAIVisibility  ToolName = "estimate_ai_visibility"
	ToolGetGEORecommendations ToolName = "get_geo_recommendations"
	ToolExplainTrustableScore ToolName = "explain_trustable_score"
)

// ToolNames lists every tool in catalog order.
func ToolNames() []ToolName {
	return []ToolName{
		ToolGetTrustableScore,
		ToolEstimateAIVisibility,
		ToolGetGEORecommendations,
		ToolExplainTrustableScore,
	}
}

// ParseToolName maps a wire name onto the closed tool set.
func ParseToolName(name string) (ToolName, bool) {
	switch ToolName(name) {
	case ToolGetTrustableScore, ToolEstimateAIVisibility, ToolGetGEORecommendations, ToolExplainTrustableScore:
		return ToolName(name), true
	default:
		return "", false
	}
}

func (n ToolName) String() string {
	return string(n)
}

// FieldType is the JSON type of a tool input field.
type FieldType string

const (
	FieldString  FieldType = "string"
	FieldInteger FieldType = "integer"
	FieldBoolean FieldType = "boolean"
)

// FieldSpec declares one input field of a tool.
type FieldSpec struct {
	Name        string    `json:"name" yaml:"name"`
	Type        FieldType `json:"type" yaml:"type"`
	Required    bool      `json:"required" yaml:"required"`
	Description string    `json:"description" yaml:"description"`
	Default     any       `json:"default,omitempty" yaml:"default,omitempty"`
}

// ToolDescriptor is the immutable catalog entry of a tool.
type ToolDescriptor struct {
	Name        ToolName    `json:"name" yaml:"name"`
	Description string      `json:"description" yaml:"description"`
	Fields      []FieldSpec `json:"fields" yaml:"fields"`
}

// RequiredFields returns the names of required fields in declaration order.
func (d ToolDescriptor) RequiredFields() []string {
	var out []string
	for _, f := range d.Fields {
		if f.Required {
			out = append(out, f.Name)
		}
	}
	return out
}

// Clone returns a copy that shares no slices with d.
func (d ToolDescriptor) Clone() ToolDescriptor {
	out := d
	if d.Fields != nil {
		out.Fields = append([]FieldSpec(nil), d.Fields...)
	}
	return out
}
