package tools

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"trustable/internal/domain"
)

func TestList_FixedOrder(t *testing.T) {
	want := []domain.ToolName{
		domain.ToolGetTrustableScore,
		domain.ToolEstimateAIVisibility,
		domain.ToolGetGEORecommendations,
		domain.ToolExplainTrustableScore,
	}

	for i := 0; i < 3; i++ {
		got := List()
		require.Len(t, got, 4)
		names := make([]domain.ToolName, 0, len(got))
		for _, d := range got {
			names = append(names, d.Name)
		}
		require.Equal(t, want, names)
		require.Equal(t, domain.ToolNames(), names)
	}
}

func TestList_ReturnsCopies(t *testing.T) {
	first := List()
	first[0].Name = "mutated"
	first[1].Fields[0].Name = "mutated"

	second := List()
	require.Equal(t, domain.ToolGetTrustableScore, second[0].Name)
	require.Equal(t, "brand", second[1].Fields[0].Name)
}

func TestLookup(t *testing.T) {
	desc, ok := Lookup(domain.ToolGetTrustableScore)
	require.True(t, ok)
	require.Equal(t, []string{"brand"}, desc.RequiredFields())

	_, ok = Lookup("nonexistent_tool")
	require.False(t, ok)
}

func TestCatalog_EstimateFieldsAndDefaults(t *testing.T) {
	desc, ok := Lookup(domain.ToolEstimateAIVisibility)
	require.True(t, ok)
	require.Empty(t, desc.RequiredFields())

	names := make([]string, 0, len(desc.Fields))
	defaults := make(map[string]any)
	for _, f := range desc.Fields {
		names = append(names, f.Name)
		if f.Default != nil {
			defaults[f.Name] = f.Default
		}
	}
	require.Equal(t, []string{
		"brand",
		"platformCount",
		"hasWikidata",
		"hasGoogleBusiness",
		"hasSchemaMarkup",
		"contentAge",
		"hasComparisonContent",
	}, names)
	require.Equal(t, 1, defaults["platformCount"])
	require.Equal(t, 12, defaults["contentAge"])
	require.Equal(t, false, defaults["hasWikidata"])
}

func TestInputSchema(t *testing.T) {
	for _, d := range List() {
		t.Run(string(d.Name), func(t *testing.T) {
			schema, err := InputSchema(d)
			require.NoError(t, err)
			require.Equal(t, "object", schema.Type)
			require.Len(t, schema.Properties, len(d.Fields))
			require.Equal(t, d.RequiredFields(), schema.Required)
			for _, f := range d.Fields {
				prop, ok := schema.Properties[f.Name]
				require.True(t, ok)
				require.Equal(t, string(f.Type), prop.Type)
				require.Equal(t, f.Description, prop.Description)
			}

			_, err = schema.Resolve(nil)
			require.NoError(t, err)
		})
	}
}

func TestInputSchema_DefaultsEncoded(t *testing.T) {
	desc, _ := Lookup(domain.ToolEstimateAIVisibility)
	schema := MustInputSchema(desc)

	var platformDefault int
	require.NoError(t, json.Unmarshal(schema.Properties["platformCount"].Default, &platformDefault))
	require.Equal(t, 1, platformDefault)
	require.JSONEq(t, "false", string(schema.Properties["hasSchemaMarkup"].Default))
	require.Nil(t, schema.Properties["brand"].Default)
}
