package tools

import (
	"encoding/json"
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"

	"trustable/internal/domain"
)

// InputSchema renders the descriptor's fields as a JSON Schema object.
func InputSchema(d domain.ToolDescriptor) (*jsonschema.Schema, error) {
	schema := &jsonschema.Schema{
		Type:       "object",
		Properties: make(map[string]*jsonschema.Schema, len(d.Fields)),
	}
	for _, f := range d.Fields {
		prop := &jsonschema.Schema{
			Type:        string(f.Type),
			Description: f.Description,
		}
		if f.Default != nil {
			raw, err := json.Marshal(f.Default)
			if err != nil {
				return nil, fmt.Errorf("%s.%s: encode default: %w", d.Name, f.Name, err)
			}
			prop.Default = raw
		}
		schema.Properties[f.Name] = prop
	}
	schema.Required = d.RequiredFields()
	return schema, nil
}

// MustInputSchema is InputSchema for the static catalog; it panics on error.
func MustInputSchema(d domain.ToolDescriptor) *jsonschema.Schema {
	schema, err := InputSchema(d)
	if err != nil {
		panic(err)
	}
	return schema
}

func resolveSchemas() (map[domain.ToolName]*jsonschema.Resolved, error) {
	resolved := make(map[domain.ToolName]*jsonschema.Resolved, len(catalog))
	for _, d := range catalog {
		schema, err := InputSchema(d)
		if err != nil {
			return nil, err
		}
		r, err := schema.Resolve(nil)
		if err != nil {
			return nil, fmt.Errorf("resolve %s input schema: %w", d.Name, err)
		}
		resolved[d.Name] = r
	}
	return resolved, nil
}
