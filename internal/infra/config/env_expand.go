package config

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// expandEnv replaces ${VAR} references in scalar values and reports the
// names that were not set. Keys are left untouched.
func expandEnv(raw []byte, lookup func(string) (string, bool)) (string, []string, error) {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	var root yaml.Node
	if err := yaml.Unmarshal(raw, &root); err != nil {
		return "", nil, fmt.Errorf("parse config: %w", err)
	}
	if root.Kind == 0 {
		return "", nil, nil
	}

	x := expander{lookup: lookup, missing: make(map[string]struct{})}
	x.node(&root)

	expanded, err := yaml.Marshal(&root)
	if err != nil {
		return "", nil, fmt.Errorf("encode expanded config: %w", err)
	}
	return string(expanded), x.missingNames(), nil
}

type expander struct {
	lookup  func(string) (string, bool)
	missing map[string]struct{}
}

func (x *expander) node(n *yaml.Node) {
	switch n.Kind {
	case yaml.DocumentNode, yaml.SequenceNode:
		for _, child := range n.Content {
			x.node(child)
		}
	case yaml.MappingNode:
		for i := 0; i+1 < len(n.Content); i += 2 {
			x.node(n.Content[i+1])
		}
	case yaml.AliasNode:
		if n.Alias != nil {
			x.node(n.Alias)
		}
	case yaml.ScalarNode:
		x.scalar(n)
	}
}

func (x *expander) scalar(n *yaml.Node) {
	if n.Tag != "" && n.Tag != "!!str" {
		return
	}
	if !strings.Contains(n.Value, "$") {
		return
	}

	expanded := os.Expand(n.Value, func(key string) string {
		if val, ok := x.lookup(key); ok {
			return val
		}
		x.missing[key] = struct{}{}
		return ""
	})
	if expanded == n.Value {
		return
	}

	// Quoted scalars stay strings; plain ones are retyped so that
	// `port: ${PORT}` still decodes as a number.
	if n.Style != 0 {
		n.Tag = "!!str"
		n.Value = expanded
		return
	}
	n.Tag, n.Value = retypeScalar(expanded)
}

func (x *expander) missingNames() []string {
	if len(x.missing) == 0 {
		return nil
	}
	names := make([]string, 0, len(x.missing))
	for name := range x.missing {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func retypeScalar(value string) (string, string) {
	if strings.TrimSpace(value) == "" {
		return "!!str", value
	}

	var parsed any
	if err := yaml.Unmarshal([]byte(value), &parsed); err != nil {
		return "!!str", value
	}

	switch v := parsed.(type) {
	case nil:
		return "!!null", "null"
	case bool:
		return "!!bool", strconv.FormatBool(v)
	case int:
		return "!!int", strconv.Itoa(v)
	case float64:
		return "!!float", strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return "!!str", value
	}
}
