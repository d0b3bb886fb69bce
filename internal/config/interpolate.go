package config

import (
	"sort"
	"strconv"
	"strings"

	"github.com/drone/envsubst"
	"gopkg.in/yaml.v3"
)

// MissingEnvError is returned when a ${VAR} placeholder names a variable
// that is unset or empty.
type MissingEnvError struct {
	Vars []string
}

// Error implements the error interface
func (e *MissingEnvError) Error() string {
	if len(e.Vars) == 1 {
		return "missing required environment variable " + e.Vars[0]
	}
	return "missing required environment variables " + strings.Join(e.Vars, ", ")
}

// interpolate substitutes placeholders in every string value of the
// document. Mapping keys are left untouched.
func interpolate(root *yaml.Node, lookup LookupFunc) error {
	missing := make(map[string]struct{})
	var malformed []string

	var walk func(n *yaml.Node)
	walk = func(n *yaml.Node) {
		switch n.Kind {
		case yaml.DocumentNode, yaml.SequenceNode:
			for _, child := range n.Content {
				walk(child)
			}
		case yaml.MappingNode:
			for i := 1; i < len(n.Content); i += 2 {
				walk(n.Content[i])
			}
		case yaml.ScalarNode:
			if n.ShortTag() != "!!str" || !strings.Contains(n.Value, "${") {
				return
			}
			value, bad := expand(n.Value, lookup, missing)
			if bad {
				malformed = append(malformed, n.Value)
				return
			}
			n.Value = value
		}
	}
	walk(root)

	if len(missing) > 0 {
		vars := make([]string, 0, len(missing))
		for name := range missing {
			vars = append(vars, name)
		}
		sort.Strings(vars)
		return &MissingEnvError{Vars: vars}
	}

	if len(malformed) > 0 {
		problems := make([]string, len(malformed))
		for i, v := range malformed {
			problems[i] = "malformed placeholder in " + strconv.Quote(v)
		}
		return &ValidationError{Problems: problems}
	}

	return nil
}

// expand resolves all placeholders in s. Names that cannot be resolved are
// added to missing. bad is true when s has a "${" that is not a well
// formed placeholder.
func expand(s string, lookup LookupFunc, missing map[string]struct{}) (string, bool) {
	value, err := envsubst.Eval(s, func(name string) string {
		v, ok := lookup(name)
		if !ok || v == "" {
			missing[name] = struct{}{}
			return ""
		}
		return v
	})
	if err != nil {
		return s, true
	}
	// no loaded string may keep a "${", whether left unparsed or substituted in
	if strings.Contains(value, "${") {
		return s, true
	}
	return value, false
}
