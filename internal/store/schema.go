package store

import (
	"fmt"
	"sort"
)

// SchemaProblems compares a database schema against the required property
// types and describes every missing or mistyped column, sorted by name.
func SchemaProblems(schema, required map[string]string) []string {
	names := make([]string, 0, len(required))
	for name := range required {
		names = append(names, name)
	}
	sort.Strings(names)

	var problems []string
	for _, name := range names {
		want := required[name]
		got, ok := schema[name]
		switch {
		case !ok:
			problems = append(problems, fmt.Sprintf("missing %q (%s)", name, want))
		case got != want:
			problems = append(problems, fmt.Sprintf("%q is %s, want %s", name, got, want))
		}
	}
	return problems
}
