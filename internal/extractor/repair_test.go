package extractor

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRepair(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"missing trailing bracket", `[{"text":"a"},{"text":"b"}`, `[{"text":"a"},{"text":"b"}]`},
		{"missing object and array", `[{"text":"a"`, `[{"text":"a"}]`},
		{"dangling comma", "[{\"text\":\"a\"},\n", `[{"text":"a"}]`},
		{"dangling colon", `[{"text":`, `[{"text":null}]`},
		{"inside string", `[{"text":"send the rep`, `[{"text":"send the rep"}]`},
		{"brackets inside strings ignored", `[{"text":"use [brackets] {here}"`, `[{"text":"use [brackets] {here}"}]`},
		{"nested arrays", `[{"tags":["a","b"]`, `[{"tags":["a","b"]}]`},
		{"already balanced", `[1,2]`, `[1,2]`},
		{"trailing escape", `["a\`, `["a"]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Repair(tt.in)
			assert.Equal(t, tt.want, got)
			assert.True(t, json.Valid([]byte(got)), "repaired output must be valid JSON: %s", got)
		})
	}
}
