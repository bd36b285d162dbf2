package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSchemaProblems(t *testing.T) {
	required := map[string]string{
		"Name":     "title",
		"Priority": "select",
		"Deadline": "date",
	}

	assert.Empty(t, SchemaProblems(map[string]string{
		"Name": "title", "Priority": "select", "Deadline": "date", "Extra": "url",
	}, required))

	assert.Equal(t, []string{
		`missing "Deadline" (date)`,
		`"Priority" is rich_text, want select`,
	}, SchemaProblems(map[string]string{"Name": "title", "Priority": "rich_text"}, required))
}
