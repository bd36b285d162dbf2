package router

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nguyentantai21042004/meeting-flow/internal/models"
	"github.com/nguyentantai21042004/meeting-flow/internal/registry"
)

func testRegistry() *registry.Registry {
	return registry.New([]models.Employee{
		{Name: "Sanya", Department: []string{Marketing, SocialMedia}},
		{Name: "Ravi", Department: []string{HR}},
		{Name: "Mei", Department: []string{Operations}},
	})
}

func allDestinations() map[string]string {
	return map[string]string{
		HR:          "db-hr",
		Marketing:   "db-mkt",
		SocialMedia: "db-social",
		Operations:  "db-ops",
		AIResearch:  "db-ai",
	}
}

func TestRoute(t *testing.T) {
	r := New(testRegistry(), allDestinations())

	tests := []struct {
		name string
		task models.Task
		want []string
	}{
		{
			name: "assignee with two departments",
			task: models.Task{Text: "Draft the campaign brief", Assignee: "sanya"},
			want: []string{Marketing, SocialMedia},
		},
		{
			name: "second employee mentioned in text",
			task: models.Task{Text: "Sanya and Ravi will plan the offsite", Assignee: "Sanya"},
			want: []string{Marketing, SocialMedia, HR},
		},
		{
			name: "role keyword developer",
			task: models.Task{Text: "Fix the login bug", Role: "Backend Developer"},
			want: []string{AIResearch},
		},
		{
			name: "role keyword engineer",
			task: models.Task{Text: "Add analytics events", Role: "Backend Engineer"},
			want: []string{AIResearch},
		},
		{
			name: "role ignored when a person matched",
			task: models.Task{Text: "Ask Mei for the budget", Role: "HR Manager"},
			want: []string{Operations},
		},
		{
			name: "unknown assignee falls through to role",
			task: models.Task{Text: "Hire two interns", Assignee: "Bob", Role: "Human Resources"},
			want: []string{HR},
		},
		{
			name: "nothing matches and no default",
			task: models.Task{Text: "Think about it"},
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.Route(tt.task))
		})
	}
}

func TestRouteDefault(t *testing.T) {
	dest := allDestinations()
	dest[models.DefaultDestination] = "db-default"
	r := New(testRegistry(), dest)

	assert.Equal(t, []string{models.DefaultDestination}, r.Route(models.Task{Text: "Think about it"}))
}

func TestRouteUnconfiguredCategoryFallsBackToDefault(t *testing.T) {
	r := New(testRegistry(), map[string]string{models.DefaultDestination: "db-default"})
	assert.Equal(t, []string{models.DefaultDestination}, r.Route(models.Task{Text: "x", Assignee: "Ravi"}))

	r = New(testRegistry(), map[string]string{Marketing: "db-mkt"})
	assert.Equal(t, []string{Marketing}, r.Route(models.Task{Text: "x", Assignee: "Sanya"}))
}

func TestRoleCategories(t *testing.T) {
	tests := []struct {
		role string
		want []string
	}{
		{"HR Partner", []string{HR}},
		{"Social Media Manager", []string{SocialMedia}},
		{"Marketing and Social Media", []string{Marketing, SocialMedia}},
		{"Project Management", []string{Operations}},
		{"Business Development Lead", []string{BusinessDevelopment}},
		{"AI researcher", []string{AIResearch}},
		{"Tech lead", []string{AIResearch}},
		{"Backend Engineer", []string{AIResearch}},
		{"Sales Engineer", []string{AIResearch}},
		{"Chair", nil},
		{"Three-way partner", nil},
		{"", nil},
	}
	for _, tt := range tests {
		t.Run(tt.role, func(t *testing.T) {
			assert.Equal(t, tt.want, RoleCategories(tt.role))
		})
	}
}

func TestNameMentionIsSubstring(t *testing.T) {
	r := New(testRegistry(), allDestinations())
	// "Mei" inside "meinung" still matches; the heuristic does not guard
	// against short names.
	assert.Equal(t, []string{Operations}, r.Categories(models.Task{Text: "Collect every meinung"}))
}
