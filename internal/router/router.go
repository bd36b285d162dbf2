// Package router decides which destination boards a task is written to.
//
// Routing is a best-effort heuristic: the assignee's departments, plus the
// departments of any other employee whose name appears in the task text,
// then role keywords when nothing matched, then the default destination.
// Name mentions are plain case-insensitive substring matches, so a short
// name that happens to occur inside another word also matches.
package router

import (
	"strings"
	"unicode"

	"github.com/nguyentantai21042004/meeting-flow/internal/models"
	"github.com/nguyentantai21042004/meeting-flow/internal/registry"
)

const (
	HR                  = "HR"
	Marketing           = "Marketing"
	SocialMedia         = "Social Media"
	Operations          = "Operations"
	BusinessDevelopment = "Business Development"
	AIResearch          = "AI Research & Development"
)

type roleRule struct {
	category string
	keywords []string
}

// Each rule is checked independently, so one role can hit several.
var roleRules = []roleRule{
	{HR, []string{"hr", "human resources"}},
	{Marketing, []string{"marketing"}},
	{SocialMedia, []string{"social media"}},
	{Operations, []string{"operations", "project management"}},
	{BusinessDevelopment, []string{"business", "development"}},
	{AIResearch, []string{"ai", "tech", "developer", "engineer"}},
}

// Router maps tasks to configured destination names.
type Router struct {
	registry     *registry.Registry
	destinations map[string]string
}

// New creates a Router. destinations maps destination names to store ids;
// only names present there are ever returned.
func New(reg *registry.Registry, destinations map[string]string) *Router {
	return &Router{
		registry:     reg,
		destinations: destinations,
	}
}

// Categories returns the raw categories for a task in discovery order,
// before they are matched against configured destinations.
func (r *Router) Categories(task models.Task) []string {
	set := newOrderedSet()

	if task.Assignee != "" {
		set.add(r.registry.Departments(task.Assignee)...)
	}

	text := strings.ToLower(task.Text)
	for _, e := range r.registry.Employees() {
		if strings.Contains(text, strings.ToLower(e.Name)) {
			set.add(e.Department...)
		}
	}

	if set.len() == 0 && task.Role != "" {
		set.add(RoleCategories(task.Role)...)
	}

	return set.items
}

// Route returns the destinations a task is written to. An empty result is a
// routing failure: nothing matched a configured destination and there is no
// default.
func (r *Router) Route(task models.Task) []string {
	var routed []string
	for _, c := range r.Categories(task) {
		if _, ok := r.destinations[c]; ok {
			routed = append(routed, c)
		}
	}
	if len(routed) > 0 {
		return routed
	}
	if _, ok := r.destinations[models.DefaultDestination]; ok {
		return []string{models.DefaultDestination}
	}
	return nil
}

// RoleCategories applies the keyword ontology to a role. Keywords of two
// letters or fewer ("hr", "ai") must match a whole word; longer ones match
// anywhere in the role.
func RoleCategories(role string) []string {
	lower := strings.ToLower(role)
	words := strings.FieldsFunc(lower, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	var out []string
	for _, rule := range roleRules {
		for _, kw := range rule.keywords {
			if matchKeyword(lower, words, kw) {
				out = append(out, rule.category)
				break
			}
		}
	}
	return out
}

func matchKeyword(lower string, words []string, kw string) bool {
	if len(kw) > 2 {
		return strings.Contains(lower, kw)
	}
	for _, w := range words {
		if w == kw {
			return true
		}
	}
	return false
}

type orderedSet struct {
	seen  map[string]struct{}
	items []string
}

func newOrderedSet() *orderedSet {
	return &orderedSet{seen: make(map[string]struct{})}
}

func (s *orderedSet) add(values ...string) {
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, ok := s.seen[v]; ok {
			continue
		}
		s.seen[v] = struct{}{}
		s.items = append(s.items, v)
	}
}

func (s *orderedSet) len() int {
	return len(s.items)
}
