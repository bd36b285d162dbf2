// Package registry holds the static employee list used for name hints and
// department routing.
package registry

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/nguyentantai21042004/meeting-flow/internal/models"
)

// Registry is a read-only, case-insensitive view over the employee list.
type Registry struct {
	employees []models.Employee
	byName    map[string][]string
}

// New builds a Registry. Entries without a name are dropped; entries without
// departments are kept for name hints but route nowhere.
func New(employees []models.Employee) *Registry {
	r := &Registry{byName: make(map[string][]string)}
	for _, e := range employees {
		name := strings.TrimSpace(e.Name)
		if name == "" {
			continue
		}
		e.Name = name
		r.employees = append(r.employees, e)
		key := strings.ToLower(name)
		if _, seen := r.byName[key]; !seen && len(e.Department) > 0 {
			r.byName[key] = e.Department
		}
	}
	return r
}

// Load reads employees.json. A missing file yields an empty registry and
// ErrNotFound so callers can log it and carry on.
func Load(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return New(nil), fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return New(nil), fmt.Errorf("read employees: %w", err)
	}

	var employees []models.Employee
	if err := json.Unmarshal(data, &employees); err != nil {
		return New(nil), fmt.Errorf("parse employees: %w", err)
	}
	return New(employees), nil
}

// ErrNotFound marks a missing registry file.
var ErrNotFound = errors.New("employee registry not found")

// Departments returns the departments registered for name.
func (r *Registry) Departments(name string) []string {
	return r.byName[strings.ToLower(strings.TrimSpace(name))]
}

// Names returns employee names in registry order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.employees))
	for _, e := range r.employees {
		names = append(names, e.Name)
	}
	return names
}

// Employees returns the registry entries in order.
func (r *Registry) Employees() []models.Employee {
	return r.employees
}

// Len returns the number of named employees.
func (r *Registry) Len() int {
	return len(r.employees)
}
