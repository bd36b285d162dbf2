package models

// Employee is one entry of the static employee registry.
type Employee struct {
	Name       string   `json:"name"`
	Department []string `json:"department"`
}
