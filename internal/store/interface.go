// Package store talks to the project-tracking databases tasks are synced to.
package store

import "context"

// InitialStatus is the status every new record starts in.
const InitialStatus = "To Do"

// Record is the field set written for one task.
type Record struct {
	Title      string
	Assignee   string
	Role       string
	Priority   string
	Deadline   string
	Confidence float64
	Status     string
}

// Store creates and lists records in destination databases.
type Store interface {
	CreateRecord(ctx context.Context, destinationID string, rec Record) error
	QueryRecords(ctx context.Context, destinationID string) ([]string, error)
	InspectSchema(ctx context.Context, destinationID string) (map[string]string, error)
}
