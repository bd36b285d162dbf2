// Package syncer drives routing, duplicate detection and record creation
// for one batch of tasks.
package syncer

import (
	"context"
	"strings"

	"github.com/nguyentantai21042004/meeting-flow/internal/dedup"
	"github.com/nguyentantai21042004/meeting-flow/internal/logger"
	"github.com/nguyentantai21042004/meeting-flow/internal/models"
	"github.com/nguyentantai21042004/meeting-flow/internal/store"
)

// Router picks destination names for a task.
type Router interface {
	Route(task models.Task) []string
}

// Recorder observes per-destination write outcomes: "created", "duplicate"
// or "failed".
type Recorder interface {
	ObserveWrite(destination, outcome string)
}

// Executor writes tasks to their destinations. Each Run owns its own
// duplicate filter; two concurrent runs do not see each other's writes.
type Executor struct {
	router       Router
	store        store.Store
	destinations map[string]string
	logger       logger.Logger
	recorder     Recorder
}

// New creates an Executor. destinations maps names to store ids; rec may be
// nil.
func New(r Router, st store.Store, destinations map[string]string, log logger.Logger, rec Recorder) *Executor {
	return &Executor{
		router:       r,
		store:        st,
		destinations: destinations,
		logger:       log,
		recorder:     rec,
	}
}

// Run syncs tasks in order and returns the run statistics. Partial failures
// are counted, never returned.
func (e *Executor) Run(ctx context.Context, tasks []models.Task) models.SyncStats {
	stats := models.NewSyncStats(len(tasks))

	filter := dedup.New(e.logger)
	filter.Load(ctx, e.store, e.destinations)

	for i, task := range tasks {
		if strings.TrimSpace(task.Text) == "" {
			e.logger.Warn(ctx, "Task %d has no text, skipping", i+1)
			stats.Skipped++
			continue
		}

		dests := e.router.Route(task)
		if len(dests) == 0 {
			e.logger.Warn(ctx, "No destination for task %q and no default configured", preview(task.Text))
			stats.Failed++
			continue
		}

		var created, duplicates int
		stores := make(map[string]struct{}, len(dests))
		for _, dest := range dests {
			id := e.destinations[dest]
			stores[id] = struct{}{}
			if filter.IsDuplicate(task.Text, id) {
				duplicates++
				e.observe(dest, "duplicate")
				e.logger.Debug(ctx, "Duplicate in %s: %s", dest, preview(task.Text))
				continue
			}

			if err := e.store.CreateRecord(ctx, id, store.RecordFromTask(task)); err != nil {
				e.observe(dest, "failed")
				e.logger.Error(ctx, "Failed to create task in %s: %v (task: %s)", dest, err, preview(task.Text))
				continue
			}

			filter.Remember(task.Text, id)
			created++
			stats.ByDestination[dest]++
			e.observe(dest, "created")
			e.logger.Info(ctx, "Synced task to %s: %s", dest, preview(task.Text))
		}

		switch {
		case created > 0:
			stats.Synced++
			// Destinations sharing one database count as one.
			if len(stores) > 1 {
				stats.CrossDestination++
			}
		case duplicates == len(dests):
			stats.Skipped++
		default:
			stats.Failed++
		}
	}

	e.logger.Info(ctx, "Sync finished: total=%d synced=%d skipped=%d failed=%d cross=%d",
		stats.Total, stats.Synced, stats.Skipped, stats.Failed, stats.CrossDestination)
	return stats
}

func (e *Executor) observe(dest, outcome string) {
	if e.recorder != nil {
		e.recorder.ObserveWrite(dest, outcome)
	}
}

func preview(s string) string {
	s = strings.TrimSpace(s)
	r := []rune(s)
	if len(r) > 60 {
		return string(r[:60]) + "..."
	}
	return s
}
