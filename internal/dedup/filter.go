// Package dedup tracks which task titles already exist in each destination
// store during one sync run.
package dedup

import (
	"context"
	"sort"

	"github.com/nguyentantai21042004/meeting-flow/internal/logger"
	"github.com/nguyentantai21042004/meeting-flow/internal/models"
)

// Querier lists the titles currently stored under a destination id.
type Querier interface {
	QueryRecords(ctx context.Context, destinationID string) ([]string, error)
}

// Filter holds one run's snapshot of existing titles, keyed by store id so
// destinations sharing a database share a set. It is not safe for
// concurrent use; one run owns one Filter.
type Filter struct {
	known  map[string]map[string]struct{}
	logger logger.Logger
}

// New creates an empty Filter.
func New(log logger.Logger) *Filter {
	return &Filter{
		known:  make(map[string]map[string]struct{}),
		logger: log,
	}
}

// Load snapshots the titles of every distinct store id in destinations. A
// failed query leaves that store's set empty for this run.
func (f *Filter) Load(ctx context.Context, q Querier, destinations map[string]string) {
	ids := make([]string, 0, len(destinations))
	seen := make(map[string]struct{})
	for _, id := range destinations {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		set := f.set(id)
		titles, err := q.QueryRecords(ctx, id)
		if err != nil {
			f.logger.Warn(ctx, "Could not load existing tasks for %s, duplicates will not be detected there: %v", id, err)
			continue
		}
		for _, t := range titles {
			if n := models.NormalizeTitle(t); n != "" {
				set[n] = struct{}{}
			}
		}
		f.logger.Debug(ctx, "Loaded %d existing titles for %s", len(set), id)
	}
}

// IsDuplicate reports whether text already exists under destinationID,
// comparing trimmed lower-cased text exactly.
func (f *Filter) IsDuplicate(text, destinationID string) bool {
	set, ok := f.known[destinationID]
	if !ok {
		return false
	}
	_, dup := set[models.NormalizeTitle(text)]
	return dup
}

// Remember records a title written during this run.
func (f *Filter) Remember(text, destinationID string) {
	f.set(destinationID)[models.NormalizeTitle(text)] = struct{}{}
}

// Len returns the number of known titles for destinationID.
func (f *Filter) Len(destinationID string) int {
	return len(f.known[destinationID])
}

func (f *Filter) set(id string) map[string]struct{} {
	s, ok := f.known[id]
	if !ok {
		s = make(map[string]struct{})
		f.known[id] = s
	}
	return s
}
