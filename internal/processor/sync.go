package processor

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/nguyentantai21042004/meeting-flow/internal/router"
	"github.com/nguyentantai21042004/meeting-flow/internal/syncer"
)

// SyncTasks writes tasks.json to the configured destinations and records
// sync_report.json. Without a token or destinations it logs and returns a
// skipped report.
func (p *implProcessor) SyncTasks(ctx context.Context, tasksPath string) (SyncReport, error) {
	start := time.Now()
	dir := filepath.Dir(tasksPath)
	rep := SyncReport{
		RunID:     uuid.NewString(),
		Meeting:   filepath.Base(dir),
		CreatedAt: time.Now().UTC(),
	}

	if !p.cfg.SyncEnabled() || p.store == nil {
		rep.Skipped = true
		rep.Reason = "sync not configured"
		p.logger.Info(ctx, "Sync not configured, skipping %s", rep.Meeting)
		return rep, nil
	}

	tasks, err := ReadTasks(tasksPath)
	if err != nil {
		return rep, fmt.Errorf("read tasks: %w", err)
	}

	destinations := p.cfg.Destinations()
	for name := range destinations {
		rep.Destinations = append(rep.Destinations, name)
	}
	sort.Strings(rep.Destinations)

	exec := syncer.New(router.New(p.registry, destinations), p.store, destinations, p.logger, p.recorder)
	rep.Stats = exec.Run(ctx, tasks)

	if err := writeJSON(filepath.Join(dir, SyncReportFile), rep); err != nil {
		return rep, err
	}

	p.recorder.ObserveStage("sync", start)
	return rep, nil
}
