package extractor

import (
	"context"
	"fmt"

	"github.com/nguyentantai21042004/meeting-flow/internal/logger"
	"github.com/nguyentantai21042004/meeting-flow/internal/models"
)

// Outcome describes one extraction. Tasks is never nil.
type Outcome struct {
	Tasks    []models.Task `json:"-"`
	Strategy Strategy      `json:"strategy"`
	Repaired bool          `json:"repaired"`
	Dropped  int           `json:"dropped_elements"`
	Failed   bool          `json:"failed"`
	Error    string        `json:"error,omitempty"`
	DumpPath string        `json:"debug_dump,omitempty"`
}

// Extractor turns raw provider text into tasks. It never returns an error.
type Extractor struct {
	sink   DebugSink
	logger logger.Logger
}

// New creates an Extractor. sink may be nil, in which case failed responses
// are only logged.
func New(sink DebugSink, log logger.Logger) *Extractor {
	return &Extractor{sink: sink, logger: log}
}

// Extract runs candidate search, parse, repair and fail-soft. runID names
// the debug dump.
func (e *Extractor) Extract(ctx context.Context, raw, runID string) Outcome {
	candidate, strategy := Candidate(raw)
	out := Outcome{Strategy: strategy, Tasks: []models.Task{}}

	tasks, dropped, err := Parse(candidate)
	if err != nil && isSyntaxError(err) {
		e.logger.Debug(ctx, "Parse via %s failed (%v), repairing brackets", strategy, err)
		out.Repaired = true
		tasks, dropped, err = Parse(Repair(candidate))
	}

	if err != nil {
		out.Failed = true
		out.Error = err.Error()
		e.logger.Error(ctx, "Could not parse model output via %s: %v", strategy, err)
		out.DumpPath = e.dump(ctx, raw, runID)
		return out
	}

	if dropped > 0 {
		e.logger.Warn(ctx, "Dropped %d array elements that were not task objects", dropped)
	}
	out.Tasks = tasks
	out.Dropped = dropped
	e.logger.Info(ctx, "Parsed %d tasks via %s (repaired=%t)", len(tasks), strategy, out.Repaired)
	return out
}

func (e *Extractor) dump(ctx context.Context, raw, runID string) string {
	if e.sink == nil {
		return ""
	}
	path, err := e.sink.Dump(ctx, fmt.Sprintf("raw_response_%s.txt", runID), raw)
	if err != nil {
		e.logger.Warn(ctx, "Failed to write raw response dump: %v", err)
		return ""
	}
	e.logger.Info(ctx, "Raw response saved to %s", path)
	return path
}
