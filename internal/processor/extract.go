package processor

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/nguyentantai21042004/meeting-flow/internal/extractor"
	"github.com/nguyentantai21042004/meeting-flow/internal/models"
	"github.com/nguyentantai21042004/meeting-flow/internal/prompt"
	"github.com/nguyentantai21042004/meeting-flow/internal/provider"
	"github.com/nguyentantai21042004/meeting-flow/internal/report"
)

// ExtractTasks reads transcript.json and always writes tasks.json and
// extraction_report.json next to it, even when every provider failed or the
// transcript is unreadable. An error is returned only when the transcript
// cannot be read or the artifacts cannot be written.
func (p *implProcessor) ExtractTasks(ctx context.Context, transcriptPath string) (ExtractionReport, error) {
	start := time.Now()
	dir := filepath.Dir(transcriptPath)
	rep := ExtractionReport{
		RunID:       uuid.NewString(),
		Meeting:     filepath.Base(dir),
		MeetingDate: p.cfg.Meeting.DefaultDate,
		Errors:      []provider.AttemptError{},
		TasksPath:   filepath.Join(dir, TasksFile),
		CreatedAt:   time.Now().UTC(),
	}

	segments, err := ReadSegments(transcriptPath)
	if err != nil {
		rep.TranscriptError = err.Error()
		rep.Tasks = []models.Task{}
		if werr := writeExtraction(dir, rep); werr != nil {
			p.logger.Warn(ctx, "Failed to record unreadable transcript %s: %v", transcriptPath, werr)
		}
		return rep, fmt.Errorf("read transcript: %w", err)
	}
	rep.SegmentsTotal = len(segments)

	p.logger.Info(ctx, "Extracting tasks for %s (run %s, %d segments)", rep.Meeting, rep.RunID, len(segments))

	tasks := p.extract(ctx, segments, &rep)
	if tasks == nil {
		tasks = []models.Task{}
	}
	rep.Tasks = tasks
	rep.TaskCount = len(tasks)

	if err := writeExtraction(dir, rep); err != nil {
		return rep, err
	}

	docxPath := filepath.Join(dir, TasksDocxFile)
	if err := report.TasksToDocx("Action items: "+rep.Meeting, tasks, docxPath); err != nil {
		p.logger.Warn(ctx, "Failed to write %s: %v", docxPath, err)
	}

	p.recorder.ObserveStage("extract", start)
	p.logger.Info(ctx, "Extracted %d tasks for %s (provider=%q)", len(tasks), rep.Meeting, rep.Provider)
	return rep, nil
}

// writeExtraction writes the task list before the report that describes it.
func writeExtraction(dir string, rep ExtractionReport) error {
	if err := writeJSON(rep.TasksPath, rep.Tasks); err != nil {
		return err
	}
	return writeJSON(filepath.Join(dir, ExtractionReportFile), rep)
}

func (p *implProcessor) extract(ctx context.Context, segments []models.Segment, rep *ExtractionReport) []models.Task {
	built, err := p.prompt.Build(prompt.Input{
		Segments:    segments,
		Employees:   p.registry.Names(),
		MeetingDate: p.cfg.Meeting.DefaultDate,
	})
	if err != nil {
		p.logger.Error(ctx, "Cannot build prompt: %v", err)
		rep.Errors = append(rep.Errors, provider.AttemptError{Provider: "prompt", Err: err, Message: err.Error()})
		return p.degraded(ctx, segments, rep)
	}
	rep.SegmentsUsed = len(built.Segments)
	rep.PromptChars = len([]rune(built.Prompt))
	if rep.SegmentsUsed < rep.SegmentsTotal {
		p.logger.Warn(ctx, "Transcript trimmed to %d of %d segments to fit %d chars", rep.SegmentsUsed, rep.SegmentsTotal, p.cfg.Prompt.MaxChars)
	}

	result, err := p.chain.Extract(ctx, built.Prompt)
	rep.Errors = append(rep.Errors, result.Errors...)
	if err != nil {
		var chainErr *provider.ChainError
		if errors.As(err, &chainErr) {
			for _, a := range chainErr.Attempts {
				if a.Hint != "" {
					p.logger.Warn(ctx, "%s failed: %s. Hint: %s", a.Provider, a.Message, a.Hint)
				}
			}
		}
		p.logger.Error(ctx, "No provider produced a response: %v", err)
		return p.degraded(ctx, segments, rep)
	}
	rep.Provider = result.Provider

	outcome := p.extractor.Extract(ctx, result.Text, rep.RunID)
	rep.Parse = &outcome
	if outcome.Failed {
		return p.degraded(ctx, segments, rep)
	}
	return outcome.Tasks
}

// degraded applies the keyword heuristic when enabled, else returns an
// empty list.
func (p *implProcessor) degraded(ctx context.Context, segments []models.Segment, rep *ExtractionReport) []models.Task {
	if !p.cfg.Extraction.HeuristicFallback {
		return []models.Task{}
	}
	rep.Heuristic = true
	tasks := extractor.Heuristic(segments)
	p.logger.Warn(ctx, "Using keyword heuristic: %d candidate tasks", len(tasks))
	return tasks
}
