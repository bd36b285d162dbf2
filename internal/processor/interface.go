package processor

import (
	"context"
	"time"

	"github.com/nguyentantai21042004/meeting-flow/internal/extractor"
	"github.com/nguyentantai21042004/meeting-flow/internal/models"
	"github.com/nguyentantai21042004/meeting-flow/internal/provider"
)

// Processor drives one meeting through transcription, extraction and sync.
// Each stage reads the previous stage's artifact so it can be re-run alone.
type Processor interface {
	// Process transcribes mediaPath and then runs extraction and sync in
	// the background.
	Process(ctx context.Context, mediaPath string) (TranscriptResult, error)
	// Transcribe runs only the synchronous part of Process.
	Transcribe(ctx context.Context, mediaPath string) (TranscriptResult, error)
	ExtractTasks(ctx context.Context, transcriptPath string) (ExtractionReport, error)
	SyncTasks(ctx context.Context, tasksPath string) (SyncReport, error)
	// Wait blocks until background work dispatched by Process is done.
	Wait()
}

// Chain is the provider fallback chain as the processor sees it.
type Chain interface {
	Extract(ctx context.Context, prompt string) (provider.Result, error)
}

// TranscriptCache stores transcripts by media fingerprint.
type TranscriptCache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}

// Recorder observes pipeline events.
type Recorder interface {
	ObserveWrite(destination, outcome string)
	ObserveCache(result string)
	ObserveMeeting(status string)
	ObserveStage(stage string, start time.Time)
}

type TranscriptResult struct {
	Meeting        string `json:"meeting"`
	TranscriptPath string `json:"transcript_path"`
	Segments       int    `json:"segments"`
	Cached         bool   `json:"cached"`
	Fingerprint    string `json:"fingerprint"`
}

// ExtractionReport is written next to tasks.json on every extraction run.
type ExtractionReport struct {
	RunID           string                  `json:"run_id"`
	Meeting         string                  `json:"meeting"`
	MeetingDate     string                  `json:"meeting_date"`
	TranscriptError string                  `json:"transcript_error,omitempty"`
	Provider        string                  `json:"provider,omitempty"`
	Errors          []provider.AttemptError `json:"errors"`
	SegmentsTotal   int                     `json:"segments_total"`
	SegmentsUsed    int                     `json:"segments_used"`
	PromptChars     int                     `json:"prompt_chars"`
	Parse           *extractor.Outcome      `json:"parse,omitempty"`
	Heuristic       bool                    `json:"heuristic_fallback"`
	TaskCount       int                     `json:"task_count"`
	TasksPath       string                  `json:"tasks_path"`
	CreatedAt       time.Time               `json:"created_at"`
	Tasks           []models.Task           `json:"-"`
}

// SyncReport is written as sync_report.json when sync ran.
type SyncReport struct {
	RunID        string           `json:"run_id"`
	Meeting      string           `json:"meeting"`
	Skipped      bool             `json:"skipped"`
	Reason       string           `json:"reason,omitempty"`
	Destinations []string         `json:"destinations"`
	Stats        models.SyncStats `json:"stats"`
	CreatedAt    time.Time        `json:"created_at"`
}
