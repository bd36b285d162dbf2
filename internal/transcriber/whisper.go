package transcriber

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/nguyentantai21042004/meeting-flow/internal/models"
)

// Transcribe runs whisper.cpp with SRT output and parses the result. The
// SRT file is removed once parsed.
func (w *implWhisper) Transcribe(ctx context.Context, audioPath string) ([]models.Segment, error) {
	outputPrefix := strings.TrimSuffix(audioPath, filepath.Ext(audioPath))

	w.logger.Info(ctx, "Starting transcription with %d threads: %s", w.cfg.Threads, audioPath)

	args := []string{
		"-m", w.cfg.ModelPath,
		"-f", audioPath,
		"-osrt",
		"-l", w.cfg.Language,
		"-t", strconv.Itoa(w.cfg.Threads),
		"-ml", "0",
		"-mc", "0",
		"-bo", "5",
		"--output-file", outputPrefix,
	}
	if p := w.initialPrompt(); p != "" {
		args = append(args, "--prompt", p)
	}

	if _, err := w.executor.Execute(ctx, w.cfg.BinaryPath, args...); err != nil {
		return nil, fmt.Errorf("whisper transcribe: %w", err)
	}

	srtPath := outputPrefix + ".srt"
	data, err := os.ReadFile(srtPath)
	if err != nil {
		return nil, fmt.Errorf("read whisper output: %w", err)
	}
	if err := os.Remove(srtPath); err != nil {
		w.logger.Warn(ctx, "Failed to cleanup %s: %v", srtPath, err)
	}

	segments := ParseSRT(string(data))
	w.logger.Info(ctx, "Transcription completed: %d segments", len(segments))
	return segments, nil
}

// initialPrompt primes the model with attendee names so they are spelled
// the way the registry spells them.
func (w *implWhisper) initialPrompt() string {
	var parts []string
	if len(w.attendees) > 0 {
		parts = append(parts, "Meeting with: "+strings.Join(w.attendees, ", ")+".")
	}
	if p := strings.TrimSpace(w.cfg.Prompt); p != "" {
		parts = append(parts, p)
	}
	return strings.Join(parts, " ")
}
