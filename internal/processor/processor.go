package processor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/nguyentantai21042004/meeting-flow/internal/cache"
	"github.com/nguyentantai21042004/meeting-flow/internal/models"
	"github.com/nguyentantai21042004/meeting-flow/internal/report"
)

// Process transcribes the recording, then hands extraction and sync to a
// background goroutine. The background run starts only after transcript.json
// has been written.
func (p *implProcessor) Process(ctx context.Context, mediaPath string) (TranscriptResult, error) {
	res, err := p.Transcribe(ctx, mediaPath)
	if err != nil {
		return res, err
	}
	p.dispatch(ctx, res)
	return res, nil
}

func (p *implProcessor) Transcribe(ctx context.Context, mediaPath string) (TranscriptResult, error) {
	startTime := time.Now()
	meeting := MeetingName(mediaPath)

	p.logger.Info(ctx, "========================================")
	p.logger.Info(ctx, "Starting meeting processing: %s", mediaPath)
	p.logger.Info(ctx, "========================================")

	res := TranscriptResult{Meeting: meeting}

	fingerprint, err := cache.Fingerprint(mediaPath)
	if err != nil {
		p.recorder.ObserveMeeting("failed")
		return res, fmt.Errorf("fingerprint media: %w", err)
	}
	res.Fingerprint = fingerprint

	dir := filepath.Join(p.cfg.Paths.Output, meeting)
	if err := os.MkdirAll(dir, 0755); err != nil {
		p.recorder.ObserveMeeting("failed")
		return res, fmt.Errorf("create meeting dir: %w", err)
	}
	res.TranscriptPath = filepath.Join(dir, TranscriptFile)

	segments, cached := p.cachedTranscript(ctx, fingerprint)
	if !cached {
		segments, err = p.transcribe(ctx, mediaPath)
		if err != nil {
			p.recorder.ObserveMeeting("failed")
			return res, err
		}
	}
	if segments == nil {
		segments = []models.Segment{}
	}

	data, err := json.MarshalIndent(segments, "", "  ")
	if err != nil {
		p.recorder.ObserveMeeting("failed")
		return res, fmt.Errorf("encode transcript: %w", err)
	}
	if err := writeFileAtomic(res.TranscriptPath, data); err != nil {
		p.recorder.ObserveMeeting("failed")
		return res, fmt.Errorf("write transcript: %w", err)
	}
	res.Segments = len(segments)
	res.Cached = cached

	if !cached {
		p.storeTranscript(ctx, fingerprint, string(data))
	}

	docxPath := filepath.Join(dir, TranscriptDocxFile)
	if err := report.TranscriptToDocx("Transcript: "+meeting, segments, docxPath); err != nil {
		p.logger.Warn(ctx, "Failed to write %s: %v", docxPath, err)
	}

	if err := p.moveToArchived(ctx, mediaPath); err != nil {
		p.logger.Warn(ctx, "Failed to move recording to archived folder: %v", err)
	}

	p.recorder.ObserveMeeting("transcribed")
	p.logger.Info(ctx, "========================================")
	p.logger.Info(ctx, "Transcript ready: %s (%d segments, cached=%t)", res.TranscriptPath, res.Segments, cached)
	p.logger.Info(ctx, "Processing time: %s", time.Since(startTime))
	p.logger.Info(ctx, "========================================")

	return res, nil
}

func (p *implProcessor) transcribe(ctx context.Context, mediaPath string) ([]models.Segment, error) {
	start := time.Now()
	audioPath, err := p.audio.Extract(ctx, mediaPath)
	if err != nil {
		return nil, fmt.Errorf("extract audio: %w", err)
	}
	defer p.cleanupTempFile(ctx, audioPath)
	p.recorder.ObserveStage("audio", start)

	start = time.Now()
	segments, err := p.transcriber.Transcribe(ctx, audioPath)
	if err != nil {
		return nil, fmt.Errorf("transcribe: %w", err)
	}
	p.recorder.ObserveStage("transcribe", start)
	return segments, nil
}

// cachedTranscript returns a cached transcript. Any cache problem is a miss.
func (p *implProcessor) cachedTranscript(ctx context.Context, fingerprint string) ([]models.Segment, bool) {
	if p.cache == nil {
		return nil, false
	}

	value, err := p.cache.Get(ctx, cache.TranscriptKey(fingerprint))
	if err != nil {
		if errors.Is(err, cache.ErrMiss) {
			p.recorder.ObserveCache("miss")
		} else {
			p.recorder.ObserveCache("error")
			p.logger.Warn(ctx, "Transcript cache lookup failed: %v", err)
		}
		return nil, false
	}

	var segments []models.Segment
	if err := json.Unmarshal([]byte(value), &segments); err != nil {
		p.recorder.ObserveCache("error")
		p.logger.Warn(ctx, "Ignoring corrupt cache entry for %s: %v", fingerprint, err)
		return nil, false
	}

	p.recorder.ObserveCache("hit")
	p.logger.Info(ctx, "Cache hit for %s", fingerprint)
	return segments, true
}

func (p *implProcessor) storeTranscript(ctx context.Context, fingerprint, value string) {
	if p.cache == nil {
		return
	}
	if err := p.cache.Set(ctx, cache.TranscriptKey(fingerprint), value); err != nil {
		p.logger.Warn(ctx, "Failed to cache transcript: %v", err)
	}
}

// dispatch runs extraction and sync detached from the caller's
// cancellation; the HTTP request that triggered it is already answered.
func (p *implProcessor) dispatch(ctx context.Context, res TranscriptResult) {
	bg := context.WithoutCancel(ctx)

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()

		if err := p.background.acquire(bg); err != nil {
			return
		}
		defer p.background.release()

		rep, err := p.ExtractTasks(bg, res.TranscriptPath)
		if err != nil {
			p.logger.Error(bg, "Task extraction for %s failed: %v", res.Meeting, err)
			return
		}
		if _, err := p.SyncTasks(bg, rep.TasksPath); err != nil {
			p.logger.Error(bg, "Sync for %s failed: %v", res.Meeting, err)
		}
	}()
}

func (p *implProcessor) Wait() {
	p.wg.Wait()
}
