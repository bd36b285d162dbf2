package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/nguyentantai21042004/meeting-flow/internal/models"
	"github.com/nguyentantai21042004/meeting-flow/internal/processor"
	"github.com/nguyentantai21042004/meeting-flow/internal/watcher"
)

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{Status: StatusOK})
}

func (s *Server) handleIngest(c echo.Context) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "multipart field 'file' is required")
	}

	name, ok := safeName(fh.Filename)
	if !ok || !watcher.IsMedia(name) {
		return echo.NewHTTPError(http.StatusBadRequest,
			fmt.Sprintf("unsupported file %q, expected one of %s", fh.Filename, strings.Join(watcher.MediaExtensions(), " ")))
	}

	src, err := fh.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "cannot read upload")
	}
	defer src.Close()

	if err := os.MkdirAll(s.cfg.Paths.Input, 0755); err != nil {
		return fmt.Errorf("create input dir: %w", err)
	}
	dstPath := filepath.Join(s.cfg.Paths.Input, name)
	dst, err := os.Create(dstPath)
	if err != nil {
		return fmt.Errorf("create %s: %w", dstPath, err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		os.Remove(dstPath)
		return fmt.Errorf("save upload: %w", err)
	}
	if err := dst.Close(); err != nil {
		return fmt.Errorf("save upload: %w", err)
	}

	s.logger.Info(c.Request().Context(), "Uploaded %s (%d bytes)", name, fh.Size)
	return c.JSON(http.StatusOK, IngestResponse{Status: StatusUploaded, Filename: name})
}

// handleProcess transcribes synchronously and answers before task
// extraction, which continues in the background.
func (s *Server) handleProcess(c echo.Context) error {
	name, ok := safeName(c.FormValue("filename"))
	if !ok {
		return c.JSON(http.StatusBadRequest, ProcessResponse{Status: StatusFailed, Error: "filename is required"})
	}

	path := filepath.Join(s.cfg.Paths.Input, name)
	if _, err := os.Stat(path); err != nil {
		return c.JSON(http.StatusNotFound, ProcessResponse{Status: StatusFailed, Error: "file not found"})
	}

	res, err := s.proc.Process(c.Request().Context(), path)
	if err != nil {
		s.logger.Error(c.Request().Context(), "Processing %s failed: %v", name, err)
		return c.JSON(http.StatusInternalServerError, ProcessResponse{Status: StatusFailed, Meeting: res.Meeting, Error: err.Error()})
	}

	return c.JSON(http.StatusOK, ProcessResponse{
		Status:   StatusCompleted,
		Meeting:  res.Meeting,
		Cached:   res.Cached,
		Segments: res.Segments,
	})
}

func (s *Server) handleTranscript(c echo.Context) error {
	meeting, ok := s.resolveMeeting(c)
	if !ok {
		return c.JSON(http.StatusOK, TranscriptResponse{Status: StatusNotReady})
	}

	data, err := os.ReadFile(filepath.Join(s.cfg.Paths.Output, meeting, processor.TranscriptFile))
	if errors.Is(err, os.ErrNotExist) {
		return c.JSON(http.StatusOK, TranscriptResponse{Status: StatusNotReady, Meeting: meeting})
	}
	if err != nil {
		return c.JSON(http.StatusOK, TranscriptResponse{Status: StatusError, Meeting: meeting, Error: "error reading transcript: " + err.Error()})
	}

	segments, err := ValidateTranscript(data)
	if err != nil {
		return c.JSON(http.StatusOK, TranscriptResponse{Status: StatusError, Meeting: meeting, Error: err.Error()})
	}
	return c.JSON(http.StatusOK, TranscriptResponse{Status: StatusReady, Meeting: meeting, Transcript: segments})
}

func (s *Server) handleTasks(c echo.Context) error {
	meeting, ok := s.resolveMeeting(c)
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "tasks not found, process a file first")
	}

	tasks, err := processor.ReadTasks(filepath.Join(s.cfg.Paths.Output, meeting, processor.TasksFile))
	if errors.Is(err, os.ErrNotExist) {
		return echo.NewHTTPError(http.StatusNotFound, "tasks not found, process a file first")
	}
	if err != nil {
		return fmt.Errorf("read tasks: %w", err)
	}
	return c.JSON(http.StatusOK, TasksResponse{Meeting: meeting, Tasks: tasks})
}

func (s *Server) handleConfig(c echo.Context) error {
	resp := ConfigResponse{
		GeminiKeySet:  len(s.cfg.Providers.Gemini.APIKeys) > 0,
		OpenAIKeySet:  s.cfg.Providers.OpenAI.APIKey != "",
		OllamaEnabled: !s.cfg.Providers.Ollama.Disabled,
		SyncEnabled:   s.cfg.SyncEnabled(),
		Destinations:  []string{},
	}
	for name := range s.cfg.Destinations() {
		resp.Destinations = append(resp.Destinations, name)
	}
	sort.Strings(resp.Destinations)

	if s.executor != nil {
		_, err := s.executor.LookPath(s.cfg.Whisper.BinaryPath)
		resp.WhisperAvailable = err == nil
		_, err = s.executor.LookPath(s.cfg.FFmpeg.BinaryPath)
		resp.FFmpegAvailable = err == nil
	}
	if _, err := os.Stat(s.cfg.Whisper.ModelPath); err == nil {
		resp.WhisperModelPresent = true
	}
	resp.TranscriptionAvailable = resp.WhisperAvailable && resp.WhisperModelPresent && resp.FFmpegAvailable

	switch {
	case !resp.TranscriptionAvailable:
		resp.Message = "Transcription unavailable: check whisper.binary_path, whisper.model_path and ffmpeg.binary_path"
	case !resp.GeminiKeySet && !resp.OpenAIKeySet && !resp.OllamaEnabled:
		resp.Message = "Ready for transcription, but no extraction provider is configured"
	default:
		resp.Message = "Ready for transcription"
	}
	return c.JSON(http.StatusOK, resp)
}

// resolveMeeting returns the ?meeting= value, or the most recent meeting.
func (s *Server) resolveMeeting(c echo.Context) (string, bool) {
	if q := c.QueryParam("meeting"); q != "" {
		return safeName(q)
	}
	name, err := processor.LatestMeeting(s.cfg.Paths.Output)
	if err != nil {
		return "", false
	}
	return name, true
}

// safeName rejects anything that is not a plain file or directory name.
func safeName(name string) (string, bool) {
	name = strings.TrimSpace(name)
	if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") || strings.ContainsAny(name, `/\`) {
		return "", false
	}
	return name, true
}

// ValidateTranscript checks a transcript artifact is a non-empty list of
// objects that all carry text. Missing timestamps default to zero.
func ValidateTranscript(data []byte) ([]models.Segment, error) {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("invalid transcript file: %w", err)
	}
	items, ok := raw.([]interface{})
	if !ok {
		return nil, fmt.Errorf("invalid transcript format: expected a list, got %s", jsonKind(raw))
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("transcript is empty")
	}

	segments := make([]models.Segment, 0, len(items))
	for i, item := range items {
		obj, ok := item.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("invalid segment at index %d: expected object, got %s", i, jsonKind(item))
		}
		text, ok := obj["text"].(string)
		if !ok {
			return nil, fmt.Errorf("segment at index %d missing 'text' field", i)
		}
		seg := models.Segment{Text: text}
		if v, ok := obj["start"].(float64); ok {
			seg.Start = v
		}
		if v, ok := obj["end"].(float64); ok {
			seg.End = v
		}
		segments = append(segments, seg)
	}
	return segments, nil
}

func jsonKind(v interface{}) string {
	switch v.(type) {
	case nil:
		return "null"
	case map[string]interface{}:
		return "object"
	case []interface{}:
		return "list"
	case string:
		return "string"
	case float64:
		return "number"
	case bool:
		return "boolean"
	default:
		return fmt.Sprintf("%T", v)
	}
}
