package httpapi

import "github.com/nguyentantai21042004/meeting-flow/internal/models"

// Status values reported in response bodies.
const (
	StatusUploaded  = "uploaded"
	StatusCompleted = "processing_completed"
	StatusFailed    = "processing_failed"
	StatusReady     = "ready"
	StatusNotReady  = "not_ready"
	StatusError     = "error"
	StatusOK        = "ok"
)

type HealthResponse struct {
	Status string `json:"status"`
}

type IngestResponse struct {
	Status   string `json:"status"`
	Filename string `json:"filename"`
}

type ProcessResponse struct {
	Status   string `json:"status"`
	Meeting  string `json:"meeting,omitempty"`
	Cached   bool   `json:"cached"`
	Segments int    `json:"segments,omitempty"`
	Error    string `json:"error,omitempty"`
}

type TranscriptResponse struct {
	Status     string           `json:"status"`
	Meeting    string           `json:"meeting,omitempty"`
	Transcript []models.Segment `json:"transcript"`
	Error      string           `json:"error,omitempty"`
}

type TasksResponse struct {
	Meeting string        `json:"meeting"`
	Tasks   []models.Task `json:"tasks"`
}

type ConfigResponse struct {
	WhisperAvailable       bool     `json:"whisper_available"`
	WhisperModelPresent    bool     `json:"whisper_model_present"`
	FFmpegAvailable        bool     `json:"ffmpeg_available"`
	TranscriptionAvailable bool     `json:"transcription_available"`
	GeminiKeySet           bool     `json:"gemini_api_key_set"`
	OpenAIKeySet           bool     `json:"openai_api_key_set"`
	OllamaEnabled          bool     `json:"ollama_enabled"`
	SyncEnabled            bool     `json:"notion_sync_enabled"`
	Destinations           []string `json:"destinations"`
	Message                string   `json:"message"`
}
