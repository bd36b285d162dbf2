package transcriber

import (
	"github.com/nguyentantai21042004/meeting-flow/internal/config"
	"github.com/nguyentantai21042004/meeting-flow/internal/logger"
	"github.com/nguyentantai21042004/meeting-flow/pkg/executor"
)

type implWhisper struct {
	cfg       config.WhisperConfig
	attendees []string
	executor  executor.Executor
	logger    logger.Logger
}

type implFFmpeg struct {
	cfg      config.FFmpegConfig
	tempDir  string
	executor executor.Executor
	logger   logger.Logger
}

// NewWhisper creates a whisper.cpp backed Transcriber. attendees are the
// registry names fed to the model as vocabulary.
func NewWhisper(cfg config.WhisperConfig, attendees []string, exec executor.Executor, log logger.Logger) Transcriber {
	return &implWhisper{
		cfg:       cfg,
		attendees: attendees,
		executor:  exec,
		logger:    log,
	}
}

// NewFFmpeg creates an AudioExtractor writing into tempDir.
func NewFFmpeg(cfg config.FFmpegConfig, tempDir string, exec executor.Executor, log logger.Logger) AudioExtractor {
	return &implFFmpeg{
		cfg:      cfg,
		tempDir:  tempDir,
		executor: exec,
		logger:   log,
	}
}
