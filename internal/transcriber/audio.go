package transcriber

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Extract runs ffmpeg to produce 16-bit PCM mono WAV at the configured
// sample rate.
func (f *implFFmpeg) Extract(ctx context.Context, mediaPath string) (string, error) {
	if err := os.MkdirAll(f.tempDir, 0755); err != nil {
		return "", fmt.Errorf("create temp dir: %w", err)
	}

	base := strings.TrimSuffix(filepath.Base(mediaPath), filepath.Ext(mediaPath))
	audioPath := filepath.Join(f.tempDir, base+"_temp.wav")

	f.logger.Info(ctx, "Extracting audio: %s", mediaPath)

	args := []string{
		"-i", mediaPath,
		"-vn",
		"-ar", strconv.Itoa(f.cfg.SampleRate),
		"-ac", "1",
		"-c:a", "pcm_s16le",
		"-threads", "0",
		"-y",
		audioPath,
	}

	if _, err := f.executor.Execute(ctx, f.cfg.BinaryPath, args...); err != nil {
		return "", fmt.Errorf("ffmpeg extract audio: %w", err)
	}

	f.logger.Info(ctx, "Audio extracted: %s", audioPath)
	return audioPath, nil
}
