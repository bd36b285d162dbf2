package processor

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// moveToArchived moves the source recording out of the input folder so the
// watcher never sees it again.
func (p *implProcessor) moveToArchived(ctx context.Context, mediaPath string) error {
	if err := os.MkdirAll(p.cfg.Paths.Archived, 0755); err != nil {
		return fmt.Errorf("create archived dir: %w", err)
	}
	destPath := filepath.Join(p.cfg.Paths.Archived, filepath.Base(mediaPath))

	p.logger.Info(ctx, "Archiving: %s -> %s", mediaPath, destPath)

	if err := os.Rename(mediaPath, destPath); err != nil {
		// Cross-device moves fail with rename; fall back to copy.
		if err := copyFile(mediaPath, destPath); err != nil {
			return fmt.Errorf("archive media: %w", err)
		}
		if err := os.Remove(mediaPath); err != nil {
			return fmt.Errorf("remove archived source: %w", err)
		}
	}
	return nil
}

// cleanupTempFile removes a temporary file, logs warning if fails
func (p *implProcessor) cleanupTempFile(ctx context.Context, filePath string) {
	if err := os.Remove(filePath); err != nil && !os.IsNotExist(err) {
		p.logger.Warn(ctx, "Failed to cleanup temp file %s: %v", filePath, err)
	} else {
		p.logger.Debug(ctx, "Cleaned up temp file: %s", filePath)
	}
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open source: %w", err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("create destination: %w", err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("copy: %w", err)
	}
	return out.Close()
}
