package extractor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// DirSink writes dumps as files under a directory.
type DirSink struct {
	Dir string
}

func (d DirSink) Dump(ctx context.Context, name, content string) (string, error) {
	if err := os.MkdirAll(d.Dir, 0755); err != nil {
		return "", fmt.Errorf("create debug dir: %w", err)
	}
	path := filepath.Join(d.Dir, filepath.Base(name))
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return "", fmt.Errorf("write dump: %w", err)
	}
	return path, nil
}
