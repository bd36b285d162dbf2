package watcher

import "context"

// Watcher feeds new meeting recordings dropped into a directory to a
// handler.
type Watcher interface {
	Start(ctx context.Context) error
	Stop() error
}

// EventHandler processes one media file.
type EventHandler func(ctx context.Context, filePath string) error
