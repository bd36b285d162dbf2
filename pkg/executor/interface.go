package executor

import "context"

// Executor runs external tools such as ffmpeg and whisper.cpp.
type Executor interface {
	Execute(ctx context.Context, name string, args ...string) (string, error)
	// LookPath resolves a binary name or path, failing when it is not
	// executable.
	LookPath(name string) (string, error)
}
