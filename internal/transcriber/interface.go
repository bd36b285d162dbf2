package transcriber

import (
	"context"

	"github.com/nguyentantai21042004/meeting-flow/internal/models"
)

// Transcriber turns a WAV file into timestamped segments.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string) ([]models.Segment, error)
}

// AudioExtractor converts any media file into 16 kHz mono WAV and returns
// the path of the temporary file it wrote.
type AudioExtractor interface {
	Extract(ctx context.Context, mediaPath string) (string, error)
}
