package report

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nguyentantai21042004/meeting-flow/internal/models"
)

func TestTaskLine(t *testing.T) {
	tests := []struct {
		name string
		task models.Task
		want string
	}{
		{
			name: "all fields",
			task: models.Task{Text: "Send offer letter", Assignee: "Ravi", Role: "HR", Deadline: "2025-12-05", Priority: models.PriorityHigh},
			want: "1. **[High]** Send offer letter (Ravi, HR; due 2025-12-05)",
		},
		{
			name: "text only",
			task: models.Task{Text: " Book the room ", Priority: models.PriorityLow},
			want: "1. **[Low]** Book the room",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TaskLine(1, tt.task))
		})
	}
}

func TestTranscriptLines(t *testing.T) {
	got := TranscriptLines([]models.Segment{
		{Text: "Hello."}, {Text: " "}, {Text: "Hello."}, {Text: "Next item."},
	})
	assert.Equal(t, []string{"Hello.", "Next item."}, got)
}

func TestDocxFilesAreWritten(t *testing.T) {
	dir := t.TempDir()

	tasksPath := filepath.Join(dir, "tasks.docx")
	require.NoError(t, TasksToDocx("Action items", []models.Task{{Text: "Ship it", Priority: models.PriorityMedium}}, tasksPath))

	emptyPath := filepath.Join(dir, "empty.docx")
	require.NoError(t, TasksToDocx("Action items", nil, emptyPath))

	transcriptPath := filepath.Join(dir, "transcript.docx")
	require.NoError(t, TranscriptToDocx("Transcript", []models.Segment{{Text: "Hi"}}, transcriptPath))

	for _, p := range []string{tasksPath, emptyPath, transcriptPath} {
		info, err := os.Stat(p)
		require.NoError(t, err)
		assert.Positive(t, info.Size())
	}
}
