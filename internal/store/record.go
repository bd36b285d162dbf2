package store

import (
	"strings"
	"time"

	"github.com/nguyentantai21042004/meeting-flow/internal/models"
)

// MaxTitleRunes is Notion's limit for one rich text object.
const MaxTitleRunes = models.MaxTitleRunes

// RecordFromTask converts a task to a Record. A deadline that is not an ISO
// date is dropped rather than rejected by the store.
func RecordFromTask(t models.Task) Record {
	rec := Record{
		Title:      models.StoredTitle(t.Text),
		Assignee:   strings.TrimSpace(t.Assignee),
		Role:       strings.TrimSpace(t.Role),
		Priority:   string(t.Priority),
		Confidence: t.Confidence,
		Status:     InitialStatus,
	}
	if rec.Priority == "" {
		rec.Priority = string(models.PriorityMedium)
	}
	if d := strings.TrimSpace(t.Deadline); d != "" {
		if _, err := time.Parse(time.DateOnly, d); err == nil {
			rec.Deadline = d
		}
	}
	return rec
}
