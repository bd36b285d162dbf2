package processor

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/nguyentantai21042004/meeting-flow/internal/models"
)

// Artifact file names inside a meeting directory.
const (
	TranscriptFile       = "transcript.json"
	TranscriptDocxFile   = "transcript.docx"
	TasksFile            = "tasks.json"
	TasksDocxFile        = "tasks.docx"
	ExtractionReportFile = "extraction_report.json"
	SyncReportFile       = "sync_report.json"
)

var reUnsafe = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// MeetingName derives the artifact directory name from a media path.
func MeetingName(mediaPath string) string {
	base := strings.TrimSuffix(filepath.Base(mediaPath), filepath.Ext(mediaPath))
	name := strings.Trim(reUnsafe.ReplaceAllString(base, "_"), "._")
	if name == "" {
		return "meeting"
	}
	return name
}

// LatestMeeting returns the meeting under outputDir whose transcript was
// written most recently.
func LatestMeeting(outputDir string) (string, error) {
	entries, err := os.ReadDir(outputDir)
	if err != nil {
		return "", err
	}

	type candidate struct {
		name string
		mod  int64
	}
	var found []candidate
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		info, err := os.Stat(filepath.Join(outputDir, e.Name(), TranscriptFile))
		if err != nil {
			continue
		}
		found = append(found, candidate{e.Name(), info.ModTime().UnixNano()})
	}
	if len(found) == 0 {
		return "", os.ErrNotExist
	}
	sort.Slice(found, func(i, j int) bool { return found[i].mod > found[j].mod })
	return found[0].name, nil
}

// ReadSegments loads a transcript artifact.
func ReadSegments(path string) ([]models.Segment, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var segments []models.Segment
	if err := json.Unmarshal(data, &segments); err != nil {
		return nil, fmt.Errorf("parse transcript %s: %w", path, err)
	}
	return segments, nil
}

// ReadTasks loads a task list artifact.
func ReadTasks(path string) ([]models.Task, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var tasks []models.Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		return nil, fmt.Errorf("parse tasks %s: %w", path, err)
	}
	return tasks, nil
}

// writeJSON writes v through a temp file and rename so readers never see a
// partial artifact.
func writeJSON(path string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", filepath.Base(path), err)
	}
	return writeFileAtomic(path, data)
}

func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("create temp for %s: %w", filepath.Base(path), err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", filepath.Base(path), err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename %s: %w", filepath.Base(path), err)
	}
	return nil
}
