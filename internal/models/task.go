package models

import (
	"encoding/json"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Priority of an extracted task.
type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

// Task is one actionable item recovered from a meeting.
type Task struct {
	Text       string   `json:"text"`
	Assignee   string   `json:"assignee,omitempty"`
	Role       string   `json:"role,omitempty"`
	Deadline   string   `json:"deadline,omitempty"`
	Priority   Priority `json:"priority"`
	Confidence float64  `json:"confidence"`
}

// Title is the normalized form used for duplicate detection.
func (t Task) Title() string {
	return NormalizeTitle(t.Text)
}

// MaxTitleRunes caps a stored task title; longer text is cut on write.
const MaxTitleRunes = 2000

// StoredTitle is the title text as it is written to a store.
func StoredTitle(text string) string {
	text = strings.TrimSpace(text)
	if utf8.RuneCountInString(text) <= MaxTitleRunes {
		return text
	}
	return string([]rune(text)[:MaxTitleRunes])
}

// NormalizeTitle lower-cases the stored form of text, so a title read back
// from a store matches the task it was written from.
func NormalizeTitle(text string) string {
	return strings.ToLower(strings.TrimSpace(StoredTitle(text)))
}

// UnmarshalJSON decodes model output leniently: nulls become empty strings,
// an absent priority becomes Medium and confidence may arrive as a string.
func (t *Task) UnmarshalJSON(data []byte) error {
	var raw struct {
		Text       *string         `json:"text"`
		Assignee   *string         `json:"assignee"`
		Role       *string         `json:"role"`
		Deadline   *string         `json:"deadline"`
		Priority   *string         `json:"priority"`
		Confidence json.RawMessage `json:"confidence"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*t = Task{
		Text:     deref(raw.Text),
		Assignee: deref(raw.Assignee),
		Role:     deref(raw.Role),
		Deadline: deref(raw.Deadline),
		Priority: Priority(deref(raw.Priority)),
	}
	if t.Priority == "" {
		t.Priority = PriorityMedium
	}
	t.Confidence = parseConfidence(raw.Confidence)
	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func parseConfidence(raw json.RawMessage) float64 {
	if len(raw) == 0 || string(raw) == "null" {
		return 0
	}

	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0
		}
		parsed, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return 0
		}
		f = parsed
	}

	switch {
	case f < 0:
		return 0
	case f > 1:
		return 1
	}
	return f
}
