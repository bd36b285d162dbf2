// Package prompt assembles the bounded task-extraction request sent to the
// provider chain.
package prompt

import (
	"encoding/json"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/nguyentantai21042004/meeting-flow/internal/models"
)

// ErrBudgetTooSmall is returned when the prompt without any segment already
// exceeds the character ceiling.
var ErrBudgetTooSmall = errors.New("prompt budget too small for instructions and name hints")

const (
	payloadOpen  = "[\n  "
	payloadClose = "\n]"
	payloadSep   = ",\n  "
	emptyPayload = "[]"
)

var actionKeywords = []string{
	"need", "please", "can you", "could you", "would you",
	"will ", "we will", "i will", "we should", "should ", "must",
	"assign", "let's", "todo", "follow up", "take care of", "make sure",
	"remember to", "ensure", "schedule", "plan", "prepare", "send", "share",
}

// Input is everything a prompt is built from.
type Input struct {
	Segments    []models.Segment
	Employees   []string
	MeetingDate string
}

// Result is the rendered prompt and the segments that made it in.
type Result struct {
	Prompt   string
	Segments []models.Segment
}

// Builder renders prompts under a fixed character ceiling.
type Builder struct {
	maxChars    int
	prioritize  bool
	defaultDate string
}

// New creates a Builder. maxChars is measured in characters (runes).
func New(maxChars int, prioritize bool, defaultDate string) *Builder {
	return &Builder{
		maxChars:    maxChars,
		prioritize:  prioritize,
		defaultDate: defaultDate,
	}
}

// Build renders the extraction prompt. Segments are appended in order until
// the next one would push the prompt past the ceiling; the rest are dropped.
func (b *Builder) Build(in Input) (Result, error) {
	date := strings.TrimSpace(in.MeetingDate)
	if date == "" {
		date = b.defaultDate
	}
	names := employeeBlock(in.Employees)

	fixed := utf8.RuneCountInString(render(names, date, ""))
	if fixed+len(emptyPayload) > b.maxChars {
		return Result{}, ErrBudgetTooSmall
	}

	candidates := in.Segments
	if b.prioritize {
		candidates = prioritizeActionable(candidates, b.maxChars)
	}

	overhead := fixed + len(payloadOpen) + len(payloadClose)
	used := 0
	items := make([]string, 0, len(candidates))
	trimmed := make([]models.Segment, 0, len(candidates))
	for _, seg := range candidates {
		item := encodeSegment(seg)
		cost := utf8.RuneCountInString(item)
		if len(items) > 0 {
			cost += len(payloadSep)
		}
		if overhead+used+cost > b.maxChars {
			break
		}
		items = append(items, item)
		trimmed = append(trimmed, seg)
		used += cost
	}

	payload := emptyPayload
	if len(items) > 0 {
		payload = payloadOpen + strings.Join(items, payloadSep) + payloadClose
	}

	return Result{
		Prompt:   render(names, date, payload),
		Segments: trimmed,
	}, nil
}

func render(employees, date, segments string) string {
	r := strings.NewReplacer(
		"{employees}", employees,
		"{meeting_date}", date,
		"{segments}", segments,
	)
	return r.Replace(extractionTemplate)
}

func employeeBlock(names []string) string {
	clean := make([]string, 0, len(names))
	for _, n := range names {
		if n = strings.TrimSpace(n); n != "" {
			clean = append(clean, n)
		}
	}
	if len(clean) == 0 {
		return "(none provided)"
	}
	return strings.Join(clean, ", ")
}

func encodeSegment(seg models.Segment) string {
	// Segment has only float and string fields; Marshal cannot fail.
	data, _ := json.Marshal(seg)
	return string(data)
}

func looksActionable(text string) bool {
	lower := strings.ToLower(text)
	for _, k := range actionKeywords {
		if strings.Contains(lower, k) {
			return true
		}
	}
	return false
}

// prioritizeActionable keeps segments that look like actions, falling back
// to everything, and downsamples evenly when far over budget. Order is
// always preserved.
func prioritizeActionable(segments []models.Segment, maxChars int) []models.Segment {
	var picked []models.Segment
	for _, s := range segments {
		if looksActionable(s.Text) {
			picked = append(picked, s)
		}
	}
	if len(picked) == 0 {
		picked = segments
	}
	if len(picked) == 0 {
		return picked
	}

	total := 0
	for _, s := range picked {
		total += utf8.RuneCountInString(s.Text)
	}
	if float64(total) <= float64(maxChars)*1.5 {
		return picked
	}

	avg := max(1, total/len(picked))
	approx := max(1, maxChars/avg)
	step := max(1, len(picked)/approx)

	sampled := make([]models.Segment, 0, len(picked)/step+1)
	for i, s := range picked {
		if i%step == 0 {
			sampled = append(sampled, s)
		}
	}
	return sampled
}
