package extractor

import (
	"strings"

	"github.com/nguyentantai21042004/meeting-flow/internal/models"
)

// HeuristicConfidence is the confidence assigned to keyword-derived tasks.
const HeuristicConfidence = 0.6

var heuristicKeywords = []string{
	"need", "please", "can you", "could you", "would you",
	"will ", "we will", "i will", "we should", "should ", "must",
	"assign", "let's", "todo", "follow up", "take care of", "action item",
	"next step", "next steps", "deadline", "by tomorrow", "by next week",
	"research", "prepare", "analyze", "investigate", "document", "schedule",
	"plan", "design", "implement", "fix", "review", "send", "share",
}

// Heuristic builds tasks from segments containing action keywords, using
// the neighbouring segments as context. It is the degraded mode used when
// no provider output could be turned into tasks.
func Heuristic(segments []models.Segment) []models.Task {
	tasks := []models.Task{}
	for i, s := range segments {
		if !containsAny(strings.ToLower(s.Text), heuristicKeywords) {
			continue
		}
		tasks = append(tasks, models.Task{
			Text:       contextText(segments, i),
			Priority:   models.PriorityMedium,
			Confidence: HeuristicConfidence,
		})
	}
	return tasks
}

func contextText(segments []models.Segment, idx int) string {
	var pieces []string
	for _, j := range []int{idx - 1, idx, idx + 1} {
		if j < 0 || j >= len(segments) {
			continue
		}
		if t := strings.TrimSpace(segments[j].Text); t != "" {
			pieces = append(pieces, t)
		}
	}
	return strings.Join(strings.Fields(strings.Join(pieces, " ")), " ")
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}
