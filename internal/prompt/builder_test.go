package prompt

import (
	"fmt"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nguyentantai21042004/meeting-flow/internal/models"
)

func makeSegments(n int, text string) []models.Segment {
	segs := make([]models.Segment, n)
	for i := range segs {
		segs[i] = models.Segment{
			Start: float64(i),
			End:   float64(i) + 0.5,
			Text:  fmt.Sprintf("%s %d", text, i),
		}
	}
	return segs
}

func TestBuildNeverExceedsCeiling(t *testing.T) {
	segs := makeSegments(300, "We need to prepare the quarterly numbers, é ü ß")
	employees := []string{"Sanya", "Ravi"}

	for _, ceiling := range []int{2500, 3000, 4096, 8000, 20000, 100000} {
		t.Run(fmt.Sprintf("ceiling=%d", ceiling), func(t *testing.T) {
			b := New(ceiling, false, "2025-12-01")
			res, err := b.Build(Input{Segments: segs, Employees: employees})
			require.NoError(t, err)

			assert.LessOrEqual(t, utf8.RuneCountInString(res.Prompt), ceiling)
			require.LessOrEqual(t, len(res.Segments), len(segs))
			assert.Equal(t, segs[:len(res.Segments)], res.Segments, "trimmed segments must be a prefix")
		})
	}
}

func TestBuildIncludesEverythingWhenItFits(t *testing.T) {
	segs := makeSegments(3, "short")
	b := New(20000, false, "2025-12-01")

	res, err := b.Build(Input{Segments: segs, Employees: []string{"Sanya", " "}, MeetingDate: "2026-01-05"})
	require.NoError(t, err)

	assert.Equal(t, segs, res.Segments)
	assert.Contains(t, res.Prompt, "Meeting date: 2026-01-05")
	assert.Contains(t, res.Prompt, "Sanya")
	assert.Contains(t, res.Prompt, `{"start":2,"end":2.5,"text":"short 2"}`)
	assert.NotContains(t, res.Prompt, "{segments}")
}

func TestBuildDefaults(t *testing.T) {
	b := New(20000, false, "2025-12-01")

	res, err := b.Build(Input{})
	require.NoError(t, err)
	assert.Empty(t, res.Segments)
	assert.Contains(t, res.Prompt, "Meeting date: 2025-12-01")
	assert.Contains(t, res.Prompt, "(none provided)")
	assert.Contains(t, res.Prompt, "Transcript segments:\n[]")
}

func TestBuildBudgetTooSmall(t *testing.T) {
	b := New(100, false, "2025-12-01")
	_, err := b.Build(Input{Segments: makeSegments(1, "x")})
	assert.ErrorIs(t, err, ErrBudgetTooSmall)
}

func TestBuildStopsAtFirstOverflow(t *testing.T) {
	b := New(20000, false, "2025-12-01")
	base, err := b.Build(Input{})
	require.NoError(t, err)
	fixed := utf8.RuneCountInString(base.Prompt) - len(emptyPayload)

	small := models.Segment{Text: "a"}
	big := models.Segment{Text: strings.Repeat("b", 500)}
	room := fixed + len(payloadOpen) + len(payloadClose) + len(encodeSegment(small)) + 10

	b = New(room, false, "2025-12-01")
	res, err := b.Build(Input{Segments: []models.Segment{small, big, small}})
	require.NoError(t, err)
	assert.Equal(t, []models.Segment{small}, res.Segments, "must not skip the big segment and continue")
}

func TestBuildPrioritizesActionableSegments(t *testing.T) {
	segs := []models.Segment{
		{Start: 0, Text: "Good morning everyone"},
		{Start: 1, Text: "Sanya, can you send the deck?"},
		{Start: 2, Text: "The weather is nice"},
		{Start: 3, Text: "We should schedule a review"},
	}
	b := New(20000, true, "2025-12-01")

	res, err := b.Build(Input{Segments: segs})
	require.NoError(t, err)
	assert.Equal(t, []models.Segment{segs[1], segs[3]}, res.Segments)
}

func TestPrioritizeFallsBackToAll(t *testing.T) {
	segs := makeSegments(4, "chatter")
	assert.Equal(t, segs, prioritizeActionable(segs, 20000))
}

func TestPrioritizeDownsamplesInOrder(t *testing.T) {
	segs := makeSegments(1000, "we need "+strings.Repeat("x", 100))
	got := prioritizeActionable(segs, 5000)

	require.Less(t, len(got), len(segs))
	for i := 1; i < len(got); i++ {
		assert.Less(t, got[i-1].Start, got[i].Start)
	}
}
