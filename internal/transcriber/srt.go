package transcriber

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/nguyentantai21042004/meeting-flow/internal/models"
)

var (
	reSrtTime  = regexp.MustCompile(`^(\d{2}):(\d{2}):(\d{2})[,.](\d{3})\s*-->\s*(\d{2}):(\d{2}):(\d{2})[,.](\d{3})`)
	reSrtIndex = regexp.MustCompile(`^\d+$`)
)

// ParseSRT converts SRT subtitle content into segments. Cues without text
// are dropped; malformed cues are skipped.
func ParseSRT(content string) []models.Segment {
	content = strings.ReplaceAll(content, "\r\n", "\n")

	var segments []models.Segment
	var cur *models.Segment
	var text []string

	flush := func() {
		if cur != nil {
			if t := strings.TrimSpace(strings.Join(text, " ")); t != "" {
				cur.Text = t
				segments = append(segments, *cur)
			}
		}
		cur = nil
		text = nil
	}

	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "":
			flush()
		case cur == nil && reSrtIndex.MatchString(trimmed):
		case cur == nil:
			m := reSrtTime.FindStringSubmatch(trimmed)
			if m == nil {
				continue
			}
			cur = &models.Segment{
				Start: timestamp(m[1:5]),
				End:   timestamp(m[5:9]),
			}
		default:
			text = append(text, trimmed)
		}
	}
	flush()

	return segments
}

func timestamp(parts []string) float64 {
	h, _ := strconv.Atoi(parts[0])
	m, _ := strconv.Atoi(parts[1])
	s, _ := strconv.Atoi(parts[2])
	ms, _ := strconv.Atoi(parts[3])
	return float64(h*3600+m*60+s) + float64(ms)/1000
}
