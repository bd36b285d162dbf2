// Package report renders pipeline artifacts as Word documents.
package report

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/docx"

	"github.com/nguyentantai21042004/meeting-flow/internal/models"
)

const (
	fontName = "Times New Roman"
	fontSize = 13
)

var reBold = regexp.MustCompile(`\*\*(.+?)\*\*`)

// TasksToDocx writes one numbered line per task, priority in bold.
func TasksToDocx(title string, tasks []models.Task, outputPath string) error {
	doc, err := godocx.NewDocument()
	if err != nil {
		return err
	}

	addStyledRun(doc.AddParagraph(""), title, true, 16)
	doc.AddParagraph("")

	if len(tasks) == 0 {
		addRichText(doc.AddParagraph(""), "No action items were extracted.")
		return doc.SaveTo(outputPath)
	}

	for i, t := range tasks {
		addRichText(doc.AddParagraph(""), TaskLine(i+1, t))
	}

	return doc.SaveTo(outputPath)
}

// TaskLine formats one task as "N. **[Priority]** text (assignee, due date)".
func TaskLine(n int, t models.Task) string {
	var meta []string
	if t.Assignee != "" {
		who := t.Assignee
		if t.Role != "" {
			who += ", " + t.Role
		}
		meta = append(meta, who)
	}
	if t.Deadline != "" {
		meta = append(meta, "due "+t.Deadline)
	}

	line := fmt.Sprintf("%d. **[%s]** %s", n, t.Priority, strings.TrimSpace(t.Text))
	if len(meta) > 0 {
		line += " (" + strings.Join(meta, "; ") + ")"
	}
	return line
}

// TranscriptToDocx writes segment text as paragraphs, dropping repeated
// lines whisper tends to emit on silence.
func TranscriptToDocx(title string, segments []models.Segment, outputPath string) error {
	doc, err := godocx.NewDocument()
	if err != nil {
		return err
	}

	addStyledRun(doc.AddParagraph(""), title, true, 16)
	doc.AddParagraph("")

	for _, t := range TranscriptLines(segments) {
		p := doc.AddParagraph("")
		p.AddText(t).Font(fontName).Size(fontSize).Color("000000")
	}

	return doc.SaveTo(outputPath)
}

// TranscriptLines returns the trimmed, first-seen-only segment texts.
func TranscriptLines(segments []models.Segment) []string {
	seen := make(map[string]bool)
	var out []string
	for _, s := range segments {
		t := strings.TrimSpace(s.Text)
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}

func addStyledRun(p *docx.Paragraph, text string, bold bool, size uint64) {
	text = cleanMarkdownInline(text)
	run := p.AddText(text).Font(fontName).Size(size).Color("000000")
	if bold {
		run.Bold(true)
	}
}

func addRichText(p *docx.Paragraph, text string) {
	parts := reBold.Split(text, -1)
	matches := reBold.FindAllStringSubmatch(text, -1)

	for i, part := range parts {
		if part != "" {
			p.AddText(cleanMarkdownInline(part)).Font(fontName).Size(fontSize).Color("000000")
		}
		if i < len(matches) {
			p.AddText(cleanMarkdownInline(matches[i][1])).Font(fontName).Size(fontSize).Color("000000").Bold(true)
		}
	}
}

func cleanMarkdownInline(s string) string {
	s = strings.ReplaceAll(s, "**", "")
	s = strings.ReplaceAll(s, "__", "")
	s = strings.ReplaceAll(s, "`", "")
	return s
}
