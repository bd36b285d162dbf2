package extractor

import "strings"

// Strategy names which candidate search produced the text that was parsed.
type Strategy string

const (
	StrategyJSONFence   Strategy = "json_fence"
	StrategyAnyFence    Strategy = "any_fence"
	StrategyBracketSpan Strategy = "bracket_span"
	StrategyRaw         Strategy = "raw"
)

const fence = "```"

// FromJSONFence returns the body of the first fenced block tagged json.
// A missing closing fence means the response was cut off; the body then
// runs to the end of the text.
func FromJSONFence(text string) (string, bool) {
	const tag = "json"
	for from := 0; ; {
		i := strings.Index(text[from:], fence)
		if i < 0 {
			return "", false
		}
		start := from + i + len(fence)
		if end := start + len(tag); end <= len(text) && strings.EqualFold(text[start:end], tag) {
			return fenceBody(text[end:])
		}
		from = start
	}
}

// FromAnyFence returns the body of the first fenced block, skipping a
// language tag on the opening line.
func FromAnyFence(text string) (string, bool) {
	idx := strings.Index(text, fence)
	if idx < 0 {
		return "", false
	}
	body := text[idx+len(fence):]
	if nl := strings.IndexByte(body, '\n'); nl >= 0 && !strings.ContainsAny(body[:nl], "[{") {
		body = body[nl+1:]
	}
	return fenceBody(body)
}

// FromBracketSpan returns the greedy span from the first '[' to the last
// ']'. With no closing bracket after the opening one the span runs to the
// end so that repair can close it.
func FromBracketSpan(text string) (string, bool) {
	start := strings.IndexByte(text, '[')
	if start < 0 {
		return "", false
	}
	end := strings.LastIndexByte(text, ']')
	if end < start {
		return strings.TrimSpace(text[start:]), true
	}
	return text[start : end+1], true
}

func fenceBody(body string) (string, bool) {
	if end := strings.Index(body, fence); end >= 0 {
		body = body[:end]
	}
	body = strings.TrimSpace(body)
	return body, body != ""
}

// Candidate runs the strategies in priority order and returns the first hit.
// When nothing matches the whole trimmed text is the candidate.
func Candidate(text string) (string, Strategy) {
	if c, ok := FromJSONFence(text); ok {
		return c, StrategyJSONFence
	}
	if c, ok := FromAnyFence(text); ok {
		return c, StrategyAnyFence
	}
	if c, ok := FromBracketSpan(text); ok {
		return c, StrategyBracketSpan
	}
	return strings.TrimSpace(text), StrategyRaw
}
