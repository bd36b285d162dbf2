// Package extractor recovers a task list from free-form model output.
//
// The flow is a small state machine: pick a candidate (json fence, any
// fence, bracket span, raw text), parse it, on a syntax error repair the
// bracket balance and parse once more, and otherwise fail soft with an empty
// list and a dump of the raw response.
package extractor

import "context"

// DebugSink persists raw responses that could not be parsed.
type DebugSink interface {
	Dump(ctx context.Context, name, content string) (string, error)
}
