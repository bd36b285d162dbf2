package models

import "encoding/json"

// Segment is a timestamped span of transcribed speech.
type Segment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

// UnmarshalJSON accepts segments with missing timestamps and treats them as
// a zero-length range.
func (s *Segment) UnmarshalJSON(data []byte) error {
	var raw struct {
		Start *float64 `json:"start"`
		End   *float64 `json:"end"`
		Text  string   `json:"text"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	s.Text = raw.Text
	s.Start, s.End = 0, 0
	if raw.Start != nil {
		s.Start = *raw.Start
	}
	if raw.End != nil {
		s.End = *raw.End
	} else {
		s.End = s.Start
	}
	return nil
}
