package extractor

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/nguyentantai21042004/meeting-flow/internal/models"
)

// ErrNotArray is returned for valid JSON that is not an array.
var ErrNotArray = errors.New("model output is not a JSON array")

// Parse decodes candidate as a JSON array of tasks. Elements that are not
// task objects are dropped and counted; the array itself must be valid.
func Parse(candidate string) ([]models.Task, int, error) {
	var elems []json.RawMessage
	if err := json.Unmarshal([]byte(candidate), &elems); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return nil, 0, fmt.Errorf("%w: %v", ErrNotArray, err)
		}
		return nil, 0, err
	}

	tasks := make([]models.Task, 0, len(elems))
	dropped := 0
	for _, raw := range elems {
		var t models.Task
		if err := json.Unmarshal(raw, &t); err != nil {
			dropped++
			continue
		}
		tasks = append(tasks, t)
	}
	return tasks, dropped, nil
}

func isSyntaxError(err error) bool {
	var syntaxErr *json.SyntaxError
	return errors.As(err, &syntaxErr)
}
