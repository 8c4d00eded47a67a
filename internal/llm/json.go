package llm

import (
	"errors"
	"strings"
)

// ErrNoJSONObject means the collaborator's reply contained no brace-delimited
// candidate payload at all.
var ErrNoJSONObject = errors.New("no JSON object in completion")

// LocateJSONObject pulls the candidate order payload out of a free-text
// completion: the literal substring from the first '{' to the last '}'.
// Models pad JSON with prose on either side; anything stricter than this
// rejects otherwise usable replies.
func LocateJSONObject(content string) ([]byte, error) {
	start := strings.IndexByte(content, '{')
	end := strings.LastIndexByte(content, '}')
	if start == -1 || end == -1 || end < start {
		return nil, ErrNoJSONObject
	}
	return []byte(content[start : end+1]), nil
}
