package llm

import (
	"encoding/json"
	"strings"
)

// minCompleteLength is the shortest response treated as complete.
// Anything shorter is assumed to be cut off.
const minCompleteLength = 50

// incompleteSuffixes are trailing characters that suggest a structured
// response was truncated mid-stream.
var incompleteSuffixes = []string{"}", ",", ":", `"`, "[", "{"}

// looksIncomplete reports whether a response appears to be cut off.
// Valid JSON is always complete; otherwise a response is suspect when it
// is very short or ends on a structural character.
func looksIncomplete(text string) bool {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return true
	}

	if json.Valid([]byte(trimmed)) {
		return false
	}

	for _, suffix := range incompleteSuffixes {
		if strings.HasSuffix(trimmed, suffix) {
			return true
		}
	}

	return len(trimmed) < minCompleteLength
}
