package scoring

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"

	"essay-grader-service/internal/core/domain"
)

var errUnbalanced = errors.New("unbalanced braces")

// ExtractJSON returns the first balanced {...} object in text that decodes as a
// JSON object. Numbers are kept as json.Number.
//
// Top-level candidates are tried left to right; nested objects are never tried
// on their own. When no '{' exists the result is ErrNoJSONFound, otherwise a
// *MalformedJSONError describing the first candidate.
func ExtractJSON(text string) (map[string]any, error) {
	start := strings.IndexByte(text, '{')
	if start < 0 {
		return nil, domain.ErrNoJSONFound
	}

	var firstErr error
	for start >= 0 {
		end := matchBrace(text, start)
		if end < 0 {
			if firstErr == nil {
				firstErr = &domain.MalformedJSONError{Candidate: text[start:], Err: errUnbalanced}
			}
			break
		}

		candidate := text[start : end+1]
		obj, err := decodeObject(candidate)
		if err == nil {
			return obj, nil
		}
		if firstErr == nil {
			firstErr = &domain.MalformedJSONError{Candidate: candidate, Err: err}
		}

		next := strings.IndexByte(text[end+1:], '{')
		if next < 0 {
			break
		}
		start = end + 1 + next
	}
	return nil, firstErr
}

// matchBrace returns the index of the '}' closing the '{' at start, skipping
// braces inside string literals, or -1.
func matchBrace(text string, start int) int {
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		ch := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}
		switch ch {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

func decodeObject(candidate string) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader([]byte(candidate)))
	dec.UseNumber()
	var obj map[string]any
	if err := dec.Decode(&obj); err != nil {
		return nil, err
	}
	if obj == nil {
		return nil, errors.New("not an object")
	}
	return obj, nil
}
