package keypath

import (
	"bytes"
	"errors"
	"io"

	"github.com/segmentio/encoding/json"
)

// Traverse walks root one segment at a time and returns the string stored
// under the final segment.
//
// Each intermediate value is re-encoded to JSON and parsed again as an
// object. For a native object that round trip is a no-op; for a string whose
// content is a JSON object it unwraps the embedded object. root is never
// modified.
func Traverse(root map[string]any, segments Path) (string, error) {
	if len(segments) == 0 {
		return "", keyError(InternalInvariantViolation, "")
	}

	current := root
	remaining := segments
	for len(remaining) > 0 {
		key := remaining[0]
		remaining = remaining[1:]

		value, ok := current[key]
		if !ok {
			return "", keyError(KeyNotFound, key)
		}

		if len(remaining) == 0 {
			s, ok := value.(string)
			if !ok {
				return "", keyError(NotAScalarString, key)
			}
			return s, nil
		}

		next, ok := reparseObject(value)
		if !ok {
			return "", keyError(NotATraversableObject, key)
		}
		current = next
	}

	return "", keyError(InternalInvariantViolation, segments.String())
}

// reparseObject serializes v and parses the text back. When the text decodes
// to a string, that string's content is parsed once more.
//
// Marshaling replaces invalid UTF-8 in keys with U+FFFD, so a caller-built
// map whose keys are not valid UTF-8 cannot be traversed below that level.
// Decoded documents never carry such keys.
func reparseObject(v any) (map[string]any, bool) {
	text, err := json.Marshal(v)
	if err != nil {
		return nil, false
	}

	decoded, err := decode(text)
	if err != nil {
		return nil, false
	}

	if s, ok := decoded.(string); ok {
		decoded, err = decode([]byte(s))
		if err != nil {
			return nil, false
		}
	}

	obj, ok := decoded.(map[string]any)
	return obj, ok
}

var errTrailingData = errors.New("unexpected data after top-level JSON value")

// decode parses exactly one JSON value, keeping numbers as json.Number so
// that re-encoded objects preserve their original digits. Anything but
// whitespace after the value is an error.
func decode(text []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(text))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return nil, errTrailingData
	}
	return v, nil
}
