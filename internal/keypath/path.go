package keypath

import "strings"

const (
	// MaxDepth is the maximum number of segments a path may hold.
	MaxDepth = 5

	// Separator splits a path into segments.
	Separator = ":"
)

// Path is an ordered list of non-empty keys, outermost first.
type Path []string

// String joins the segments back into path syntax.
func (p Path) String() string {
	return strings.Join(p, Separator)
}

// Tokenize splits path on colons into at most maxSegments segments.
//
// A trailing colon or an empty segment is MalformedPath. A path that still
// has input left after maxSegments segments is DepthExceeded, whether or not
// the extra segments would have resolved.
func Tokenize(path string, maxSegments int) (Path, error) {
	if path == "" {
		return nil, pathError(EmptyPath, path)
	}

	segments := make(Path, 0, maxSegments)
	rest := path
	for len(segments) < maxSegments {
		i := strings.Index(rest, Separator)
		if i < 0 {
			return append(segments, rest), nil
		}
		if i == 0 || i == len(rest)-1 {
			return nil, pathError(MalformedPath, path)
		}
		segments = append(segments, rest[:i])
		rest = rest[i+1:]
	}

	return nil, pathError(DepthExceeded, path)
}
