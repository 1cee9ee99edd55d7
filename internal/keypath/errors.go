package keypath

import "fmt"

// Kind classifies a resolution failure.
type Kind int

const (
	// EmptyPath means the input path string was empty.
	EmptyPath Kind = iota + 1
	// MalformedPath means the path ends with a colon or contains an empty segment.
	MalformedPath
	// DepthExceeded means the path has more segments than allowed.
	DepthExceeded
	// KeyNotFound means a segment's key is absent from the current object.
	KeyNotFound
	// NotATraversableObject means an intermediate value is not an object.
	NotATraversableObject
	// NotAScalarString means the leaf value is present but not a string.
	NotAScalarString
	// InternalInvariantViolation means traversal was handed no segments.
	InternalInvariantViolation
)

func (k Kind) String() string {
	switch k {
	case EmptyPath:
		return "empty path"
	case MalformedPath:
		return "malformed path"
	case DepthExceeded:
		return "depth exceeded"
	case KeyNotFound:
		return "key not found"
	case NotATraversableObject:
		return "not a traversable object"
	case NotAScalarString:
		return "not a scalar string"
	case InternalInvariantViolation:
		return "internal invariant violation"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Error is returned by every failing operation in this package.
// Key is set for traversal failures, Path for tokenizer failures.
type Error struct {
	Kind Kind
	Key  string
	Path string
}

func (e *Error) Error() string {
	switch {
	case e.Key != "":
		return fmt.Sprintf("%s: %q", e.Kind, e.Key)
	case e.Path != "":
		return fmt.Sprintf("%s: %q", e.Kind, e.Path)
	default:
		return e.Kind.String()
	}
}

// Is reports whether target is an *Error of the same Kind, so the sentinels
// below match errors carrying any key or path.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// Sentinels for errors.Is.
var (
	ErrEmptyPath                  = &Error{Kind: EmptyPath}
	ErrMalformedPath              = &Error{Kind: MalformedPath}
	ErrDepthExceeded              = &Error{Kind: DepthExceeded}
	ErrKeyNotFound                = &Error{Kind: KeyNotFound}
	ErrNotATraversableObject      = &Error{Kind: NotATraversableObject}
	ErrNotAScalarString           = &Error{Kind: NotAScalarString}
	ErrInternalInvariantViolation = &Error{Kind: InternalInvariantViolation}
)

func pathError(kind Kind, path string) *Error {
	return &Error{Kind: kind, Path: path}
}

func keyError(kind Kind, key string) *Error {
	return &Error{Kind: kind, Key: key}
}
