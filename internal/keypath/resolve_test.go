package keypath

import (
	"errors"
	"strings"
	"sync"
	"testing"
)

func TestResolve_Scenarios(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		path    string
		want    string
		wantErr error
	}{
		{
			name: "A nested stake",
			doc:  `{"node": {"stake": "9d51f5129e9188ba9622163f06b34e51071be224209365ad367d1300979e0b0e"}}`,
			path: "node:stake",
			want: "9d51f5129e9188ba9622163f06b34e51071be224209365ad367d1300979e0b0e",
		},
		{
			name: "B top-level wallet",
			doc:  `{"wallet": "xe_abc123"}`,
			path: "wallet",
			want: "xe_abc123",
		},
		{
			name:    "C trailing colon",
			doc:     `{"a": {}}`,
			path:    "a:",
			wantErr: ErrMalformedPath,
		},
		{
			name:    "D six segments",
			doc:     `{"a": {"b": {"c": {"d": {"e": {"f": "x"}}}}}}`,
			path:    "a:b:c:d:e:f",
			wantErr: ErrDepthExceeded,
		},
		{
			name:    "E missing key",
			doc:     `{"node": {}}`,
			path:    "node:stake",
			wantErr: ErrKeyNotFound,
		},
		{
			name:    "F number intermediate",
			doc:     `{"node": 42}`,
			path:    "node:stake",
			wantErr: ErrNotATraversableObject,
		},
		{
			name:    "stringified intermediate with trailing data",
			doc:     `{"node": "{\"stake\":\"x\"} garbage"}`,
			path:    "node:stake",
			wantErr: ErrNotATraversableObject,
		},
		{
			name:    "G number leaf",
			doc:     `{"stake": 42}`,
			path:    "stake",
			wantErr: ErrNotAScalarString,
		},
		{
			name: "five segments resolve",
			doc:  `{"a": {"b": {"c": {"d": {"e": "x"}}}}}`,
			path: "a:b:c:d:e",
			want: "x",
		},
		{
			name: "stringified session document",
			doc:  `{"node": "{\"address\":\"xe_7a65\",\"stake\":\"9d51f5\"}", "lastActive": 1690000000000}`,
			path: "node:stake",
			want: "9d51f5",
		},
		{
			name:    "empty path",
			doc:     `{"a": "b"}`,
			path:    "",
			wantErr: ErrEmptyPath,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveJSON([]byte(tt.doc), tt.path)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ResolveJSON(%q) error = %v, want %v", tt.path, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ResolveJSON(%q) error: %v", tt.path, err)
			}
			if got != tt.want {
				t.Errorf("ResolveJSON(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestResolve_DepthBoundaryIgnoresResolvability(t *testing.T) {
	// The sixth segment exists, but the path is still too deep.
	root := map[string]any{
		"a": map[string]any{"b": map[string]any{"c": map[string]any{
			"d": map[string]any{"e": map[string]any{"f": "x"}},
		}}},
	}

	_, err := Resolve(root, "a:b:c:d:e:f")
	if !errors.Is(err, ErrDepthExceeded) {
		t.Errorf("Resolve error = %v, want %v", err, ErrDepthExceeded)
	}

	_, err = Resolve(map[string]any{}, "a:b:c:d:e:f")
	if !errors.Is(err, ErrDepthExceeded) {
		t.Errorf("Resolve on empty root error = %v, want %v", err, ErrDepthExceeded)
	}
}

func TestResolve_Idempotent(t *testing.T) {
	root := map[string]any{"node": `{"stake":"9d51f5"}`}

	first, err1 := Resolve(root, "node:stake")
	second, err2 := Resolve(root, "node:stake")
	if err1 != nil || err2 != nil {
		t.Fatalf("Resolve errors: %v, %v", err1, err2)
	}
	if first != second {
		t.Errorf("Resolve not idempotent: %q != %q", first, second)
	}
}

func TestResolve_Concurrent(t *testing.T) {
	root := map[string]any{"node": map[string]any{"stake": "9d51f5"}}

	var wg sync.WaitGroup
	errs := make(chan error, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := Resolve(root, "node:stake")
			if err != nil {
				errs <- err
				return
			}
			if got != "9d51f5" {
				errs <- errors.New("unexpected value " + got)
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Error(err)
	}
}

func TestResolveJSON_NonObjectDocument(t *testing.T) {
	for _, doc := range []string{`[1,2]`, `"text"`, `42`, `not json`, `{"a":"w"} {"a":"other"}`, `{"a":"w"}x`} {
		_, err := ResolveJSON([]byte(doc), "a")
		if !errors.Is(err, ErrNotATraversableObject) {
			t.Errorf("ResolveJSON(%s) error = %v, want %v", doc, err, ErrNotATraversableObject)
		}
	}
}

func TestResolveJSON_TrailingWhitespace(t *testing.T) {
	got, err := ResolveJSON([]byte("{\"wallet\":\"w\"}\n\t "), "wallet")
	if err != nil {
		t.Fatalf("ResolveJSON() error = %v", err)
	}
	if got != "w" {
		t.Errorf("ResolveJSON() = %q, want %q", got, "w")
	}
}

func TestError_Message(t *testing.T) {
	tests := []struct {
		err  *Error
		want string
	}{
		{keyError(KeyNotFound, "stake"), `key not found: "stake"`},
		{pathError(MalformedPath, "a:"), `malformed path: "a:"`},
		{&Error{Kind: NotATraversableObject}, "not a traversable object"},
	}

	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("Error() = %q, want %q", got, tt.want)
		}
	}

	if !strings.Contains(Kind(99).String(), "99") {
		t.Errorf("unknown kind should include its number, got %q", Kind(99).String())
	}
}

func TestError_IsDistinguishesKinds(t *testing.T) {
	err := keyError(KeyNotFound, "stake")
	if errors.Is(err, ErrNotAScalarString) {
		t.Error("KeyNotFound should not match NotAScalarString")
	}
	if !errors.Is(err, ErrKeyNotFound) {
		t.Error("KeyNotFound should match its sentinel")
	}
}
