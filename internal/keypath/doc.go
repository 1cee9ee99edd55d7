// Package keypath resolves colon-delimited key paths against JSON objects
// returned by the XE index API.
//
// # Path Syntax
//
// A path is one or more keys separated by colons:
//
//	"wallet"       // top-level key
//	"node:stake"   // key "stake" inside the object stored under "node"
//
// There is no escaping, no wildcards, and no array indexing. A path may hold
// at most MaxDepth segments and must not end with a colon.
//
// # Stringified Objects
//
// The index API sometimes stores a nested object as a JSON string whose
// content is itself a JSON object. Intermediate values are therefore always
// re-encoded and re-parsed before descending, which unwraps both
// representations the same way:
//
//	{"node": {"stake": "9d51f5..."}}        // native object
//	{"node": "{\"stake\":\"9d51f5...\"}"}   // stringified object
//
// Both resolve "node:stake" to "9d51f5...".
//
// # Errors
//
// Every failure is an *Error carrying a Kind. Compare against the sentinel
// values with errors.Is:
//
//	if errors.Is(err, keypath.ErrKeyNotFound) { ... }
//
// The resolver performs no I/O and never logs; rendering errors is left to
// the caller.
package keypath
