package keypath

// Resolve tokenizes path with MaxDepth and traverses root with the result.
func Resolve(root map[string]any, path string) (string, error) {
	segments, err := Tokenize(path, MaxDepth)
	if err != nil {
		return "", err
	}
	return Traverse(root, segments)
}

// ResolveJSON decodes doc as a JSON object and resolves path against it.
func ResolveJSON(doc []byte, path string) (string, error) {
	segments, err := Tokenize(path, MaxDepth)
	if err != nil {
		return "", err
	}

	root, err := Decode(doc)
	if err != nil {
		return "", err
	}

	return Traverse(root, segments)
}

// Decode parses doc the way the resolver reads documents, keeping numbers
// as json.Number. Anything other than a JSON object fails with
// NotATraversableObject.
func Decode(doc []byte) (map[string]any, error) {
	v, err := decode(doc)
	if err != nil {
		return nil, keyError(NotATraversableObject, "")
	}
	root, ok := v.(map[string]any)
	if !ok {
		return nil, keyError(NotATraversableObject, "")
	}
	return root, nil
}
