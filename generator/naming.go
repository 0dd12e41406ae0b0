package generator

import (
	"strings"

	"github.com/oeb25/abeye/internal/naming"
	"github.com/oeb25/abeye/oaserrors"
	"github.com/oeb25/abeye/operations"
)

// normalizePrefix drops trailing slashes from an API prefix.
func normalizePrefix(prefix string) string {
	return strings.TrimRight(prefix, "/")
}

// stripPrefix removes prefix from path one segment at a time, so "/api"
// strips "/api/pets" but not "/apis/pets". The result is relative when a
// prefix was removed.
func stripPrefix(path, prefix string) (string, bool) {
	if prefix == "" {
		return path, true
	}
	if path == prefix {
		return "", true
	}
	rest, ok := strings.CutPrefix(path, prefix+"/")
	if !ok {
		return "", false
	}
	return strings.TrimLeft(rest, "/"), true
}

// operationBaseName derives the api key of a request path: the path
// segments joined with "_" and converted to lowerCamelCase.
// Example: "webgraph/host/ingoing" -> "webgraphHostIngoing"
func operationBaseName(path string) string {
	segments := strings.FieldsFunc(path, func(r rune) bool { return r == '/' })
	return naming.ToLowerCamelCase(strings.Join(segments, "_"))
}

// nameOperations assigns every operation its api key. When a path carries
// more than one method, each key is prefixed with the lowercased method.
func nameOperations(ops []*operations.Operation, prefix string) ([]namedOperation, error) {
	prefix = normalizePrefix(prefix)

	perPath := make(map[string]int)
	for _, op := range ops {
		perPath[op.Path]++
	}

	out := make([]namedOperation, 0, len(ops))
	seen := make(map[string]*operations.Operation, len(ops))
	for _, op := range ops {
		path, ok := stripPrefix(op.Path, prefix)
		if !ok {
			return nil, &oaserrors.OperationError{Path: op.Path, Method: op.Method, Cause: &oaserrors.ConfigError{
				Option:  "api-prefix",
				Value:   prefix,
				Message: "path does not start with the API prefix",
			}}
		}
		name := operationBaseName(path)
		if perPath[op.Path] > 1 {
			name = naming.ToLowerCamelCase(op.Method + "_" + name)
		}
		if name == "" {
			return nil, &oaserrors.OperationError{Path: op.Path, Method: op.Method,
				Cause: oaserrors.Unsupported("operation name", "path has no segments after the API prefix")}
		}
		if prev, dup := seen[name]; dup {
			return nil, &oaserrors.OperationError{Path: op.Path, Method: op.Method,
				Cause: oaserrors.Unsupported("operation name collision", "%s is also the name of %s %s", name, prev.Method, prev.Path)}
		}
		seen[name] = op
		out = append(out, namedOperation{name: name, path: path, op: op})
	}
	return out, nil
}

// OperationNames returns the api key of every operation, in the order of
// ops.
func OperationNames(ops []*operations.Operation, prefix string) ([]string, error) {
	named, err := nameOperations(ops, prefix)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(named))
	for i, n := range named {
		names[i] = n.name
	}
	return names, nil
}
