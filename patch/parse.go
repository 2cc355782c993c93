package patch

import (
	"go.yaml.in/yaml/v4"

	"github.com/erraggy/otpatch/patcherrors"
)

// ParseOperations parses an operation list from YAML or JSON bytes.
//
// The input must be a sequence of operation objects. Whether each operation
// carried a "value" member is preserved in Operation.NoValue.
func ParseOperations(data []byte) ([]Operation, error) {
	var ops []Operation

	// yaml.Unmarshal handles both YAML and JSON
	if err := yaml.Unmarshal(data, &ops); err != nil {
		return nil, &patcherrors.OperationError{
			Index:   -1,
			Op:      "parse",
			Kind:    patcherrors.ErrInvalidArgument,
			Message: "invalid operation list",
			Cause:   err,
		}
	}
	return ops, nil
}

// ParseDocument parses a JSON-shaped document from YAML or JSON bytes.
// Mappings decode to map[string]any and sequences to []any.
func ParseDocument(data []byte) (any, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &patcherrors.OperationError{
			Index:   -1,
			Op:      "parse",
			Kind:    patcherrors.ErrInvalidArgument,
			Message: "invalid document",
			Cause:   err,
		}
	}
	return doc, nil
}
