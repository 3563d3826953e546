package dom

import "errors"

// Errors reported by tree and range primitives. Callers receive them wrapped
// with details and are expected to abandon the operation.
var (
	ErrIndexSize        = errors.New("index or size is out of range")
	ErrInvalidState     = errors.New("invalid state")
	ErrNotFound         = errors.New("not found")
	ErrHierarchyRequest = errors.New("hierarchy request")
	ErrInvalidNodeType  = errors.New("invalid node type")
)
