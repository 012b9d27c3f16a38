package operators

import "github.com/ohnod/parqlap/types"

// Empty is the leaf operator used for FROM-less queries: it yields
// exactly one zero-column row so that a purely scalar SELECT (e.g.
// "SELECT 1+1") evaluates once, then signals end-of-stream forever
// (spec.md §4.3.7).
type Empty struct {
	done bool
}

// NewEmpty builds an Empty leaf.
func NewEmpty() *Empty {
	return &Empty{}
}

// OutputSchema is the empty schema: no columns.
func (e *Empty) OutputSchema() types.OutputSchema {
	return types.OutputSchema{}
}

// NextChunk returns a single empty-tuple row on the first call, and
// the end-of-stream chunk on every call after.
func (e *Empty) NextChunk() (types.Chunk, error) {
	if e.done {
		return types.Chunk{}, nil
	}
	e.done = true
	return types.Chunk{Rows: []types.Row{{}}}, nil
}
