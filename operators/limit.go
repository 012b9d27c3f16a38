package operators

import "github.com/ohnod/parqlap/types"

// Limit passes through up to n rows from child, then returns empty
// chunks forever. A zero limit short-circuits before pulling from
// child at all (spec.md §4.3.6).
type Limit struct {
	child   types.Operator
	limit   int
	emitted int
}

// NewLimit builds a Limit over child.
func NewLimit(child types.Operator, n int) *Limit {
	return &Limit{child: child, limit: n}
}

// OutputSchema is unchanged from the child.
func (l *Limit) OutputSchema() types.OutputSchema {
	return l.child.OutputSchema()
}

// NextChunk pulls up to min(remaining, types.VectorSizeThreshold) rows
// from child per call, trimming the final chunk to the remaining quota.
func (l *Limit) NextChunk() (types.Chunk, error) {
	if l.emitted >= l.limit {
		return types.Chunk{}, nil
	}

	chunk, err := l.child.NextChunk()
	if err != nil {
		return types.Chunk{}, err
	}
	if chunk.IsEmpty() {
		return types.Chunk{}, nil
	}

	remaining := l.limit - l.emitted
	if len(chunk.Rows) > remaining {
		chunk.Rows = chunk.Rows[:remaining]
	}
	l.emitted += len(chunk.Rows)
	return chunk, nil
}
