// Package operators implements the pull-model operator tree that
// executes a compiled plan.Node: every operator satisfies
// types.Operator, pulling from its child(ren) and emitting chunks of
// at most types.VectorSizeThreshold rows (spec.md §4.3).
package operators

import "github.com/ohnod/parqlap/types"

// Buffer is the shared row queue operators use to assemble evenly
// sized chunks: add rows one at a time as they pass a predicate or are
// computed, then drain up to n of them into a Chunk once the
// threshold is reached or the child is exhausted.
type Buffer struct {
	rows []types.Row
}

// AddRow appends row to the buffer.
func (b *Buffer) AddRow(row types.Row) {
	b.rows = append(b.rows, row)
}

// Size returns the number of rows currently buffered.
func (b *Buffer) Size() int {
	return len(b.rows)
}

// DrainUpTo removes and returns up to n rows from the front of the
// buffer as a Chunk, preserving arrival order.
func (b *Buffer) DrainUpTo(n int) types.Chunk {
	if n > len(b.rows) {
		n = len(b.rows)
	}
	chunk := types.Chunk{Rows: b.rows[:n]}
	b.rows = b.rows[n:]
	return chunk
}
