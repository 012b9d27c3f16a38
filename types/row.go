package types

// Row is an ordered sequence of values. Its length must equal the
// length of the owning operator's output schema.
type Row struct {
	Values []Field
}

// NewRow builds a Row from the given values.
func NewRow(values ...Field) Row {
	return Row{Values: values}
}

// Len returns the number of values in the row.
func (r Row) Len() int { return len(r.Values) }

// Concat appends other's values after r's and returns the result as a
// new row, used by NestedLoopJoin to build the joined (left ++ right)
// row.
func (r Row) Concat(other Row) Row {
	values := make([]Field, 0, len(r.Values)+len(other.Values))
	values = append(values, r.Values...)
	values = append(values, other.Values...)
	return Row{Values: values}
}

// Clone returns a row holding a copy of the value slice, so the
// original can be reused or mutated by the caller without aliasing.
func (r Row) Clone() Row {
	values := make([]Field, len(r.Values))
	copy(values, r.Values)
	return Row{Values: values}
}

// VectorSizeThreshold is the fixed upper bound on the number of rows
// carried by a single Chunk, shared by every operator.
const VectorSizeThreshold = 1024

// Chunk is an ordered sequence of rows, bounded above by
// VectorSizeThreshold. An empty chunk signals end-of-stream.
type Chunk struct {
	Rows []Row
}

// Len returns the number of rows in the chunk.
func (c Chunk) Len() int { return len(c.Rows) }

// IsEmpty reports whether the chunk carries no rows (end-of-stream).
func (c Chunk) IsEmpty() bool { return len(c.Rows) == 0 }

// EmptyChunk is the canonical end-of-stream sentinel.
var EmptyChunk = Chunk{}
