package operators

import (
	"github.com/ohnod/parqlap/expr"
	"github.com/ohnod/parqlap/types"
)

// Filter evaluates predicate against each row pulled from child, in
// the child's own output schema, and buffers the truthy ones into
// chunks of up to types.VectorSizeThreshold rows (spec.md §4.3.2).
type Filter struct {
	child     types.Operator
	predicate expr.Expr
	buffer    Buffer
	childDone bool
}

// NewFilter builds a Filter over child.
func NewFilter(child types.Operator, predicate expr.Expr) *Filter {
	return &Filter{child: child, predicate: predicate}
}

// OutputSchema is unchanged from the child: Filter never adds, drops,
// or renames columns.
func (f *Filter) OutputSchema() types.OutputSchema {
	return f.child.OutputSchema()
}

// NextChunk pulls from child until the buffer reaches the vectorized
// threshold or the child is exhausted, then drains it.
func (f *Filter) NextChunk() (types.Chunk, error) {
	schema := f.child.OutputSchema()

	for !f.childDone && f.buffer.Size() < types.VectorSizeThreshold {
		chunk, err := f.child.NextChunk()
		if err != nil {
			return types.Chunk{}, err
		}
		if chunk.IsEmpty() {
			f.childDone = true
			break
		}
		for _, row := range chunk.Rows {
			result, err := expr.Evaluate(f.predicate, row, schema)
			if err != nil {
				return types.Chunk{}, err
			}
			if result.IsTruthy() {
				f.buffer.AddRow(row)
			}
		}
	}

	return f.buffer.DrainUpTo(types.VectorSizeThreshold), nil
}
