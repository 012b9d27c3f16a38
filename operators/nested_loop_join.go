package operators

import (
	"github.com/ohnod/parqlap/expr"
	"github.com/ohnod/parqlap/types"
)

// NestedLoopJoin computes the Cartesian product of left and right,
// optionally filtered by predicate evaluated over the concatenated
// (left ++ right) schema (spec.md §4.3.4). The right child is fully
// materialized on first use — an intentional simplification unsuited
// to large right inputs, carried over from the reference design.
type NestedLoopJoin struct {
	left, right types.Operator
	predicate   expr.Expr
	schema      types.OutputSchema

	rightRows  []types.Row
	rightReady bool

	buffer   Buffer
	leftDone bool
}

// NewNestedLoopJoin builds a join over left and right. predicate may
// be nil for an unpredicated (pure Cartesian) join.
func NewNestedLoopJoin(left, right types.Operator, predicate expr.Expr) *NestedLoopJoin {
	return &NestedLoopJoin{
		left:      left,
		right:     right,
		predicate: predicate,
		schema:    left.OutputSchema().Concat(right.OutputSchema()),
	}
}

// OutputSchema returns the left schema concatenated with the right.
func (j *NestedLoopJoin) OutputSchema() types.OutputSchema {
	return j.schema
}

// NextChunk materializes right on first call, then forms the
// Cartesian product of each left chunk against it, in (left-chunk
// order, left-row order, right-row order).
func (j *NestedLoopJoin) NextChunk() (types.Chunk, error) {
	if !j.rightReady {
		if err := j.materializeRight(); err != nil {
			return types.Chunk{}, err
		}
	}

	for !j.leftDone && j.buffer.Size() < types.VectorSizeThreshold {
		chunk, err := j.left.NextChunk()
		if err != nil {
			return types.Chunk{}, err
		}
		if chunk.IsEmpty() {
			j.leftDone = true
			break
		}
		for _, leftRow := range chunk.Rows {
			for _, rightRow := range j.rightRows {
				joined := leftRow.Concat(rightRow)
				if j.predicate != nil {
					result, err := expr.Evaluate(j.predicate, joined, j.schema)
					if err != nil {
						return types.Chunk{}, err
					}
					if !result.IsTruthy() {
						continue
					}
				}
				j.buffer.AddRow(joined)
			}
		}
	}

	return j.buffer.DrainUpTo(types.VectorSizeThreshold), nil
}

func (j *NestedLoopJoin) materializeRight() error {
	for {
		chunk, err := j.right.NextChunk()
		if err != nil {
			return err
		}
		if chunk.IsEmpty() {
			break
		}
		j.rightRows = append(j.rightRows, chunk.Rows...)
	}
	j.rightReady = true
	return nil
}
