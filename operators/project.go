package operators

import (
	"github.com/ohnod/parqlap/expr"
	"github.com/ohnod/parqlap/types"
)

// Projection builds an output row from each input row by evaluating
// the configured SelectItems, buffering into vectorized-size chunks
// the same way Filter does (spec.md §4.3.3).
type Projection struct {
	child     types.Operator
	schema    types.OutputSchema
	items     []expr.SelectItem
	buffer    Buffer
	childDone bool
}

// NewProjection builds a Projection over child, producing outputSchema.
func NewProjection(child types.Operator, items []expr.SelectItem, outputSchema types.OutputSchema) *Projection {
	return &Projection{child: child, items: items, schema: outputSchema}
}

// OutputSchema returns the projection's own schema, computed by the
// planner from the SelectItem list (spec.md §4.2.2).
func (p *Projection) OutputSchema() types.OutputSchema {
	return p.schema
}

// NextChunk pulls from child until full or exhausted, projecting each
// row through the configured SelectItems.
func (p *Projection) NextChunk() (types.Chunk, error) {
	childSchema := p.child.OutputSchema()

	for !p.childDone && p.buffer.Size() < types.VectorSizeThreshold {
		chunk, err := p.child.NextChunk()
		if err != nil {
			return types.Chunk{}, err
		}
		if chunk.IsEmpty() {
			p.childDone = true
			break
		}
		for _, row := range chunk.Rows {
			out, err := p.projectRow(row, childSchema)
			if err != nil {
				return types.Chunk{}, err
			}
			p.buffer.AddRow(out)
		}
	}

	return p.buffer.DrainUpTo(types.VectorSizeThreshold), nil
}

func (p *Projection) projectRow(row types.Row, childSchema types.OutputSchema) (types.Row, error) {
	values := make([]types.Field, 0, len(p.items))
	for _, item := range p.items {
		if item.Wildcard {
			values = append(values, row.Values...)
			continue
		}
		v, err := expr.Evaluate(item.Expr, row, childSchema)
		if err != nil {
			return types.Row{}, err
		}
		values = append(values, v)
	}
	return types.Row{Values: values}, nil
}
