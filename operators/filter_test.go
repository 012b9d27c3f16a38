package operators

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ohnod/parqlap/expr"
	"github.com/ohnod/parqlap/types"
)

func TestFilterKeepsOnlyTruthyRows(t *testing.T) {
	assert := assert.New(t)

	schema := types.NewOutputSchema(types.NewColumn("score"))
	child := newFakeChild(schema,
		row(types.Float64Field(1.0)),
		row(types.Float64Field(3.0)),
		row(types.Float64Field(5.0)),
	)

	predicate := &expr.Binary{Op: expr.OpGte, Left: &expr.Ident{Name: "score"}, Right: &expr.Literal{Value: types.Float64Field(3.0)}}
	f := NewFilter(child, predicate)

	chunk, err := f.NextChunk()
	assert.NoError(err)
	assert.Len(chunk.Rows, 2)
	assert.Equal(types.Float64Field(3.0), chunk.Rows[0].Values[0])
	assert.Equal(types.Float64Field(5.0), chunk.Rows[1].Values[0])
}

func TestFilterEmptyWhenNothingMatches(t *testing.T) {
	assert := assert.New(t)

	schema := types.NewOutputSchema(types.NewColumn("score"))
	child := newFakeChild(schema, row(types.Float64Field(1.0)))

	predicate := &expr.Literal{Value: types.BoolField(false)}
	f := NewFilter(child, predicate)

	chunk, err := f.NextChunk()
	assert.NoError(err)
	assert.True(chunk.IsEmpty())
}
