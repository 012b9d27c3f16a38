package operators

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ohnod/parqlap/expr"
	"github.com/ohnod/parqlap/types"
)

func TestNestedLoopJoinCartesianProduct(t *testing.T) {
	assert := assert.New(t)

	leftSchema := types.NewOutputSchema(types.Column{ColumnName: "id", Table: "t"})
	rightSchema := types.NewOutputSchema(types.Column{ColumnName: "id", Table: "u"})

	left := newFakeChild(leftSchema, row(types.Int32Field(1)), row(types.Int32Field(2)))
	right := newFakeChild(rightSchema, row(types.Int32Field(1)), row(types.Int32Field(2)))

	j := NewNestedLoopJoin(left, right, nil)
	chunk, err := j.NextChunk()
	assert.NoError(err)
	assert.Len(chunk.Rows, 4, "2x2 Cartesian product")
}

func TestNestedLoopJoinWithPredicate(t *testing.T) {
	assert := assert.New(t)

	leftSchema := types.NewOutputSchema(types.Column{ColumnName: "id", Table: "t"})
	rightSchema := types.NewOutputSchema(types.Column{ColumnName: "id", Table: "u"})

	left := newFakeChild(leftSchema, row(types.Int32Field(1)), row(types.Int32Field(2)))
	right := newFakeChild(rightSchema, row(types.Int32Field(1)), row(types.Int32Field(2)))

	predicate := &expr.Binary{Op: expr.OpEq, Left: &expr.Ident{Name: "t.id"}, Right: &expr.Ident{Name: "u.id"}}
	j := NewNestedLoopJoin(left, right, predicate)

	chunk, err := j.NextChunk()
	assert.NoError(err)
	assert.Len(chunk.Rows, 2, "only the diagonal pairs satisfy t.id = u.id")
}
