package operators

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ohnod/parqlap/types"
)

func TestLimitZeroReturnsEmptyImmediately(t *testing.T) {
	assert := assert.New(t)

	schema := types.NewOutputSchema(types.NewColumn("id"))
	child := newFakeChild(schema, row(types.Int32Field(1)))
	l := NewLimit(child, 0)

	chunk, err := l.NextChunk()
	assert.NoError(err)
	assert.True(chunk.IsEmpty())
}

func TestLimitTrimsFinalChunk(t *testing.T) {
	assert := assert.New(t)

	schema := types.NewOutputSchema(types.NewColumn("id"))
	child := newFakeChild(schema, row(types.Int32Field(1)), row(types.Int32Field(2)), row(types.Int32Field(3)))
	l := NewLimit(child, 2)

	chunk, err := l.NextChunk()
	assert.NoError(err)
	assert.Len(chunk.Rows, 2)

	next, err := l.NextChunk()
	assert.NoError(err)
	assert.True(next.IsEmpty(), "no more rows are emitted once the limit is reached")
}
