package operators

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ohnod/parqlap/types"
)

func TestBufferDrainUpToPreservesOrder(t *testing.T) {
	assert := assert.New(t)

	var b Buffer
	b.AddRow(row(types.Int32Field(1)))
	b.AddRow(row(types.Int32Field(2)))
	b.AddRow(row(types.Int32Field(3)))

	chunk := b.DrainUpTo(2)
	assert.Len(chunk.Rows, 2)
	assert.Equal(types.Int32Field(1), chunk.Rows[0].Values[0])
	assert.Equal(types.Int32Field(2), chunk.Rows[1].Values[0])
	assert.Equal(1, b.Size())
}

func TestBufferDrainMoreThanAvailable(t *testing.T) {
	assert := assert.New(t)

	var b Buffer
	b.AddRow(row(types.Int32Field(1)))

	chunk := b.DrainUpTo(10)
	assert.Len(chunk.Rows, 1)
	assert.Equal(0, b.Size())
}
