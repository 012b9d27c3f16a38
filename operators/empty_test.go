package operators

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmptyYieldsOneRowThenEOS(t *testing.T) {
	assert := assert.New(t)

	e := NewEmpty()

	first, err := e.NextChunk()
	assert.NoError(err)
	assert.Len(first.Rows, 1)
	assert.Equal(0, first.Rows[0].Len())

	second, err := e.NextChunk()
	assert.NoError(err)
	assert.True(second.IsEmpty())
}
