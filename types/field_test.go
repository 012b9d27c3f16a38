package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFieldEqual(t *testing.T) {
	assert := assert.New(t)

	assert.True(Int32Field(3).Equal(Int32Field(3)))
	assert.False(Int32Field(3).Equal(Int32Field(4)))
	assert.False(Int32Field(3).Equal(Int64Field(3)), "different kinds never equal")
	assert.True(NullField.Equal(NullField), "Null equals only itself")
	assert.False(NullField.Equal(Int32Field(0)))
}

func TestFieldIsTruthy(t *testing.T) {
	assert := assert.New(t)

	assert.True(BoolField(true).IsTruthy())
	assert.False(BoolField(false).IsTruthy())
	assert.True(Int32Field(1).IsTruthy())
	assert.False(Int32Field(0).IsTruthy())
	assert.True(StrField("x").IsTruthy())
	assert.False(StrField("").IsTruthy())
	assert.False(NullField.IsTruthy())
}

func TestFieldIsNumeric(t *testing.T) {
	assert := assert.New(t)

	assert.True(Int32Field(1).IsNumeric())
	assert.True(Float64Field(1.5).IsNumeric())
	assert.False(StrField("1").IsNumeric())
	assert.False(NullField.IsNumeric())
}
