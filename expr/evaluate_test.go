package expr

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ohnod/parqlap/types"
)

func emptySchema() types.OutputSchema { return types.OutputSchema{} }
func emptyRow() types.Row             { return types.Row{} }

func TestEvaluateLiteralArithmetic(t *testing.T) {
	assert := assert.New(t)

	// 1 + 1
	e := &Binary{Op: OpAdd, Left: &Literal{Value: types.Int32Field(1)}, Right: &Literal{Value: types.Int32Field(1)}}
	v, err := Evaluate(e, emptyRow(), emptySchema())
	assert.NoError(err)
	assert.Equal(types.Int32Field(2), v)
}

func TestEvaluateStringConcat(t *testing.T) {
	assert := assert.New(t)

	e := &Binary{Op: OpAdd, Left: &Literal{Value: types.StrField("a")}, Right: &Literal{Value: types.StrField("b")}}
	v, err := Evaluate(e, emptyRow(), emptySchema())
	assert.NoError(err)
	assert.Equal(types.StrField("ab"), v)
}

func TestEvaluateMixedKindArithmeticErrors(t *testing.T) {
	assert := assert.New(t)

	e := &Binary{Op: OpAdd, Left: &Literal{Value: types.Int32Field(1)}, Right: &Literal{Value: types.StrField("a")}}
	_, err := Evaluate(e, emptyRow(), emptySchema())
	assert.Error(err)
	var typed *types.Error
	assert.ErrorAs(err, &typed)
	assert.Equal(types.ErrExpression, typed.Kind)
}

func TestEvaluateIntegerDivisionTruncates(t *testing.T) {
	assert := assert.New(t)

	e := &Binary{Op: OpDiv, Left: &Literal{Value: types.Int32Field(7)}, Right: &Literal{Value: types.Int32Field(2)}}
	v, err := Evaluate(e, emptyRow(), emptySchema())
	assert.NoError(err)
	assert.Equal(types.Int32Field(3), v)
}

func TestEvaluateEqualityAcrossAllKinds(t *testing.T) {
	assert := assert.New(t)

	// = and <> are defined even when the two sides are different kinds.
	e := &Binary{Op: OpEq, Left: &Literal{Value: types.Int32Field(1)}, Right: &Literal{Value: types.StrField("1")}}
	v, err := Evaluate(e, emptyRow(), emptySchema())
	assert.NoError(err)
	assert.Equal(types.BoolField(false), v)
}

func TestEvaluateShortCircuitAnd(t *testing.T) {
	assert := assert.New(t)

	// The right side, if evaluated, would error; AND must short-circuit.
	bogus := &Ident{Name: "nope"}
	e := &Binary{Op: OpAnd, Left: &Literal{Value: types.BoolField(false)}, Right: bogus}
	v, err := Evaluate(e, emptyRow(), emptySchema())
	assert.NoError(err)
	assert.Equal(types.BoolField(false), v)
}

func TestEvaluateNot(t *testing.T) {
	assert := assert.New(t)

	e := &Unary{Op: OpNot, Expr: &Literal{Value: types.BoolField(false)}}
	v, err := Evaluate(e, emptyRow(), emptySchema())
	assert.NoError(err)
	assert.Equal(types.BoolField(true), v)
}

func TestEvaluateIdentResolvesAgainstSchema(t *testing.T) {
	assert := assert.New(t)

	schema := types.NewOutputSchema(types.NewColumn("x"))
	row := types.Row{Values: []types.Field{types.Int32Field(42)}}

	v, err := Evaluate(&Ident{Name: "x"}, row, schema)
	assert.NoError(err)
	assert.Equal(types.Int32Field(42), v)
}

func TestConvertLiteralNarrowestNumeric(t *testing.T) {
	assert := assert.New(t)

	v, err := ConvertLiteral(LiteralNumber, "42", false)
	assert.NoError(err)
	assert.Equal(types.KindInt32, v.Kind)

	v, err = ConvertLiteral(LiteralNumber, "3.5", false)
	assert.NoError(err)
	assert.Equal(types.KindFloat32, v.Kind)
}

func TestCastStrToFloat(t *testing.T) {
	assert := assert.New(t)

	v, err := Cast(types.StrField("3.5"), types.KindFloat64)
	assert.NoError(err)
	assert.Equal(types.Float64Field(3.5), v)

	_, err = Cast(types.StrField("not-a-number"), types.KindFloat64)
	assert.Error(err)
}
