package operators

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ohnod/parqlap/expr"
	"github.com/ohnod/parqlap/types"
)

// scoreFixture builds a child schema (name, score) and its rows for the
// canonical end-to-end fixture used across these tests: rows
// {('a',3.0),('b',1.0),('a',5.0),('c',NULL)}.
func scoreFixture() (types.OutputSchema, *fakeChild) {
	schema := types.NewOutputSchema(types.NewColumn("name"), types.NewColumn("score"))
	child := newFakeChild(schema,
		row(types.StrField("a"), types.Float64Field(3.0)),
		row(types.StrField("b"), types.Float64Field(1.0)),
		row(types.StrField("a"), types.Float64Field(5.0)),
		row(types.StrField("c"), types.NullField),
	)
	return schema, child
}

func TestAggregateCountStarAndCountCol(t *testing.T) {
	assert := assert.New(t)

	_, child := scoreFixture()
	aggregates := []expr.FuncCall{
		{Name: "COUNT", Star: true},
		{Name: "COUNT", Args: []expr.Expr{&expr.Ident{Name: "score"}}},
	}
	outSchema := types.NewOutputSchema(types.NewColumn("#agg0"), types.NewColumn("#agg1"))

	agg := NewAggregate(child, aggregates, nil, nil, outSchema)
	chunk, err := agg.NextChunk()
	assert.NoError(err)
	assert.Len(chunk.Rows, 1)
	assert.Equal(types.Int32Field(4), chunk.Rows[0].Values[0])
	assert.Equal(types.Int32Field(3), chunk.Rows[0].Values[1], "NULL scores are not counted")
}

func TestAggregateGroupByNameAvgScore(t *testing.T) {
	assert := assert.New(t)

	_, child := scoreFixture()
	aggregates := []expr.FuncCall{{Name: "AVG", Args: []expr.Expr{&expr.Ident{Name: "score"}}}}
	groupBy := []expr.Expr{&expr.Ident{Name: "name"}}
	nonAggregates := []expr.Expr{&expr.Ident{Name: "name"}}
	outSchema := types.NewOutputSchema(types.NewColumn("#agg0"), types.NewColumn("name"))

	agg := NewAggregate(child, aggregates, groupBy, nonAggregates, outSchema)
	chunk, err := agg.NextChunk()
	assert.NoError(err)
	assert.Len(chunk.Rows, 3)

	results := make(map[string]types.Field)
	for _, r := range chunk.Rows {
		results[r.Values[1].Str] = r.Values[0]
	}
	assert.Equal(types.Float32Field(4.0), results["a"])
	assert.Equal(types.Float32Field(1.0), results["b"])
	assert.Equal(types.NullField, results["c"], "AVG of an all-NULL group is Null")
}

func TestAggregateEmptyInputSynthesizesOneGroup(t *testing.T) {
	assert := assert.New(t)

	schema := types.NewOutputSchema(types.NewColumn("x"))
	child := newFakeChild(schema)
	aggregates := []expr.FuncCall{{Name: "MAX", Args: []expr.Expr{&expr.Ident{Name: "x"}}}}
	outSchema := types.NewOutputSchema(types.NewColumn("#agg0"))

	agg := NewAggregate(child, aggregates, nil, nil, outSchema)
	chunk, err := agg.NextChunk()
	assert.NoError(err)
	assert.Len(chunk.Rows, 1)
	assert.Equal(types.NullField, chunk.Rows[0].Values[0])
}

func TestAggregateUnknownFunctionIsExecutionError(t *testing.T) {
	assert := assert.New(t)

	schema := types.NewOutputSchema(types.NewColumn("x"))
	child := newFakeChild(schema, row(types.Int32Field(1)))
	aggregates := []expr.FuncCall{{Name: "MEDIAN", Args: []expr.Expr{&expr.Ident{Name: "x"}}}}
	outSchema := types.NewOutputSchema(types.NewColumn("#agg0"))

	agg := NewAggregate(child, aggregates, nil, nil, outSchema)
	_, err := agg.NextChunk()
	assert.Error(err)
	var typed *types.Error
	assert.ErrorAs(err, &typed)
	assert.Equal(types.ErrExecution, typed.Kind)
}

func TestAggregateSumIgnoresNull(t *testing.T) {
	assert := assert.New(t)

	schema := types.NewOutputSchema(types.NewColumn("x"))
	child := newFakeChild(schema, row(types.Int32Field(2)), row(types.NullField), row(types.Int32Field(3)))
	aggregates := []expr.FuncCall{{Name: "SUM", Args: []expr.Expr{&expr.Ident{Name: "x"}}}}
	outSchema := types.NewOutputSchema(types.NewColumn("#agg0"))

	agg := NewAggregate(child, aggregates, nil, nil, outSchema)
	chunk, err := agg.NextChunk()
	assert.NoError(err)
	assert.Equal(types.Int32Field(5), chunk.Rows[0].Values[0])
}
