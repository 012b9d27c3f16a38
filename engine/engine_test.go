package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ohnod/parqlap/expr"
	"github.com/ohnod/parqlap/plan"
	"github.com/ohnod/parqlap/storage"
	"github.com/ohnod/parqlap/types"
)

// fakeStorage is a minimal StorageReader stand-in; engine tests never
// exercise Scan, so every method is unreachable in practice.
type fakeStorage struct{}

func (fakeStorage) Resolve(table string) string { return table }
func (fakeStorage) Open(path string, filter expr.Expr, schema types.OutputSchema) (storage.Reader, error) {
	return nil, types.NewError(types.ErrStorage, "not supported")
}
func (fakeStorage) ReadMetadata(path string) (types.OutputSchema, error) {
	return types.OutputSchema{}, types.NewError(types.ErrStorage, "not supported")
}

func TestExecuteFromLessProjection(t *testing.T) {
	assert := assert.New(t)

	engine := NewExecutionEngine(fakeStorage{})

	empty := &plan.Node{Kind: plan.NodeEmpty, OutputSchema: types.OutputSchema{}}
	outSchema := types.NewOutputSchema(types.NewColumn(""))
	node := &plan.Node{
		Kind:         plan.NodeProjection,
		OutputSchema: outSchema,
		ProjectSelect: []expr.SelectItem{
			{Expr: &expr.Literal{Value: types.Int32Field(7)}},
		},
		ProjectChild: empty,
	}

	result, err := engine.Execute(node)
	assert.NoError(err)
	assert.Equal(1, result.RowCount())
	assert.Equal(types.Int32Field(7), result.Rows()[0].Values[0])
}

func TestExecuteLimitStopsEarly(t *testing.T) {
	assert := assert.New(t)

	engine := NewExecutionEngine(fakeStorage{})

	empty := &plan.Node{Kind: plan.NodeEmpty, OutputSchema: types.OutputSchema{}}
	node := &plan.Node{
		Kind:       plan.NodeLimit,
		OutputSchema: types.OutputSchema{},
		LimitN:     0,
		LimitChild: empty,
	}

	result, err := engine.Execute(node)
	assert.NoError(err)
	assert.Equal(0, result.RowCount())
}

func TestBuildUnsupportedNodeKindIsExecutionError(t *testing.T) {
	assert := assert.New(t)

	builder := NewExecutorBuilder(fakeStorage{})
	_, err := builder.Build(&plan.Node{Kind: plan.NodeKind(99)})
	assert.Error(err)
	var typed *types.Error
	assert.ErrorAs(err, &typed)
	assert.Equal(types.ErrExecution, typed.Kind)
}
