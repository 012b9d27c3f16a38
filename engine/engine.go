package engine

import (
	"github.com/ohnod/parqlap/plan"
	"github.com/ohnod/parqlap/storage"
	"github.com/ohnod/parqlap/types"
)

// ExecutionEngine runs a compiled plan to completion, materializing
// every chunk the root operator produces into a ResultSet (spec.md
// §4.4). Each Execute call owns its operator tree exclusively.
type ExecutionEngine struct {
	builder *ExecutorBuilder
}

// NewExecutionEngine builds an ExecutionEngine over the given storage
// boundary.
func NewExecutionEngine(s storage.StorageReader) *ExecutionEngine {
	return &ExecutionEngine{builder: NewExecutorBuilder(s)}
}

// Execute builds node's operator tree and drains it, stopping at the
// first empty chunk.
func (e *ExecutionEngine) Execute(node *plan.Node) (*types.ResultSet, error) {
	root, err := e.builder.Build(node)
	if err != nil {
		return nil, err
	}

	result := types.NewResultSet(root.OutputSchema())
	for {
		chunk, err := root.NextChunk()
		if err != nil {
			return nil, err
		}
		if chunk.IsEmpty() {
			break
		}
		result.AddChunk(chunk)
	}
	return result, nil
}
