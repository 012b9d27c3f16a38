// Package engine bridges a compiled plan.Node tree to the operators
// package: ExecutorBuilder materializes the operator tree, and
// ExecutionEngine drives it to completion (spec.md §4.4).
package engine

import (
	"github.com/ohnod/parqlap/operators"
	"github.com/ohnod/parqlap/plan"
	"github.com/ohnod/parqlap/storage"
	"github.com/ohnod/parqlap/types"
)

// ExecutorBuilder turns a plan.Node tree into an operator tree,
// recursively, leaves first.
type ExecutorBuilder struct {
	Storage storage.StorageReader
}

// NewExecutorBuilder builds an ExecutorBuilder over the given storage
// boundary, the only external resource the operator tree needs.
func NewExecutorBuilder(s storage.StorageReader) *ExecutorBuilder {
	return &ExecutorBuilder{Storage: s}
}

// Build recursively constructs the operator tree rooted at node.
func (b *ExecutorBuilder) Build(node *plan.Node) (types.Operator, error) {
	switch node.Kind {
	case plan.NodeEmpty:
		return operators.NewEmpty(), nil

	case plan.NodeScan:
		return operators.NewScan(b.Storage, node.ScanTable, node.ScanFilter, node.OutputSchema)

	case plan.NodeFilter:
		child, err := b.Build(node.FilterChild)
		if err != nil {
			return nil, err
		}
		return operators.NewFilter(child, node.FilterPredicate), nil

	case plan.NodeProjection:
		child, err := b.Build(node.ProjectChild)
		if err != nil {
			return nil, err
		}
		return operators.NewProjection(child, node.ProjectSelect, node.OutputSchema), nil

	case plan.NodeNestedLoopJoin:
		left, err := b.Build(node.JoinLeft)
		if err != nil {
			return nil, err
		}
		right, err := b.Build(node.JoinRight)
		if err != nil {
			return nil, err
		}
		return operators.NewNestedLoopJoin(left, right, node.JoinPredicate), nil

	case plan.NodeAggregate:
		child, err := b.Build(node.AggChild)
		if err != nil {
			return nil, err
		}
		return operators.NewAggregate(child, node.AggAggregates, node.AggGroupBy, node.AggNonAggregates, node.OutputSchema), nil

	case plan.NodeLimit:
		child, err := b.Build(node.LimitChild)
		if err != nil {
			return nil, err
		}
		return operators.NewLimit(child, node.LimitN), nil

	default:
		return nil, types.NewError(types.ErrExecution, "Unsupported plan node kind")
	}
}
