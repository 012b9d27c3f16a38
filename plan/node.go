// Package plan compiles an already-parsed SQL statement tree into a
// physical plan tree (spec.md §4.2): PlanNode, the aggregate-rewrite
// pass, and the identity Optimizer. The engine package turns a Plan
// into an operator tree and runs it.
package plan

import (
	"github.com/ohnod/parqlap/expr"
	"github.com/ohnod/parqlap/types"
)

// NodeKind tags the concrete variant of a PlanNode.
type NodeKind int

const (
	NodeScan NodeKind = iota
	NodeNestedLoopJoin
	NodeFilter
	NodeProjection
	NodeAggregate
	NodeLimit
	NodeEmpty
)

// Node is a tree node (output_schema, op) where op is one of the seven
// variants named in spec.md §3. Every field below belongs to exactly
// one variant; which fields are populated is determined by Kind.
type Node struct {
	Kind         NodeKind
	OutputSchema types.OutputSchema

	// NodeScan
	ScanTable  string
	ScanFilter expr.Expr // WHERE directly above this Scan; used only for row-group pruning, never evaluated per row

	// NodeNestedLoopJoin
	JoinLeft, JoinRight *Node
	JoinPredicate       expr.Expr // nil for an unpredicated Cartesian join

	// NodeFilter
	FilterPredicate expr.Expr
	FilterChild     *Node

	// NodeProjection
	ProjectSelect []expr.SelectItem
	ProjectChild  *Node

	// NodeAggregate
	AggAggregates    []expr.FuncCall
	AggGroupBy       []expr.Expr
	AggNonAggregates []expr.Expr // deduplicated identifiers, plan.ExtractAggregates
	AggChild         *Node

	// NodeLimit
	LimitN     int
	LimitChild *Node
}
