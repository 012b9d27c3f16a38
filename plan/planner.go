package plan

import (
	"fmt"
	"strings"

	"github.com/ohnod/parqlap/expr"
	"github.com/ohnod/parqlap/storage"
	"github.com/ohnod/parqlap/types"
	"github.com/xwb1989/sqlparser"
)

// Planner compiles parsed SQL statements into PlanNode trees, per
// spec.md §4.2's fixed compilation order: FROM, WHERE, the aggregate
// rewrite, then LIMIT. It holds no state between calls other than the
// StorageReader it resolves table references against.
type Planner struct {
	Storage storage.StorageReader
}

// NewPlanner builds a Planner over the given storage boundary.
func NewPlanner(s storage.StorageReader) *Planner {
	return &Planner{Storage: s}
}

// Plan compiles every statement sqlparser.Parse produced and returns
// the last one's plan, per spec.md §4.2's multi-statement rule.
func (p *Planner) Plan(statements []sqlparser.Statement) (*Node, error) {
	if len(statements) == 0 {
		return nil, types.NewError(types.ErrPlanner, "No statement to plan")
	}
	var node *Node
	for _, stmt := range statements {
		n, err := p.planOne(stmt)
		if err != nil {
			return nil, err
		}
		node = n
	}
	return node, nil
}

func (p *Planner) planOne(stmt sqlparser.Statement) (*Node, error) {
	sel, ok := stmt.(*sqlparser.Select)
	if !ok {
		return nil, types.NewError(types.ErrPlanner, "Only SELECT statements are supported")
	}

	// 1. FROM
	node, err := p.planFrom(sel.From)
	if err != nil {
		return nil, err
	}

	// 2. WHERE
	if sel.Where != nil {
		predicate, err := translateExpr(sel.Where.Expr)
		if err != nil {
			return nil, err
		}
		if node.Kind == NodeScan {
			node.ScanFilter = predicate
		}
		node = &Node{
			Kind:            NodeFilter,
			OutputSchema:    node.OutputSchema,
			FilterPredicate: predicate,
			FilterChild:     node,
		}
	}

	// 3. Aggregate rewrite, then projection or aggregate subplan.
	selectItems, err := translateSelectExprs(sel.SelectExprs)
	if err != nil {
		return nil, err
	}
	var having expr.Expr
	if sel.Having != nil {
		having, err = translateExpr(sel.Having.Expr)
		if err != nil {
			return nil, err
		}
	}
	groupBy, err := translateGroupBy(sel.GroupBy)
	if err != nil {
		return nil, err
	}

	rewrittenItems, rewrittenHaving, aggregates, nonAggregates := ExtractAggregates(selectItems, having)

	if len(aggregates) > 0 || len(groupBy) > 0 {
		node, err = p.planAggregate(node, aggregates, groupBy, nonAggregates, rewrittenItems, rewrittenHaving)
		if err != nil {
			return nil, err
		}
	} else {
		if having != nil {
			return nil, types.NewError(types.ErrPlanner, "HAVING without aggregates not supported")
		}
		node, err = p.planProjection(rewrittenItems, node)
		if err != nil {
			return nil, err
		}
	}

	// 4. LIMIT
	if sel.Limit != nil {
		n, err := parseLimit(sel.Limit)
		if err != nil {
			return nil, err
		}
		node = &Node{
			Kind:         NodeLimit,
			OutputSchema: node.OutputSchema,
			LimitN:       n,
			LimitChild:   node,
		}
	}

	return node, nil
}

// planFrom implements spec.md §4.2 step 1: an empty FROM list becomes
// an Empty leaf; a non-empty list left-folds its table factors with
// unpredicated NestedLoopJoin. The parser fills a SELECT written
// without FROM with the single table "dual", which is treated as empty.
func (p *Planner) planFrom(from sqlparser.TableExprs) (*Node, error) {
	if len(from) == 1 {
		if t, ok := from[0].(*sqlparser.AliasedTableExpr); ok {
			if name, ok := t.Expr.(sqlparser.TableName); ok && name.Qualifier.IsEmpty() && strings.EqualFold(name.Name.String(), "dual") {
				from = nil
			}
		}
	}
	if len(from) == 0 {
		return &Node{Kind: NodeEmpty, OutputSchema: types.OutputSchema{}}, nil
	}

	node, err := p.resolveTableFactor(from[0])
	if err != nil {
		return nil, err
	}
	for _, te := range from[1:] {
		next, err := p.resolveTableFactor(te)
		if err != nil {
			return nil, err
		}
		node = &Node{
			Kind:          NodeNestedLoopJoin,
			OutputSchema:  node.OutputSchema.Concat(next.OutputSchema),
			JoinLeft:      node,
			JoinRight:     next,
			JoinPredicate: nil,
		}
	}
	return node, nil
}

// resolveTableFactor implements spec.md §4.2.1: base tables (possibly
// aliased) resolve through the StorageReader; only INNER joins (with
// or without ON) are supported, and any other join type is rejected.
func (p *Planner) resolveTableFactor(te sqlparser.TableExpr) (*Node, error) {
	switch t := te.(type) {
	case *sqlparser.AliasedTableExpr:
		tableName, err := tableNameFromSimpleExpr(t.Expr)
		if err != nil {
			return nil, err
		}
		path := p.Storage.Resolve(tableName)
		schema, err := p.Storage.ReadMetadata(path)
		if err != nil {
			return nil, err
		}

		qualifier := strings.Trim(t.As.String(), "`\"")
		if qualifier == "" {
			qualifier = tableName
		}
		stamped := make([]types.Column, len(schema.Columns))
		for i, c := range schema.Columns {
			c.Table = qualifier
			stamped[i] = c
		}

		return &Node{
			Kind:         NodeScan,
			OutputSchema: types.OutputSchema{Columns: stamped},
			ScanTable:    tableName,
		}, nil

	case *sqlparser.JoinTableExpr:
		if t.Join != sqlparser.JoinStr {
			return nil, types.NewError(types.ErrPlanner, "Unsupported join type: "+t.Join)
		}
		if len(t.Condition.Using) > 0 {
			return nil, types.NewError(types.ErrPlanner, "Unsupported join type: "+t.Join+" using")
		}
		left, err := p.resolveTableFactor(t.LeftExpr)
		if err != nil {
			return nil, err
		}
		right, err := p.resolveTableFactor(t.RightExpr)
		if err != nil {
			return nil, err
		}

		var predicate expr.Expr
		if t.Condition.On != nil {
			predicate, err = translateExpr(t.Condition.On)
			if err != nil {
				return nil, err
			}
		}

		return &Node{
			Kind:          NodeNestedLoopJoin,
			OutputSchema:  left.OutputSchema.Concat(right.OutputSchema),
			JoinLeft:      left,
			JoinRight:     right,
			JoinPredicate: predicate,
		}, nil

	default:
		return nil, types.NewError(types.ErrPlanner, "Unsupported FROM clause syntax")
	}
}

func tableNameFromSimpleExpr(e sqlparser.SimpleTableExpr) (string, error) {
	name, ok := e.(sqlparser.TableName)
	if !ok {
		return "", types.NewError(types.ErrPlanner, "Subqueries in FROM are not supported")
	}
	return strings.Trim(name.Name.String(), "`\""), nil
}

// planAggregate builds the three-node-high aggregate subplan of
// spec.md §4.2.2: Projection — [Filter(HAVING)] — Aggregate — child.
func (p *Planner) planAggregate(child *Node, aggregates []expr.FuncCall, groupBy []expr.Expr, nonAggregates []expr.Expr, items []expr.SelectItem, having expr.Expr) (*Node, error) {
	aggCols := make([]types.Column, 0, len(aggregates)+len(nonAggregates))
	for i := range aggregates {
		aggCols = append(aggCols, types.NewColumn(aggIdentName(i)))
	}
	for _, na := range nonAggregates {
		name, ok := expr.IsIdent(na)
		if !ok {
			return nil, types.NewError(types.ErrPlanner, "Unsupported non-aggregate expression: "+na.String())
		}
		idx, err := child.OutputSchema.Resolve(name)
		if err != nil {
			return nil, err
		}
		aggCols = append(aggCols, child.OutputSchema.Columns[idx])
	}

	aggNode := &Node{
		Kind:             NodeAggregate,
		OutputSchema:     types.OutputSchema{Columns: aggCols},
		AggAggregates:    aggregates,
		AggGroupBy:       groupBy,
		AggNonAggregates: nonAggregates,
		AggChild:         child,
	}

	node := aggNode
	if having != nil {
		node = &Node{
			Kind:            NodeFilter,
			OutputSchema:    aggNode.OutputSchema,
			FilterPredicate: having,
			FilterChild:     aggNode,
		}
	}

	return p.planProjection(items, node)
}

func aggIdentName(i int) string {
	return fmt.Sprintf("#agg%d", i)
}

// planProjection builds the final Projection node, resolving each
// SelectItem's output column per spec.md §4.2.2's naming table.
func (p *Planner) planProjection(items []expr.SelectItem, child *Node) (*Node, error) {
	cols := make([]types.Column, 0, len(items))
	for _, item := range items {
		if item.Wildcard {
			cols = append(cols, child.OutputSchema.Columns...)
			continue
		}
		cols = append(cols, types.Column{
			Label:      item.Label(),
			ColumnName: item.ColumnName(),
		})
	}

	return &Node{
		Kind:          NodeProjection,
		OutputSchema:  types.OutputSchema{Columns: cols},
		ProjectSelect: items,
		ProjectChild:  child,
	}, nil
}
