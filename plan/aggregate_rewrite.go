package plan

import (
	"fmt"
	"strings"

	"github.com/ohnod/parqlap/expr"
)

// rewriteState accumulates the side effects of the aggregate rewrite
// walk: the extracted functions (in assignment order) and the
// deduplicated non-aggregate identifiers encountered along the way
// (spec.md §4.2, §3's "Aggregate rewrite invariant").
type rewriteState struct {
	aggregates    []expr.FuncCall
	nonAggregates []expr.Expr
	seen          map[string]bool
}

// ExtractAggregates implements the planner's aggregate-rewrite pass:
// every Function subnode in items and (optionally) having is replaced
// by a fresh #agg<k> identifier, in left-to-right, item-then-having
// order; the replaced functions are returned in that same order, and
// every bare-or-compound identifier referenced anywhere (outside of
// aggregate arguments) is collected once into non-aggregates.
//
// The walk produces new trees — it never mutates the input — so
// callers holding references to the original items/having are
// unaffected (spec.md §9's design note on avoiding mutation leakage).
func ExtractAggregates(items []expr.SelectItem, having expr.Expr) (newItems []expr.SelectItem, newHaving expr.Expr, aggregates []expr.FuncCall, nonAggregates []expr.Expr) {
	state := &rewriteState{seen: make(map[string]bool)}

	newItems = make([]expr.SelectItem, len(items))
	for i, item := range items {
		newItems[i] = item
		if item.Wildcard {
			continue
		}
		newItems[i].Expr = state.rewrite(item.Expr)
	}

	if having != nil {
		newHaving = state.rewrite(having)
	}

	return newItems, newHaving, state.aggregates, state.nonAggregates
}

func (s *rewriteState) rewrite(e expr.Expr) expr.Expr {
	switch n := e.(type) {
	case *expr.FuncCall:
		idx := len(s.aggregates)
		s.aggregates = append(s.aggregates, *n)
		return &expr.Ident{Name: fmt.Sprintf("#agg%d", idx)}

	case *expr.Ident:
		if !strings.HasPrefix(n.Name, "#agg") && !s.seen[n.Name] {
			s.seen[n.Name] = true
			s.nonAggregates = append(s.nonAggregates, n)
		}
		return n

	case *expr.Paren:
		return &expr.Paren{Inner: s.rewrite(n.Inner)}

	case *expr.Unary:
		return &expr.Unary{Op: n.Op, Expr: s.rewrite(n.Expr)}

	case *expr.Binary:
		return &expr.Binary{Op: n.Op, Left: s.rewrite(n.Left), Right: s.rewrite(n.Right)}

	case *expr.Literal:
		return n

	default:
		return n
	}
}
