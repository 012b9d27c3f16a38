package plan

import (
	"strconv"
	"strings"

	"github.com/ohnod/parqlap/expr"
	"github.com/ohnod/parqlap/types"
	"github.com/xwb1989/sqlparser"
)

// translateExpr converts a parsed sqlparser.Expr into the engine's own
// expr.Expr, the boundary past which the SQL parser package is never
// imported again (spec.md §4.1, §4.2).
func translateExpr(e sqlparser.Expr) (expr.Expr, error) {
	switch n := e.(type) {
	case *sqlparser.ParenExpr:
		inner, err := translateExpr(n.Expr)
		if err != nil {
			return nil, err
		}
		return &expr.Paren{Inner: inner}, nil

	case *sqlparser.AndExpr:
		return translateBinary(n.Left, expr.OpAnd, n.Right)

	case *sqlparser.OrExpr:
		return translateBinary(n.Left, expr.OpOr, n.Right)

	case *sqlparser.NotExpr:
		inner, err := translateExpr(n.Expr)
		if err != nil {
			return nil, err
		}
		return &expr.Unary{Op: expr.OpNot, Expr: inner}, nil

	case *sqlparser.UnaryExpr:
		inner, err := translateExpr(n.Expr)
		if err != nil {
			return nil, err
		}
		op, err := translateUnaryOp(n.Operator)
		if err != nil {
			return nil, err
		}
		return &expr.Unary{Op: op, Expr: inner}, nil

	case *sqlparser.ComparisonExpr:
		op, err := translateComparisonOp(n.Operator)
		if err != nil {
			return nil, err
		}
		return translateBinary(n.Left, op, n.Right)

	case *sqlparser.BinaryExpr:
		op, err := translateArithOp(n.Operator)
		if err != nil {
			return nil, err
		}
		return translateBinary(n.Left, op, n.Right)

	case *sqlparser.ColName:
		return &expr.Ident{Name: columnRef(n)}, nil

	case *sqlparser.SQLVal:
		return translateSQLVal(n)

	case *sqlparser.NullVal:
		v, _ := expr.ConvertLiteral(expr.LiteralNull, "", false)
		return &expr.Literal{Value: v}, nil

	case sqlparser.BoolVal:
		v, _ := expr.ConvertLiteral(expr.LiteralBool, "", bool(n))
		return &expr.Literal{Value: v}, nil

	case *sqlparser.FuncExpr:
		return translateFuncExpr(n)

	default:
		return nil, types.NewError(types.ErrPlanner, "Unsupported expression syntax: "+sqlparser.String(e))
	}
}

func translateBinary(left sqlparser.Expr, op expr.BinaryOp, right sqlparser.Expr) (expr.Expr, error) {
	l, err := translateExpr(left)
	if err != nil {
		return nil, err
	}
	r, err := translateExpr(right)
	if err != nil {
		return nil, err
	}
	return &expr.Binary{Op: op, Left: l, Right: r}, nil
}

func translateUnaryOp(op string) (expr.UnaryOp, error) {
	switch op {
	case sqlparser.UPlusStr:
		return expr.OpPlus, nil
	case sqlparser.UMinusStr:
		return expr.OpNeg, nil
	default:
		return 0, types.NewError(types.ErrPlanner, "Unsupported unary operator: "+op)
	}
}

func translateComparisonOp(op string) (expr.BinaryOp, error) {
	switch op {
	case sqlparser.EqualStr:
		return expr.OpEq, nil
	case sqlparser.NotEqualStr:
		return expr.OpNeq, nil
	case sqlparser.LessThanStr:
		return expr.OpLt, nil
	case sqlparser.LessEqualStr:
		return expr.OpLte, nil
	case sqlparser.GreaterThanStr:
		return expr.OpGt, nil
	case sqlparser.GreaterEqualStr:
		return expr.OpGte, nil
	default:
		return 0, types.NewError(types.ErrPlanner, "Unsupported comparison operator: "+op)
	}
}

// translateArithOp maps the parser's binary operators to the
// evaluator's, including the XOR open question: this parser fork
// surfaces logical XOR (when it surfaces it at all) as the bitwise "^"
// operator string, so that string is treated as expr.OpXor rather than
// rejected (see DESIGN.md's open-questions entry).
func translateArithOp(op string) (expr.BinaryOp, error) {
	switch op {
	case sqlparser.PlusStr:
		return expr.OpAdd, nil
	case sqlparser.MinusStr:
		return expr.OpSub, nil
	case sqlparser.MultStr:
		return expr.OpMul, nil
	case sqlparser.DivStr:
		return expr.OpDiv, nil
	case "^":
		return expr.OpXor, nil
	default:
		return 0, types.NewError(types.ErrPlanner, "Unsupported binary operator: "+op)
	}
}

// columnRef renders a ColName into the "t.c" / "c" form OutputSchema.Resolve
// expects, trimming whatever quoting the parser preserved.
func columnRef(c *sqlparser.ColName) string {
	name := strings.Trim(c.Name.String(), "`\"")
	if !c.Qualifier.IsEmpty() {
		table := strings.Trim(c.Qualifier.Name.String(), "`\"")
		return table + "." + name
	}
	return name
}

func translateSQLVal(v *sqlparser.SQLVal) (expr.Expr, error) {
	switch v.Type {
	case sqlparser.IntVal, sqlparser.FloatVal:
		field, err := expr.ConvertLiteral(expr.LiteralNumber, string(v.Val), false)
		if err != nil {
			return nil, err
		}
		return &expr.Literal{Value: field}, nil
	case sqlparser.StrVal:
		field, _ := expr.ConvertLiteral(expr.LiteralString, string(v.Val), false)
		return &expr.Literal{Value: field}, nil
	default:
		return nil, types.NewError(types.ErrPlanner, "Unsupported literal syntax")
	}
}

// translateFuncExpr converts a function call. Aggregate names are
// recognized case-insensitively; any other name is still translated
// (the planner's aggregate rewrite extracts every function call
// whatever its name; an unrecognized name surfaces later in
// operators.Aggregate's accumulator catalogue as an Execution error,
// not here).
func translateFuncExpr(fn *sqlparser.FuncExpr) (expr.Expr, error) {
	name := strings.ToUpper(fn.Name.String())

	if len(fn.Exprs) == 1 {
		if _, ok := fn.Exprs[0].(*sqlparser.StarExpr); ok {
			return &expr.FuncCall{Name: name, Star: true}, nil
		}
	}

	args := make([]expr.Expr, 0, len(fn.Exprs))
	for _, se := range fn.Exprs {
		aliased, ok := se.(*sqlparser.AliasedExpr)
		if !ok {
			return nil, types.NewError(types.ErrPlanner, "Unsupported function argument syntax")
		}
		a, err := translateExpr(aliased.Expr)
		if err != nil {
			return nil, err
		}
		args = append(args, a)
	}
	return &expr.FuncCall{Name: name, Args: args}, nil
}

// translateSelectExprs converts the SELECT list into the engine's own
// SelectItem form, per spec.md §4.2.2's naming table.
func translateSelectExprs(exprs sqlparser.SelectExprs) ([]expr.SelectItem, error) {
	items := make([]expr.SelectItem, 0, len(exprs))
	for _, se := range exprs {
		switch e := se.(type) {
		case *sqlparser.StarExpr:
			items = append(items, expr.SelectItem{Wildcard: true})

		case *sqlparser.AliasedExpr:
			translated, err := translateExpr(e.Expr)
			if err != nil {
				return nil, err
			}
			alias := strings.Trim(e.As.String(), "`\"")
			items = append(items, expr.SelectItem{Expr: translated, Alias: alias})

		default:
			return nil, types.NewError(types.ErrPlanner, "Unsupported select item syntax")
		}
	}
	return items, nil
}

// translateGroupBy converts a GROUP BY clause's expression list.
func translateGroupBy(gb sqlparser.GroupBy) ([]expr.Expr, error) {
	exprs := make([]expr.Expr, 0, len(gb))
	for _, e := range gb {
		translated, err := translateExpr(e)
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, translated)
	}
	return exprs, nil
}

// parseLimit extracts a literal row count; a non-literal LIMIT (a bind
// parameter, a subquery) is a Planner error per spec.md §4.2 step 4.
func parseLimit(limit *sqlparser.Limit) (int, error) {
	if limit == nil || limit.Rowcount == nil {
		return 0, types.NewError(types.ErrPlanner, "LIMIT requires a literal value")
	}
	v, ok := limit.Rowcount.(*sqlparser.SQLVal)
	if !ok || v.Type != sqlparser.IntVal {
		return 0, types.NewError(types.ErrPlanner, "LIMIT must be an integer literal")
	}
	n, err := strconv.Atoi(string(v.Val))
	if err != nil {
		return 0, types.NewError(types.ErrPlanner, "LIMIT must be an integer literal")
	}
	return n, nil
}
