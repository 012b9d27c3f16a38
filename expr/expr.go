// Package expr holds the engine's own expression AST — deliberately
// not sqlparser's — plus the recursive evaluator over it (spec.md
// §4.1). Keeping this AST separate from github.com/xwb1989/sqlparser's
// means the evaluator and operators never import the parser package;
// only plan's AST-translation layer does.
package expr

import (
	"fmt"
	"strings"

	"github.com/ohnod/parqlap/types"
)

// BinaryOp enumerates every binary operator the evaluator recognizes:
// arithmetic, comparison, and logical (spec.md §4.1).
type BinaryOp int

const (
	OpAdd BinaryOp = iota
	OpSub
	OpMul
	OpDiv
	OpEq
	OpNeq
	OpLt
	OpLte
	OpGt
	OpGte
	OpAnd
	OpOr
	OpXor
)

func (op BinaryOp) String() string {
	switch op {
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	case OpEq:
		return "="
	case OpNeq:
		return "<>"
	case OpLt:
		return "<"
	case OpLte:
		return "<="
	case OpGt:
		return ">"
	case OpGte:
		return ">="
	case OpAnd:
		return "AND"
	case OpOr:
		return "OR"
	case OpXor:
		return "XOR"
	default:
		return "?"
	}
}

// UnaryOp enumerates the supported prefix operators.
type UnaryOp int

const (
	OpPlus UnaryOp = iota
	OpNeg
	OpNot
)

func (op UnaryOp) String() string {
	switch op {
	case OpPlus:
		return "+"
	case OpNeg:
		return "-"
	case OpNot:
		return "NOT"
	default:
		return "?"
	}
}

// Expr is the engine's expression AST node. Concrete cases: Paren,
// Unary, Binary, Ident, Literal, FuncCall.
type Expr interface {
	// String renders the expression's textual form, used both for
	// error messages and for the planner's "label the column after
	// the expression's text" rule (spec.md §4.2.2).
	String() string
	isExpr()
}

// Paren wraps a parenthesized subexpression; evaluation is
// transparent but the node is kept so String() round-trips.
type Paren struct {
	Inner Expr
}

func (p *Paren) String() string { return "(" + p.Inner.String() + ")" }
func (*Paren) isExpr()          {}

// Unary is a prefix +, -, or NOT applied to a subexpression.
type Unary struct {
	Op   UnaryOp
	Expr Expr
}

func (u *Unary) String() string {
	if u.Op == OpNot {
		return "NOT " + u.Expr.String()
	}
	return u.Op.String() + u.Expr.String()
}
func (*Unary) isExpr() {}

// Binary is an arithmetic, comparison, or logical binary operation.
type Binary struct {
	Op    BinaryOp
	Left  Expr
	Right Expr
}

func (b *Binary) String() string {
	return fmt.Sprintf("%s %s %s", b.Left.String(), b.Op.String(), b.Right.String())
}
func (*Binary) isExpr() {}

// Ident is a bare or compound ("table.column") identifier reference,
// or an internal aggregate placeholder ("#agg<k>").
type Ident struct {
	Name string
}

func (i *Ident) String() string { return i.Name }
func (*Ident) isExpr()          {}

// Literal is an already-converted constant value.
type Literal struct {
	Value types.Field
}

func (l *Literal) String() string {
	if l.Value.Kind == types.KindStr {
		return "'" + l.Value.Str + "'"
	}
	return l.Value.String()
}
func (*Literal) isExpr() {}

// FuncCall is a function call (SUM(x), COUNT(*), ...). Before
// execution the planner's aggregate rewrite (plan.ExtractAggregates)
// replaces every FuncCall reachable from a SELECT item or HAVING
// expression with an Ident("#agg<k>") — so by the time an Aggregate
// operator's expressions are evaluated, FuncCall no longer appears in
// them; FuncCall.Args is evaluated directly by the Aggregate operator
// against each accumulator (see operators.Aggregate).
type FuncCall struct {
	Name string
	Args []Expr
	Star bool // true for COUNT(*): the single argument is "*"
}

func (f *FuncCall) String() string {
	if f.Star {
		return f.Name + "(*)"
	}
	parts := make([]string, len(f.Args))
	for i, a := range f.Args {
		parts[i] = a.String()
	}
	return f.Name + "(" + strings.Join(parts, ", ") + ")"
}
func (*FuncCall) isExpr() {}

// IsIdent reports whether e is a bare Ident, and returns its name.
// Used by the planner's output-schema rule for UnnamedExpr/
// ExprWithAlias column naming (spec.md §4.2.2's table).
func IsIdent(e Expr) (string, bool) {
	id, ok := e.(*Ident)
	if !ok {
		return "", false
	}
	return id.Name, true
}
