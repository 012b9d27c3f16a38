package expr

import (
	"strconv"

	"github.com/ohnod/parqlap/types"
)

// Evaluate recursively walks expr against row (interpreted under
// schema) and produces the resulting Field (spec.md §4.1). It never
// panics in production paths: every unsupported form or type mismatch
// returns a types.Error of kind Expression, carrying the offending
// subexpression's text.
func Evaluate(e Expr, row types.Row, schema types.OutputSchema) (types.Field, error) {
	types.Assert(row.Len() == schema.Len(), "row length disagrees with schema length")

	switch n := e.(type) {
	case *Paren:
		return Evaluate(n.Inner, row, schema)

	case *Unary:
		return evaluateUnary(n, row, schema)

	case *Binary:
		return evaluateBinary(n, row, schema)

	case *Ident:
		idx, err := schema.Resolve(n.Name)
		if err != nil {
			return types.Field{}, err
		}
		return row.Values[idx], nil

	case *Literal:
		return n.Value, nil

	default:
		return types.Field{}, types.NewError(types.ErrExpression, "Unsupported expression: "+e.String())
	}
}

func evaluateUnary(n *Unary, row types.Row, schema types.OutputSchema) (types.Field, error) {
	v, err := Evaluate(n.Expr, row, schema)
	if err != nil {
		return types.Field{}, err
	}

	switch n.Op {
	case OpPlus:
		if !v.IsNumeric() {
			return types.Field{}, unsupportedUnary(n, v)
		}
		return v, nil

	case OpNeg:
		switch v.Kind {
		case types.KindInt32:
			return types.Int32Field(-v.I32), nil
		case types.KindInt64:
			return types.Int64Field(-v.I64), nil
		case types.KindFloat32:
			return types.Float32Field(-v.F32), nil
		case types.KindFloat64:
			return types.Float64Field(-v.F64), nil
		default:
			return types.Field{}, unsupportedUnary(n, v)
		}

	case OpNot:
		return types.BoolField(!v.IsTruthy()), nil

	default:
		return types.Field{}, unsupportedUnary(n, v)
	}
}

func unsupportedUnary(n *Unary, v types.Field) error {
	return types.NewError(types.ErrExpression, "Unsupported unary operation: "+n.Op.String()+" "+v.Kind.String())
}

func evaluateBinary(n *Binary, row types.Row, schema types.OutputSchema) (types.Field, error) {
	// Short-circuit logical operators: only evaluate the right side
	// once the left side is known, matching SQL's left-to-right
	// logical evaluation.
	if n.Op == OpAnd || n.Op == OpOr {
		left, err := Evaluate(n.Left, row, schema)
		if err != nil {
			return types.Field{}, err
		}
		if n.Op == OpAnd && !left.IsTruthy() {
			return types.BoolField(false), nil
		}
		if n.Op == OpOr && left.IsTruthy() {
			return types.BoolField(true), nil
		}
		right, err := Evaluate(n.Right, row, schema)
		if err != nil {
			return types.Field{}, err
		}
		return types.BoolField(right.IsTruthy()), nil
	}

	left, err := Evaluate(n.Left, row, schema)
	if err != nil {
		return types.Field{}, err
	}
	right, err := Evaluate(n.Right, row, schema)
	if err != nil {
		return types.Field{}, err
	}

	if n.Op == OpXor {
		return types.BoolField(left.IsTruthy() != right.IsTruthy()), nil
	}

	return evalBinaryOp(left, n.Op, right)
}

// evalBinaryOp implements spec.md §4.1's binary-op typing: operands
// must share a case, except for = and <> which are defined across all
// cases (pointwise equality on the variant).
func evalBinaryOp(left types.Field, op BinaryOp, right types.Field) (types.Field, error) {
	if op == OpEq {
		return types.BoolField(left.Equal(right)), nil
	}
	if op == OpNeq {
		return types.BoolField(!left.Equal(right)), nil
	}

	if left.Kind != right.Kind {
		return types.Field{}, unsupportedBinary(left, op, right)
	}

	switch left.Kind {
	case types.KindStr:
		return evalStrOp(left, op, right)
	case types.KindBool:
		return evalBoolOp(left, op, right)
	case types.KindInt32:
		return evalArith(op, float64(left.I32), float64(right.I32), types.KindInt32, left, right)
	case types.KindInt64:
		return evalArith(op, float64(left.I64), float64(right.I64), types.KindInt64, left, right)
	case types.KindFloat32:
		return evalArith(op, float64(left.F32), float64(right.F32), types.KindFloat32, left, right)
	case types.KindFloat64:
		return evalArith(op, float64(left.F64), float64(right.F64), types.KindFloat64, left, right)
	default:
		return types.Field{}, unsupportedBinary(left, op, right)
	}
}

func evalStrOp(left types.Field, op BinaryOp, right types.Field) (types.Field, error) {
	switch op {
	case OpAdd:
		return types.StrField(left.Str + right.Str), nil
	case OpLt:
		return types.BoolField(left.Str < right.Str), nil
	case OpLte:
		return types.BoolField(left.Str <= right.Str), nil
	case OpGt:
		return types.BoolField(left.Str > right.Str), nil
	case OpGte:
		return types.BoolField(left.Str >= right.Str), nil
	default:
		return types.Field{}, unsupportedBinary(left, op, right)
	}
}

func evalBoolOp(left types.Field, op BinaryOp, right types.Field) (types.Field, error) {
	switch op {
	case OpLt:
		return types.BoolField(!left.Bool && right.Bool), nil
	case OpLte:
		return types.BoolField(!left.Bool || right.Bool), nil
	case OpGt:
		return types.BoolField(left.Bool && !right.Bool), nil
	case OpGte:
		return types.BoolField(left.Bool || !right.Bool), nil
	default:
		return types.Field{}, unsupportedBinary(left, op, right)
	}
}

// evalArith implements the arithmetic and ordering operators over a
// shared numeric kind; integer division truncates (spec.md §4.1), and
// the result is re-narrowed to the operands' shared kind.
func evalArith(op BinaryOp, l, r float64, kind types.FieldKind, left, right types.Field) (types.Field, error) {
	switch op {
	case OpAdd:
		return narrow(l+r, kind), nil
	case OpSub:
		return narrow(l-r, kind), nil
	case OpMul:
		return narrow(l*r, kind), nil
	case OpDiv:
		if kind == types.KindInt32 || kind == types.KindInt64 {
			return narrow(float64(truncDiv(int64(l), int64(r))), kind), nil
		}
		return narrow(l/r, kind), nil
	case OpLt:
		return types.BoolField(l < r), nil
	case OpLte:
		return types.BoolField(l <= r), nil
	case OpGt:
		return types.BoolField(l > r), nil
	case OpGte:
		return types.BoolField(l >= r), nil
	default:
		return types.Field{}, unsupportedBinary(left, op, right)
	}
}

func truncDiv(a, b int64) int64 {
	if b == 0 {
		return 0
	}
	return a / b
}

func narrow(v float64, kind types.FieldKind) types.Field {
	switch kind {
	case types.KindInt32:
		return types.Int32Field(int32(v))
	case types.KindInt64:
		return types.Int64Field(int64(v))
	case types.KindFloat32:
		return types.Float32Field(float32(v))
	default:
		return types.Float64Field(v)
	}
}

func unsupportedBinary(left types.Field, op BinaryOp, right types.Field) error {
	return types.NewError(types.ErrExpression,
		"Unsupported binary operation: "+left.Kind.String()+" "+op.String()+" "+right.Kind.String())
}

// LiteralKind tags the parsed-literal kind the planner's AST
// translation saw, so ConvertLiteral can apply spec.md §4.1's
// narrowest-numeric-type rule without re-parsing SQL syntax itself.
type LiteralKind int

const (
	LiteralNumber LiteralKind = iota
	LiteralString
	LiteralBool
	LiteralNull
)

// ConvertLiteral implements spec.md §4.1's literal conversion: numeric
// literals are promoted to the narrowest of Int32, Int64, Float32 that
// parses without loss; booleans, strings, and NULL map directly.
func ConvertLiteral(kind LiteralKind, text string, boolVal bool) (types.Field, error) {
	switch kind {
	case LiteralNumber:
		if v, err := strconv.ParseInt(text, 10, 32); err == nil {
			return types.Int32Field(int32(v)), nil
		}
		if v, err := strconv.ParseInt(text, 10, 64); err == nil {
			return types.Int64Field(v), nil
		}
		if v, err := strconv.ParseFloat(text, 32); err == nil {
			return types.Float32Field(float32(v)), nil
		}
		return types.Field{}, types.NewError(types.ErrExpression, "Unsupported numeric literal: "+text)
	case LiteralString:
		return types.StrField(text), nil
	case LiteralBool:
		return types.BoolField(boolVal), nil
	case LiteralNull:
		return types.NullField, nil
	default:
		return types.Field{}, types.NewError(types.ErrExpression, "Unsupported literal")
	}
}

// Cast converts any numeric or Str field to the requested numeric
// kind, used internally by AVG to divide a possibly-integer sum by a
// row count without losing precision (spec.md §4.1). Any other
// combination is an Expression error.
func Cast(f types.Field, to types.FieldKind) (types.Field, error) {
	var v float64
	switch f.Kind {
	case types.KindInt32:
		v = float64(f.I32)
	case types.KindInt64:
		v = float64(f.I64)
	case types.KindFloat32:
		v = float64(f.F32)
	case types.KindFloat64:
		v = f.F64
	case types.KindStr:
		parsed, err := strconv.ParseFloat(f.Str, 64)
		if err != nil {
			return types.Field{}, types.NewError(types.ErrExpression, "Unsupported cast: Str \""+f.Str+"\" to "+to.String())
		}
		v = parsed
	default:
		return types.Field{}, types.NewError(types.ErrExpression, "Unsupported cast: "+f.Kind.String()+" to "+to.String())
	}

	switch to {
	case types.KindInt32:
		return types.Int32Field(int32(v)), nil
	case types.KindFloat32:
		return types.Float32Field(float32(v)), nil
	case types.KindFloat64:
		return types.Float64Field(v), nil
	default:
		return types.Field{}, types.NewError(types.ErrExpression, "Unsupported cast target: "+to.String())
	}
}
