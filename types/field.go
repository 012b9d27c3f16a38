// Package types holds the core data model shared by the planner,
// expression evaluator, and operators: values, rows, chunks, schemas,
// and the closed error taxonomy.
package types

import (
	"fmt"
	"strconv"
)

// FieldKind tags the concrete case held by a Field.
type FieldKind int

const (
	KindNull FieldKind = iota
	KindBool
	KindInt32
	KindInt64
	KindFloat32
	KindFloat64
	KindStr
)

func (k FieldKind) String() string {
	switch k {
	case KindNull:
		return "Null"
	case KindBool:
		return "Bool"
	case KindInt32:
		return "Int32"
	case KindInt64:
		return "Int64"
	case KindFloat32:
		return "Float32"
	case KindFloat64:
		return "Float64"
	case KindStr:
		return "Str"
	default:
		return "Unknown"
	}
}

// Field is a tagged variant over the recognized value cases. Only one
// of the typed fields is meaningful, selected by Kind.
type Field struct {
	Kind FieldKind
	Bool bool
	I32  int32
	I64  int64
	F32  float32
	F64  float64
	Str  string
}

// NullField is the singleton untyped null value.
var NullField = Field{Kind: KindNull}

func BoolField(b bool) Field    { return Field{Kind: KindBool, Bool: b} }
func Int32Field(v int32) Field  { return Field{Kind: KindInt32, I32: v} }
func Int64Field(v int64) Field  { return Field{Kind: KindInt64, I64: v} }
func Float32Field(v float32) Field { return Field{Kind: KindFloat32, F32: v} }
func Float64Field(v float64) Field { return Field{Kind: KindFloat64, F64: v} }
func StrField(s string) Field   { return Field{Kind: KindStr, Str: s} }

// IsNull reports whether the field is the untyped Null case.
func (f Field) IsNull() bool { return f.Kind == KindNull }

// IsTruthy implements spec.md §4.1's truthiness rule: Bool passes
// through, numeric types are true iff non-zero, strings iff non-empty,
// Null and anything else is false.
func (f Field) IsTruthy() bool {
	switch f.Kind {
	case KindBool:
		return f.Bool
	case KindInt32:
		return f.I32 != 0
	case KindInt64:
		return f.I64 != 0
	case KindFloat32:
		return f.F32 != 0
	case KindFloat64:
		return f.F64 != 0
	case KindStr:
		return f.Str != ""
	default:
		return false
	}
}

// String renders the field for display and for use as a grouping-key
// component (see operators.Aggregate).
func (f Field) String() string {
	switch f.Kind {
	case KindNull:
		return "NULL"
	case KindBool:
		return strconv.FormatBool(f.Bool)
	case KindInt32:
		return strconv.FormatInt(int64(f.I32), 10)
	case KindInt64:
		return strconv.FormatInt(f.I64, 10)
	case KindFloat32:
		return strconv.FormatFloat(float64(f.F32), 'g', -1, 32)
	case KindFloat64:
		return strconv.FormatFloat(f.F64, 'g', -1, 64)
	case KindStr:
		return f.Str
	default:
		return fmt.Sprintf("%v", f)
	}
}

// Equal implements the per-case equality spec.md §3 requires: defined
// only between values of the same case, and Null equals only itself.
func (f Field) Equal(other Field) bool {
	if f.Kind != other.Kind {
		return false
	}
	switch f.Kind {
	case KindNull:
		return true
	case KindBool:
		return f.Bool == other.Bool
	case KindInt32:
		return f.I32 == other.I32
	case KindInt64:
		return f.I64 == other.I64
	case KindFloat32:
		return f.F32 == other.F32
	case KindFloat64:
		return f.F64 == other.F64
	case KindStr:
		return f.Str == other.Str
	default:
		return false
	}
}

// numericValue returns the field's value widened to float64, for
// IsNumeric. Only numeric kinds are accepted.
func (f Field) numericValue() (float64, bool) {
	switch f.Kind {
	case KindInt32:
		return float64(f.I32), true
	case KindInt64:
		return float64(f.I64), true
	case KindFloat32:
		return float64(f.F32), true
	case KindFloat64:
		return f.F64, true
	default:
		return 0, false
	}
}

// IsNumeric reports whether the field holds one of the numeric cases.
func (f Field) IsNumeric() bool {
	_, ok := f.numericValue()
	return ok
}
