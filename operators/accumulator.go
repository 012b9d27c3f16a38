package operators

import (
	"github.com/ohnod/parqlap/expr"
	"github.com/ohnod/parqlap/types"
)

// accumulator is the running state of one aggregate function within
// one group. All five concrete cases ignore Null inputs (spec.md
// §4.3.5's accumulator catalogue).
type accumulator interface {
	accumulate(x types.Field) error
	result() (types.Field, error)
}

func newAccumulator(name string) (accumulator, error) {
	switch name {
	case "MAX":
		return &maxAccumulator{}, nil
	case "MIN":
		return &minAccumulator{}, nil
	case "SUM":
		return &sumAccumulator{}, nil
	case "COUNT":
		return &countAccumulator{}, nil
	case "AVG":
		return &avgAccumulator{}, nil
	default:
		return nil, types.NewError(types.ErrExecution, "Unsupported aggregate function: "+name)
	}
}

// lessField orders two fields of the same kind by delegating to the
// evaluator's own "<" semantics, so MAX/MIN never duplicate the
// per-kind ordering rules expr.Evaluate already implements.
func lessField(a, b types.Field) (bool, error) {
	result, err := expr.Evaluate(&expr.Binary{Op: expr.OpLt, Left: &expr.Literal{Value: a}, Right: &expr.Literal{Value: b}}, types.Row{}, types.OutputSchema{})
	if err != nil {
		return false, err
	}
	return result.IsTruthy(), nil
}

// addField sums two fields of the same kind by delegating to the
// evaluator's own "+" semantics.
func addField(a, b types.Field) (types.Field, error) {
	return expr.Evaluate(&expr.Binary{Op: expr.OpAdd, Left: &expr.Literal{Value: a}, Right: &expr.Literal{Value: b}}, types.Row{}, types.OutputSchema{})
}

type maxAccumulator struct {
	current types.Field
	has     bool
}

func (m *maxAccumulator) accumulate(x types.Field) error {
	if x.IsNull() {
		return nil
	}
	if !m.has {
		m.current, m.has = x, true
		return nil
	}
	less, err := lessField(m.current, x)
	if err != nil {
		return err
	}
	if !less {
		return nil // current >= x already
	}
	m.current = x
	return nil
}

func (m *maxAccumulator) result() (types.Field, error) {
	if !m.has {
		return types.NullField, nil
	}
	return m.current, nil
}

type minAccumulator struct {
	current types.Field
	has     bool
}

func (m *minAccumulator) accumulate(x types.Field) error {
	if x.IsNull() {
		return nil
	}
	if !m.has {
		m.current, m.has = x, true
		return nil
	}
	less, err := lessField(x, m.current)
	if err != nil {
		return err
	}
	if less {
		m.current = x
	}
	return nil
}

func (m *minAccumulator) result() (types.Field, error) {
	if !m.has {
		return types.NullField, nil
	}
	return m.current, nil
}

type sumAccumulator struct {
	current types.Field
	has     bool
}

func (s *sumAccumulator) accumulate(x types.Field) error {
	if x.IsNull() {
		return nil
	}
	if !s.has {
		s.current, s.has = x, true
		return nil
	}
	sum, err := addField(s.current, x)
	if err != nil {
		return err
	}
	s.current = sum
	return nil
}

func (s *sumAccumulator) result() (types.Field, error) {
	if !s.has {
		return types.NullField, nil
	}
	return s.current, nil
}

type countAccumulator struct {
	n int32
}

func (c *countAccumulator) accumulate(x types.Field) error {
	if x.IsNull() {
		return nil
	}
	c.n++
	return nil
}

func (c *countAccumulator) result() (types.Field, error) {
	return types.Int32Field(c.n), nil
}

type avgAccumulator struct {
	sum types.Field
	has bool
	n   int32
}

func (a *avgAccumulator) accumulate(x types.Field) error {
	if x.IsNull() {
		return nil
	}
	if !a.has {
		a.sum, a.has = x, true
	} else {
		sum, err := addField(a.sum, x)
		if err != nil {
			return err
		}
		a.sum = sum
	}
	a.n++
	return nil
}

func (a *avgAccumulator) result() (types.Field, error) {
	if a.n == 0 {
		return types.NullField, nil
	}
	sum, err := expr.Cast(a.sum, types.KindFloat32)
	if err != nil {
		return types.Field{}, err
	}
	return types.Float32Field(sum.F32 / float32(a.n)), nil
}
