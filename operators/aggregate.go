package operators

import (
	"github.com/ohnod/parqlap/expr"
	"github.com/ohnod/parqlap/types"
)

// Aggregate performs single-pass, hash-based grouping aggregation over
// its child stream (spec.md §4.3.5). Grouping key is the textual
// concatenation of the group_by expressions' values; an empty group_by
// puts every row in one group. Non-aggregate values are taken from the
// first row seen in each group and never recomputed — a documented
// policy for when they are not functionally dependent on the key.
type Aggregate struct {
	child         types.Operator
	aggregates    []expr.FuncCall
	groupBy       []expr.Expr
	nonAggregates []expr.Expr
	schema        types.OutputSchema

	computed bool
	groups   map[string]*groupState
	order    []string
	cursor   int
	buffer   Buffer
}

type groupState struct {
	accumulators []accumulator
	nonAggValues []types.Field
}

// NewAggregate builds an Aggregate over child, producing outputSchema
// (computed by the planner as agg-slot columns followed by
// non-aggregate columns, per spec.md §4.2.2).
func NewAggregate(child types.Operator, aggregates []expr.FuncCall, groupBy []expr.Expr, nonAggregates []expr.Expr, outputSchema types.OutputSchema) *Aggregate {
	return &Aggregate{
		child:         child,
		aggregates:    aggregates,
		groupBy:       groupBy,
		nonAggregates: nonAggregates,
		schema:        outputSchema,
		groups:        make(map[string]*groupState),
	}
}

// OutputSchema returns the planner-computed aggregate schema.
func (a *Aggregate) OutputSchema() types.OutputSchema {
	return a.schema
}

// NextChunk computes every group on first call (the child must be
// fully consumed before any group's result is known), then drains the
// computed rows in vectorized-size chunks.
func (a *Aggregate) NextChunk() (types.Chunk, error) {
	if !a.computed {
		if err := a.computeGroups(); err != nil {
			return types.Chunk{}, err
		}
		a.computed = true
	}

	for a.cursor < len(a.order) && a.buffer.Size() < types.VectorSizeThreshold {
		row, err := a.finalizeGroup(a.groups[a.order[a.cursor]])
		if err != nil {
			return types.Chunk{}, err
		}
		a.buffer.AddRow(row)
		a.cursor++
	}

	return a.buffer.DrainUpTo(types.VectorSizeThreshold), nil
}

func (a *Aggregate) computeGroups() error {
	childSchema := a.child.OutputSchema()

	for {
		chunk, err := a.child.NextChunk()
		if err != nil {
			return err
		}
		if chunk.IsEmpty() {
			break
		}
		for _, row := range chunk.Rows {
			if err := a.ingestRow(row, childSchema); err != nil {
				return err
			}
		}
	}

	if len(a.order) == 0 {
		if err := a.synthesizeEmptyGroup(); err != nil {
			return err
		}
	}
	return nil
}

func (a *Aggregate) ingestRow(row types.Row, childSchema types.OutputSchema) error {
	key, err := a.groupKey(row, childSchema)
	if err != nil {
		return err
	}

	group, exists := a.groups[key]
	if !exists {
		group, err = a.newGroup(row, childSchema)
		if err != nil {
			return err
		}
		a.groups[key] = group
		a.order = append(a.order, key)
	}

	for i, fn := range a.aggregates {
		value, err := evalAggregateArg(fn, row, childSchema)
		if err != nil {
			return err
		}
		if err := group.accumulators[i].accumulate(value); err != nil {
			return err
		}
	}
	return nil
}

func (a *Aggregate) groupKey(row types.Row, schema types.OutputSchema) (string, error) {
	key := ""
	for i, e := range a.groupBy {
		if i > 0 {
			key += "\x00"
		}
		v, err := expr.Evaluate(e, row, schema)
		if err != nil {
			return "", err
		}
		key += v.String()
	}
	return key, nil
}

func (a *Aggregate) newGroup(row types.Row, schema types.OutputSchema) (*groupState, error) {
	accs := make([]accumulator, len(a.aggregates))
	for i, fn := range a.aggregates {
		acc, err := newAccumulator(fn.Name)
		if err != nil {
			return nil, err
		}
		accs[i] = acc
	}

	nonAgg := make([]types.Field, len(a.nonAggregates))
	for i, e := range a.nonAggregates {
		v, err := expr.Evaluate(e, row, schema)
		if err != nil {
			return nil, err
		}
		nonAgg[i] = v
	}

	return &groupState{accumulators: accs, nonAggValues: nonAgg}, nil
}

// synthesizeEmptyGroup implements spec.md §4.3.5's empty-input rule:
// one group under an empty key, fresh accumulators, Null non-aggregate
// values, so a purely scalar aggregate query still returns one row.
func (a *Aggregate) synthesizeEmptyGroup() error {
	accs := make([]accumulator, len(a.aggregates))
	for i, fn := range a.aggregates {
		acc, err := newAccumulator(fn.Name)
		if err != nil {
			return err
		}
		accs[i] = acc
	}
	nonAgg := make([]types.Field, len(a.nonAggregates))
	for i := range nonAgg {
		nonAgg[i] = types.NullField
	}

	const emptyKey = ""
	a.groups[emptyKey] = &groupState{accumulators: accs, nonAggValues: nonAgg}
	a.order = append(a.order, emptyKey)
	return nil
}

func (a *Aggregate) finalizeGroup(g *groupState) (types.Row, error) {
	values := make([]types.Field, 0, len(g.accumulators)+len(g.nonAggValues))
	for _, acc := range g.accumulators {
		v, err := acc.result()
		if err != nil {
			return types.Row{}, err
		}
		values = append(values, v)
	}
	values = append(values, g.nonAggValues...)
	return types.Row{Values: values}, nil
}

// evalAggregateArg evaluates a Function's single argument against row;
// COUNT(*) uses the literal true as its always-non-null argument.
func evalAggregateArg(fn expr.FuncCall, row types.Row, schema types.OutputSchema) (types.Field, error) {
	if fn.Star {
		return types.BoolField(true), nil
	}
	if len(fn.Args) != 1 {
		return types.Field{}, types.NewError(types.ErrExecution, "Aggregate function takes exactly one argument: "+fn.Name)
	}
	return expr.Evaluate(fn.Args[0], row, schema)
}
