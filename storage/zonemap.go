package storage

import (
	"github.com/parquet-go/parquet-go"

	"github.com/ohnod/parqlap/expr"
	"github.com/ohnod/parqlap/types"
)

// ColumnStats is the min/max/null summary parquet-go already computes
// per row group (via each column chunk's ColumnIndex), reused here for
// partition pruning the way the teacher's metadata.ZoneMap reused a
// hand-scanned CSV min/max. Unlike the teacher's zone map, nothing is
// generated or persisted: Parquet writers store these statistics in
// the file itself, so RowGroupStats only reads what's already there.
type ColumnStats struct {
	Min       types.Field
	Max       types.Field
	NullCount int64
	HasStats  bool
}

// RowGroupStats collects ColumnStats for every leaf column of one row
// group, indexed by column index (matching OutputSchema order).
func RowGroupStats(rg parquet.RowGroup) []ColumnStats {
	chunks := rg.ColumnChunks()
	stats := make([]ColumnStats, len(chunks))

	for i, chunk := range chunks {
		index, err := chunk.ColumnIndex()
		if err != nil || index == nil || index.NumPages() == 0 {
			continue
		}

		var (
			min, max types.Field
			nulls    int64
			init     bool
		)
		for p := 0; p < index.NumPages(); p++ {
			nulls += index.NullCount(p)
			if index.NullPage(p) {
				continue
			}
			pageMin := fieldFromParquetValue(index.MinValue(p))
			pageMax := fieldFromParquetValue(index.MaxValue(p))
			if !init {
				min, max, init = pageMin, pageMax, true
				continue
			}
			if lessField(pageMin, min) {
				min = pageMin
			}
			if lessField(max, pageMax) {
				max = pageMax
			}
		}

		stats[i] = ColumnStats{Min: min, Max: max, NullCount: nulls, HasStats: init}
	}

	return stats
}

// lessField orders two same-kind numeric or string fields; used to
// fold per-page min/max into a per-row-group min/max and by
// CanPruneRowGroup after its kind check, so it never needs to handle
// mixed kinds or Null.
func lessField(a, b types.Field) bool {
	switch a.Kind {
	case types.KindInt32:
		return a.I32 < b.I32
	case types.KindInt64:
		return a.I64 < b.I64
	case types.KindFloat32:
		return a.F32 < b.F32
	case types.KindFloat64:
		return a.F64 < b.F64
	case types.KindStr:
		return a.Str < b.Str
	default:
		return false
	}
}

// CanPruneRowGroup reports whether a row group can be skipped entirely
// because no row in it can satisfy `column <comparator> value`, using
// the same six-comparator table the teacher's metadata.ZoneMap.CanPrune
// implemented over hand-scanned CSV statistics.
func CanPruneRowGroup(stats ColumnStats, comp types.Comparator, value types.Field) bool {
	if !stats.HasStats || stats.Min.Kind != value.Kind || stats.Max.Kind != value.Kind {
		return false
	}

	switch comp {
	case types.CmpEq:
		return lessField(value, stats.Min) || lessField(stats.Max, value)
	case types.CmpLt:
		return !lessField(stats.Min, value) // min >= value: no row < value
	case types.CmpLte:
		return lessField(value, stats.Min) // min > value: no row <= value
	case types.CmpGt:
		return !lessField(value, stats.Max) // max <= value: no row > value
	case types.CmpGte:
		return lessField(stats.Max, value) // max < value: no row >= value
	case types.CmpNeq:
		return stats.Min.Equal(stats.Max) && stats.Min.Equal(value)
	default:
		return false
	}
}

// pushdownPredicate is a single "column <comparator> literal"
// comparison pulled out of a Scan's filter, the only shape
// RowGroupStats/CanPruneRowGroup can act on.
type pushdownPredicate struct {
	column int
	comp   types.Comparator
	value  types.Field
}

// extractPushdownPredicates walks filter's top-level AND conjuncts,
// collecting every comparison that resolves to a known schema column
// on one side and a literal on the other. Anything it can't reduce
// this way (OR, function calls, column-vs-column, an unresolvable
// identifier) is simply left out: ParquetReader.Open only ever uses
// the result to skip row groups, and the Filter operator above Scan
// still re-evaluates the full predicate against every row it receives,
// so a conjunct this misses costs I/O, never correctness.
func extractPushdownPredicates(filter expr.Expr, schema types.OutputSchema) []pushdownPredicate {
	if filter == nil {
		return nil
	}
	switch f := filter.(type) {
	case *expr.Paren:
		return extractPushdownPredicates(f.Inner, schema)
	case *expr.Binary:
		if f.Op == expr.OpAnd {
			return append(extractPushdownPredicates(f.Left, schema), extractPushdownPredicates(f.Right, schema)...)
		}
		if pred, ok := comparisonPredicate(f, schema); ok {
			return []pushdownPredicate{pred}
		}
	}
	return nil
}

func comparisonPredicate(b *expr.Binary, schema types.OutputSchema) (pushdownPredicate, bool) {
	comp, ok := comparatorFor(b.Op)
	if !ok {
		return pushdownPredicate{}, false
	}
	if col, lit, ok := identLiteral(b.Left, b.Right, schema); ok {
		return pushdownPredicate{column: col, comp: comp, value: lit}, true
	}
	if col, lit, ok := identLiteral(b.Right, b.Left, schema); ok {
		return pushdownPredicate{column: col, comp: reverseComparator(comp), value: lit}, true
	}
	return pushdownPredicate{}, false
}

// identLiteral reports whether a is a bare identifier resolvable
// against schema and b is a literal, returning the identifier's
// column index and the literal's value.
func identLiteral(a, b expr.Expr, schema types.OutputSchema) (int, types.Field, bool) {
	id, ok := a.(*expr.Ident)
	if !ok {
		return 0, types.Field{}, false
	}
	lit, ok := b.(*expr.Literal)
	if !ok {
		return 0, types.Field{}, false
	}
	col, err := schema.Resolve(id.Name)
	if err != nil {
		return 0, types.Field{}, false
	}
	return col, lit.Value, true
}

func comparatorFor(op expr.BinaryOp) (types.Comparator, bool) {
	switch op {
	case expr.OpEq:
		return types.CmpEq, true
	case expr.OpNeq:
		return types.CmpNeq, true
	case expr.OpLt:
		return types.CmpLt, true
	case expr.OpLte:
		return types.CmpLte, true
	case expr.OpGt:
		return types.CmpGt, true
	case expr.OpGte:
		return types.CmpGte, true
	default:
		return 0, false
	}
}

// reverseComparator flips a comparator's operand order, for the
// "literal <comparator> column" spelling of a comparison.
func reverseComparator(c types.Comparator) types.Comparator {
	switch c {
	case types.CmpLt:
		return types.CmpGt
	case types.CmpLte:
		return types.CmpGte
	case types.CmpGt:
		return types.CmpLt
	case types.CmpGte:
		return types.CmpLte
	default:
		return c // = and <> read the same in either order
	}
}

// rowGroupPruned reports whether any one predicate alone proves rg
// can contain no matching row.
func rowGroupPruned(rg parquet.RowGroup, predicates []pushdownPredicate) bool {
	if len(predicates) == 0 {
		return false
	}
	stats := RowGroupStats(rg)
	for _, pred := range predicates {
		if pred.column < 0 || pred.column >= len(stats) {
			continue
		}
		if CanPruneRowGroup(stats[pred.column], pred.comp, pred.value) {
			return true
		}
	}
	return false
}
