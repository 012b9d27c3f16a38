package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ohnod/parqlap/types"
)

func TestCanPruneRowGroupEquality(t *testing.T) {
	assert := assert.New(t)

	stats := ColumnStats{Min: types.Int32Field(10), Max: types.Int32Field(20), HasStats: true}

	assert.True(CanPruneRowGroup(stats, types.CmpEq, types.Int32Field(5)), "value below the range can't match =")
	assert.True(CanPruneRowGroup(stats, types.CmpEq, types.Int32Field(25)), "value above the range can't match =")
	assert.False(CanPruneRowGroup(stats, types.CmpEq, types.Int32Field(15)), "value inside the range might match")
}

func TestCanPruneRowGroupOrderingComparators(t *testing.T) {
	assert := assert.New(t)

	stats := ColumnStats{Min: types.Int32Field(10), Max: types.Int32Field(20), HasStats: true}

	assert.True(CanPruneRowGroup(stats, types.CmpLt, types.Int32Field(10)), "no row can be < min")
	assert.True(CanPruneRowGroup(stats, types.CmpGt, types.Int32Field(20)), "no row can be > max")
	assert.False(CanPruneRowGroup(stats, types.CmpGte, types.Int32Field(15)))
}

func TestCanPruneRowGroupWithoutStatsNeverPrunes(t *testing.T) {
	assert := assert.New(t)

	stats := ColumnStats{HasStats: false}
	assert.False(CanPruneRowGroup(stats, types.CmpEq, types.Int32Field(1)))
}

func TestCanPruneRowGroupMismatchedKindNeverPrunes(t *testing.T) {
	assert := assert.New(t)

	stats := ColumnStats{Min: types.Int32Field(1), Max: types.Int32Field(10), HasStats: true}
	assert.False(CanPruneRowGroup(stats, types.CmpEq, types.StrField("x")))
}
