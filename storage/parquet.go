package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/parquet-go/parquet-go"

	"github.com/ohnod/parqlap/expr"
	"github.com/ohnod/parqlap/types"
)

// ParquetReader is the StorageReader implementation backing real
// query execution: tables are Parquet files rooted under a configured
// directory. It plays the role the teacher repo's operators.CSVScan
// plays for CSV, but as a standalone storage-side collaborator rather
// than an operator itself — the engine's own Scan operator (see
// operators.Scan) is the thing that turns a StorageReader into a
// pull-model Operator.
type ParquetReader struct {
	root string
}

// NewParquetReader builds a ParquetReader rooted at dir. An empty dir
// means table paths are resolved relative to the process's working
// directory.
func NewParquetReader(dir string) *ParquetReader {
	return &ParquetReader{root: dir}
}

// Resolve implements StorageReader.Resolve.
func (p *ParquetReader) Resolve(table string) string {
	path := table
	if strings.HasPrefix(table, "'") && strings.HasSuffix(table, "'") && len(table) >= 2 {
		path = table[1 : len(table)-1]
	}
	if p.root == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(p.root, path)
}

// Open implements StorageReader.Open. Row groups that filter's
// pushable comparisons prove can't match any row are skipped entirely
// via storage's row-group statistics (see zonemap.go); this can only
// shrink the set of rows read, never the set of rows that pass
// Filter, since Filter re-evaluates the whole predicate regardless.
func (p *ParquetReader) Open(path string, filter expr.Expr, schema types.OutputSchema) (Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, types.WrapError(types.ErrStorage, "failed to open table file "+path, err)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, types.WrapError(types.ErrStorage, "failed to stat table file "+path, err)
	}

	pf, err := parquet.OpenFile(f, info.Size())
	if err != nil {
		f.Close()
		return nil, types.WrapError(types.ErrStorage, "failed to read parquet footer for "+path, err)
	}

	fields := pf.Schema().Fields()
	predicates := extractPushdownPredicates(filter, schema)

	all := pf.RowGroups()
	groups := make([]parquet.RowGroup, 0, len(all))
	for _, rg := range all {
		if rowGroupPruned(rg, predicates) {
			continue
		}
		groups = append(groups, rg)
	}

	return &parquetStream{file: f, groups: groups, fields: fields}, nil
}

// ReadMetadata implements StorageReader.ReadMetadata.
func (p *ParquetReader) ReadMetadata(path string) (types.OutputSchema, error) {
	f, err := os.Open(path)
	if err != nil {
		return types.OutputSchema{}, types.WrapError(types.ErrStorage, "failed to open table file "+path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return types.OutputSchema{}, types.WrapError(types.ErrStorage, "failed to stat table file "+path, err)
	}

	pf, err := parquet.OpenFile(f, info.Size())
	if err != nil {
		return types.OutputSchema{}, types.WrapError(types.ErrStorage, "failed to read parquet footer for "+path, err)
	}

	fields := pf.Schema().Fields()
	cols := make([]types.Column, len(fields))
	for i, field := range fields {
		cols[i] = types.Column{ColumnName: field.Name()}
	}
	return types.OutputSchema{Columns: cols}, nil
}

// parquetStream adapts parquet-go's row-at-a-time RowGroup readers to
// the Reader contract's bounded-chunk NextChunk, streaming sequentially
// through the groups ParquetReader.Open already pruned down.
type parquetStream struct {
	file   *os.File
	groups []parquet.RowGroup
	fields []parquet.Field
	idx    int
	rows   parquet.Rows
}

// NextChunk implements Reader.NextChunk, returning at most
// types.VectorSizeThreshold rows per call.
func (s *parquetStream) NextChunk() (types.Chunk, error) {
	for {
		if s.rows == nil {
			if s.idx >= len(s.groups) {
				return types.EmptyChunk, nil
			}
			s.rows = s.groups[s.idx].Rows()
		}

		buf := make([]parquet.Row, types.VectorSizeThreshold)
		n, err := s.rows.ReadRows(buf)
		if err != nil && !errors.Is(err, io.EOF) {
			return types.Chunk{}, types.WrapError(types.ErrStorage, "failed to read parquet rows", err)
		}
		if errors.Is(err, io.EOF) {
			s.rows.Close()
			s.rows = nil
			s.idx++
		}
		if n == 0 {
			continue
		}

		out := make([]types.Row, n)
		for i := 0; i < n; i++ {
			out[i] = rowFromParquet(buf[i], len(s.fields))
		}
		return types.Chunk{Rows: out}, nil
	}
}

// Close implements Reader.Close.
func (s *parquetStream) Close() error {
	if s.rows != nil {
		s.rows.Close()
	}
	return s.file.Close()
}

// rowFromParquet converts a flat parquet.Row (one parquet.Value per
// leaf column, in schema order) into a types.Row of the matching
// Field case, honoring null definition levels.
func rowFromParquet(row parquet.Row, numCols int) types.Row {
	values := make([]types.Field, numCols)
	for i := range values {
		values[i] = types.NullField
	}

	for _, v := range row {
		col := v.Column()
		if col < 0 || col >= numCols {
			continue
		}
		if v.IsNull() {
			values[col] = types.NullField
			continue
		}
		values[col] = fieldFromParquetValue(v)
	}

	return types.Row{Values: values}
}

// fieldFromParquetValue maps a Parquet physical type onto the engine's
// value variant (spec.md §3's recognized cases).
func fieldFromParquetValue(v parquet.Value) types.Field {
	switch v.Kind() {
	case parquet.Boolean:
		return types.BoolField(v.Boolean())
	case parquet.Int32:
		return types.Int32Field(v.Int32())
	case parquet.Int64:
		return types.Int64Field(v.Int64())
	case parquet.Float:
		return types.Float32Field(v.Float())
	case parquet.Double:
		return types.Float64Field(v.Double())
	case parquet.ByteArray, parquet.FixedLenByteArray:
		return types.StrField(v.String())
	default:
		return types.StrField(fmt.Sprintf("%v", v))
	}
}
