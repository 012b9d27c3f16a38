package operators

import (
	"github.com/ohnod/parqlap/expr"
	"github.com/ohnod/parqlap/storage"
	"github.com/ohnod/parqlap/types"
)

// Scan is the leaf operator over a storage-backed table. filter is
// passed down to the storage layer as a row-group pruning hint only —
// it is never evaluated against an individual row here, so the Filter
// operator above a Scan remains the sole site where the predicate
// decides a row's fate (spec.md §4.3.1, a documented limitation).
type Scan struct {
	schema types.OutputSchema
	filter expr.Expr
	reader storage.Reader
}

// NewScan opens table through s and builds a Scan over it. filter and
// schema are forwarded to s.Open so a StorageReader can prune row
// groups it can prove hold no matching row.
func NewScan(s storage.StorageReader, table string, filter expr.Expr, schema types.OutputSchema) (*Scan, error) {
	path := s.Resolve(table)
	reader, err := s.Open(path, filter, schema)
	if err != nil {
		return nil, err
	}
	return &Scan{schema: schema, filter: filter, reader: reader}, nil
}

// OutputSchema returns the table's column schema, stamped by the
// planner with the table's alias.
func (s *Scan) OutputSchema() types.OutputSchema {
	return s.schema
}

// NextChunk forwards directly to the underlying storage Reader.
func (s *Scan) NextChunk() (types.Chunk, error) {
	return s.reader.NextChunk()
}

// Close releases the underlying storage handle.
func (s *Scan) Close() error {
	return s.reader.Close()
}
