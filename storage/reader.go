// Package storage is the single storage-side boundary the engine
// depends on: resolving a table name to a schema and streaming its
// rows in bounded chunks. The engine never touches a Parquet file
// directly outside this package (spec.md §6).
package storage

import (
	"github.com/ohnod/parqlap/expr"
	"github.com/ohnod/parqlap/types"
)

// Reader streams the rows of one opened table in bounded batches.
// NextChunk returns at most types.VectorSizeThreshold rows per call;
// an empty chunk signals end-of-stream. A Reader is not re-entrant: it
// is consumed by exactly one Scan operator.
type Reader interface {
	NextChunk() (types.Chunk, error)
	Close() error
}

// StorageReader is the external collaborator the planner and Scan
// operator use to resolve table names and stream data. Table, the
// planner's identifier for a FROM-clause entry, is resolved to a
// filesystem path by Resolve before Open/ReadMetadata are called.
type StorageReader interface {
	// Resolve maps a FROM-clause identifier to the filesystem path
	// Open/ReadMetadata expect. A single-quoted identifier's inner
	// text is used verbatim as a path; a bare identifier is used
	// as-is. Both are resolved relative to the reader's root
	// directory (spec.md §6).
	Resolve(table string) string

	// Open acquires a Reader for the table at path. filter and schema
	// are the Scan's carried predicate and output schema, passed
	// through so an implementation can push simple column-vs-literal
	// comparisons down to row-group statistics and skip whole row
	// groups — a pure I/O optimization; filter is never evaluated
	// against individual rows here, only Filter does that. Fails with
	// a Storage error when the underlying file cannot be opened.
	Open(path string, filter expr.Expr, schema types.OutputSchema) (Reader, error)

	// ReadMetadata returns the table's column schema: ColumnName
	// populated, Table and Label left empty (the planner stamps
	// those in).
	ReadMetadata(path string) (types.OutputSchema, error)
}
