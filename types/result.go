package types

// ResultSet is the materialized output of a query: its schema plus
// every chunk the root operator produced. Ownership is exclusive to
// the caller of Execute (engine.ExecutionEngine.Execute).
type ResultSet struct {
	OutputSchema OutputSchema
	Chunks       []Chunk
}

// NewResultSet builds an empty result set with the given schema.
func NewResultSet(schema OutputSchema) *ResultSet {
	return &ResultSet{OutputSchema: schema}
}

// AddChunk appends a non-empty chunk to the result set.
func (r *ResultSet) AddChunk(c Chunk) {
	r.Chunks = append(r.Chunks, c)
}

// RowCount returns the total number of rows across every chunk.
func (r *ResultSet) RowCount() int {
	n := 0
	for _, c := range r.Chunks {
		n += c.Len()
	}
	return n
}

// Rows returns every row across every chunk, in chunk order. Intended
// for rendering and for tests; not used on the hot execution path.
func (r *ResultSet) Rows() []Row {
	rows := make([]Row, 0, r.RowCount())
	for _, c := range r.Chunks {
		rows = append(rows, c.Rows...)
	}
	return rows
}
