package operators

import "github.com/ohnod/parqlap/types"

// fakeChild streams a fixed sequence of chunks, then end-of-stream
// forever — a minimal types.Operator stand-in for exercising the
// buffering/chunking operators above it in the tree.
type fakeChild struct {
	schema types.OutputSchema
	chunks []types.Chunk
	pos    int
}

func newFakeChild(schema types.OutputSchema, rows ...types.Row) *fakeChild {
	return &fakeChild{schema: schema, chunks: []types.Chunk{{Rows: rows}}}
}

func (f *fakeChild) OutputSchema() types.OutputSchema { return f.schema }

func (f *fakeChild) NextChunk() (types.Chunk, error) {
	if f.pos >= len(f.chunks) {
		return types.Chunk{}, nil
	}
	c := f.chunks[f.pos]
	f.pos++
	return c, nil
}

func row(values ...types.Field) types.Row {
	return types.Row{Values: values}
}
