package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSchemaResolveBareName(t *testing.T) {
	assert := assert.New(t)

	schema := NewOutputSchema(NewColumn("id"), NewColumn("name"))
	idx, err := schema.Resolve("name")
	assert.NoError(err)
	assert.Equal(1, idx)
}

func TestSchemaResolveQualifiedName(t *testing.T) {
	assert := assert.New(t)

	schema := OutputSchema{Columns: []Column{
		{ColumnName: "id", Table: "t"},
		{ColumnName: "id", Table: "u"},
	}}

	idx, err := schema.Resolve("u.id")
	assert.NoError(err)
	assert.Equal(1, idx)
}

func TestSchemaResolveAmbiguous(t *testing.T) {
	assert := assert.New(t)

	schema := OutputSchema{Columns: []Column{
		{ColumnName: "id", Table: "t"},
		{ColumnName: "id", Table: "u"},
	}}

	_, err := schema.Resolve("id")
	assert.Error(err)
	assert.Contains(err.Error(), "Ambiguous field name")
}

func TestSchemaResolveNotFound(t *testing.T) {
	assert := assert.New(t)

	schema := NewOutputSchema(NewColumn("id"))
	_, err := schema.Resolve("missing")
	assert.Error(err)
	assert.Contains(err.Error(), "Field not found")
}

func TestSchemaHeaders(t *testing.T) {
	assert := assert.New(t)

	schema := OutputSchema{Columns: []Column{
		{ColumnName: "id", Label: "ID"},
		{ColumnName: "name"},
	}}

	assert.Equal([]string{"ID", "name"}, schema.Headers())
}

func TestSchemaConcat(t *testing.T) {
	assert := assert.New(t)

	left := NewOutputSchema(NewColumn("id"))
	right := NewOutputSchema(NewColumn("name"))
	joined := left.Concat(right)

	assert.Equal(2, joined.Len())
	assert.Equal("id", joined.Columns[0].ColumnName)
	assert.Equal("name", joined.Columns[1].ColumnName)
}
