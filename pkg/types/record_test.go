package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func personSchema(t *testing.T) *Schema {
	t.Helper()
	s, err := NewSchema([]Column{
		{Name: "id", Type: TypeInteger},
		{Name: "name", Type: TypeString},
		{Name: "grade", Type: TypeChar},
	})
	require.NoError(t, err)
	return s
}

func TestNewRecordValid(t *testing.T) {
	rec, err := NewRecord(personSchema(t), map[string]any{
		"id":    "7",
		"name":  "Alice",
		"grade": "A",
	})
	require.NoError(t, err)

	id, err := rec.Get("id")
	require.NoError(t, err)
	assert.Equal(t, int64(7), id.Int())

	name, err := rec.Get("name")
	require.NoError(t, err)
	assert.Equal(t, "Alice", name.Text())
}

func TestNewRecordCollectsAllErrors(t *testing.T) {
	_, err := NewRecord(personSchema(t), map[string]any{
		"id":    "not-a-number",
		"grade": "too long",
		"bogus": "x",
	})
	var errs ValidationErrors
	require.ErrorAs(t, err, &errs)

	// One invalid integer, one invalid char, one missing column, one
	// unknown key: all reported in a single pass.
	columns := map[string]bool{}
	for _, ve := range errs {
		columns[ve.Column] = true
	}
	assert.Len(t, errs, 4)
	assert.True(t, columns["id"])
	assert.True(t, columns["grade"])
	assert.True(t, columns["name"])
	assert.True(t, columns["bogus"])
}

func TestNewRecordAcceptsValues(t *testing.T) {
	grade, err := CharValue("B")
	require.NoError(t, err)

	rec, err := NewRecord(personSchema(t), map[string]any{
		"id":    IntegerValue(1),
		"name":  StringValue("Bob"),
		"grade": grade,
	})
	require.NoError(t, err)

	got, err := rec.Get("grade")
	require.NoError(t, err)
	assert.Equal(t, grade, got)
}

func TestNewRecordValueTagMismatch(t *testing.T) {
	_, err := NewRecord(personSchema(t), map[string]any{
		"id":    StringValue("1"),
		"name":  StringValue("Bob"),
		"grade": StringValue("B"),
	})
	var errs ValidationErrors
	require.ErrorAs(t, err, &errs)
}

func TestRecordGetUnknownColumn(t *testing.T) {
	rec, err := NewRecord(personSchema(t), map[string]any{
		"id":    "1",
		"name":  "Cara",
		"grade": "C",
	})
	require.NoError(t, err)

	_, err = rec.Get("missing")
	var unknown *UnknownColumnError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "missing", unknown.Name)
}

func TestRecordEqual(t *testing.T) {
	raw := map[string]any{"id": "1", "name": "Dee", "grade": "D"}
	a, err := NewRecord(personSchema(t), raw)
	require.NoError(t, err)
	b, err := NewRecord(personSchema(t), raw)
	require.NoError(t, err)
	assert.True(t, a.Equal(b))

	raw["name"] = "Eve"
	c, err := NewRecord(personSchema(t), raw)
	require.NoError(t, err)
	assert.False(t, a.Equal(c))
}
