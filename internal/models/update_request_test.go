package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiffFieldSets(t *testing.T) {
	oldData := FieldSet{
		"lastPosition": "Engineer",
		"country":      "India",
		"clubs":        []interface{}{"music", "drama"},
	}
	newData := FieldSet{
		"lastPosition": "CTO",
		"country":      "India",
		"clubs":        []interface{}{"music", "drama"},
		"startup":      "Acme",
	}

	changes := DiffFieldSets(oldData, newData)
	require.Len(t, changes, 2)
	assert.Equal(t, FieldChange{Field: "lastPosition", Old: "Engineer", New: "CTO"}, changes[0])
	assert.Equal(t, "startup", changes[1].Field)
	assert.Nil(t, changes[1].Old)
}

func TestDiffFieldSetsNestedValues(t *testing.T) {
	changes := DiffFieldSets(
		FieldSet{"meta": map[string]interface{}{"a": float64(1)}},
		FieldSet{"meta": map[string]interface{}{"a": float64(2)}},
	)
	require.Len(t, changes, 1)
	assert.Equal(t, "meta", changes[0].Field)
}

func TestFieldSetScan(t *testing.T) {
	var set FieldSet
	require.NoError(t, set.Scan([]byte(`{"name":"Asha","yearOfEntry":2015}`)))
	assert.Equal(t, "Asha", set["name"])
	assert.Equal(t, float64(2015), set["yearOfEntry"])

	require.NoError(t, set.Scan(nil))
	assert.Nil(t, set)

	require.Error(t, set.Scan(42))
	require.Error(t, set.Scan("not json"))
}

func TestFieldSetValue(t *testing.T) {
	value, err := FieldSet(nil).Value()
	require.NoError(t, err)
	assert.Equal(t, []byte("{}"), value)

	value, err = FieldSet{"b": 1, "a": "x"}.Value()
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":"x","b":1}`, string(value.([]byte)))
}

func TestUpdateRequestStatusValid(t *testing.T) {
	assert.True(t, UpdateRequestStatusPending.Valid())
	assert.True(t, UpdateRequestStatusRejected.Valid())
	assert.False(t, UpdateRequestStatus("all").Valid())
}
