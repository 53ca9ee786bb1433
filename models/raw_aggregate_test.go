package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRawAggregate_UnmarshalKeepsOrder(t *testing.T) {
	var raw RawAggregate
	err := json.Unmarshal([]byte(`{"RECUPERADO": 95.1, "FALLECIDO": 2.5, "ACTIVO": 2.4}`), &raw)

	require.NoError(t, err)
	assert.Equal(t, []string{"RECUPERADO", "FALLECIDO", "ACTIVO"}, raw.Keys())
	v, ok := raw.Get("FALLECIDO")
	assert.True(t, ok)
	assert.Equal(t, 2.5, v)
}

func TestRawAggregate_MarshalKeepsOrder(t *testing.T) {
	var raw RawAggregate
	raw.Set("z", 1)
	raw.Set("a", 2.5)

	data, err := json.Marshal(raw)

	require.NoError(t, err)
	assert.Equal(t, `{"z":1,"a":2.5}`, string(data))
}

func TestRawAggregate_UnmarshalNullAndErrors(t *testing.T) {
	var raw RawAggregate
	require.NoError(t, json.Unmarshal([]byte(`null`), &raw))
	assert.Equal(t, 0, raw.Len())

	assert.Error(t, json.Unmarshal([]byte(`[1,2]`), &raw))
	assert.Error(t, json.Unmarshal([]byte(`{"a": "x"}`), &raw))
}

func TestSemesterDepartmentMatrix_Unmarshal(t *testing.T) {
	body := `{
		"2021-S1": {
			"Antioquia": {"MEDELLIN": 10, "ENVIGADO": 5},
			"CALDAS": {"MANIZALES": 3},
			"ANTIOQUIA": {"MEDELLIN": 1}
		}
	}`
	var matrix SemesterDepartmentMatrix

	require.NoError(t, json.Unmarshal([]byte(body), &matrix))

	sem := matrix["2021-S1"]
	require.Len(t, sem.Departments, 2)
	assert.Equal(t, "ANTIOQUIA", sem.Departments[0].Department)
	assert.Equal(t, []string{"MEDELLIN", "ENVIGADO"}, sem.Departments[0].Municipalities.Keys())
	v, _ := sem.Departments[0].Municipalities.Get("MEDELLIN")
	assert.Equal(t, 11.0, v)

	d, ok := sem.Department("caldas")
	assert.True(t, ok)
	assert.Equal(t, 3.0, d.Municipalities.Sum())
}

func TestSemesterDepartmentMatrix_RoundTrip(t *testing.T) {
	body := `{"2020-S2":{"ATLANTICO":{"BARRANQUILLA":7,"SOLEDAD":2}}}`
	var matrix SemesterDepartmentMatrix
	require.NoError(t, json.Unmarshal([]byte(body), &matrix))

	data, err := json.Marshal(matrix)

	require.NoError(t, err)
	assert.JSONEq(t, body, string(data))
}
