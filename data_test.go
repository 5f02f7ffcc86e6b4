package facetplot

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const measurements = `[
  {"type": "taint", "typeUser": "user",  "size": 64,  "value": 2.5, "ok": true},
  {"type": "plain", "typeUser": "admin", "size": 64,  "value": 1,   "ok": false},
  {"type": "taint", "typeUser": "user",  "size": 128, "value": 3,   "tTotal": {"a": 1}},
  {"type": "taint", "typeUser": "guest", "size": 128, "value": null},
  {"type": 7,       "typeUser": "user",  "size": 256, "value": 4e1}
]`

func readMeasurements(t *testing.T) *DataFrame {
	t.Helper()
	df, err := ReadJSON(strings.NewReader(measurements), "measurements")
	require.NoError(t, err)
	return df
}

func TestReadJSON(t *testing.T) {
	df := readMeasurements(t)
	assert.Equal(t, 5, df.N)

	want := []string{"ok", "size", "tTotal", "type", "typeUser", "value"}
	if diff := cmp.Diff(want, df.FieldNames()); diff != "" {
		t.Errorf("FieldNames() mismatch (-want +got):\n%s", diff)
	}

	assert.Equal(t, Int, df.Columns["size"].Type)
	assert.Equal(t, Float, df.Columns["value"].Type)
	assert.Equal(t, String, df.Columns["type"].Type, "mixed number and string")
	assert.Equal(t, Bool, df.Columns["ok"].Type)
	assert.Equal(t, String, df.Columns["tTotal"].Type)

	v, err := df.Get(2, "tTotal")
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, v.String())

	v, err = df.Get(4, "type")
	require.NoError(t, err)
	assert.Equal(t, StringValue("7"), v)

	x, err := df.Float(4, "value")
	require.NoError(t, err)
	assert.Equal(t, 40.0, x)
}

func TestReadJSONErrors(t *testing.T) {
	_, err := ReadJSON(strings.NewReader(`{"x": 1}`), "object")
	assert.Error(t, err)

	_, err = ReadJSON(strings.NewReader(`[{"x": 1}`), "truncated")
	assert.Error(t, err)
}

func TestLoadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "m.json")
	require.NoError(t, os.WriteFile(path, []byte(measurements), 0o644))

	df, err := LoadJSON(path)
	require.NoError(t, err)
	assert.Equal(t, "m.json", df.Name)
	assert.Equal(t, 5, df.N)

	_, err = LoadJSON(filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestMissingAndNonNumeric(t *testing.T) {
	df := readMeasurements(t)

	_, err := df.Get(3, "value")
	assert.ErrorIs(t, err, ErrMissingField, "null is absent")
	assert.Contains(t, err.Error(), "record 3")

	_, err = df.Get(0, "nosuchfield")
	assert.ErrorIs(t, err, ErrMissingField)

	_, err = df.Float(0, "typeUser")
	assert.ErrorIs(t, err, ErrNotNumeric)

	_, err = df.Float(0, "ok")
	assert.ErrorIs(t, err, ErrNotNumeric)
}

func TestValue(t *testing.T) {
	assert.True(t, IntValue(1).Equal(FloatValue(1)))
	assert.False(t, IntValue(1).Equal(StringValue("1")))
	assert.False(t, BoolValue(true).Equal(IntValue(1)))

	assert.Equal(t, "3", IntValue(3).String())
	assert.Equal(t, "0.25", FloatValue(0.25).String())
	assert.Equal(t, "false", BoolValue(false).String())

	assert.Equal(t, IntValue(1024), ParseValue("1024"))
	assert.Equal(t, FloatValue(0.5), ParseValue("0.5"))
	assert.Equal(t, BoolValue(true), ParseValue("true"))
	assert.Equal(t, StringValue("admin"), ParseValue("admin"))

	tup := Tuple{StringValue("taint"), IntValue(64)}
	assert.Equal(t, "taint, 64", tup.String())
	assert.Equal(t, "", Tuple{}.String())
}

func TestFilter(t *testing.T) {
	df := readMeasurements(t)

	users, err := Filter(df, "typeUser", StringValue("user"))
	require.NoError(t, err)
	assert.Equal(t, 3, users.N)
	for i := 0; i < users.N; i++ {
		v, err := users.Get(i, "typeUser")
		require.NoError(t, err)
		assert.Equal(t, "user", v.String())
	}

	others, err := Exclude(df, "typeUser", StringValue("user"))
	require.NoError(t, err)
	assert.Equal(t, 2, others.N)
	v, err := others.Get(0, "typeUser")
	require.NoError(t, err)
	assert.Equal(t, "admin", v.String())

	small, err := Filter(df, "size", FloatValue(64))
	require.NoError(t, err)
	assert.Equal(t, 2, small.N)

	_, err = Filter(df, "nosuchfield", StringValue("x"))
	assert.ErrorIs(t, err, ErrMissingField)
}

func TestLevels(t *testing.T) {
	df := readMeasurements(t)

	levels, err := Levels(df, []string{"typeUser"})
	require.NoError(t, err)
	var got []string
	for _, l := range levels {
		got = append(got, l.String())
	}
	assert.Equal(t, []string{"user", "admin", "guest"}, got, "first occurrence, not sorted")

	levels, err = Levels(df, nil)
	require.NoError(t, err)
	assert.Len(t, levels, 1)

	_, err = Levels(df, []string{"value"})
	assert.ErrorIs(t, err, ErrMissingField)
}
