package facetplot

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

var (
	// ErrMissingField is returned if a record lacks a field which is
	// used as x, y, line, row or column key, or as a filter.
	ErrMissingField = errors.New("missing field")

	// ErrNotNumeric is returned if x or y are mapped to a field which
	// holds non-numeric values.
	ErrNotNumeric = errors.New("field is not numeric")
)

// FieldType represents the basic type of a field.
type FieldType uint

const (
	Int FieldType = iota
	Float
	String
	Bool
)

func (t FieldType) String() string {
	switch t {
	case Int:
		return "int"
	case Float:
		return "float"
	case String:
		return "string"
	case Bool:
		return "bool"
	}
	return "FieldType(" + strconv.Itoa(int(t)) + ")"
}

// Numeric reports whether values of type t can be plotted on a
// continuous axis.
func (t FieldType) Numeric() bool { return t == Int || t == Float }

// -------------------------------------------------------------------------
// Values and Records

// Value is a single scalar of a record.
type Value struct {
	Type FieldType
	Num  float64 // Int, Float and Bool (0 or 1)
	Str  string  // String
}

func IntValue(n int64) Value     { return Value{Type: Int, Num: float64(n)} }
func FloatValue(x float64) Value { return Value{Type: Float, Num: x} }
func StringValue(s string) Value { return Value{Type: String, Str: s} }

func BoolValue(b bool) Value {
	if b {
		return Value{Type: Bool, Num: 1}
	}
	return Value{Type: Bool}
}

// ParseValue interprets s as integer, float or boolean if possible and
// as a string otherwise.
func ParseValue(s string) Value {
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return IntValue(n)
	}
	if x, err := strconv.ParseFloat(s, 64); err == nil {
		return FloatValue(x)
	}
	if b, err := strconv.ParseBool(s); err == nil {
		return BoolValue(b)
	}
	return StringValue(s)
}

// String formats v for titles and legends.
func (v Value) String() string {
	switch v.Type {
	case Int:
		return strconv.FormatInt(int64(v.Num), 10)
	case Float:
		return strconv.FormatFloat(v.Num, 'g', -1, 64)
	case Bool:
		return strconv.FormatBool(v.Num != 0)
	}
	return v.Str
}

// Float returns the numeric value of v. The boolean is false for
// strings and booleans.
func (v Value) Float() (float64, bool) {
	if !v.Type.Numeric() {
		return math.NaN(), false
	}
	return v.Num, true
}

// Equal reports structural equality. Integers and floats compare by
// their numeric value.
func (v Value) Equal(w Value) bool { return v.key() == w.key() }

func (v Value) key() string {
	switch v.Type {
	case Int, Float:
		return "n" + strconv.FormatFloat(v.Num, 'g', -1, 64)
	case Bool:
		return "b" + strconv.FormatBool(v.Num != 0)
	}
	return "s" + v.Str
}

// Tuple is an ordered list of values, e.g. the values of all row keys
// of one record.
type Tuple []Value

// Key returns a string which is equal for structurally equal tuples.
func (t Tuple) Key() string {
	keys := make([]string, len(t))
	for i, v := range t {
		keys[i] = v.key()
	}
	return strings.Join(keys, "\x00")
}

// String joins the formatted values with ", ".
func (t Tuple) String() string {
	s := make([]string, len(t))
	for i, v := range t {
		s[i] = v.String()
	}
	return strings.Join(s, ", ")
}

// Record is one input data point.
type Record map[string]Value

// -------------------------------------------------------------------------
// Data Frame

// DataFrame is the columnar form of a sequence of records.
type DataFrame struct {
	Name    string
	N       int
	Columns map[string]Field
	Pool    *StringPool
}

// Field is one column of a data frame.
type Field struct {
	Type FieldType

	// Data holds numbers directly and strings as indices into Pool.
	Data []float64

	// Present is false for rows where the record lacked this field.
	Present []bool

	Pool *StringPool
}

// Value returns the value in row i. The boolean is false if the
// record in row i has no such field.
func (f Field) Value(i int) (Value, bool) {
	if i < 0 || i >= len(f.Data) || !f.Present[i] {
		return Value{}, false
	}
	switch f.Type {
	case String:
		return StringValue(f.Pool.Get(int(f.Data[i]))), true
	default:
		return Value{Type: f.Type, Num: f.Data[i]}, true
	}
}

// NewDataFrame sets up a data frame from records. Fields holding
// integers and floats become Float, fields mixing numbers with strings
// or booleans become String.
func NewDataFrame(name string, records []Record) *DataFrame {
	df := &DataFrame{
		Name:    name,
		N:       len(records),
		Columns: make(map[string]Field),
		Pool:    NewStringPool(),
	}

	types := make(map[string]FieldType)
	for _, r := range records {
		for name, v := range r {
			t, ok := types[name]
			if !ok {
				types[name] = v.Type
				continue
			}
			types[name] = unify(t, v.Type)
		}
	}

	for name, t := range types {
		f := Field{
			Type:    t,
			Data:    make([]float64, df.N),
			Present: make([]bool, df.N),
			Pool:    df.Pool,
		}
		for i, r := range records {
			v, ok := r[name]
			if !ok {
				f.Data[i] = math.NaN()
				continue
			}
			f.Present[i] = true
			if t == String {
				f.Data[i] = float64(df.Pool.Add(v.String()))
			} else {
				f.Data[i] = v.Num
			}
		}
		df.Columns[name] = f
	}
	logger.Sugar().Debugf("data frame %q: %d records, %d fields", name, df.N, len(df.Columns))
	return df
}

func unify(a, b FieldType) FieldType {
	switch {
	case a == b:
		return a
	case a.Numeric() && b.Numeric():
		return Float
	}
	return String
}

// ReadJSON reads a JSON array of flat objects. Numbers become Int or
// Float values, JSON null is treated as an absent field and nested
// objects or arrays are kept as strings holding their JSON text.
func ReadJSON(r io.Reader, name string) (*DataFrame, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	var raw []map[string]interface{}
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", name, err)
	}

	records := make([]Record, len(raw))
	for i, obj := range raw {
		rec := make(Record, len(obj))
		for k, x := range obj {
			if x == nil {
				continue
			}
			v, err := jsonValue(x)
			if err != nil {
				return nil, fmt.Errorf("%s: record %d field %q: %w", name, i, k, err)
			}
			rec[k] = v
		}
		records[i] = rec
	}
	return NewDataFrame(name, records), nil
}

// LoadJSON reads the JSON file at path, see ReadJSON.
func LoadJSON(path string) (*DataFrame, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadJSON(f, filepath.Base(path))
}

func jsonValue(x interface{}) (Value, error) {
	switch x := x.(type) {
	case json.Number:
		if n, err := x.Int64(); err == nil {
			return IntValue(n), nil
		}
		f, err := x.Float64()
		if err != nil {
			return Value{}, err
		}
		return FloatValue(f), nil
	case string:
		return StringValue(x), nil
	case bool:
		return BoolValue(x), nil
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(x); err != nil {
		return Value{}, err
	}
	return StringValue(strings.TrimSpace(buf.String())), nil
}

// FieldNames returns the sorted names of all fields in df.
func (df *DataFrame) FieldNames() []string {
	names := make([]string, 0, len(df.Columns))
	for name := range df.Columns {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Get returns field of row i.
func (df *DataFrame) Get(i int, field string) (Value, error) {
	f, ok := df.Columns[field]
	if !ok {
		return Value{}, fmt.Errorf("%w %q in %s", ErrMissingField, field, df.Name)
	}
	v, ok := f.Value(i)
	if !ok {
		return Value{}, fmt.Errorf("%w %q in record %d of %s", ErrMissingField, field, i, df.Name)
	}
	return v, nil
}

// Float returns the numeric field of row i.
func (df *DataFrame) Float(i int, field string) (float64, error) {
	v, err := df.Get(i, field)
	if err != nil {
		return 0, err
	}
	x, ok := v.Float()
	if !ok {
		return 0, fmt.Errorf("%w: %q is %s in record %d of %s",
			ErrNotNumeric, field, v.Type, i, df.Name)
	}
	return x, nil
}

// Tuple returns the values of fields in row i.
func (df *DataFrame) Tuple(i int, fields []string) (Tuple, error) {
	t := make(Tuple, len(fields))
	for j, field := range fields {
		v, err := df.Get(i, field)
		if err != nil {
			return nil, err
		}
		t[j] = v
	}
	return t, nil
}

// Subset returns a new data frame with all rows for which keep returns
// true. Fields and string pool are shared with df.
func (df *DataFrame) Subset(name string, keep func(i int) bool) *DataFrame {
	var rows []int
	for i := 0; i < df.N; i++ {
		if keep(i) {
			rows = append(rows, i)
		}
	}

	sub := &DataFrame{
		Name:    name,
		N:       len(rows),
		Columns: make(map[string]Field, len(df.Columns)),
		Pool:    df.Pool,
	}
	for name, f := range df.Columns {
		g := Field{
			Type:    f.Type,
			Data:    make([]float64, len(rows)),
			Present: make([]bool, len(rows)),
			Pool:    f.Pool,
		}
		for j, i := range rows {
			g.Data[j] = f.Data[i]
			g.Present[j] = f.Present[i]
		}
		sub.Columns[name] = g
	}
	return sub
}

// Filter extracts all rows from df where field equals value.
func Filter(df *DataFrame, field string, value Value) (*DataFrame, error) {
	return filter(df, field, value, true)
}

// Exclude extracts all rows from df where field differs from value.
func Exclude(df *DataFrame, field string, value Value) (*DataFrame, error) {
	return filter(df, field, value, false)
}

func filter(df *DataFrame, field string, value Value, equal bool) (*DataFrame, error) {
	keep := make([]bool, df.N)
	for i := 0; i < df.N; i++ {
		v, err := df.Get(i, field)
		if err != nil {
			return nil, err
		}
		keep[i] = v.Equal(value) == equal
	}
	op := "=="
	if !equal {
		op = "!="
	}
	name := fmt.Sprintf("%s[%s%s%s]", df.Name, field, op, value)
	return df.Subset(name, func(i int) bool { return keep[i] }), nil
}

// Levels returns the distinct tuples of fields in df in the order of
// their first occurrence.
func Levels(df *DataFrame, fields []string) ([]Tuple, error) {
	pool := NewTuplePool()
	for i := 0; i < df.N; i++ {
		t, err := df.Tuple(i, fields)
		if err != nil {
			return nil, err
		}
		pool.Add(t)
	}
	return pool.Tuples(), nil
}
