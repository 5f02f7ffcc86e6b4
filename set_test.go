package facetplot

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFloatSet(t *testing.T) {
	a := NewFloatSet()
	assert.Empty(t, a.Elements())

	for _, x := range []float64{17, -2, 17, 0.5, -2} {
		a.Add(x)
	}
	assert.Equal(t, []float64{-2, 0.5, 17}, a.Elements())
	assert.True(t, a.Contains(0.5))
	assert.False(t, a.Contains(3))
	assert.Equal(t, "[-2 0.5 17]", a.String())
}

func TestStringSet(t *testing.T) {
	a := NewStringSet()
	a.Add("cat")
	a.Add("dog")
	a.Add("fish")
	a.Add("dog")
	assert.Equal(t, []string{"cat", "dog", "fish"}, a.Elements())

	a.Remove(NewStringSetFrom([]string{"dog", "bird"}))
	assert.Equal(t, []string{"cat", "fish"}, a.Elements())
	assert.True(t, a.Contains("cat"))
	assert.False(t, a.Contains("dog"))
}

func TestStringPool(t *testing.T) {
	sp := NewStringPool()
	assert.Equal(t, 0, sp.Add("admin"))
	assert.Equal(t, 1, sp.Add("user"))
	assert.Equal(t, 0, sp.Add("admin"))
	assert.Equal(t, 1, sp.Find("user"))
	assert.Equal(t, -1, sp.Find("guest"))
	assert.Equal(t, "user", sp.Get(1))
	assert.Equal(t, "--NA--", sp.Get(7))
	assert.Equal(t, 2, sp.Len())
}

func TestTuplePool(t *testing.T) {
	tp := NewTuplePool()
	assert.Equal(t, 0, tp.Add(Tuple{StringValue("b"), IntValue(1)}))
	assert.Equal(t, 1, tp.Add(Tuple{StringValue("a"), IntValue(1)}))
	// 1 and 1.0 are the same level.
	assert.Equal(t, 0, tp.Add(Tuple{StringValue("b"), FloatValue(1)}))
	assert.Equal(t, -1, tp.Find(Tuple{StringValue("1"), IntValue(1)}))

	got := tp.Tuples()
	assert.Len(t, got, 2)
	assert.Equal(t, "b, 1", got[0].String())
	assert.Equal(t, "a, 1", got[1].String())
}
