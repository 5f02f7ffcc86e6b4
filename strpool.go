package facetplot

import "sync"

// StringPool interns the strings of a data frame. Indices are stable
// and handed out in order of first addition.
type StringPool struct {
	sync.Mutex
	pool  []string
	index map[string]int
}

func NewStringPool() *StringPool {
	return &StringPool{
		pool:  make([]string, 0, 100),
		index: make(map[string]int),
	}
}

func (sp *StringPool) Add(s string) int {
	sp.Lock()
	defer sp.Unlock()
	if i, ok := sp.index[s]; ok {
		return i
	}
	sp.pool = append(sp.pool, s)
	sp.index[s] = len(sp.pool) - 1
	return len(sp.pool) - 1
}

// Find returns the index of s or -1 if s was never added.
func (sp *StringPool) Find(s string) int {
	sp.Lock()
	defer sp.Unlock()
	if i, ok := sp.index[s]; ok {
		return i
	}
	return -1
}

func (sp *StringPool) Get(i int) string {
	sp.Lock()
	defer sp.Unlock()
	if i < 0 || i >= len(sp.pool) {
		return "--NA--"
	}
	return sp.pool[i]
}

func (sp *StringPool) Len() int {
	sp.Lock()
	defer sp.Unlock()
	return len(sp.pool)
}

// -------------------------------------------------------------------------
// Tuple Pool

// TuplePool collects distinct tuples in order of their first occurrence.
type TuplePool struct {
	tuples []Tuple
	index  map[string]int
}

func NewTuplePool() *TuplePool {
	return &TuplePool{index: make(map[string]int)}
}

// Add returns the index of t, adding it if it is new.
func (tp *TuplePool) Add(t Tuple) int {
	key := t.Key()
	if i, ok := tp.index[key]; ok {
		return i
	}
	tp.tuples = append(tp.tuples, t)
	tp.index[key] = len(tp.tuples) - 1
	return len(tp.tuples) - 1
}

// Find returns the index of t or -1.
func (tp *TuplePool) Find(t Tuple) int {
	if i, ok := tp.index[t.Key()]; ok {
		return i
	}
	return -1
}

func (tp *TuplePool) Get(i int) Tuple { return tp.tuples[i] }
func (tp *TuplePool) Len() int        { return len(tp.tuples) }

// Tuples returns all tuples in order of first occurrence.
func (tp *TuplePool) Tuples() []Tuple {
	return append([]Tuple(nil), tp.tuples...)
}
