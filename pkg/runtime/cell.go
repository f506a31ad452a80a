package runtime

// Cell is a value handle. Names, array slots and tuple slots hold cells, and
// several of them may hold the same cell; writes through Set are seen by all.
type Cell struct {
	value Value
}

// NewCell wraps v in a fresh handle. A nil value becomes Empty.
func NewCell(v Value) *Cell {
	if v == nil {
		v = EmptyValue{}
	}
	return &Cell{value: v}
}

// Get returns the current contents.
func (c *Cell) Get() Value {
	return c.value
}

// Set overwrites the contents in place. Arrays and tuples are copied one
// level deep so the cell owns its slot list while element handles remain
// shared with the source.
func (c *Cell) Set(v Value) {
	switch val := v.(type) {
	case nil:
		c.value = EmptyValue{}
	case *ArrayValue:
		c.value = val.Clone()
	case *TupleValue:
		c.value = val.Clone()
	default:
		c.value = v
	}
}
