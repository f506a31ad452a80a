package runtime

import (
	"fmt"

	"github.com/tidwall/btree"

	"dscript/interpreter-go/pkg/ast"
)

// Kind identifies the runtime value category.
type Kind int

const (
	KindEmpty Kind = iota
	KindInteger
	KindReal
	KindBoolean
	KindString
	KindArray
	KindTuple
	KindFunction
)

func (k Kind) String() string {
	switch k {
	case KindEmpty:
		return "empty"
	case KindInteger:
		return "int"
	case KindReal:
		return "real"
	case KindBoolean:
		return "bool"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindTuple:
		return "tuple"
	case KindFunction:
		return "func"
	default:
		return fmt.Sprintf("unknown_kind_%d", int(k))
	}
}

// Value is the shared behaviour for all runtime values.
type Value interface {
	Kind() Kind
}

//-----------------------------------------------------------------------------
// Scalars
//-----------------------------------------------------------------------------

type EmptyValue struct{}

func (EmptyValue) Kind() Kind { return KindEmpty }

type IntegerValue struct {
	Val int64
}

func (IntegerValue) Kind() Kind { return KindInteger }

type RealValue struct {
	Val float64
}

func (RealValue) Kind() Kind { return KindReal }

type BoolValue struct {
	Val bool
}

func (BoolValue) Kind() Kind { return KindBoolean }

// StringValue holds the source text with escape sequences unexpanded.
type StringValue struct {
	Val string
}

func (StringValue) Kind() Kind { return KindString }

//-----------------------------------------------------------------------------
// Arrays
//-----------------------------------------------------------------------------

// ArrayValue is a sparse mapping from integer keys to slots. The key index
// is ordered so the maximum key (the logical length) is always at hand.
type ArrayValue struct {
	keys  *btree.Map[int64, int]
	slots []*Cell
}

func (*ArrayValue) Kind() Kind { return KindArray }

// NewArray assigns keys 1..N to the given handles in order.
func NewArray(cells ...*Cell) *ArrayValue {
	arr := &ArrayValue{keys: new(btree.Map[int64, int])}
	for i, cell := range cells {
		arr.keys.Set(int64(i+1), len(arr.slots))
		arr.slots = append(arr.slots, cell)
	}
	return arr
}

// Lookup returns the handle stored under key, if any.
func (a *ArrayValue) Lookup(key int64) (*Cell, bool) {
	idx, ok := a.keys.Get(key)
	if !ok {
		return nil, false
	}
	return a.slots[idx], true
}

// Slot returns the handle under key, appending a fresh Empty slot when the
// key is absent.
func (a *ArrayValue) Slot(key int64) *Cell {
	if cell, ok := a.Lookup(key); ok {
		return cell
	}
	cell := NewCell(EmptyValue{})
	a.keys.Set(key, len(a.slots))
	a.slots = append(a.slots, cell)
	return cell
}

// Len is the largest key present, or 0 for an array with no keys.
func (a *ArrayValue) Len() int64 {
	key, _, ok := a.keys.Max()
	if !ok {
		return 0
	}
	return key
}

// MinKey returns the smallest key present.
func (a *ArrayValue) MinKey() (int64, bool) {
	key, _, ok := a.keys.Min()
	return key, ok
}

// Keys lists the present keys in ascending order.
func (a *ArrayValue) Keys() []int64 {
	return a.keys.Keys()
}

// SlotCount is the number of backing slots, which may differ from Len.
func (a *ArrayValue) SlotCount() int {
	return len(a.slots)
}

// Each visits present keys in ascending order until fn returns false.
func (a *ArrayValue) Each(fn func(key int64, cell *Cell) bool) {
	a.keys.Scan(func(key int64, idx int) bool {
		return fn(key, a.slots[idx])
	})
}

// Concat appends right's slots after a's and shifts right's keys above a's
// largest key. A shifted key that collides with an existing left key keeps
// the left entry.
func (a *ArrayValue) Concat(right *ArrayValue) *ArrayValue {
	out := a.Clone()
	offset := a.Len()
	right.keys.Scan(func(key int64, idx int) bool {
		shifted := key + offset
		if _, exists := out.keys.Get(shifted); !exists {
			out.keys.Set(shifted, len(out.slots)+idx)
		}
		return true
	})
	out.slots = append(out.slots, right.slots...)
	return out
}

// Clone copies the key index and slot list; element handles stay shared.
func (a *ArrayValue) Clone() *ArrayValue {
	slots := make([]*Cell, len(a.slots))
	copy(slots, a.slots)
	return &ArrayValue{keys: a.keys.Copy(), slots: slots}
}

//-----------------------------------------------------------------------------
// Tuples
//-----------------------------------------------------------------------------

// TupleField is one tuple slot under construction; Name may be empty.
type TupleField struct {
	Name string
	Cell *Cell
}

type TupleValue struct {
	slots  []*Cell
	labels []string
	names  map[string]int
}

func (*TupleValue) Kind() Kind { return KindTuple }

// NewTuple builds a tuple, rejecting duplicate names.
func NewTuple(fields []TupleField) (*TupleValue, error) {
	t := &TupleValue{
		slots:  make([]*Cell, 0, len(fields)),
		labels: make([]string, 0, len(fields)),
		names:  make(map[string]int),
	}
	for _, field := range fields {
		if field.Name != "" {
			if _, dup := t.names[field.Name]; dup {
				return nil, Errorf(ErrKeyConflict, "duplicate tuple key '%s'", field.Name)
			}
			t.names[field.Name] = len(t.slots)
		}
		t.slots = append(t.slots, field.Cell)
		t.labels = append(t.labels, field.Name)
	}
	return t, nil
}

// Len is the number of slots.
func (t *TupleValue) Len() int {
	return len(t.slots)
}

// At returns the zero-based slot and its name ("" when unnamed).
func (t *TupleValue) At(pos int) (*Cell, string) {
	return t.slots[pos], t.labels[pos]
}

// Index resolves a one-based positional access.
func (t *TupleValue) Index(i int64) (*Cell, error) {
	if i < 1 || i > int64(len(t.slots)) {
		return nil, Errorf(ErrIndexOutOfRange, "tuple index %d out of range 1..%d", i, len(t.slots))
	}
	return t.slots[i-1], nil
}

// Field resolves a named access.
func (t *TupleValue) Field(name string) (*Cell, error) {
	pos, ok := t.names[name]
	if !ok {
		return nil, Errorf(ErrKeyNotFound, "tuple has no field '%s'", name)
	}
	return t.slots[pos], nil
}

// Position returns the zero-based slot of a named field.
func (t *TupleValue) Position(name string) (int, bool) {
	pos, ok := t.names[name]
	return pos, ok
}

// Names lists the named fields in slot order.
func (t *TupleValue) Names() []string {
	out := make([]string, 0, len(t.names))
	for _, label := range t.labels {
		if label != "" {
			out = append(out, label)
		}
	}
	return out
}

// Concat joins two tuples, failing when both define the same name.
func (t *TupleValue) Concat(right *TupleValue) (*TupleValue, error) {
	fields := make([]TupleField, 0, len(t.slots)+len(right.slots))
	for i, cell := range t.slots {
		fields = append(fields, TupleField{Name: t.labels[i], Cell: cell})
	}
	for i, cell := range right.slots {
		fields = append(fields, TupleField{Name: right.labels[i], Cell: cell})
	}
	return NewTuple(fields)
}

// Clone copies the slot list; element handles stay shared.
func (t *TupleValue) Clone() *TupleValue {
	out := &TupleValue{
		slots:  make([]*Cell, len(t.slots)),
		labels: make([]string, len(t.labels)),
		names:  make(map[string]int, len(t.names)),
	}
	copy(out.slots, t.slots)
	copy(out.labels, t.labels)
	for k, v := range t.names {
		out.names[k] = v
	}
	return out
}

//-----------------------------------------------------------------------------
// Functions
//-----------------------------------------------------------------------------

// FunctionValue pairs a function literal with the bindings visible when the
// literal was evaluated.
type FunctionValue struct {
	Node     *ast.FunctionLiteral
	Captured map[string]*Cell
}

func (*FunctionValue) Kind() Kind { return KindFunction }

// Arity is the declared parameter count.
func (f *FunctionValue) Arity() int {
	return len(f.Node.Params)
}
