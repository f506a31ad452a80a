package runtime

import (
	"errors"
	"reflect"
	"testing"
)

func ints(values ...int64) []*Cell {
	cells := make([]*Cell, len(values))
	for i, v := range values {
		cells[i] = NewCell(IntegerValue{Val: v})
	}
	return cells
}

func intAt(t *testing.T, arr *ArrayValue, key int64) int64 {
	t.Helper()
	cell, ok := arr.Lookup(key)
	if !ok {
		t.Fatalf("expected key %d to be present", key)
	}
	iv, ok := cell.Get().(IntegerValue)
	if !ok {
		t.Fatalf("expected integer at key %d, got %#v", key, cell.Get())
	}
	return iv.Val
}

func TestArrayLiteralKeys(t *testing.T) {
	arr := NewArray(ints(10, 20, 30)...)
	if got := arr.Len(); got != 3 {
		t.Fatalf("expected length 3, got %d", got)
	}
	if !reflect.DeepEqual(arr.Keys(), []int64{1, 2, 3}) {
		t.Fatalf("unexpected keys %v", arr.Keys())
	}
	if got := intAt(t, arr, 2); got != 20 {
		t.Fatalf("expected 20 at key 2, got %d", got)
	}
}

func TestArrayConcatReindexesRightKeys(t *testing.T) {
	x := NewArray(ints(10, 20)...)
	y := NewArray(ints(30)...)
	out := x.Concat(y)
	if !reflect.DeepEqual(out.Keys(), []int64{1, 2, 3}) {
		t.Fatalf("unexpected keys %v", out.Keys())
	}
	for key, want := range map[int64]int64{1: 10, 2: 20, 3: 30} {
		if got := intAt(t, out, key); got != want {
			t.Fatalf("key %d: expected %d, got %d", key, want, got)
		}
	}
	if x.Len() != 2 || y.Len() != 1 {
		t.Fatalf("operands must not change: %d %d", x.Len(), y.Len())
	}
}

func TestArrayConcatSparseOffsets(t *testing.T) {
	x := NewArray()
	x.Slot(5).Set(IntegerValue{Val: 1})
	y := NewArray()
	y.Slot(2).Set(IntegerValue{Val: 2})
	out := x.Concat(y)
	if !reflect.DeepEqual(out.Keys(), []int64{5, 7}) {
		t.Fatalf("unexpected keys %v", out.Keys())
	}
	if out.SlotCount() != 2 {
		t.Fatalf("expected 2 slots, got %d", out.SlotCount())
	}
}

func TestArrayAutoVivification(t *testing.T) {
	arr := NewArray()
	arr.Slot(100).Set(IntegerValue{Val: 7})
	if arr.SlotCount() != 1 {
		t.Fatalf("expected a single slot, got %d", arr.SlotCount())
	}
	if arr.Len() != 100 {
		t.Fatalf("expected length 100, got %d", arr.Len())
	}
	if _, ok := arr.Lookup(50); ok {
		t.Fatalf("reading with Lookup must not create keys")
	}
}

func TestTupleDuplicateKeyRejected(t *testing.T) {
	_, err := NewTuple([]TupleField{
		{Name: "a", Cell: NewCell(IntegerValue{Val: 1})},
		{Name: "a", Cell: NewCell(IntegerValue{Val: 2})},
	})
	var rtErr *Error
	if !errors.As(err, &rtErr) || rtErr.Kind != ErrKeyConflict {
		t.Fatalf("expected KeyConflict, got %v", err)
	}
}

func TestTupleConcat(t *testing.T) {
	left, _ := NewTuple([]TupleField{{Name: "a", Cell: NewCell(IntegerValue{Val: 1})}})
	right, _ := NewTuple([]TupleField{{Name: "b", Cell: NewCell(IntegerValue{Val: 2})}})
	out, err := left.Concat(right)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pos, ok := out.Position("b"); !ok || pos != 1 {
		t.Fatalf("expected b at position 1, got %d (%v)", pos, ok)
	}
	cell, err := out.Field("a")
	if err != nil || cell.Get().(IntegerValue).Val != 1 {
		t.Fatalf("unexpected field a: %#v, %v", cell, err)
	}

	conflict, _ := NewTuple([]TupleField{{Name: "a", Cell: NewCell(IntegerValue{Val: 2})}})
	if _, err := left.Concat(conflict); err == nil {
		t.Fatalf("expected KeyConflict error")
	}
}

func TestTupleAccessErrors(t *testing.T) {
	tup, _ := NewTuple([]TupleField{{Cell: NewCell(EmptyValue{})}})
	if _, err := tup.Index(2); err == nil {
		t.Fatalf("expected IndexOutOfRange")
	}
	if _, err := tup.Index(0); err == nil {
		t.Fatalf("expected IndexOutOfRange for index 0")
	}
	if _, err := tup.Field("missing"); err == nil {
		t.Fatalf("expected KeyNotFound")
	}
}

func TestCellSetSharesElementHandles(t *testing.T) {
	src := NewArray(ints(1)...)
	dst := NewCell(EmptyValue{})
	dst.Set(src)

	copied := dst.Get().(*ArrayValue)
	copied.Slot(2).Set(IntegerValue{Val: 2})
	if src.Len() != 1 {
		t.Fatalf("new keys in the copy must not reach the source, len=%d", src.Len())
	}

	first, _ := copied.Lookup(1)
	first.Set(IntegerValue{Val: 9})
	if got := intAt(t, src, 1); got != 9 {
		t.Fatalf("element handles should be shared, got %d", got)
	}
}

func TestKindString(t *testing.T) {
	if KindFunction.String() != "func" || KindBoolean.String() != "bool" {
		t.Fatalf("unexpected kind names %s %s", KindFunction, KindBoolean)
	}
}
