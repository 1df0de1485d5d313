package block

import "testing"

func TestNumKeys(t *testing.T) {
	var b Block
	b.SetNumKeys(17)
	if got := b.NumKeys(); got != 17 {
		t.Fatalf("NumKeys() = %d, want 17", got)
	}
}

func TestKeyValueRoundTrip(t *testing.T) {
	var b Block
	b.SetNumKeys(3)
	b.SetKey(0, 10)
	b.SetKey(1, 20)
	b.SetKey(2, 30)
	b.SetValue(0, 100)
	b.SetValue(1, 200)
	b.SetValue(2, 300)

	for i, want := range []uint64{10, 20, 30} {
		if got := b.Key(i); got != want {
			t.Errorf("Key(%d) = %d, want %d", i, got, want)
		}
	}
	for i, want := range []uint64{100, 200, 300} {
		if got := b.Value(i); got != want {
			t.Errorf("Value(%d) = %d, want %d", i, got, want)
		}
	}
}

func TestChildAndNext(t *testing.T) {
	var b Block
	b.SetChild(0, 5)
	b.SetChild(1, 6)
	if b.Child(0) != 5 || b.Child(1) != 6 {
		t.Fatalf("child accessors round-trip failed: %d, %d", b.Child(0), b.Child(1))
	}

	b.SetNext(42)
	if b.Next() != 42 {
		t.Fatalf("Next() = %d, want 42", b.Next())
	}
	// Next lives in the last field slot, independent of child slots.
	if b.Child(0) != 5 {
		t.Fatalf("SetNext clobbered Child(0): got %d", b.Child(0))
	}
}

func TestScanLeaf(t *testing.T) {
	var b Block
	b.SetNumKeys(4)
	for i, k := range []uint64{10, 20, 30, 40} {
		b.SetKey(i, k)
	}

	cases := []struct {
		k    uint64
		want int
	}{
		{5, 0},
		{10, 0},
		{15, 1},
		{40, 3},
		{41, 4},
	}
	for _, c := range cases {
		if got := b.ScanLeaf(c.k); got != c.want {
			t.Errorf("ScanLeaf(%d) = %d, want %d", c.k, got, c.want)
		}
	}
}

func TestScanIndex(t *testing.T) {
	var b Block
	b.SetNumKeys(3)
	for i, k := range []uint64{10, 20, 30} {
		b.SetKey(i, k)
	}

	cases := []struct {
		k    uint64
		want int
	}{
		{5, 0},
		{10, 1},
		{15, 1},
		{30, 3},
		{31, 3},
	}
	for _, c := range cases {
		if got := b.ScanIndex(c.k); got != c.want {
			t.Errorf("ScanIndex(%d) = %d, want %d", c.k, got, c.want)
		}
	}
}

func TestKeysAndFieldsAlias(t *testing.T) {
	var b Block
	b.Keys()[0] = 99
	if b.Key(0) != 99 {
		t.Fatalf("Keys() slice does not alias underlying storage")
	}
	b.Fields()[0] = 77
	if b.Value(0) != 77 {
		t.Fatalf("Fields() slice does not alias underlying storage")
	}
}
