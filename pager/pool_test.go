package pager

import "testing"

func TestPoolAllocateGet(t *testing.T) {
	p := NewPool()

	id, err := p.Allocate()
	if err != nil {
		t.Fatalf("Allocate: %v", err)
	}
	if id == 0 {
		t.Fatalf("Allocate returned the reserved sentinel ID 0")
	}

	b := p.Get(id)
	b.SetNumKeys(5)
	if p.Get(id).NumKeys() != 5 {
		t.Fatalf("Get did not return the same backing storage across calls")
	}
}

func TestPoolFreeReusesSlot(t *testing.T) {
	p := NewPool()

	id1, _ := p.Allocate()
	p.Get(id1).SetNumKeys(9)
	p.Free(id1)

	id2, err := p.Allocate()
	if err != nil {
		t.Fatalf("Allocate: %v", err)
	}
	if id2 != id1 {
		t.Fatalf("expected freed slot %d to be reused, got %d", id1, id2)
	}
	if p.Get(id2).NumKeys() != 0 {
		t.Fatalf("reused slot was not zeroed, got NumKeys=%d", p.Get(id2).NumKeys())
	}
}

// A pointer returned by Get must stay valid even after enough further
// Allocate calls to grow the pool's backing slice past its capacity.
func TestPoolGetPointerStableAcrossGrowth(t *testing.T) {
	p := NewPool()

	id, _ := p.Allocate()
	b := p.Get(id)
	b.SetNumKeys(7)

	for i := 0; i < 1000; i++ {
		if _, err := p.Allocate(); err != nil {
			t.Fatalf("Allocate: %v", err)
		}
	}

	if b.NumKeys() != 7 {
		t.Fatalf("pointer from Get went stale after growth: NumKeys() = %d, want 7", b.NumKeys())
	}
	if p.Get(id).NumKeys() != 7 {
		t.Fatalf("Get(id) after growth = %d, want 7", p.Get(id).NumKeys())
	}
}

func TestPoolGetInvalidIDPanics(t *testing.T) {
	p := NewPool()
	defer func() {
		if recover() == nil {
			t.Fatalf("Get(0) should panic on the reserved sentinel ID")
		}
	}()
	p.Get(0)
}
