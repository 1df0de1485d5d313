package bplus

// Enumerate walks the leaf chain from the leftmost leaf, calling f with
// every (key, value) pair in ascending key order. It performs no
// allocation and costs O(n) in the number of records.
func (t *Tree) Enumerate(f func(key, value uint64)) {
	id := t.leafHead
	for id != 0 {
		leaf := t.get(id)
		n := leaf.NumKeys()
		for i := 0; i < n; i++ {
			f(leaf.Key(i), leaf.Value(i))
		}
		id = leaf.Next()
	}
}
