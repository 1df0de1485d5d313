package bplus

import "bptree/block"

// insertLeafSlot shifts a leaf's suffix starting at i right by one slot
// and writes (k, v) into the opened slot. It does not touch the leaf's
// NEXT pointer.
func insertLeafSlot(leaf *block.Block, i int, k, v uint64) {
	n := leaf.NumKeys()
	keys := leaf.Keys()
	vals := leaf.Fields()
	copy(keys[i+1:n+1], keys[i:n])
	copy(vals[i+1:n+1], vals[i:n])
	keys[i] = k
	vals[i] = v
	leaf.SetNumKeys(n + 1)
}

// removeLeafSlot shifts a leaf's suffix after i left by one slot,
// dropping the entry at i.
func removeLeafSlot(leaf *block.Block, i int) {
	n := leaf.NumKeys()
	keys := leaf.Keys()
	vals := leaf.Fields()
	copy(keys[i:n-1], keys[i+1:n])
	copy(vals[i:n-1], vals[i+1:n])
	leaf.SetNumKeys(n - 1)
}

// insertIndexSlot inserts a new separator key at pos and its right child
// at pos+1, shifting later keys and children right by one slot each.
func insertIndexSlot(idx *block.Block, pos int, key uint64, child block.ID) {
	n := idx.NumKeys()
	keys := idx.Keys()
	fields := idx.Fields()
	copy(keys[pos+1:n+1], keys[pos:n])
	copy(fields[pos+2:n+2], fields[pos+1:n+1])
	keys[pos] = key
	fields[pos+1] = uint64(child)
	idx.SetNumKeys(n + 1)
}

// removeIndexFirstChild drops an index node's first key and first child,
// shifting the remainder left by one slot each. Used when a right
// sibling donates its leading entry during an index rotation.
func removeIndexFirstChild(idx *block.Block) {
	n := idx.NumKeys()
	keys := idx.Keys()
	fields := idx.Fields()
	copy(keys[:n-1], keys[1:n])
	copy(fields[:n], fields[1:n+1])
	idx.SetNumKeys(n - 1)
}

// removeIndexSlot removes the separator to the left of child slot pos,
// i.e. key[pos-1] and child[pos], shifting the remainder left by one.
func removeIndexSlot(idx *block.Block, pos int) {
	n := idx.NumKeys()
	keys := idx.Keys()
	fields := idx.Fields()
	copy(keys[pos-1:n-1], keys[pos:n])
	copy(fields[pos:n], fields[pos+1:n+1])
	idx.SetNumKeys(n - 1)
}
