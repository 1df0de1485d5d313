package bplus

import "bptree/block"

// Delete removes k's record, or returns ErrNotFound if it is absent.
// Delete never allocates: it only ever frees blocks drained by a merge.
func (t *Tree) Delete(k uint64) error {
	leafID := t.findLeaf(k)
	leaf := t.get(leafID)

	i := leaf.ScanLeaf(k)
	if i >= leaf.NumKeys() || leaf.Key(i) != k {
		return ErrNotFound
	}

	preCount := leaf.NumKeys()
	removeLeafSlot(leaf, i)
	t.records--
	t.fixCursorsDelete(leafID, i)

	if t.depth > 0 && preCount <= block.LHalf {
		t.leafUnderflow(leafID, leaf)
	}
	return nil
}
