package bplus

import "bptree/block"

// splitLeaf inserts (k, v) at slot i into a full leaf and splits the
// combined 256 entries evenly: the old leaf keeps the first 128, the
// new leaf (backed by newID) takes the remaining 128. It splices the new
// leaf into the leaf chain and returns the promoted key (the new leaf's
// first key) together with its ID. Cursor fixup is the caller's
// responsibility.
func (t *Tree) splitLeaf(old *block.Block, i int, k, v uint64, newID block.ID) (promoted uint64, newLeafID block.ID) {
	newLeaf := t.get(newID)

	var ck [block.Order]uint64
	var cv [block.Order]uint64

	n := old.NumKeys()
	oldKeys, oldVals := old.Keys(), old.Fields()
	copy(ck[:i], oldKeys[:i])
	copy(cv[:i], oldVals[:i])
	ck[i], cv[i] = k, v
	copy(ck[i+1:], oldKeys[i:n])
	copy(cv[i+1:], oldVals[i:n])

	copy(oldKeys[:block.LHalf], ck[:block.LHalf])
	copy(oldVals[:block.LHalf], cv[:block.LHalf])
	old.SetNumKeys(block.LHalf)

	newKeys, newVals := newLeaf.Keys(), newLeaf.Fields()
	copy(newKeys[:block.RHalf], ck[block.LHalf:])
	copy(newVals[:block.RHalf], cv[block.LHalf:])
	newLeaf.SetNumKeys(block.RHalf)

	newLeaf.SetNext(old.Next())
	old.SetNext(newID)

	return ck[block.LHalf], newID
}

// splitIndex inserts a promoted key and its right child at separator
// slot pos into a full index node, then splits the combined 256 keys /
// 257 children into (128 keys, 129 children) kept in old and (127 keys,
// 128 children) moved to the new node backed by newID. Returns the key
// promoted further up (the combined array's middle key) and the new
// node's ID.
func (t *Tree) splitIndex(old *block.Block, pos int, key uint64, child block.ID, newID block.ID) (promoted uint64, newNodeID block.ID) {
	newNode := t.get(newID)

	var ck [block.Order]uint64
	var cc [block.Order + 1]block.ID

	n := old.NumKeys()
	oldKeys := old.Keys()
	copy(ck[:pos], oldKeys[:pos])
	for i := 0; i <= pos; i++ {
		cc[i] = old.Child(i)
	}
	ck[pos] = key
	cc[pos+1] = child
	copy(ck[pos+1:], oldKeys[pos:n])
	for i := pos + 1; i <= n; i++ {
		cc[i+1] = old.Child(i)
	}

	oldKeys2 := old.Keys()
	copy(oldKeys2[:block.LHalf], ck[:block.LHalf])
	for i := 0; i <= block.LHalf; i++ {
		old.SetChild(i, cc[i])
	}
	old.SetNumKeys(block.LHalf)

	rightCount := block.RHalf - 1
	newKeys := newNode.Keys()
	copy(newKeys[:rightCount], ck[block.LHalf+1:])
	for i := 0; i <= rightCount; i++ {
		newNode.SetChild(i, cc[block.LHalf+1+i])
	}
	newNode.SetNumKeys(rightCount)

	return ck[block.LHalf], newID
}

// addRootBlock makes rootID the tree's new root, holding one key and the
// two children left and right, and increases the tree's depth by one.
func (t *Tree) addRootBlock(key uint64, left, right, rootID block.ID) {
	root := t.get(rootID)
	root.SetNumKeys(1)
	root.SetKey(0, key)
	root.SetChild(0, left)
	root.SetChild(1, right)
	t.root = rootID
	t.depth++
}
