package bplus

import (
	"go.uber.org/zap"

	"bptree/block"
)

// indexFloor is the lowest key count this implementation lets a non-root
// index node settle at. The spec's steady-state floor for every
// non-root node is 128 keys, the same as a leaf's, but an index merge
// additionally absorbs the parent's separator as an extra key: merging
// an under-full 127-key node with a sibling at a 128-key floor plus that
// separator would need 256 keys, one more than a block can hold. Lowering the index rotation
// threshold by one — to the same 127-key share a freshly split node's
// right half settles at (spec 4.4.3) — keeps the worst-case merge
// (127 + separator + 127 = 255) exactly at capacity.
const indexFloor = block.LHalf - 1

// leafUnderflow rebalances an under-full leaf against its siblings:
// right-rotate, then left-rotate, then merge (preferring the left
// sibling), per the preference order the caller's underflow check
// establishes.
func (t *Tree) leafUnderflow(leafID block.ID, leaf *block.Block) {
	entry := t.path[t.depth-1]
	parent := t.get(entry.node)
	pos := entry.slot
	nkp := entry.nkeys

	if pos < nkp {
		rightID := parent.Child(pos + 1)
		rightSib := t.get(rightID)
		if rightSib.NumKeys() > block.LHalf {
			idx := leaf.NumKeys()
			leaf.SetKey(idx, rightSib.Key(0))
			leaf.SetValue(idx, rightSib.Value(0))
			leaf.SetNumKeys(idx + 1)
			removeLeafSlot(rightSib, 0)
			parent.SetKey(pos, rightSib.Key(0))
			t.fixCursorsRotateLeft(leafID, rightID, idx)
			return
		}
	}

	if pos > 0 {
		leftID := parent.Child(pos - 1)
		leftSib := t.get(leftID)
		if leftSib.NumKeys() > block.LHalf {
			last := leftSib.NumKeys() - 1
			k0, v0 := leftSib.Key(last), leftSib.Value(last)
			n := leaf.NumKeys()
			keys, vals := leaf.Keys(), leaf.Fields()
			copy(keys[1:n+1], keys[:n])
			copy(vals[1:n+1], vals[:n])
			keys[0], vals[0] = k0, v0
			leaf.SetNumKeys(n + 1)
			removeLeafSlot(leftSib, last)
			parent.SetKey(pos-1, k0)
			t.fixCursorsRotateRight(leafID, leftID, last)
			return
		}

		priorLeftCount := leftSib.NumKeys()
		n := leaf.NumKeys()
		lKeys, lVals := leftSib.Keys(), leftSib.Fields()
		keys, vals := leaf.Keys(), leaf.Fields()
		copy(lKeys[priorLeftCount:priorLeftCount+n], keys[:n])
		copy(lVals[priorLeftCount:priorLeftCount+n], vals[:n])
		leftSib.SetNumKeys(priorLeftCount + n)
		leftSib.SetNext(leaf.Next())
		t.fixCursorsMerge(leafID, leftID, priorLeftCount)
		t.freeBlock(leafID)
		t.log.Debug("leaf merge left", zap.Uint64("drained", uint64(leafID)))
		t.shrinkIndexAncestors(t.depth-1, pos)
		return
	}

	rightID := parent.Child(pos + 1)
	rightSib := t.get(rightID)
	priorThisCount := leaf.NumKeys()
	m := rightSib.NumKeys()
	keys, vals := leaf.Keys(), leaf.Fields()
	rKeys, rVals := rightSib.Keys(), rightSib.Fields()
	copy(keys[priorThisCount:priorThisCount+m], rKeys[:m])
	copy(vals[priorThisCount:priorThisCount+m], rVals[:m])
	leaf.SetNumKeys(priorThisCount + m)
	leaf.SetNext(rightSib.Next())
	t.fixCursorsMerge(rightID, leafID, priorThisCount)
	t.freeBlock(rightID)
	t.log.Debug("leaf merge right", zap.Uint64("drained", uint64(rightID)))
	t.shrinkIndexAncestors(t.depth-1, pos+1)
}

// shrinkIndexAncestors removes the separator to the left of child slot
// pos from the index node recorded at the given path level, then either
// collapses the root (if its key count fell to zero) or runs the index
// underflow protocol (if its key count fell below LHalf), or does
// nothing if the node is still healthy.
func (t *Tree) shrinkIndexAncestors(level, pos int) {
	node := t.get(t.path[level].node)
	removeIndexSlot(node, pos)

	if level == 0 {
		if node.NumKeys() == 0 {
			newRoot := node.Child(0)
			t.freeBlock(t.root)
			t.log.Debug("root collapse", zap.Uint64("newRoot", uint64(newRoot)))
			t.root = newRoot
			t.depth--
			if t.depth == 0 {
				t.path = nil
			}
		}
		return
	}

	if node.NumKeys() < block.LHalf {
		t.indexUnderflow(level)
	}
}

// indexUnderflow rebalances an under-full index node against its
// siblings, mirroring leafUnderflow's preference order. A merge recurses
// into shrinkIndexAncestors to remove the separator the merge consumed
// from this node's own parent; rotations need no recursion.
func (t *Tree) indexUnderflow(level int) {
	parentEntry := t.path[level-1]
	parent := t.get(parentEntry.node)
	pos := parentEntry.slot
	nkp := parentEntry.nkeys

	nodeID := t.path[level].node
	node := t.get(nodeID)

	if pos < nkp {
		rightID := parent.Child(pos + 1)
		rightSib := t.get(rightID)
		if rightSib.NumKeys() > indexFloor {
			n := node.NumKeys()
			node.SetKey(n, parent.Key(pos))
			node.SetChild(n+1, rightSib.Child(0))
			node.SetNumKeys(n + 1)
			parent.SetKey(pos, rightSib.Key(0))
			removeIndexFirstChild(rightSib)
			return
		}
	}

	if pos > 0 {
		leftID := parent.Child(pos - 1)
		leftSib := t.get(leftID)
		if leftSib.NumKeys() > indexFloor {
			n := node.NumKeys()
			lastKey := leftSib.NumKeys() - 1
			keys, fields := node.Keys(), node.Fields()
			copy(keys[1:n+1], keys[:n])
			copy(fields[1:n+2], fields[:n+1])
			keys[0] = parent.Key(pos - 1)
			fields[0] = uint64(leftSib.Child(lastKey + 1))
			node.SetNumKeys(n + 1)
			parent.SetKey(pos-1, leftSib.Key(lastKey))
			leftSib.SetNumKeys(lastKey)
			return
		}

		t.mergeIndexNodes(leftSib, node, parent.Key(pos-1))
		t.freeBlock(nodeID)
		t.log.Debug("index merge left", zap.Uint64("drained", uint64(nodeID)))
		t.shrinkIndexAncestors(level-1, pos)
		return
	}

	rightID := parent.Child(pos + 1)
	rightSib := t.get(rightID)
	t.mergeIndexNodes(node, rightSib, parent.Key(pos))
	t.freeBlock(rightID)
	t.log.Debug("index merge right", zap.Uint64("drained", uint64(rightID)))
	t.shrinkIndexAncestors(level-1, pos+1)
}

// mergeIndexNodes appends sep and every key/child of right onto left.
func (t *Tree) mergeIndexNodes(left, right *block.Block, sep uint64) {
	ln := left.NumKeys()
	rn := right.NumKeys()
	lKeys, lFields := left.Keys(), left.Fields()
	rKeys, rFields := right.Keys(), right.Fields()

	lKeys[ln] = sep
	copy(lKeys[ln+1:ln+1+rn], rKeys[:rn])
	copy(lFields[ln+1:ln+1+rn+1], rFields[:rn+1])
	left.SetNumKeys(ln + 1 + rn)
}
