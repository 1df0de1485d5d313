package bplus

import (
	"go.uber.org/zap"

	"bptree/block"
)

// Insert records (k, v), or overwrites v for an existing k. It only
// allocates when the target leaf is already full, and in that case
// claims every block the resulting cascade of splits could possibly need
// before mutating anything, so the mutation itself cannot fail partway
// through.
func (t *Tree) Insert(k, v uint64) error {
	leafID := t.findLeaf(k)
	leaf := t.get(leafID)

	i := leaf.ScanLeaf(k)
	if i < leaf.NumKeys() && leaf.Key(i) == k {
		leaf.SetValue(i, v)
		return nil
	}

	if leaf.NumKeys() < block.MaxKeys {
		insertLeafSlot(leaf, i, k, v)
		t.records++
		t.fixCursorsInsert(leafID, i)
		return nil
	}

	reserve, err := t.preallocateSplits()
	if err != nil {
		return err
	}

	promoted, newLeafID := t.splitLeaf(leaf, i, k, v, reserve.leaf)
	t.fixCursorsLeafSplit(leafID, newLeafID, i)
	t.records++
	t.log.Debug("leaf split",
		zap.Uint64("old", uint64(leafID)),
		zap.Uint64("new", uint64(newLeafID)),
		zap.Uint64("promoted", promoted))

	key, child := promoted, newLeafID
	for level := t.depth - 1; level >= 0; level-- {
		entry := t.path[level]
		parent := t.get(entry.node)
		pos := entry.slot

		if parent.NumKeys() < block.MaxKeys {
			insertIndexSlot(parent, pos, key, child)
			return nil
		}

		newID := reserve.indexBlocks[level]
		promotedKey, newNodeID := t.splitIndex(parent, pos, key, child, newID)
		t.log.Debug("index split",
			zap.Uint64("old", uint64(entry.node)),
			zap.Uint64("new", uint64(newNodeID)))
		key, child = promotedKey, newNodeID
	}

	t.addRootBlock(key, t.root, child, reserve.root)
	return nil
}
