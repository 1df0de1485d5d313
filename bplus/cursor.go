package bplus

import "bptree/block"

// Cursor is a forward-iterating handle onto one conceptual record in a
// tree. It survives structural mutation of the tree: every insert,
// split, rotate, and merge walks the owning tree's cursor list and
// patches each cursor so it keeps pointing at the record it was created
// to observe (or is marked invalid if that record was deleted).
type Cursor struct {
	tree *Tree
	leaf block.ID
	pos  int

	// invalid is set when the record this cursor referenced was deleted.
	// NextRecord clears it and continues from the same position, which
	// now refers to whatever took the deleted record's place. An insert
	// into that same slot also clears it (see fixCursorsInsert).
	invalid bool

	prev, next *Cursor
}

// newCursor allocates a cursor at (leaf, pos) and links it into the
// tree's cursor list. Go's allocator does not fail under the conditions
// this engine runs in, so unlike block allocation this cannot report
// NOMEM.
func (t *Tree) newCursor(leaf block.ID, pos int) *Cursor {
	c := &Cursor{tree: t, leaf: leaf, pos: pos}
	c.next = t.cursors
	if t.cursors != nil {
		t.cursors.prev = c
	}
	t.cursors = c
	t.numCursors++
	return c
}

// unlink removes c from its tree's cursor list. Safe to call on an
// already-unlinked or tree-less cursor.
func (c *Cursor) unlink() {
	if c.tree == nil {
		return
	}
	if c.prev != nil {
		c.prev.next = c.next
	} else {
		c.tree.cursors = c.next
	}
	if c.next != nil {
		c.next.prev = c.prev
	}
	c.tree.numCursors--
	c.prev, c.next = nil, nil
}

// FirstRecord returns a cursor positioned at the first record in the
// tree (the leftmost leaf, position 0).
func (t *Tree) FirstRecord() *Cursor {
	return t.newCursor(t.leafHead, 0)
}

// FindRecord returns a cursor positioned at the first record with key >=
// k in the leaf that should contain k. If that leaf holds no such key,
// the cursor sits at the leaf's key count, past its end: GetRecord reports
// ErrNotFound until NextRecord moves it to the next leaf's first record,
// or reports ErrNotFound itself if there is no next leaf. An insert into
// that leaf at the cursor's slot shifts the cursor along with it.
func (t *Tree) FindRecord(k uint64) *Cursor {
	leafID := t.findLeaf(k)
	pos := t.get(leafID).ScanLeaf(k)
	return t.newCursor(leafID, pos)
}

// GetRecord reports the key and value at the cursor, or ErrNotFound if
// the cursor is invalidated or past the end of the tree.
func (c *Cursor) GetRecord() (key, value uint64, err error) {
	if c.tree == nil || c.invalid || c.leaf == 0 {
		return 0, 0, ErrNotFound
	}
	leaf := c.tree.get(c.leaf)
	if c.pos >= leaf.NumKeys() {
		return 0, 0, ErrNotFound
	}
	return leaf.Key(c.pos), leaf.Value(c.pos), nil
}

// UpdateRecord overwrites the value at the cursor in place, or returns
// ErrNotFound under the same validity rule as GetRecord.
func (c *Cursor) UpdateRecord(v uint64) error {
	if c.tree == nil || c.invalid || c.leaf == 0 {
		return ErrNotFound
	}
	leaf := c.tree.get(c.leaf)
	if c.pos >= leaf.NumKeys() {
		return ErrNotFound
	}
	leaf.SetValue(c.pos, v)
	return nil
}

// NextRecord advances the cursor to the next record in ascending key
// order. If the cursor was invalidated, it is revalidated in place
// first: the position it already holds refers to whatever took the
// deleted record's slot, or is now past the leaf's end. Returns
// ErrNotFound once there is no further record.
func (c *Cursor) NextRecord() error {
	if c.tree == nil || c.leaf == 0 {
		return ErrNotFound
	}
	if c.invalid {
		c.invalid = false
	} else {
		c.pos++
	}
	leaf := c.tree.get(c.leaf)
	if c.pos < leaf.NumKeys() {
		return nil
	}
	next := leaf.Next()
	if next == 0 {
		c.leaf = 0
		return ErrNotFound
	}
	c.leaf = next
	c.pos = 0
	return nil
}

// Free unlinks the cursor from its tree and releases it. The cursor must
// not be used afterward.
func (c *Cursor) Free() {
	c.unlink()
	c.tree = nil
}

// Tree returns the tree the cursor enumerates, or nil if that tree has
// since been closed or the cursor has been freed.
func (c *Cursor) Tree() *Tree {
	return c.tree
}

// fixCursorsInsert increments the position of every cursor on leafID at
// or after the slot a new, non-splitting insert just opened. An
// invalidated cursor sitting exactly on that slot is instead revalidated
// in place: the new record takes the deleted record's slot, so
// re-inserting a deleted key makes the cursor reference it again.
func (t *Tree) fixCursorsInsert(leafID block.ID, i int) {
	for c := t.cursors; c != nil; c = c.next {
		if c.leaf != leafID {
			continue
		}
		switch {
		case c.invalid && c.pos == i:
			c.invalid = false
		case c.pos >= i:
			c.pos++
		}
	}
}

// fixCursorsDelete marks invalid any cursor sitting exactly on the
// deleted slot, and decrements cursors positioned after it.
func (t *Tree) fixCursorsDelete(leafID block.ID, i int) {
	for c := t.cursors; c != nil; c = c.next {
		if c.leaf != leafID {
			continue
		}
		switch {
		case c.pos == i:
			c.invalid = true
		case c.pos > i:
			c.pos--
		}
	}
}

// fixCursorsLeafSplit repoints cursors that landed on the right half of
// a just-split leaf, after first applying the same position shift (or
// revalidation) the split's own insertion caused, as in fixCursorsInsert.
func (t *Tree) fixCursorsLeafSplit(oldID, newID block.ID, i int) {
	for c := t.cursors; c != nil; c = c.next {
		if c.leaf != oldID {
			continue
		}
		switch {
		case c.invalid && c.pos == i:
			c.invalid = false
		case c.pos >= i:
			c.pos++
		}
		if c.pos >= block.LHalf {
			c.leaf = newID
			c.pos -= block.LHalf
		}
	}
}

// fixCursorsRotateLeft moves a cursor sitting at the right sibling's
// first slot onto this leaf at newPos (the slot the rotated record
// landed in), and decrements every other cursor left on the sibling.
func (t *Tree) fixCursorsRotateLeft(thisLeaf, sibling block.ID, newPos int) {
	for c := t.cursors; c != nil; c = c.next {
		if c.leaf != sibling {
			continue
		}
		if c.pos == 0 {
			c.leaf = thisLeaf
			c.pos = newPos
		} else {
			c.pos--
		}
	}
}

// fixCursorsRotateRight increments every cursor on this leaf (which just
// had a record unshifted into its front slot) and moves a cursor sitting
// on the left sibling's last slot onto this leaf's slot 0.
func (t *Tree) fixCursorsRotateRight(thisLeaf, sibling block.ID, siblingLastPos int) {
	for c := t.cursors; c != nil; c = c.next {
		switch c.leaf {
		case thisLeaf:
			c.pos++
		case sibling:
			if c.pos == siblingLastPos {
				c.leaf = thisLeaf
				c.pos = 0
			}
		}
	}
}

// fixCursorsMerge repoints every cursor on `from` onto `into`, offsetting
// its position by the count `into` held before the merge.
func (t *Tree) fixCursorsMerge(from, into block.ID, offset int) {
	for c := t.cursors; c != nil; c = c.next {
		if c.leaf == from {
			c.leaf = into
			c.pos += offset
		}
	}
}
