package bplus

import "bptree/block"

// splitReserve holds every block an insert's worst case might need,
// claimed before any tree pointer is touched so the mutation itself
// becomes infallible.
type splitReserve struct {
	leaf block.ID

	// indexBlocks[level] is non-zero if the ancestor recorded at that
	// path level is full and will need to split.
	indexBlocks []block.ID

	// root is non-zero if propagation may need to grow a new root.
	root block.ID
}

// preallocateSplits walks the recorded path bottom-up, claiming one new
// index block for each full ancestor until it reaches the first ancestor
// that is not full (the split cascade stops there), one new root block if
// every ancestor up to the root is full or the tree has no index layer
// yet, and finally one new leaf block. If any claim fails, every block claimed so far is released and
// ErrNoMem is returned; the tree is left untouched.
func (t *Tree) preallocateSplits() (*splitReserve, error) {
	r := &splitReserve{}
	if t.depth > 0 {
		r.indexBlocks = make([]block.ID, t.depth)
	}

	var claimed []block.ID
	fail := func() (*splitReserve, error) {
		for _, id := range claimed {
			t.freeBlock(id)
		}
		return nil, ErrNoMem
	}

	needRoot := t.depth == 0
	for level := t.depth - 1; level >= 0; level-- {
		if t.path[level].nkeys != block.MaxKeys {
			break
		}
		id, err := t.allocBlock()
		if err != nil {
			return fail()
		}
		claimed = append(claimed, id)
		r.indexBlocks[level] = id
		if level == 0 {
			needRoot = true
		}
	}

	if needRoot {
		id, err := t.allocBlock()
		if err != nil {
			return fail()
		}
		claimed = append(claimed, id)
		r.root = id
	}

	id, err := t.allocBlock()
	if err != nil {
		return fail()
	}
	claimed = append(claimed, id)
	r.leaf = id

	return r, nil
}
