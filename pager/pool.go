package pager

import "bptree/block"

// Pool is the default Allocator: a growable slice of block pointers plus
// a freelist of reclaimed slots. Blocks are allocated individually on the
// heap and addressed through this slice, so growing the slice (and
// relocating its backing array) never invalidates a *block.Block a caller
// already obtained from Get. ID 0 is never issued, so it can serve as the
// "no block" sentinel used throughout block.Block's child and next
// fields.
type Pool struct {
	blocks   []*block.Block
	freeList []block.ID
}

// NewPool returns an empty Pool.
func NewPool() *Pool {
	return &Pool{
		// Slot 0 is reserved as the sentinel ID; seed it so real IDs start
		// at 1 without special-casing the slice index math below.
		blocks: make([]*block.Block, 1),
	}
}

// Allocate reserves a fresh, zeroed block and returns its ID.
func (p *Pool) Allocate() (block.ID, error) {
	if n := len(p.freeList); n > 0 {
		id := p.freeList[n-1]
		p.freeList = p.freeList[:n-1]
		*p.blocks[id] = block.Block{}
		return id, nil
	}
	p.blocks = append(p.blocks, &block.Block{})
	return block.ID(len(p.blocks) - 1), nil
}

// Free releases the block with the given ID back to the pool.
func (p *Pool) Free(id block.ID) {
	p.freeList = append(p.freeList, id)
}

// Get resolves an ID to its live block. The returned pointer stays valid
// for the block's lifetime, including across later Allocate calls.
func (p *Pool) Get(id block.ID) *block.Block {
	if id == 0 || int(id) >= len(p.blocks) {
		panic("pager: invalid block ID")
	}
	return p.blocks[id]
}
