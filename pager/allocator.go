// Package pager manages the pool of block.Block storage backing a tree:
// allocating new blocks, freeing them for reuse, and resolving IDs back to
// live blocks.
package pager

import (
	"errors"

	"bptree/block"
)

// ErrNoMem is returned by an Allocator when it cannot produce a new block.
// The default Pool never returns it on its own; it exists so tests can
// swap in an Allocator that fails on demand, the way the spec's native
// allocator can run out of backing memory.
var ErrNoMem = errors.New("pager: no memory")

// Allocator hands out and reclaims block.Block storage. Implementations
// need not be safe for concurrent use; a tree drives its allocator from a
// single goroutine.
type Allocator interface {
	// Allocate reserves a fresh, zeroed block and returns its ID.
	Allocate() (block.ID, error)

	// Free releases the block with the given ID back to the allocator.
	// The ID must not be used again until a later Allocate reissues it.
	Free(id block.ID)

	// Get resolves an ID to its live block. It panics if id is zero or was
	// never returned by Allocate, since that indicates a bug in the
	// caller's bookkeeping rather than a recoverable condition. An ID that
	// has since been freed is not detected: Pool returns its block, which a
	// later Allocate may reissue.
	Get(id block.ID) *block.Block
}
