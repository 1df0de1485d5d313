// Package bplus implements an in-memory B+ tree mapping uint64 keys to
// uint64 values: order-256 nodes packed one-per-block, pre-allocated
// splits so insertion is infallible once storage is secured, and forward
// cursors that stay coherent across concurrent structural mutation.
package bplus

import (
	"go.uber.org/zap"

	"bptree/block"
	"bptree/pager"
)

// pathEntry records one index node visited during a descent: the node
// itself, the key count it had at the moment it was visited, and the
// child slot the descent chose to follow.
type pathEntry struct {
	node  block.ID
	nkeys int
	slot  int
}

// Tree is a single B+ tree index. It is not safe for concurrent use by
// multiple goroutines; callers serialize all operations on one Tree, the
// same way the spec's native engine assumes a single thread of mutators.
type Tree struct {
	alloc pager.Allocator
	log   *zap.Logger

	root  block.ID
	depth int

	leafHead block.ID

	records uint64
	blocks  uint64

	path []pathEntry

	cursors    *Cursor
	numCursors uint64
}

// Option configures a Tree at construction time.
type Option func(*Tree)

// WithAllocator overrides the default pool-backed Allocator. Supplying an
// Allocator that can fail lets tests exercise NOMEM handling.
func WithAllocator(a pager.Allocator) Option {
	return func(t *Tree) { t.alloc = a }
}

// WithLogger overrides the default no-op logger.
func WithLogger(log *zap.Logger) Option {
	return func(t *Tree) { t.log = log }
}

// NewTree builds an empty tree: a single, empty leaf as root. It fails
// only if the allocator cannot produce that first block.
func NewTree(opts ...Option) (*Tree, error) {
	t := &Tree{
		log: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.alloc == nil {
		t.alloc = pager.NewPool()
	}

	id, err := t.alloc.Allocate()
	if err != nil {
		return nil, err
	}
	leaf := t.alloc.Get(id)
	leaf.SetNumKeys(0)
	leaf.SetNext(0)

	t.root = id
	t.leafHead = id
	t.depth = 0
	t.blocks = 1

	t.log.Debug("new tree", zap.Uint64("root", uint64(id)))
	return t, nil
}

// Close invalidates every outstanding cursor and frees every block
// reachable from the root back to the tree's allocator.
func (t *Tree) Close() {
	for c := t.cursors; c != nil; {
		next := c.next
		c.tree = nil
		c.next = nil
		c.prev = nil
		c = next
	}
	t.cursors = nil
	t.numCursors = 0
	if t.root != 0 {
		type item struct {
			id    block.ID
			level int
		}
		stack := []item{{t.root, 0}}
		for len(stack) > 0 {
			it := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if it.level < t.depth {
				n := t.get(it.id)
				for i := 0; i <= n.NumKeys(); i++ {
					stack = append(stack, item{n.Child(i), it.level + 1})
				}
			}
			t.freeBlock(it.id)
		}
	}
	t.root = 0
	t.leafHead = 0
	t.path = nil
}

// GetActiveStorage reports the tree's current record count, block count,
// and live cursor count.
func (t *Tree) GetActiveStorage() (records, blocks, cursors uint64) {
	return t.records, t.blocks, t.numCursors
}

// ensurePath makes sure the path buffer can record depth entries without
// reallocating mid-descent.
func (t *Tree) ensurePath() {
	if cap(t.path) < t.depth {
		t.path = make([]pathEntry, t.depth)
	} else {
		t.path = t.path[:t.depth]
	}
}

func (t *Tree) get(id block.ID) *block.Block {
	return t.alloc.Get(id)
}

func (t *Tree) allocBlock() (block.ID, error) {
	id, err := t.alloc.Allocate()
	if err != nil {
		return 0, err
	}
	t.blocks++
	return id, nil
}

func (t *Tree) freeBlock(id block.ID) {
	t.alloc.Free(id)
	t.blocks--
}
