// Package block defines the fixed-size page layout shared by every node in
// the tree: one 4096-byte, 512-word block that is either a leaf or an index
// node depending on how the tree that owns it chooses to read it.
package block

// Order is the maximum number of children an index node may hold; MaxKeys
// is one less, the maximum number of keys in any node. LHalf and RHalf are
// the sizes the two halves of a leaf settle into after a split; a split
// index node keeps LHalf keys and moves RHalf-1 keys to its new sibling.
const (
	Order   = 256
	MaxKeys = Order - 1
	LHalf   = Order / 2
	RHalf   = Order / 2
)

// ID identifies a Block within an Allocator's pool. The zero ID never
// refers to a real block: it is the "no child"/"no next leaf" sentinel.
type ID uint64

// Block is one page-sized node buffer: a one-word header followed by a
// 255-word key array and a 256-word field array, for 512 words (4096 bytes)
// total. In a leaf, the first 255 field words hold values and the last
// holds the ID of the next leaf in key order. In an index node, all 256
// field words hold child IDs.
type Block struct {
	header uint64
	keys   [MaxKeys]uint64
	fields [Order]uint64
}

// NumKeys returns the number of keys currently stored in the block.
func (b *Block) NumKeys() int {
	return int(uint8(b.header))
}

// SetNumKeys sets the block's key count. n must be in 0..255.
func (b *Block) SetNumKeys(n int) {
	b.header = uint64(uint8(n))
}

// Key returns the key at slot i.
func (b *Block) Key(i int) uint64 {
	return b.keys[i]
}

// SetKey writes the key at slot i.
func (b *Block) SetKey(i int, k uint64) {
	b.keys[i] = k
}

// Keys exposes the key array as a slice for bulk copy/shift operations.
// The returned slice aliases the block's storage.
func (b *Block) Keys() []uint64 {
	return b.keys[:]
}

// Value returns the leaf value at slot i.
func (b *Block) Value(i int) uint64 {
	return b.fields[i]
}

// SetValue writes the leaf value at slot i.
func (b *Block) SetValue(i int, v uint64) {
	b.fields[i] = v
}

// Fields exposes the field array (values or child IDs, depending on node
// kind) as a slice for bulk copy/shift operations. The returned slice
// aliases the block's storage.
func (b *Block) Fields() []uint64 {
	return b.fields[:]
}

// Child returns the i'th child ID of an index node.
func (b *Block) Child(i int) ID {
	return ID(b.fields[i])
}

// SetChild writes the i'th child ID of an index node.
func (b *Block) SetChild(i int, id ID) {
	b.fields[i] = uint64(id)
}

// Next returns the ID of the next leaf in key order, or 0 if this is the
// last leaf.
func (b *Block) Next() ID {
	return ID(b.fields[Order-1])
}

// SetNext sets the ID of the next leaf in key order.
func (b *Block) SetNext(id ID) {
	b.fields[Order-1] = uint64(id)
}

// ScanLeaf returns the index of the first key >= k, or NumKeys() if every
// key is smaller.
func (b *Block) ScanLeaf(k uint64) int {
	n := b.NumKeys()
	i := 0
	for i < n && k > b.keys[i] {
		i++
	}
	return i
}

// ScanIndex returns the index of the first key > k, or NumKeys() if every
// key is smaller or equal; the child at that index is the subtree that
// should contain k.
func (b *Block) ScanIndex(k uint64) int {
	n := b.NumKeys()
	i := 0
	for i < n && k >= b.keys[i] {
		i++
	}
	return i
}
