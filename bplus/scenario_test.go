package bplus

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"bptree/block"
)

// S1: a handful of inserts round-trip through find and enumerate.
func TestScenarioBasicInsertFindEnumerate(t *testing.T) {
	tree, err := NewTree()
	require.NoError(t, err)

	require.NoError(t, tree.Insert(1, 10))
	require.NoError(t, tree.Insert(2, 20))
	require.NoError(t, tree.Insert(3, 30))

	v, err := tree.Find(2)
	require.NoError(t, err)
	require.Equal(t, uint64(20), v)

	var got [][2]uint64
	tree.Enumerate(func(k, v uint64) { got = append(got, [2]uint64{k, v}) })
	require.Equal(t, [][2]uint64{{1, 10}, {2, 20}, {3, 30}}, got)
}

// S2: enough inserts to force at least one split; depth grows and a key
// beyond the inserted range is reported missing.
func TestScenarioSplitGrowsDepth(t *testing.T) {
	tree, err := NewTree()
	require.NoError(t, err)

	for k := uint64(1); k <= 256; k++ {
		require.NoError(t, tree.Insert(k, k))
	}

	require.GreaterOrEqual(t, tree.depth, 1)

	v, err := tree.Find(128)
	require.NoError(t, err)
	require.Equal(t, uint64(128), v)

	_, err = tree.Find(257)
	require.ErrorIs(t, err, ErrNotFound)
}

// S3: deleting every even key out of a larger tree leaves exactly the
// odd keys, in order.
func TestScenarioDeleteEvenKeys(t *testing.T) {
	tree, err := NewTree()
	require.NoError(t, err)

	for k := uint64(1); k <= 1000; k++ {
		require.NoError(t, tree.Insert(k, k))
	}
	for k := uint64(2); k <= 1000; k += 2 {
		require.NoError(t, tree.Delete(k))
	}

	var got []uint64
	tree.Enumerate(func(k, v uint64) { got = append(got, k) })

	require.Len(t, got, 500)
	for i, k := range got {
		require.Equal(t, uint64(2*i+1), k)
	}

	records, _, _ := tree.GetActiveStorage()
	require.Equal(t, uint64(500), records)
}

// S4: a cursor survives the deletion of the record it was on.
func TestScenarioCursorSurvivesDelete(t *testing.T) {
	tree, err := NewTree()
	require.NoError(t, err)

	for k := uint64(1); k <= 300; k++ {
		require.NoError(t, tree.Insert(k, k))
	}

	c := tree.FirstRecord()
	require.NoError(t, tree.Delete(1))

	_, _, err = c.GetRecord()
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, c.NextRecord())
	k, v, err := c.GetRecord()
	require.NoError(t, err)
	require.Equal(t, uint64(2), k)
	require.Equal(t, uint64(2), v)
}

// S5: inserting the same key twice updates the value without adding a
// second record.
func TestScenarioUpsert(t *testing.T) {
	tree, err := NewTree()
	require.NoError(t, err)

	require.NoError(t, tree.Insert(5, 50))
	require.NoError(t, tree.Insert(5, 500))

	v, err := tree.Find(5)
	require.NoError(t, err)
	require.Equal(t, uint64(500), v)

	records, _, _ := tree.GetActiveStorage()
	require.Equal(t, uint64(1), records)
}

// S6: deleting every key, in a random order, collapses the tree back to
// a single empty leaf as root.
func TestScenarioDeleteAllCollapsesToSingleLeaf(t *testing.T) {
	tree, err := NewTree()
	require.NoError(t, err)

	keys := make([]uint64, 400)
	for i := range keys {
		keys[i] = uint64(i + 1)
		require.NoError(t, tree.Insert(keys[i], keys[i]))
	}

	rng := rand.New(rand.NewSource(1))
	rng.Shuffle(len(keys), func(i, j int) { keys[i], keys[j] = keys[j], keys[i] })

	for _, k := range keys {
		require.NoError(t, tree.Delete(k))
	}

	records, blocks, _ := tree.GetActiveStorage()
	require.Equal(t, uint64(0), records)
	require.Equal(t, uint64(0), depthOf(tree))
	require.Equal(t, uint64(1), blocks)
	require.Equal(t, tree.root, tree.leafHead)
	require.Equal(t, block.ID(0), tree.get(tree.leafHead).Next())
}

func depthOf(t *Tree) uint64 { return uint64(t.depth) }
