//spellchecker:words bimap
package bimap_test

//spellchecker:words testing github bimap stretchr testify assert require
import (
	"fmt"
	"testing"

	"github.com/FAU-CDI/bimap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func orderedPairs(t *testing.T, om *bimap.Ordered[string, int]) []bimap.Pair[string, int] {
	t.Helper()

	var pairs []bimap.Pair[string, int]
	err := om.Iterate(func(key string, value int) error {
		pairs = append(pairs, bimap.Pair[string, int]{Key: key, Value: value})
		return nil
	})
	require.NoError(t, err)
	return pairs
}

func TestOrderedInsertionOrder(t *testing.T) {
	t.Parallel()

	om, err := bimap.NewOrdered(bimap.Strict,
		bimap.Pair[string, int]{Key: "a", Value: 1},
		bimap.Pair[string, int]{Key: "b", Value: 2},
		bimap.Pair[string, int]{Key: "c", Value: 3},
	)
	require.NoError(t, err)
	defer om.Close()

	assert.Equal(t, []bimap.Pair[string, int]{
		{Key: "a", Value: 1},
		{Key: "b", Value: 2},
		{Key: "c", Value: 3},
	}, orderedPairs(t, om))
}

func TestOrderedUpdateKeepsPosition(t *testing.T) {
	t.Parallel()

	om, err := bimap.NewOrdered(bimap.Strict,
		bimap.Pair[string, int]{Key: "a", Value: 1},
		bimap.Pair[string, int]{Key: "b", Value: 2},
		bimap.Pair[string, int]{Key: "c", Value: 3},
	)
	require.NoError(t, err)
	defer om.Close()

	// updating the middle key must not move it
	require.NoError(t, om.Set("b", 20))

	assert.Equal(t, []bimap.Pair[string, int]{
		{Key: "a", Value: 1},
		{Key: "b", Value: 20},
		{Key: "c", Value: 3},
	}, orderedPairs(t, om))
}

func TestOrderedValueRenameKeepsPosition(t *testing.T) {
	t.Parallel()

	om, err := bimap.NewOrdered(bimap.Overwrite,
		bimap.Pair[string, int]{Key: "a", Value: 1},
		bimap.Pair[string, int]{Key: "b", Value: 2},
	)
	require.NoError(t, err)
	defer om.Close()

	// re-point value 1 from key "a" to key "c" through the inverse view:
	// the association keeps its front position under the new key
	require.NoError(t, om.Inverse().Set(1, "c"))

	assert.Equal(t, []bimap.Pair[string, int]{
		{Key: "c", Value: 1},
		{Key: "b", Value: 2},
	}, orderedPairs(t, om))
}

func TestOrderedForwardRenameKeepsPosition(t *testing.T) {
	t.Parallel()

	om, err := bimap.NewOrdered(bimap.Overwrite,
		bimap.Pair[string, int]{Key: "a", Value: 1},
		bimap.Pair[string, int]{Key: "b", Value: 2},
	)
	require.NoError(t, err)
	defer om.Close()

	// the forward equivalent: a fresh key stealing an existing value keeps
	// the position of the surviving association
	require.NoError(t, om.Set("c", 1))

	assert.Equal(t, []bimap.Pair[string, int]{
		{Key: "c", Value: 1},
		{Key: "b", Value: 2},
	}, orderedPairs(t, om))
}

func TestOrderedEvictionDropsRecord(t *testing.T) {
	t.Parallel()

	om, err := bimap.NewOrdered(bimap.Overwrite,
		bimap.Pair[string, int]{Key: "a", Value: 1},
		bimap.Pair[string, int]{Key: "b", Value: 2},
		bimap.Pair[string, int]{Key: "c", Value: 3},
	)
	require.NoError(t, err)
	defer om.Close()

	// "c" takes over value 1: the association (a, 1) dies, "c" keeps its slot
	require.NoError(t, om.Set("c", 1))

	assert.Equal(t, []bimap.Pair[string, int]{
		{Key: "b", Value: 2},
		{Key: "c", Value: 1},
	}, orderedPairs(t, om))
}

func TestOrderedPop(t *testing.T) {
	t.Parallel()

	om, err := bimap.NewOrdered(bimap.Strict,
		bimap.Pair[string, int]{Key: "a", Value: 1},
		bimap.Pair[string, int]{Key: "b", Value: 2},
		bimap.Pair[string, int]{Key: "c", Value: 3},
	)
	require.NoError(t, err)
	defer om.Close()

	first, err := om.PopFirst()
	require.NoError(t, err)
	assert.Equal(t, bimap.Pair[string, int]{Key: "a", Value: 1}, first)

	last, err := om.PopLast()
	require.NoError(t, err)
	assert.Equal(t, bimap.Pair[string, int]{Key: "c", Value: 3}, last)

	// popped associations are gone from both indices
	_, ok, err := om.Get("a")
	require.NoError(t, err)
	assert.False(t, ok)
	_, ok, err = om.GetKey(3)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = om.PopFirst()
	require.NoError(t, err)

	_, err = om.PopFirst()
	assert.ErrorIs(t, err, bimap.ErrEmpty)
	_, err = om.PopLast()
	assert.ErrorIs(t, err, bimap.ErrEmpty)
}

func TestOrderedMove(t *testing.T) {
	t.Parallel()

	om, err := bimap.NewOrdered(bimap.Strict,
		bimap.Pair[string, int]{Key: "a", Value: 1},
		bimap.Pair[string, int]{Key: "b", Value: 2},
		bimap.Pair[string, int]{Key: "c", Value: 3},
	)
	require.NoError(t, err)
	defer om.Close()

	require.NoError(t, om.MoveToFront("c"))
	require.NoError(t, om.MoveToBack("a"))

	assert.Equal(t, []bimap.Pair[string, int]{
		{Key: "c", Value: 3},
		{Key: "b", Value: 2},
		{Key: "a", Value: 1},
	}, orderedPairs(t, om))

	assert.ErrorIs(t, om.MoveToFront("missing"), bimap.ErrNotFound)
	assert.ErrorIs(t, om.MoveToBack("missing"), bimap.ErrNotFound)
}

func TestOrderedEquality(t *testing.T) {
	t.Parallel()

	ab, err := bimap.NewOrdered(bimap.Strict,
		bimap.Pair[int, int]{Key: 1, Value: 1},
		bimap.Pair[int, int]{Key: 2, Value: 2},
	)
	require.NoError(t, err)
	defer ab.Close()

	ba, err := bimap.NewOrdered(bimap.Strict,
		bimap.Pair[int, int]{Key: 2, Value: 2},
		bimap.Pair[int, int]{Key: 1, Value: 1},
	)
	require.NoError(t, err)
	defer ba.Close()

	// comparing two ordered maps is order-sensitive
	equal, err := ab.EqualOrdered(ba)
	require.NoError(t, err)
	assert.False(t, equal)

	equal, err = ab.Equal(ba)
	require.NoError(t, err)
	assert.False(t, equal)

	// against an unordered map only the associations count
	mp, err := bimap.New(bimap.Strict,
		bimap.Pair[int, int]{Key: 2, Value: 2},
		bimap.Pair[int, int]{Key: 1, Value: 1},
	)
	require.NoError(t, err)
	defer mp.Close()

	equal, err = ab.Equal(mp)
	require.NoError(t, err)
	assert.True(t, equal)

	equal, err = ab.EqualMap(map[int]int{1: 1, 2: 2})
	require.NoError(t, err)
	assert.True(t, equal)

	equal, err = ba.EqualMap(map[int]int{1: 1, 2: 2})
	require.NoError(t, err)
	assert.True(t, equal)
}

func TestOrderedDeleteUnlinks(t *testing.T) {
	t.Parallel()

	om, err := bimap.NewOrdered(bimap.Strict,
		bimap.Pair[string, int]{Key: "a", Value: 1},
		bimap.Pair[string, int]{Key: "b", Value: 2},
		bimap.Pair[string, int]{Key: "c", Value: 3},
	)
	require.NoError(t, err)
	defer om.Close()

	require.NoError(t, om.Delete("b"))

	assert.Equal(t, []bimap.Pair[string, int]{
		{Key: "a", Value: 1},
		{Key: "c", Value: 3},
	}, orderedPairs(t, om))

	// reinsertion goes to the back
	require.NoError(t, om.Set("b", 2))
	assert.Equal(t, []bimap.Pair[string, int]{
		{Key: "a", Value: 1},
		{Key: "c", Value: 3},
		{Key: "b", Value: 2},
	}, orderedPairs(t, om))
}

func ExampleOrdered() {
	om, _ := bimap.NewOrdered(bimap.Strict,
		bimap.Pair[string, int]{Key: "one", Value: 1},
		bimap.Pair[string, int]{Key: "two", Value: 2},
		bimap.Pair[string, int]{Key: "three", Value: 3},
	)
	defer om.Close()

	fmt.Println(om)

	om.MoveToFront("three")
	fmt.Println(om)

	pair, _ := om.PopLast()
	fmt.Println(pair.Key, pair.Value)

	// Output: bimap[one:1 two:2 three:3]
	// bimap[three:3 one:1 two:2]
	// two 2
}
