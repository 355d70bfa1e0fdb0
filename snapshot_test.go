//spellchecker:words bimap
package bimap_test

//spellchecker:words bytes encoding testing github bimap sgob stretchr testify assert require
import (
	"bytes"
	"encoding/gob"
	"testing"

	"github.com/FAU-CDI/bimap"
	"github.com/FAU-CDI/bimap/pkg/sgob"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotRoundTrip(t *testing.T) {
	t.Parallel()

	mp, err := bimap.New(bimap.Overwrite,
		bimap.Pair[string, int]{Key: "one", Value: 1},
		bimap.Pair[string, int]{Key: "two", Value: 2},
		bimap.Pair[string, int]{Key: "three", Value: 3},
	)
	require.NoError(t, err)
	defer mp.Close()

	var buffer bytes.Buffer
	require.NoError(t, bimap.Write(&buffer, mp))

	got, err := bimap.Read[string, int](&buffer)
	require.NoError(t, err)
	defer got.Close()

	assert.Equal(t, bimap.Overwrite, got.Policy())

	equal, err := got.Equal(mp)
	require.NoError(t, err)
	assert.True(t, equal)
}

func TestSnapshotOrderedRoundTrip(t *testing.T) {
	t.Parallel()

	om, err := bimap.NewOrdered(bimap.Strict,
		bimap.Pair[string, int]{Key: "c", Value: 3},
		bimap.Pair[string, int]{Key: "a", Value: 1},
		bimap.Pair[string, int]{Key: "b", Value: 2},
	)
	require.NoError(t, err)
	defer om.Close()

	var buffer bytes.Buffer
	require.NoError(t, bimap.WriteOrdered(&buffer, om))

	got, err := bimap.ReadOrdered[string, int](&buffer)
	require.NoError(t, err)
	defer got.Close()

	assert.Equal(t, bimap.Strict, got.Policy())

	// the traversal order must match, not just the content
	equal, err := got.EqualOrdered(om)
	require.NoError(t, err)
	assert.True(t, equal)
}

func TestSnapshotEmpty(t *testing.T) {
	t.Parallel()

	mp, err := bimap.New[string, string](bimap.Strict)
	require.NoError(t, err)
	defer mp.Close()

	var buffer bytes.Buffer
	require.NoError(t, bimap.Write(&buffer, mp))

	got, err := bimap.Read[string, string](&buffer)
	require.NoError(t, err)
	defer got.Close()

	count, err := got.Len()
	require.NoError(t, err)
	assert.Equal(t, uint64(0), count)
}

func TestSnapshotBadInput(t *testing.T) {
	t.Parallel()

	_, err := bimap.Read[string, string](bytes.NewReader([]byte("not a snapshot")))
	assert.Error(t, err)
}

// snapshotHeader mirrors the header written in front of every snapshot.
// gob matches struct fields by name, so encoding it produces a header the
// reader accepts as its own.
type snapshotHeader struct {
	Version int
	Policy  bimap.Policy
	Ordered bool
	Count   uint64
}

func TestSnapshotVersionMismatch(t *testing.T) {
	t.Parallel()

	var buffer bytes.Buffer
	encoder := gob.NewEncoder(&buffer)
	require.NoError(t, encoder.Encode(snapshotHeader{
		Version: bimap.SnapshotVersion + 1,
		Policy:  bimap.Strict,
	}))

	_, err := bimap.Read[string, string](&buffer)
	assert.ErrorIs(t, err, bimap.ErrSnapshotVersion)
}

func TestSnapshotBadPolicy(t *testing.T) {
	t.Parallel()

	var buffer bytes.Buffer
	encoder := gob.NewEncoder(&buffer)
	require.NoError(t, encoder.Encode(snapshotHeader{
		Version: bimap.SnapshotVersion,
		Policy:  bimap.Policy(42),
	}))

	_, err := bimap.Read[string, string](&buffer)
	assert.ErrorIs(t, err, bimap.ErrBadPolicy)
}

func TestSnapshotCountMismatch(t *testing.T) {
	t.Parallel()

	// the header declares five associations, the stream carries one
	var buffer bytes.Buffer
	encoder := gob.NewEncoder(&buffer)
	require.NoError(t, encoder.Encode(snapshotHeader{
		Version: bimap.SnapshotVersion,
		Policy:  bimap.Strict,
		Count:   5,
	}))
	require.NoError(t, encoder.Encode(uint64(1)))
	require.NoError(t, encoder.Encode(bimap.Pair[string, string]{Key: "a", Value: "b"}))

	_, err := bimap.Read[string, string](&buffer)
	assert.ErrorIs(t, err, sgob.ErrCount)
}
