//spellchecker:words bimap sgob
package bimap

import (
	"encoding/gob"
	"errors"
	"fmt"
	"io"

	"github.com/FAU-CDI/bimap/pkg/sgob"
)

// SnapshotVersion is the version of the snapshot format written by this
// package. Snapshots carrying a different version are rejected on read.
const SnapshotVersion = 1

// ErrSnapshotVersion is returned by the Read functions for snapshots written
// by an incompatible version of this package.
var ErrSnapshotVersion = errors.New("unsupported snapshot version")

// snapshotHeader precedes the streamed pairs of a snapshot.
type snapshotHeader struct {
	Version int
	Policy  Policy
	Ordered bool
	Count   uint64
}

// Write writes a snapshot of mp to w.
// The snapshot carries the policy and all associations, and can be read back
// with [Read].
func Write[K comparable, V comparable](w io.Writer, mp *Bimap[K, V]) error {
	return write[K, V](w, mp, mp.policy, false)
}

// WriteOrdered writes a snapshot of om to w, preserving traversal order.
// The snapshot can be read back with [ReadOrdered].
func WriteOrdered[K comparable, V comparable](w io.Writer, om *Ordered[K, V]) error {
	return write[K, V](w, om, om.mp.policy, true)
}

func write[K comparable, V comparable](w io.Writer, source Readable[K, V], policy Policy, ordered bool) error {
	count, err := source.Len()
	if err != nil {
		return err
	}

	encoder := gob.NewEncoder(w)
	header := snapshotHeader{
		Version: SnapshotVersion,
		Policy:  policy,
		Ordered: ordered,
		Count:   count,
	}
	if err := encoder.Encode(header); err != nil {
		return err
	}

	return sgob.EncodeSeq(encoder, count, func(yield func(Pair[K, V]) error) error {
		return source.Iterate(func(key K, value V) error {
			return yield(Pair[K, V]{Key: key, Value: value})
		})
	})
}

// Read reconstructs a memory-backed Bimap from a snapshot written by [Write].
//
// The reconstructed map uses the policy recorded in the snapshot; pairs are
// replayed through [Bimap.Update], so the result is equal to the source map.
func Read[K comparable, V comparable](r io.Reader) (*Bimap[K, V], error) {
	decoder := gob.NewDecoder(r)

	header, err := readHeader(decoder)
	if err != nil {
		return nil, err
	}

	mp := &Bimap[K, V]{}
	if err := mp.Reset(&MemoryMap[K, V]{}, header.Policy); err != nil {
		return nil, err
	}

	if err := readPairs[K, V](decoder, header.Count, mp); err != nil {
		mp.Close()
		return nil, err
	}
	return mp, nil
}

// ReadOrdered reconstructs an Ordered map from a snapshot written by
// [WriteOrdered], restoring the traversal order of the source.
func ReadOrdered[K comparable, V comparable](r io.Reader) (*Ordered[K, V], error) {
	decoder := gob.NewDecoder(r)

	header, err := readHeader(decoder)
	if err != nil {
		return nil, err
	}

	om, err := NewOrdered[K, V](header.Policy)
	if err != nil {
		return nil, err
	}

	if err := readPairs[K, V](decoder, header.Count, om); err != nil {
		om.Close()
		return nil, err
	}
	return om, nil
}

func readHeader(decoder *gob.Decoder) (header snapshotHeader, err error) {
	if err := decoder.Decode(&header); err != nil {
		return header, err
	}
	if header.Version != SnapshotVersion {
		return header, fmt.Errorf("%w: %d", ErrSnapshotVersion, header.Version)
	}
	if !header.Policy.Valid() {
		return header, fmt.Errorf("%w: %s", ErrBadPolicy, header.Policy)
	}
	return header, nil
}

func readPairs[K comparable, V comparable](decoder *gob.Decoder, count uint64, dest Mutable[K, V]) error {
	var seen uint64
	err := sgob.DecodeSeq(decoder, func(pair Pair[K, V]) error {
		seen++
		return dest.Set(pair.Key, pair.Value)
	})
	if err != nil {
		return err
	}

	// the header count and the stream count must agree
	if seen != count {
		return fmt.Errorf("%w: header declares %d associations, stream carries %d", sgob.ErrCount, count, seen)
	}
	return nil
}
