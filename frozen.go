//spellchecker:words bimap
package bimap

import (
	"encoding/json"
	"hash/fnv"

	"github.com/tkw1536/pkglib/iterator"
)

// Frozen wraps a fully constructed map and rejects further mutation.
//
// Freezing marks the underlying engine as frozen, so the wrapped map can no
// longer change through any path, including previously created inverse views.
// A Frozen map exposes a content-derived hash: two frozen maps holding the
// same associations hash equally, and the hash never changes for the lifetime
// of the wrapper.
type Frozen[K comparable, V comparable] struct {
	mp *Bimap[K, V]   // exactly one of mp, om is set
	om *Ordered[K, V]

	hash uint64
}

// Freeze marks this map as frozen and wraps it.
// Any later mutating call on the map or the wrapper fails with [ErrFrozen].
// Freezing an already frozen map fails with [ErrFrozen]; any other failure
// leaves the map mutable.
func (mp *Bimap[K, V]) Freeze() (*Frozen[K, V], error) {
	if mp.frozen.Swap(true) {
		return nil, ErrFrozen
	}

	fz := &Frozen[K, V]{mp: mp}

	var err error
	fz.hash, err = hashUnordered[K, V](mp)
	if err != nil {
		mp.frozen.Store(false)
		return nil, err
	}
	return fz, nil
}

// Freeze marks this map as frozen and wraps it.
// The hash of a frozen ordered map is sensitive to traversal order.
func (om *Ordered[K, V]) Freeze() (*Frozen[K, V], error) {
	if om.mp.frozen.Swap(true) {
		return nil, ErrFrozen
	}

	fz := &Frozen[K, V]{om: om}

	var err error
	fz.hash, err = hashOrdered[K, V](om)
	if err != nil {
		om.mp.frozen.Store(false)
		return nil, err
	}
	return fz, nil
}

// NewFrozen creates a frozen memory-backed map from the given associations.
// Duplicates among pairs are resolved through policy, like [New].
func NewFrozen[K comparable, V comparable](policy Policy, pairs ...Pair[K, V]) (*Frozen[K, V], error) {
	mp, err := New(policy, pairs...)
	if err != nil {
		return nil, err
	}
	return mp.Freeze()
}

// NewFrozenOrdered creates a frozen ordered map from the given associations,
// preserving their order.
func NewFrozenOrdered[K comparable, V comparable](policy Policy, pairs ...Pair[K, V]) (*Frozen[K, V], error) {
	om, err := NewOrdered(policy, pairs...)
	if err != nil {
		return nil, err
	}
	return om.Freeze()
}

// Hash returns the content-derived hash of this map.
// It is stable for the lifetime of the wrapper.
func (fz *Frozen[K, V]) Hash() uint64 {
	return fz.hash
}

// Ordered reports whether this wrapper preserves traversal order.
func (fz *Frozen[K, V]) Ordered() bool {
	return fz.om != nil
}

// Get returns the value associated with key.
func (fz *Frozen[K, V]) Get(key K) (V, bool, error) {
	if fz.om != nil {
		return fz.om.Get(key)
	}
	return fz.mp.Get(key)
}

// GetZero is like Get, but when key has no association returns the zero value.
func (fz *Frozen[K, V]) GetZero(key K) (V, error) {
	if fz.om != nil {
		return fz.om.GetZero(key)
	}
	return fz.mp.GetZero(key)
}

// GetKey returns the key associated with value.
func (fz *Frozen[K, V]) GetKey(value V) (K, bool, error) {
	if fz.om != nil {
		return fz.om.GetKey(value)
	}
	return fz.mp.GetKey(value)
}

// Has checks if key has an association.
func (fz *Frozen[K, V]) Has(key K) (bool, error) {
	if fz.om != nil {
		return fz.om.Has(key)
	}
	return fz.mp.Has(key)
}

// Len counts the number of associations.
func (fz *Frozen[K, V]) Len() (uint64, error) {
	if fz.om != nil {
		return fz.om.Len()
	}
	return fz.mp.Len()
}

// Iterate calls f for every association.
// On a frozen ordered map associations are visited oldest first.
func (fz *Frozen[K, V]) Iterate(f func(K, V) error) error {
	if fz.om != nil {
		return fz.om.Iterate(f)
	}
	return fz.mp.Iterate(f)
}

// Pairs returns an iterator over all associations.
// Each call starts a fresh pass.
func (fz *Frozen[K, V]) Pairs() iterator.Iterator[Pair[K, V]] {
	if fz.om != nil {
		return fz.om.Pairs()
	}
	return fz.mp.Pairs()
}

// Equal checks if this map holds exactly the associations of other,
// ignoring order.
func (fz *Frozen[K, V]) Equal(other Readable[K, V]) (bool, error) {
	return equalReadable[K, V](fz, other)
}

// EqualMap checks if this map holds exactly the associations of m.
func (fz *Frozen[K, V]) EqualMap(m map[K]V) (bool, error) {
	if fz.om != nil {
		return fz.om.EqualMap(m)
	}
	return fz.mp.EqualMap(m)
}

// String formats the associations of this map for debugging.
func (fz *Frozen[K, V]) String() string {
	if fz.om != nil {
		return fz.om.String()
	}
	return fz.mp.String()
}

// Set always fails with [ErrFrozen].
func (fz *Frozen[K, V]) Set(K, V) error { return ErrFrozen }

// Delete always fails with [ErrFrozen].
func (fz *Frozen[K, V]) Delete(K) error { return ErrFrozen }

// Update always fails with [ErrFrozen].
func (fz *Frozen[K, V]) Update([]Pair[K, V]) error { return ErrFrozen }

// PopFirst always fails with [ErrFrozen].
func (fz *Frozen[K, V]) PopFirst() (pair Pair[K, V], err error) { return pair, ErrFrozen }

// PopLast always fails with [ErrFrozen].
func (fz *Frozen[K, V]) PopLast() (pair Pair[K, V], err error) { return pair, ErrFrozen }

// MoveToFront always fails with [ErrFrozen].
func (fz *Frozen[K, V]) MoveToFront(K) error { return ErrFrozen }

// MoveToBack always fails with [ErrFrozen].
func (fz *Frozen[K, V]) MoveToBack(K) error { return ErrFrozen }

// hashPair derives a stable hash for a single association from the json
// encoding of its key and value.
func hashPair[K comparable, V comparable](key K, value V) (uint64, error) {
	keyB, err := json.Marshal(key)
	if err != nil {
		return 0, err
	}
	valueB, err := json.Marshal(value)
	if err != nil {
		return 0, err
	}

	h := fnv.New64a()
	h.Write(keyB)
	h.Write([]byte{0})
	h.Write(valueB)
	return h.Sum64(), nil
}

// hashUnordered combines pair hashes with xor, so the result does not depend
// on iteration order.
func hashUnordered[K comparable, V comparable](source Readable[K, V]) (hash uint64, err error) {
	err = source.Iterate(func(key K, value V) error {
		h, err := hashPair(key, value)
		if err != nil {
			return err
		}
		hash ^= h
		return nil
	})
	return hash, err
}

// hashOrdered chains pair hashes, so the result depends on traversal order.
func hashOrdered[K comparable, V comparable](source Readable[K, V]) (hash uint64, err error) {
	hash = 1
	err = source.Iterate(func(key K, value V) error {
		h, err := hashPair(key, value)
		if err != nil {
			return err
		}
		hash = hash*31 + h
		return nil
	})
	return hash, err
}
