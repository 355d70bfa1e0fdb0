// Package bimap provides Bimap, a bidirectional map.
//
// A Bimap maintains two synchronized indices over the same set of
// associations: a forward index from keys to values and a reverse index from
// values to keys. Both directions resolve in O(1) on the in-memory storage.
//
// A Bimap may be read concurrently; however any operations which change
// internal state are not safe to access concurrently.
package bimap

//spellchecker:words bimap

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"sync/atomic"

	"github.com/tkw1536/pkglib/iterator"
)

// Pair is a single association held by a [Bimap].
type Pair[K comparable, V comparable] struct {
	Key   K
	Value V
}

// Bimap holds a forward and a reverse index over the same associations.
//
// The zero map is not ready for use; it should be initialized using a call
// to [Bimap.Reset], or created using [New] or [FromMap].
type Bimap[K comparable, V comparable] struct {
	frozen atomic.Bool // stores if the map has been frozen

	// mapping from keys to their values
	forward KeyValueStore[K, V]
	// mapping from values back to their keys
	reverse KeyValueStore[V, K]

	policy Policy
}

// New creates a new memory-backed Bimap with the given policy and initial
// associations. Duplicate keys or values among pairs are resolved through the
// same policy as [Bimap.Set], in order.
func New[K comparable, V comparable](policy Policy, pairs ...Pair[K, V]) (*Bimap[K, V], error) {
	mp := &Bimap[K, V]{}
	if err := mp.Reset(&MemoryMap[K, V]{}, policy); err != nil {
		return nil, err
	}
	if err := mp.Update(pairs); err != nil {
		mp.Close()
		return nil, err
	}
	return mp, nil
}

// FromMap creates a new memory-backed Bimap holding the associations of
// source. Iteration order over a Go map is unspecified, so under the [Strict]
// policy a source with duplicate values fails with [ErrValueExists].
func FromMap[K comparable, V comparable](policy Policy, source map[K]V) (*Bimap[K, V], error) {
	pairs := make([]Pair[K, V], 0, len(source))
	for key, value := range source {
		pairs = append(pairs, Pair[K, V]{Key: key, Value: value})
	}
	return New(policy, pairs...)
}

// Reset resets this Bimap to be empty and use the given storage and policy,
// closing any previously opened stores.
func (mp *Bimap[K, V]) Reset(storage Storage[K, V], policy Policy) error {
	if !policy.Valid() {
		return fmt.Errorf("%w: %s", ErrBadPolicy, policy)
	}

	if err := mp.Close(); err != nil {
		return err
	}

	var err error
	var closers []io.Closer

	mp.forward, err = storage.Forward()
	if err != nil {
		return err
	}
	closers = append(closers, mp.forward)

	mp.reverse, err = storage.Reverse()
	if err != nil {
		for _, closer := range closers {
			closer.Close()
		}
		return err
	}

	mp.policy = policy
	mp.frozen.Store(false)
	return nil
}

// Policy returns the collision policy this map was configured with.
func (mp *Bimap[K, V]) Policy() Policy {
	return mp.policy
}

// Get returns the value associated with key.
// The second return value indicates if an association was found.
func (mp *Bimap[K, V]) Get(key K) (V, bool, error) {
	return mp.forward.Get(key)
}

// GetZero is like Get, but when key has no association returns the zero value.
func (mp *Bimap[K, V]) GetZero(key K) (V, error) {
	return mp.forward.GetZero(key)
}

// GetOr is like Get, but when key has no association returns fallback.
func (mp *Bimap[K, V]) GetOr(key K, fallback V) (V, error) {
	value, ok, err := mp.forward.Get(key)
	if err != nil || !ok {
		return fallback, err
	}
	return value, nil
}

// GetKey returns the key associated with value, going through the reverse
// index. The second return value indicates if an association was found.
func (mp *Bimap[K, V]) GetKey(value V) (K, bool, error) {
	return mp.reverse.Get(value)
}

// Has checks if key has an association.
func (mp *Bimap[K, V]) Has(key K) (bool, error) {
	return mp.forward.Has(key)
}

// Set associates key with value in both indices.
//
// Setting a pair that is already present is a no-op. Setting an existing key
// to a new value replaces the old value. When value is already held by a
// different key the configured [Policy] decides: [Strict] fails with
// [ErrValueExists] and leaves the map unchanged, [Overwrite] drops the
// association holding value and proceeds, [Ignore] keeps the existing
// association and silently drops the new pair.
func (mp *Bimap[K, V]) Set(key K, value V) error {
	if mp.frozen.Load() {
		return ErrFrozen
	}
	_, err := put(mp.forward, mp.reverse, mp.policy, key, value)
	return err
}

// Delete removes the association for key from both indices.
// When key has no association, fails with [ErrNotFound].
func (mp *Bimap[K, V]) Delete(key K) error {
	if mp.frozen.Load() {
		return ErrFrozen
	}

	value, ok, err := mp.forward.Get(key)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("delete %v: %w", key, ErrNotFound)
	}

	if err := mp.forward.Delete(key); err != nil {
		return err
	}
	return mp.reverse.Delete(value)
}

// Update applies each pair via the same rule as [Bimap.Set], in order.
//
// Update is not atomic across pairs: when a pair fails, earlier pairs remain
// applied and the error is returned. Only each individual pair's effect on
// the two indices is atomic.
func (mp *Bimap[K, V]) Update(pairs []Pair[K, V]) error {
	for _, pair := range pairs {
		if err := mp.Set(pair.Key, pair.Value); err != nil {
			return err
		}
	}
	return nil
}

// Len counts the number of associations in this map.
func (mp *Bimap[K, V]) Len() (uint64, error) {
	return mp.forward.Count()
}

// Iterate calls f for every association.
//
// When any f returns a non-nil error, that error is returned immediately to
// the caller and iteration stops. There is no guarantee on order.
func (mp *Bimap[K, V]) Iterate(f func(K, V) error) error {
	return mp.forward.Iterate(f)
}

var errAborted = errors.New("bimap: aborted")

// Pairs returns an iterator over all associations.
// Each call starts a fresh pass; there is no guarantee on order.
func (mp *Bimap[K, V]) Pairs() iterator.Iterator[Pair[K, V]] {
	return iterator.New(func(sender iterator.Generator[Pair[K, V]]) {
		err := mp.forward.Iterate(func(key K, value V) error {
			if sender.Yield(Pair[K, V]{Key: key, Value: value}) {
				return errAborted
			}
			return nil
		})

		if err != errAborted {
			sender.YieldError(err)
		}
	})
}

// Keys returns an iterator over all keys.
func (mp *Bimap[K, V]) Keys() iterator.Iterator[K] {
	return iterator.Map(mp.Pairs(), func(pair Pair[K, V]) K { return pair.Key })
}

// Values returns an iterator over all values.
func (mp *Bimap[K, V]) Values() iterator.Iterator[V] {
	return iterator.Map(mp.Pairs(), func(pair Pair[K, V]) V { return pair.Value })
}

// Inverse returns a view of this map with key and value roles swapped.
// The view shares storage with this map; it is a second path into the same
// indices, not a copy.
func (mp *Bimap[K, V]) Inverse() *Inverse[K, V] {
	return &Inverse[K, V]{mp: mp}
}

// Equal checks if this map holds exactly the associations of other,
// ignoring order.
func (mp *Bimap[K, V]) Equal(other Readable[K, V]) (bool, error) {
	return equalReadable[K, V](mp, other)
}

// EqualMap checks if this map holds exactly the associations of m.
func (mp *Bimap[K, V]) EqualMap(m map[K]V) (bool, error) {
	count, err := mp.Len()
	if err != nil {
		return false, err
	}
	if count != uint64(len(m)) {
		return false, nil
	}

	err = mp.forward.Iterate(func(key K, value V) error {
		if have, ok := m[key]; !ok || have != value {
			return errAborted
		}
		return nil
	})
	if err == errAborted {
		return false, nil
	}
	return err == nil, err
}

// String formats the associations of this map for debugging.
// It should not be used in production code.
func (mp *Bimap[K, V]) String() string {
	var builder strings.Builder
	builder.WriteString("bimap[")

	first := true
	mp.forward.Iterate(func(key K, value V) error {
		if !first {
			builder.WriteByte(' ')
		}
		first = false
		fmt.Fprintf(&builder, "%v:%v", key, value)
		return nil
	})

	builder.WriteByte(']')
	return builder.String()
}

// Close closes any storages related to this Bimap.
//
// Calling close multiple times results in err = nil.
func (mp *Bimap[K, V]) Close() error {
	var errors [2]error

	if mp.forward != nil {
		errors[0] = mp.forward.Close()
		mp.forward = nil
	}
	if mp.reverse != nil {
		errors[1] = mp.reverse.Close()
		mp.reverse = nil
	}

	for _, err := range errors {
		if err != nil {
			return err
		}
	}
	return nil
}

// effect reports how a committed put changed the two indices.
type effect[K comparable, V comparable] struct {
	noop bool // the association was already present

	hadKey        bool // key existed and its old value was replaced
	previousValue V

	evicted    bool // a different association holding value was removed
	evictedKey K
}

// put installs the association (key, value) into the given index pair.
//
// The decision is made entirely from reads before either index is written,
// so a rejection under [Strict] leaves both indices untouched.
func put[K comparable, V comparable](forward KeyValueStore[K, V], reverse KeyValueStore[V, K], policy Policy, key K, value V) (e effect[K, V], err error) {
	oldValue, hadKey, err := forward.Get(key)
	if err != nil {
		return e, err
	}
	owner, hasOwner, err := reverse.Get(value)
	if err != nil {
		return e, err
	}

	// the exact pair is already present
	if hadKey && oldValue == value {
		e.noop = true
		return e, nil
	}

	if hasOwner && owner != key {
		switch policy.resolve(true) {
		case reject:
			return e, fmt.Errorf("set %v: %w (value %v held by key %v)", key, ErrValueExists, value, owner)
		case skip:
			e.noop = true
			return e, nil
		case evict:
			e.evicted = true
			e.evictedKey = owner
		}
	}

	// decision made, commit to both indices
	if e.evicted {
		if err := forward.Delete(owner); err != nil {
			return e, err
		}
		if err := reverse.Delete(value); err != nil {
			return e, err
		}
	}
	if hadKey {
		e.hadKey = true
		e.previousValue = oldValue
		if err := reverse.Delete(oldValue); err != nil {
			return e, err
		}
	}

	if err := forward.Set(key, value); err != nil {
		return e, err
	}
	if err := reverse.Set(value, key); err != nil {
		return e, err
	}
	return e, nil
}

// equalReadable checks if a and b hold exactly the same associations,
// ignoring order.
func equalReadable[K comparable, V comparable](a, b Readable[K, V]) (bool, error) {
	countA, err := a.Len()
	if err != nil {
		return false, err
	}
	countB, err := b.Len()
	if err != nil {
		return false, err
	}
	if countA != countB {
		return false, nil
	}

	err = a.Iterate(func(key K, value V) error {
		have, ok, err := b.Get(key)
		if err != nil {
			return err
		}
		if !ok || have != value {
			return errAborted
		}
		return nil
	})
	if err == errAborted {
		return false, nil
	}
	return err == nil, err
}
