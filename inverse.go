//spellchecker:words bimap
package bimap

import (
	"fmt"

	"github.com/tkw1536/pkglib/iterator"
)

// Inverse is a view of a [Bimap] with key and value roles swapped: reads
// consult the reverse index, writes run the same collision-checked put
// against the swapped index pair.
//
// An Inverse holds no storage of its own. Mutating through the view and
// mutating through the map itself are two paths into the same engine and
// observe identical invariants.
type Inverse[K comparable, V comparable] struct {
	mp *Bimap[K, V]
}

// Forward returns the map this view was derived from.
func (iv *Inverse[K, V]) Forward() *Bimap[K, V] {
	return iv.mp
}

// Get returns the key associated with value.
// The second return value indicates if an association was found.
func (iv *Inverse[K, V]) Get(value V) (K, bool, error) {
	return iv.mp.reverse.Get(value)
}

// GetZero is like Get, but when value has no association returns the zero key.
func (iv *Inverse[K, V]) GetZero(value V) (K, error) {
	return iv.mp.reverse.GetZero(value)
}

// Has checks if value has an association.
func (iv *Inverse[K, V]) Has(value V) (bool, error) {
	return iv.mp.reverse.Has(value)
}

// Set associates value with key, observing the same policy as the underlying
// map with the roles of the two indices swapped: a collision on value simply
// re-points it, a collision on key is resolved by the policy.
func (iv *Inverse[K, V]) Set(value V, key K) error {
	if iv.mp.frozen.Load() {
		return ErrFrozen
	}
	_, err := put(iv.mp.reverse, iv.mp.forward, iv.mp.policy, value, key)
	return err
}

// Delete removes the association holding value from both indices.
// When value has no association, fails with [ErrNotFound].
func (iv *Inverse[K, V]) Delete(value V) error {
	if iv.mp.frozen.Load() {
		return ErrFrozen
	}

	key, ok, err := iv.mp.reverse.Get(value)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("delete %v: %w", value, ErrNotFound)
	}

	if err := iv.mp.reverse.Delete(value); err != nil {
		return err
	}
	return iv.mp.forward.Delete(key)
}

// Len counts the number of associations.
func (iv *Inverse[K, V]) Len() (uint64, error) {
	return iv.mp.reverse.Count()
}

// Iterate calls f for every association, value first.
func (iv *Inverse[K, V]) Iterate(f func(V, K) error) error {
	return iv.mp.reverse.Iterate(f)
}

// Pairs returns an iterator over all associations, with Key holding the value
// side and Value holding the key side.
// Each call starts a fresh pass; there is no guarantee on order.
func (iv *Inverse[K, V]) Pairs() iterator.Iterator[Pair[V, K]] {
	return iterator.New(func(sender iterator.Generator[Pair[V, K]]) {
		err := iv.mp.reverse.Iterate(func(value V, key K) error {
			if sender.Yield(Pair[V, K]{Key: value, Value: key}) {
				return errAborted
			}
			return nil
		})

		if err != errAborted {
			sender.YieldError(err)
		}
	})
}
