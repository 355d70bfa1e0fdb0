//spellchecker:words bimap
package bimap

import (
	"fmt"
	"strings"

	"github.com/tkw1536/pkglib/iterator"
)

// Ordered is a [Bimap] that additionally tracks insertion order.
//
// Associations are traversed oldest first. Updating the value of an existing
// key keeps its position; re-pointing an existing value to a new key keeps
// the position of the surviving association and attributes it to the new key.
// Order tracking adds O(1) to every mutation.
//
// Ordered maps are always memory-backed.
// The zero value is not ready for use; use [NewOrdered].
type Ordered[K comparable, V comparable] struct {
	mp Bimap[K, V]

	nodes map[K]*node[K]
	root  node[K] // sentinel; root.next is the oldest association
}

// node is an element of the doubly-linked order ring.
// The value of an association is never stored here; it lives in the indices.
type node[K comparable] struct {
	key  K
	prev *node[K]
	next *node[K]
}

// NewOrdered creates a new Ordered map with the given policy and initial
// associations. Pairs are inserted in the order given, resolving duplicates
// through the same policy as [Ordered.Set].
func NewOrdered[K comparable, V comparable](policy Policy, pairs ...Pair[K, V]) (*Ordered[K, V], error) {
	om := &Ordered[K, V]{}
	if err := om.mp.Reset(&MemoryMap[K, V]{}, policy); err != nil {
		return nil, err
	}
	om.nodes = make(map[K]*node[K])
	om.root.prev = &om.root
	om.root.next = &om.root

	if err := om.Update(pairs); err != nil {
		om.Close()
		return nil, err
	}
	return om, nil
}

// Policy returns the collision policy this map was configured with.
func (om *Ordered[K, V]) Policy() Policy {
	return om.mp.policy
}

// Get returns the value associated with key.
func (om *Ordered[K, V]) Get(key K) (V, bool, error) {
	return om.mp.Get(key)
}

// GetZero is like Get, but when key has no association returns the zero value.
func (om *Ordered[K, V]) GetZero(key K) (V, error) {
	return om.mp.GetZero(key)
}

// GetOr is like Get, but when key has no association returns fallback.
func (om *Ordered[K, V]) GetOr(key K, fallback V) (V, error) {
	return om.mp.GetOr(key, fallback)
}

// GetKey returns the key associated with value.
func (om *Ordered[K, V]) GetKey(value V) (K, bool, error) {
	return om.mp.GetKey(value)
}

// Has checks if key has an association.
func (om *Ordered[K, V]) Has(key K) (bool, error) {
	return om.mp.Has(key)
}

// Len counts the number of associations in this map.
func (om *Ordered[K, V]) Len() (uint64, error) {
	return om.mp.Len()
}

// Set associates key with value, following the same collision rules as
// [Bimap.Set].
//
// A new association is appended at the back of the order. An update of an
// existing key keeps its position. Under [Overwrite], when value survives a
// key change the position of its association is kept and attributed to the
// new key; when both an existing key and an existing value are involved, the
// key's position survives and the evicted association's record is dropped.
func (om *Ordered[K, V]) Set(key K, value V) error {
	if om.mp.frozen.Load() {
		return ErrFrozen
	}

	e, err := put(om.mp.forward, om.mp.reverse, om.mp.policy, key, value)
	if err != nil || e.noop {
		return err
	}

	switch {
	case e.hadKey:
		// update in place, the key keeps its position
		if e.evicted {
			om.unlink(e.evictedKey)
		}
	case e.evicted:
		// the value survived a key change, its position transfers
		om.rename(e.evictedKey, key)
	default:
		om.pushBack(key)
	}
	return nil
}

// Delete removes the association for key.
// When key has no association, fails with [ErrNotFound].
func (om *Ordered[K, V]) Delete(key K) error {
	if err := om.mp.Delete(key); err != nil {
		return err
	}
	om.unlink(key)
	return nil
}

// Update applies each pair via the same rule as [Ordered.Set], in order.
// Like [Bimap.Update] it is not atomic across pairs.
func (om *Ordered[K, V]) Update(pairs []Pair[K, V]) error {
	for _, pair := range pairs {
		if err := om.Set(pair.Key, pair.Value); err != nil {
			return err
		}
	}
	return nil
}

// PopFirst removes and returns the oldest association.
// On an empty map, fails with [ErrEmpty].
func (om *Ordered[K, V]) PopFirst() (Pair[K, V], error) {
	return om.pop(om.root.next)
}

// PopLast removes and returns the newest association.
// On an empty map, fails with [ErrEmpty].
func (om *Ordered[K, V]) PopLast() (Pair[K, V], error) {
	return om.pop(om.root.prev)
}

func (om *Ordered[K, V]) pop(n *node[K]) (pair Pair[K, V], err error) {
	if om.mp.frozen.Load() {
		return pair, ErrFrozen
	}
	if n == &om.root {
		return pair, ErrEmpty
	}

	value, err := om.mp.forward.GetZero(n.key)
	if err != nil {
		return pair, err
	}

	if err := om.mp.Delete(n.key); err != nil {
		return pair, err
	}
	om.unlink(n.key)

	return Pair[K, V]{Key: n.key, Value: value}, nil
}

// MoveToFront relocates the association for key to the front of the order.
// When key has no association, fails with [ErrNotFound].
func (om *Ordered[K, V]) MoveToFront(key K) error {
	return om.move(key, true)
}

// MoveToBack relocates the association for key to the back of the order.
// When key has no association, fails with [ErrNotFound].
func (om *Ordered[K, V]) MoveToBack(key K) error {
	return om.move(key, false)
}

func (om *Ordered[K, V]) move(key K, front bool) error {
	if om.mp.frozen.Load() {
		return ErrFrozen
	}

	n, ok := om.nodes[key]
	if !ok {
		return fmt.Errorf("move %v: %w", key, ErrNotFound)
	}

	n.prev.next = n.next
	n.next.prev = n.prev
	if front {
		om.insertAfter(n, &om.root)
	} else {
		om.insertAfter(n, om.root.prev)
	}
	return nil
}

// Iterate calls f for every association, oldest first.
//
// When any f returns a non-nil error, that error is returned immediately to
// the caller and iteration stops.
func (om *Ordered[K, V]) Iterate(f func(K, V) error) error {
	for n := om.root.next; n != &om.root; n = n.next {
		value, err := om.mp.forward.GetZero(n.key)
		if err != nil {
			return err
		}
		if err := f(n.key, value); err != nil {
			return err
		}
	}
	return nil
}

// Pairs returns an iterator over all associations, oldest first.
// Each call starts a fresh pass.
func (om *Ordered[K, V]) Pairs() iterator.Iterator[Pair[K, V]] {
	return iterator.New(func(sender iterator.Generator[Pair[K, V]]) {
		err := om.Iterate(func(key K, value V) error {
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

// Keys returns an iterator over all keys, oldest first.
func (om *Ordered[K, V]) Keys() iterator.Iterator[K] {
	return iterator.Map(om.Pairs(), func(pair Pair[K, V]) K { return pair.Key })
}

// Values returns an iterator over all values, oldest first.
func (om *Ordered[K, V]) Values() iterator.Iterator[V] {
	return iterator.Map(om.Pairs(), func(pair Pair[K, V]) V { return pair.Value })
}

// Inverse returns a view of this map with key and value roles swapped.
// The view shares storage and order with this map.
func (om *Ordered[K, V]) Inverse() *OrderedInverse[K, V] {
	return &OrderedInverse[K, V]{om: om}
}

// EqualOrdered checks if this map holds the same associations as other,
// in the same traversal order.
func (om *Ordered[K, V]) EqualOrdered(other *Ordered[K, V]) (bool, error) {
	countA, err := om.Len()
	if err != nil {
		return false, err
	}
	countB, err := other.Len()
	if err != nil {
		return false, err
	}
	if countA != countB {
		return false, nil
	}

	a, b := om.root.next, other.root.next
	for a != &om.root {
		if a.key != b.key {
			return false, nil
		}

		valueA, err := om.mp.forward.GetZero(a.key)
		if err != nil {
			return false, err
		}
		valueB, err := other.mp.forward.GetZero(b.key)
		if err != nil {
			return false, err
		}
		if valueA != valueB {
			return false, nil
		}

		a, b = a.next, b.next
	}
	return true, nil
}

// Equal checks if this map holds exactly the associations of other.
//
// When other is itself an [Ordered] map the comparison is order-sensitive,
// like [Ordered.EqualOrdered]. Against any other [Readable] only the set of
// associations is compared.
func (om *Ordered[K, V]) Equal(other Readable[K, V]) (bool, error) {
	if other, ok := other.(*Ordered[K, V]); ok {
		return om.EqualOrdered(other)
	}
	return equalReadable[K, V](om, other)
}

// EqualMap checks if this map holds exactly the associations of m,
// ignoring order.
func (om *Ordered[K, V]) EqualMap(m map[K]V) (bool, error) {
	return om.mp.EqualMap(m)
}

// String formats the associations of this map in traversal order.
// It should not be used in production code.
func (om *Ordered[K, V]) String() string {
	var builder strings.Builder
	builder.WriteString("bimap[")

	first := true
	om.Iterate(func(key K, value V) error {
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

// Close closes the storages related to this map.
func (om *Ordered[K, V]) Close() error {
	om.nodes = nil
	om.root.prev = &om.root
	om.root.next = &om.root
	return om.mp.Close()
}

// pushBack appends a fresh order record for key.
func (om *Ordered[K, V]) pushBack(key K) {
	n := &node[K]{key: key}
	om.nodes[key] = n
	om.insertAfter(n, om.root.prev)
}

// unlink removes the order record for key, if any.
func (om *Ordered[K, V]) unlink(key K) {
	n, ok := om.nodes[key]
	if !ok {
		return
	}
	delete(om.nodes, key)
	n.prev.next = n.next
	n.next.prev = n.prev
	n.prev = nil
	n.next = nil
}

// rename re-attributes the order record of old to new, keeping its position.
func (om *Ordered[K, V]) rename(old, new K) {
	n, ok := om.nodes[old]
	if !ok {
		return
	}
	delete(om.nodes, old)
	n.key = new
	om.nodes[new] = n
}

func (om *Ordered[K, V]) insertAfter(n, at *node[K]) {
	n.prev = at
	n.next = at.next
	at.next.prev = n
	at.next = n
}

// OrderedInverse is a view of an [Ordered] map with key and value roles
// swapped. It shares storage and order with the underlying map; the order
// rules of [Ordered.Set] apply symmetrically.
type OrderedInverse[K comparable, V comparable] struct {
	om *Ordered[K, V]
}

// Forward returns the map this view was derived from.
func (iv *OrderedInverse[K, V]) Forward() *Ordered[K, V] {
	return iv.om
}

// Get returns the key associated with value.
func (iv *OrderedInverse[K, V]) Get(value V) (K, bool, error) {
	return iv.om.mp.reverse.Get(value)
}

// GetZero is like Get, but when value has no association returns the zero key.
func (iv *OrderedInverse[K, V]) GetZero(value V) (K, error) {
	return iv.om.mp.reverse.GetZero(value)
}

// Has checks if value has an association.
func (iv *OrderedInverse[K, V]) Has(value V) (bool, error) {
	return iv.om.mp.reverse.Has(value)
}

// Len counts the number of associations.
func (iv *OrderedInverse[K, V]) Len() (uint64, error) {
	return iv.om.mp.reverse.Count()
}

// Set associates value with key, observing the same policy as the underlying
// map with the roles of the two indices swapped.
//
// When key survives a value change it keeps its position; when value is
// re-pointed from an old key to key, the position of the surviving
// association transfers to key.
func (iv *OrderedInverse[K, V]) Set(value V, key K) error {
	if iv.om.mp.frozen.Load() {
		return ErrFrozen
	}

	e, err := put(iv.om.mp.reverse, iv.om.mp.forward, iv.om.mp.policy, value, key)
	if err != nil || e.noop {
		return err
	}

	switch {
	case e.evicted:
		// key existed and keeps its position
		if e.hadKey {
			iv.om.unlink(e.previousValue)
		}
	case e.hadKey:
		// the value moved from its old key to key, position transfers
		iv.om.rename(e.previousValue, key)
	default:
		iv.om.pushBack(key)
	}
	return nil
}

// Delete removes the association holding value.
// When value has no association, fails with [ErrNotFound].
func (iv *OrderedInverse[K, V]) Delete(value V) error {
	if iv.om.mp.frozen.Load() {
		return ErrFrozen
	}

	key, ok, err := iv.om.mp.reverse.Get(value)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("delete %v: %w", value, ErrNotFound)
	}

	if err := iv.om.mp.Delete(key); err != nil {
		return err
	}
	iv.om.unlink(key)
	return nil
}

// Iterate calls f for every association in traversal order, value first.
func (iv *OrderedInverse[K, V]) Iterate(f func(V, K) error) error {
	return iv.om.Iterate(func(key K, value V) error {
		return f(value, key)
	})
}

// Pairs returns an iterator over all associations in traversal order, with
// Key holding the value side and Value holding the key side.
func (iv *OrderedInverse[K, V]) Pairs() iterator.Iterator[Pair[V, K]] {
	return iterator.New(func(sender iterator.Generator[Pair[V, K]]) {
		err := iv.Iterate(func(value V, key K) error {
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
