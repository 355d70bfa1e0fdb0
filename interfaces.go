//spellchecker:words bimap
package bimap

// Readable is the read-only surface shared by all map variants.
type Readable[K comparable, V comparable] interface {
	Get(key K) (V, bool, error)
	GetKey(value V) (K, bool, error)
	Has(key K) (bool, error)
	Len() (uint64, error)
	Iterate(f func(K, V) error) error
}

// Mutable is the surface of map variants that accept mutation.
type Mutable[K comparable, V comparable] interface {
	Readable[K, V]

	Set(key K, value V) error
	Delete(key K) error
	Update(pairs []Pair[K, V]) error
}

// OrderedAccess is the surface of map variants that track insertion order.
type OrderedAccess[K comparable, V comparable] interface {
	PopFirst() (Pair[K, V], error)
	PopLast() (Pair[K, V], error)
	MoveToFront(key K) error
	MoveToBack(key K) error
}

// each variant implements exactly the capabilities it supports
var (
	_ Mutable[string, int] = (*Bimap[string, int])(nil)

	_ Mutable[string, int]       = (*Ordered[string, int])(nil)
	_ OrderedAccess[string, int] = (*Ordered[string, int])(nil)

	_ Readable[string, int] = (*Frozen[string, int])(nil)
)
