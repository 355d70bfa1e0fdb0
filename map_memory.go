//spellchecker:words bimap
package bimap

// MemoryMap holds both indices in memory.
// It implements [Storage].
//
// The zero value is ready for use.
type MemoryMap[K comparable, V comparable] struct {
	FStorage Memory[K, V]
	RStorage Memory[V, K]
}

func (me *MemoryMap[K, V]) Forward() (KeyValueStore[K, V], error) {
	if me.FStorage == nil {
		me.FStorage = make(Memory[K, V])
	}
	return &me.FStorage, nil
}

func (me *MemoryMap[K, V]) Reverse() (KeyValueStore[V, K], error) {
	if me.RStorage == nil {
		me.RStorage = make(Memory[V, K])
	}
	return &me.RStorage, nil
}

// Memory implements KeyValueStore as an in-memory map.
// Operations on a Memory store never return a non-nil error.
type Memory[Key comparable, Value any] map[Key]Value

func (ims Memory[Key, Value]) Set(key Key, value Value) error {
	ims[key] = value
	return nil
}

// Get returns the given value if it exists.
func (ims Memory[Key, Value]) Get(key Key) (Value, bool, error) {
	value, ok := ims[key]
	return value, ok, nil
}

// GetZero returns the value associated with Key, or the zero value otherwise.
func (ims Memory[Key, Value]) GetZero(key Key) (Value, error) {
	return ims[key], nil
}

func (ims Memory[Key, Value]) Has(key Key) (bool, error) {
	_, ok := ims[key]
	return ok, nil
}

// Delete deletes the given key from this storage.
func (ims Memory[Key, Value]) Delete(key Key) error {
	delete(ims, key)
	return nil
}

// Iterate calls f for all entries in Storage.
// there is no guarantee on order.
func (ims Memory[Key, Value]) Iterate(f func(Key, Value) error) error {
	for key, value := range ims {
		if err := f(key, value); err != nil {
			return err
		}
	}
	return nil
}

// Close closes this store, deleting all values.
func (ims *Memory[Key, Value]) Close() error {
	*ims = nil
	return nil
}

func (ims *Memory[Key, Value]) Count() (uint64, error) {
	return uint64(len(*ims)), nil
}
