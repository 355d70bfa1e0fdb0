//spellchecker:words bimap leveldb
package bimap

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/syndtr/goleveldb/leveldb"
)

// DiskMap holds both indices inside leveldb databases below Path.
// It implements [Storage].
//
// By default keys and values are encoded as json; the Marshal and Unmarshal
// fields may be set to override the codec for the key side, the value side,
// or both.
type DiskMap[K comparable, V comparable] struct {
	Path string

	MarshalKey     func(key K) ([]byte, error)
	UnmarshalKey   func(dest *K, src []byte) error
	MarshalValue   func(value V) ([]byte, error)
	UnmarshalValue func(dest *V, src []byte) error
}

func (dm DiskMap[K, V]) Forward() (KeyValueStore[K, V], error) {
	forward := filepath.Join(dm.Path, "forward.leveldb")

	ds, err := NewDiskStorage[K, V](forward)
	if err != nil {
		return nil, err
	}

	if dm.MarshalKey != nil && dm.UnmarshalKey != nil {
		ds.MarshalKey = dm.MarshalKey
		ds.UnmarshalKey = dm.UnmarshalKey
	}
	if dm.MarshalValue != nil && dm.UnmarshalValue != nil {
		ds.MarshalValue = dm.MarshalValue
		ds.UnmarshalValue = dm.UnmarshalValue
	}

	return ds, nil
}

func (dm DiskMap[K, V]) Reverse() (KeyValueStore[V, K], error) {
	reverse := filepath.Join(dm.Path, "reverse.leveldb")

	ds, err := NewDiskStorage[V, K](reverse)
	if err != nil {
		return nil, err
	}

	if dm.MarshalValue != nil && dm.UnmarshalValue != nil {
		ds.MarshalKey = dm.MarshalValue
		ds.UnmarshalKey = dm.UnmarshalValue
	}
	if dm.MarshalKey != nil && dm.UnmarshalKey != nil {
		ds.MarshalValue = dm.MarshalKey
		ds.UnmarshalValue = dm.UnmarshalKey
	}

	return ds, nil
}

// NewDiskStorage creates a new disk-based storage with the given options.
// If the filepath already exists, it is deleted.
func NewDiskStorage[Key comparable, Value any](path string) (*DiskStorage[Key, Value], error) {
	// If the path already exists, wipe it
	_, err := os.Stat(path)
	if err == nil {
		if err := os.RemoveAll(path); err != nil {
			return nil, err
		}
	}

	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, err
	}

	storage := &DiskStorage[Key, Value]{
		DB: db,

		MarshalKey: func(key Key) ([]byte, error) {
			return json.Marshal(key)
		},
		UnmarshalKey: func(dest *Key, src []byte) error {
			return json.Unmarshal(src, dest)
		},
		MarshalValue: func(value Value) ([]byte, error) {
			return json.Marshal(value)
		},
		UnmarshalValue: func(dest *Value, src []byte) error {
			return json.Unmarshal(src, dest)
		},
	}
	return storage, nil
}

// DiskStorage implements KeyValueStore on top of a leveldb database.
type DiskStorage[Key comparable, Value any] struct {
	DB *leveldb.DB

	MarshalKey     func(key Key) ([]byte, error)
	UnmarshalKey   func(dest *Key, src []byte) error
	MarshalValue   func(value Value) ([]byte, error)
	UnmarshalValue func(dest *Value, src []byte) error
}

func (ds *DiskStorage[Key, Value]) Set(key Key, value Value) error {
	keyB, err := ds.MarshalKey(key)
	if err != nil {
		return err
	}
	valueB, err := ds.MarshalValue(value)
	if err != nil {
		return err
	}

	return ds.DB.Put(keyB, valueB, nil)
}

// Get returns the given value if it exists
func (ds *DiskStorage[Key, Value]) Get(key Key) (v Value, b bool, err error) {
	keyB, err := ds.MarshalKey(key)
	if err != nil {
		return v, b, err
	}

	valueB, err := ds.DB.Get(keyB, nil)
	if err == leveldb.ErrNotFound {
		return v, false, nil
	}
	if err != nil {
		return v, b, err
	}

	if err := ds.UnmarshalValue(&v, valueB); err != nil {
		return v, b, err
	}

	return v, true, nil
}

// GetZero returns the value associated with Key, or the zero value otherwise.
func (ds *DiskStorage[Key, Value]) GetZero(key Key) (Value, error) {
	value, _, err := ds.Get(key)
	return value, err
}

func (ds *DiskStorage[Key, Value]) Has(key Key) (bool, error) {
	keyB, err := ds.MarshalKey(key)
	if err != nil {
		return false, err
	}

	ok, err := ds.DB.Has(keyB, nil)
	if err != nil {
		return false, err
	}
	return ok, nil
}

// Delete deletes the given key from this storage
func (ds *DiskStorage[Key, Value]) Delete(key Key) error {
	keyB, err := ds.MarshalKey(key)
	if err != nil {
		return err
	}

	if err := ds.DB.Delete(keyB, nil); err != nil {
		return err
	}

	return nil
}

// Iterate calls f for all entries in Storage.
// there is no guarantee on order.
func (ds *DiskStorage[Key, Value]) Iterate(f func(Key, Value) error) error {
	it := ds.DB.NewIterator(nil, nil)
	defer it.Release()

	for it.Next() {
		var key Key
		if err := ds.UnmarshalKey(&key, it.Key()); err != nil {
			return err
		}
		var value Value
		if err := ds.UnmarshalValue(&value, it.Value()); err != nil {
			return err
		}
		if err := f(key, value); err != nil {
			return err
		}
	}
	return it.Error()
}

func (ds *DiskStorage[Key, Value]) Close() error {
	var err error

	if ds.DB != nil {
		err = ds.DB.Close()
	}
	ds.DB = nil
	return err
}

// Count returns the number of objects in this DiskStorage.
func (ds *DiskStorage[Key, Value]) Count() (count uint64, err error) {
	it := ds.DB.NewIterator(nil, nil)
	defer it.Release()

	for it.Next() {
		count++
	}
	err = it.Error()
	if err != nil {
		count = 0
	}
	return
}
