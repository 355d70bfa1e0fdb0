// Package sgob wraps the gob package to stream sequences of objects.
//
// By default, the [gob] package encodes a large slice into a buffer and then
// makes a single Write call to the underlying stream.
// This has the disadvantage that large objects have to be encoded entirely in
// memory before being written out.
//
// This package works around this restriction by encoding a sequence element
// by element, preceded by its length, meaning that only one element is held
// in encoded form at any time. A disadvantage is that the corresponding
// decode also has to be performed using this package.
package sgob

//spellchecker:words sgob

import (
	"encoding/gob"
	"errors"
)

// ErrCount is returned by [EncodeSeq] when the iterate callback yields a
// number of elements different from the declared count.
var ErrCount = errors.New("sgob: element count mismatch")

// EncodeSeq encodes count elements into the given encoder.
//
// iterate is called once with a yield function and must call yield exactly
// count times. Each element is encoded individually, so the sequence is never
// materialized in memory as a whole. When the number of yielded elements does
// not match count the encode fails with [ErrCount], leaving the stream
// unusable.
func EncodeSeq[T any](encoder *gob.Encoder, count uint64, iterate func(yield func(T) error) error) error {
	if err := encoder.Encode(count); err != nil {
		return err
	}

	var seen uint64
	err := iterate(func(element T) error {
		seen++
		if seen > count {
			return ErrCount
		}
		return encoder.Encode(element)
	})
	if err != nil {
		return err
	}
	if seen != count {
		return ErrCount
	}
	return nil
}

// EncodeSlice encodes the elements of slice into the given encoder.
func EncodeSlice[T any](encoder *gob.Encoder, slice []T) error {
	return EncodeSeq(encoder, uint64(len(slice)), func(yield func(T) error) error {
		for _, element := range slice {
			if err := yield(element); err != nil {
				return err
			}
		}
		return nil
	})
}

// DecodeSeq decodes a sequence written by [EncodeSeq] from the given decoder,
// calling sink once for each element in order.
//
// When any sink returns a non-nil error, that error is returned immediately
// and decoding stops.
func DecodeSeq[T any](decoder *gob.Decoder, sink func(element T) error) error {
	var count uint64
	if err := decoder.Decode(&count); err != nil {
		return err
	}

	for i := uint64(0); i < count; i++ {
		var element T
		if err := decoder.Decode(&element); err != nil {
			return err
		}
		if err := sink(element); err != nil {
			return err
		}
	}
	return nil
}

// DecodeSlice decodes a sequence written by [EncodeSeq] into a fresh slice.
func DecodeSlice[T any](decoder *gob.Decoder) ([]T, error) {
	var slice []T
	err := DecodeSeq(decoder, func(element T) error {
		slice = append(slice, element)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return slice, nil
}
