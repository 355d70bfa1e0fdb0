//spellchecker:words bimap
package bimap

import (
	"fmt"
	"unicode"
)

// Named wraps a [Bimap] and exposes its two directions under caller-chosen
// names, for code that wants domain vocabulary ("element_by_symbol",
// "symbol_by_element") instead of forward/inverse.
//
// A Named holds no storage and no extra invariants; both views resolve to
// the wrapped engine.
type Named[K comparable, V comparable] struct {
	forwardName string
	inverseName string

	mp *Bimap[K, V]
}

// NewNamed wraps mp, binding forwardName to the forward direction and
// inverseName to the inverse view.
//
// Both names must be valid identifiers (a letter or underscore followed by
// letters, digits or underscores) and must differ; otherwise NewNamed fails
// with [ErrBadName].
func NewNamed[K comparable, V comparable](forwardName, inverseName string, mp *Bimap[K, V]) (*Named[K, V], error) {
	for _, name := range []string{forwardName, inverseName} {
		if !isIdentifier(name) {
			return nil, fmt.Errorf("%w: %q", ErrBadName, name)
		}
	}
	if forwardName == inverseName {
		return nil, fmt.Errorf("%w: %q used for both directions", ErrBadName, forwardName)
	}

	return &Named[K, V]{
		forwardName: forwardName,
		inverseName: inverseName,
		mp:          mp,
	}, nil
}

// ForwardName returns the name bound to the forward direction.
func (nd *Named[K, V]) ForwardName() string { return nd.forwardName }

// InverseName returns the name bound to the inverse view.
func (nd *Named[K, V]) InverseName() string { return nd.inverseName }

// Forward returns the wrapped map.
func (nd *Named[K, V]) Forward() *Bimap[K, V] { return nd.mp }

// Inverse returns an inverse view of the wrapped map.
func (nd *Named[K, V]) Inverse() *Inverse[K, V] { return nd.mp.Inverse() }

// Resolve maps an accessor name to a direction.
// The second return value indicates whether name resolved to the inverse
// view; unknown names fail with [ErrBadName].
func (nd *Named[K, V]) Resolve(name string) (inverse bool, err error) {
	switch name {
	case nd.forwardName:
		return false, nil
	case nd.inverseName:
		return true, nil
	}
	return false, fmt.Errorf("%w: %q", ErrBadName, name)
}

// isIdentifier checks if name can serve as a generated accessor name.
func isIdentifier(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		if r == '_' || unicode.IsLetter(r) {
			continue
		}
		if i > 0 && unicode.IsDigit(r) {
			continue
		}
		return false
	}
	return true
}
