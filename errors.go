//spellchecker:words bimap
package bimap

import "errors"

var (
	// ErrValueExists is returned by Set and Update under the [Strict] policy
	// when the value is already associated with a different key.
	ErrValueExists = errors.New("value exists with a different key")

	// ErrNotFound is returned when a referenced key has no association.
	ErrNotFound = errors.New("key not found")

	// ErrEmpty is returned by PopFirst and PopLast on an empty map.
	ErrEmpty = errors.New("map is empty")

	// ErrFrozen is returned by any mutating call on a frozen map.
	ErrFrozen = errors.New("map is frozen")

	// ErrBadPolicy is returned when a map is constructed with a policy value
	// that is not one of the declared constants.
	ErrBadPolicy = errors.New("invalid policy")

	// ErrBadName is returned by NewNamed for accessor names that are not
	// valid identifiers, or that do not differ from each other.
	ErrBadName = errors.New("invalid accessor name")
)
