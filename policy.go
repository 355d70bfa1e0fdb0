//spellchecker:words bimap
package bimap

import "fmt"

// Policy decides what happens when a Set would associate a value that is
// already held by a different key.
//
// A collision on the key side alone is never an error: setting an existing
// key simply replaces its value.
type Policy int

const (
	// Strict rejects any mutation that would force the value index to hold
	// two keys for the same value. The rejected call leaves the map unchanged.
	Strict Policy = iota

	// Overwrite silently drops the association currently holding the
	// colliding value, then proceeds.
	Overwrite

	// Ignore keeps the association currently holding the colliding value and
	// silently drops the new pair instead. The call reports success.
	Ignore
)

// Valid checks if this policy is one of the declared constants.
func (p Policy) Valid() bool {
	return p == Strict || p == Overwrite || p == Ignore
}

func (p Policy) String() string {
	switch p {
	case Strict:
		return "strict"
	case Overwrite:
		return "overwrite"
	case Ignore:
		return "ignore"
	}
	return fmt.Sprintf("Policy(%d)", int(p))
}

// action is the outcome of resolving a value collision against a policy.
type action int

const (
	proceed action = iota // install the association
	evict                 // remove the colliding association, then install
	reject                // fail, leaving both indices untouched
	skip                  // keep the existing association, drop the new pair
)

// resolve decides how a Set call should continue given that the target value
// is (or is not) currently owned by a different key.
func (p Policy) resolve(valueOwnedElsewhere bool) action {
	if !valueOwnedElsewhere {
		return proceed
	}
	switch p {
	case Overwrite:
		return evict
	case Ignore:
		return skip
	}
	return reject
}
