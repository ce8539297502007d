// Package guard provides a defensive construction pattern for value objects,
// entities, and commands. Embedding a ConstructorGuard lets a type distinguish
// instances created through its constructor from zero-value instances, so that
// validation rules cannot be bypassed by direct struct initialization.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific
// validation error is supplied for an unconstructed object.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard marks an object as having been created through its
// designated constructor. The zero value fails validation.
//
// Example:
//
//	type Money struct {
//	    cents int64
//	    guard guard.ConstructorGuard
//	}
//
//	func NewMoney(cents int64) (Money, error) {
//	    if cents < 0 {
//	        return Money{}, errors.New("cents cannot be negative")
//	    }
//	    return Money{cents: cents, guard: guard.NewConstructorGuard()}, nil
//	}
//
//	func (m Money) Validate() error {
//	    return m.guard.Validate(ErrMoneyNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard creates a guard marking the enclosing object as
// properly constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil if the object was created through its constructor.
// Otherwise it returns validationError, or ErrDefaultConstructorGuard when
// validationError is nil.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
