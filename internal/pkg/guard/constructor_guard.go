// Package guard provides a defensive programming pattern that ensures commands,
// queries and other application objects are only created through their designated
// constructor functions.
package guard

import "errors"

// ErrDefaultConstructorGuard is the default error returned by ConstructorGuard.Validate()
// when a nil error is passed as the validation error. This ensures that validation
// always fails with a meaningful message even if no specific error is provided.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard detects whether a struct was initialized through its
// constructor or created as a zero value. Embedding a guard in a command or
// query object and checking it in Validate prevents handlers from operating
// on objects that bypassed construction-time validation.
//
// The guard works by maintaining an internal flag that is only set to true when
// the object is created through the proper constructor function. Any attempt to
// use a zero-value struct will fail validation.
//
// Example usage:
//
//	var ErrDispatchOrdersCommandIsNotConstructed = errors.New(
//	    "DispatchOrdersCommand must be created via NewDispatchOrdersCommand")
//
//	type DispatchOrdersCommand struct {
//	    courierID int64
//	    guard     guard.ConstructorGuard
//	}
//
//	func NewDispatchOrdersCommand(courierID int64) (DispatchOrdersCommand, error) {
//	    if courierID <= 0 {
//	        return DispatchOrdersCommand{}, errors.New("courierID must be positive")
//	    }
//	    return DispatchOrdersCommand{
//	        courierID: courierID,
//	        guard:     guard.NewConstructorGuard(),
//	    }, nil
//	}
//
//	func (c DispatchOrdersCommand) Validate() error {
//	    return c.guard.Validate(ErrDispatchOrdersCommandIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard creates a new ConstructorGuard that marks an object as
// properly constructed. This should be called in the constructor of application
// objects to ensure they can be distinguished from zero-value instances.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate checks whether the guarded object was properly constructed through
// its designated constructor function.
//
// If the object was created as a zero value (not through the constructor),
// this method returns the provided validation error. If validationError is nil,
// ErrDefaultConstructorGuard is returned instead.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
