// Package errs provides standardized error types for the dispatch application.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package includes several error types for common error scenarios:
//   - ObjectNotFoundError: For when an object cannot be found
//   - ValueIsRequiredError: For when a required value is missing
//   - ValueIsInvalidError: For when a value is invalid
//   - ValueIsOutOfRangeError: For when a value lies outside its allowed range
//   - ConflictError: For when an operation contradicts the current state
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrObjectNotFound)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method for error wrapping/unwrapping support
//
// This standardized approach lets the HTTP adapter classify core errors with
// errors.Is and map them to transport responses without inspecting messages.
package errs
