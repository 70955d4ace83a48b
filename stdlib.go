package wrappederror

// These are the exported package functions defined in the standard
// library. They are copied here (along with their doc comments) so that
// users can import this library alone. The standard library's New is
// not re-exported: New builds a *WrappedError here.

import stderrors "errors"

// Unwrap returns the result of calling the Unwrap method on err, if err's
// type contains an Unwrap method returning error.
// Otherwise, Unwrap returns nil.
//
// Unwrap only calls a method of the form "Unwrap() error".
// In particular Unwrap does not unwrap a *WrappedError, whose causes
// are returned by its Causes method.
func Unwrap(err error) error { return stderrors.Unwrap(err) }

// Is reports whether any error in err's tree matches target.
//
// The tree consists of err itself, followed by the errors obtained by
// repeatedly calling its Unwrap() error or Unwrap() []error method. When
// err wraps multiple errors, Is examines err followed by a depth-first
// traversal of its children.
//
// Passing an *ErrorType as target reports whether any *WrappedError in
// the tree has that type.
func Is(err, target error) bool { return stderrors.Is(err, target) }

// As finds the first error in err's tree that matches target, and if one
// is found, sets target to that error value and returns true. Otherwise,
// it returns false.
//
// As panics if target is not a non-nil pointer to either a type that
// implements error, or to any interface type.
func As(err error, target interface{}) bool { return stderrors.As(err, target) }

// Join returns an error that wraps the given errors. Any nil error
// values are discarded. Join returns nil if every value in errs is nil.
// The result is an aggregate: ErrorsFrom and WrapErrors split it back
// into its members.
func Join(errs ...error) error { return stderrors.Join(errs...) }
