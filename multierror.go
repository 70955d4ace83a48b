package wrappederror

// Attribution: portions of the below code and documentation are
// modeled directly on the https://github.com/uber-go/multierr library,
// used with the permission available under the software license (MIT):
// https://github.com/uber-go/multierr/blob/master/LICENSE.txt

// Interfaces implemented by errors that aggregate others. They are
// checked in this order:
//
//	Errors() []error         // uber-go/multierr, secureworks/errors
//	WrappedErrors() []error  // hashicorp/go-multierror
//	Unwrap() []error         // errors.Join, fmt.Errorf with several %w
//
// A *WrappedError is a node, never an aggregate, even though it
// implements Unwrap() []error.
type multiError interface {
	Errors() []error
}

type wrappedErrors interface {
	WrappedErrors() []error
}

type joinedErrors interface {
	Unwrap() []error
}

// ErrorsFrom returns the list of errors that err is composed of. If
// err aggregates other errors (directly, or behind wrappers that each
// wrap a single error) the members are returned, with nested aggregates
// flattened in order and nil members removed. Otherwise the list holds
// just err. A nil err returns nil.
//
//	err := errors.Join(e1, fmt.Errorf("ctx: %w", errors.Join(e2, e3)))
//	wrappederror.ErrorsFrom(err) // ... returns [e1 e2 e3]
//
// Callers of this function are free to modify the returned slice.
func ErrorsFrom(err error) []error {
	if isNil(err) {
		return nil
	}
	if members, ok := aggregate(err); ok {
		return members
	}
	return []error{err}
}

// aggregate finds the first aggregating error in the chain of single
// wrappers starting at err, and returns its flattened members.
func aggregate(err error) ([]error, bool) {
	for !isNil(err) {
		switch e := err.(type) {
		case *WrappedError:
			return nil, false
		case multiError:
			return flattenMembers(e.Errors()), true
		case wrappedErrors:
			return flattenMembers(e.WrappedErrors()), true
		case joinedErrors:
			return flattenMembers(e.Unwrap()), true
		}
		err = Unwrap(err)
	}
	return nil, false
}

// flattenMembers expands members that are themselves aggregates, so
// that the result contains no aggregating errors.
func flattenMembers(errs []error) []error {
	out := make([]error, 0, len(errs))
	for _, err := range errs {
		if isNil(err) {
			continue
		}
		if members, ok := aggregate(err); ok {
			out = append(out, members...)
			continue
		}
		out = append(out, err)
	}
	return out
}
