package wrappederror

import (
	"fmt"
	"io"
	"sort"
)

// WrappedError is an error classified by an ErrorType, carrying a data
// mapping and linked to the error (or errors) that caused it. Following
// causes from a node yields a tree of causally related failures, which
// Errors and Flatten linearize.
//
// A node's type and causes never change once it has been built. Its
// data may gain or overwrite keys when Wrap merges into it. The data
// mapping is not synchronized: you must lock around concurrent calls to
// Wrap that may merge into the same node.
type WrappedError struct {
	typ    *ErrorType
	data   map[string]interface{}
	cause  error
	causes []error
	frames frames
}

var _ interface { // Assert interface implementation.
	error
	stackTracer
	framer
	Unwrap() []error
	Is(error) bool
	fmt.Formatter
} = (*WrappedError)(nil)

// New returns a new node of the given type holding a copy of data. A
// nil typ defaults to UndefinedError and nil data to an empty mapping.
// The stack trace at the call site is recorded.
//
// If typ is missing a name or a message, the node is not built: the
// returned node is instead of type InvalidTypeDefinition and its data
// is exactly {"giventype": typ}.
//
//	err := wrappederror.New(ErrCustomerNotFound, map[string]interface{}{
//	    "customer": id,
//	})
func New(typ *ErrorType, data map[string]interface{}) *WrappedError {
	w, _ := newWrapped(typ, data, 2)
	return w
}

// newWrapped builds a node, recording the stack from skip frames above
// newWrapped. If typ is malformed it returns the InvalidTypeDefinition
// node and false: callers must not link causes to it.
func newWrapped(typ *ErrorType, data map[string]interface{}, skip int) (*WrappedError, bool) {
	ff := getStack(skip)
	if typ == nil {
		typ = UndefinedError
	}
	if !typ.valid() {
		return invalidType(typ, ff), false
	}
	return &WrappedError{
		typ:    typ,
		data:   copyData(data),
		frames: ff,
	}, true
}

// errType is the node's type. A zero WrappedError is an UndefinedError.
func (w *WrappedError) errType() *ErrorType {
	if w.typ == nil {
		return UndefinedError
	}
	return w.typ
}

// Type returns the node's classification.
func (w *WrappedError) Type() *ErrorType { return w.errType() }

// Name returns the name of the node's type.
func (w *WrappedError) Name() string { return w.errType().Name }

// Message returns the message of the node's type.
func (w *WrappedError) Message() string { return w.errType().Message }

// Error returns the message of the node's type.
func (w *WrappedError) Error() string {
	if w == nil {
		return "<nil>"
	}
	return w.errType().Message
}

// Data returns a copy of the node's data. The copy also exposes the
// node's causes: a single cause under KeyOriginalError, or the ordered
// causes under KeyOriginalErrors. Modifying the result does not affect
// the node; use Wrap to add data.
func (w *WrappedError) Data() map[string]interface{} {
	out := copyData(w.data)
	switch {
	case w.cause != nil:
		out[KeyOriginalError] = w.cause
	case w.causes != nil:
		out[KeyOriginalErrors] = w.Causes()
	}
	return out
}

// Cause returns the single error this node wraps, if any.
func (w *WrappedError) Cause() error { return w.cause }

// Causes returns the errors this node wraps, in order. A node built by
// Wrap returns its single cause; a leaf returns nil.
func (w *WrappedError) Causes() []error {
	if w.cause != nil {
		return []error{w.cause}
	}
	if w.causes == nil {
		return nil
	}
	out := make([]error, len(w.causes))
	copy(out, w.causes)
	return out
}

// Unwrap returns the node's causes so that Is and As search the whole
// tree.
func (w *WrappedError) Unwrap() []error { return w.Causes() }

// Is reports whether target is this node or this node's type. Because
// of Unwrap, errors.Is(err, typ) reports whether any node in the tree
// has the type typ.
func (w *WrappedError) Is(target error) bool {
	if w == nil {
		return false
	}
	switch t := target.(type) {
	case *ErrorType:
		return t == w.errType()
	case *WrappedError:
		return t == w
	default:
		return false
	}
}

// Frames returns the call stack frames recorded when this node was
// created.
//
// This method only returns the frames of *this specific node*. Use
// FramesFrom to get the frames of the oldest cause in the tree.
func (w *WrappedError) Frames() Frames { return w.frames.Frames() }

// StackTrace returns the call stack recorded when this node was created
// in the form of program counters, for interoperability with packages
// that expect the https://pkg.go.dev/github.com/pkg/errors#StackTrace
// representation.
func (w *WrappedError) StackTrace() []uintptr { return w.frames.StackTrace() }

// Format implements fmt.Formatter. The following verbs are supported:
//
//	%s    print the type's message
//	%v    same as %s
//	%q    same as %s but quoted
//	%#v   print the go-syntax representation of the node's type
//	%+v   print the type, data and stack trace of every node in the tree
func (w *WrappedError) Format(s fmt.State, verb rune) {
	switch verb {
	case 'v':
		if s.Flag('+') {
			w.formatTree(s)
			return
		}
		if s.Flag('#') {
			_, _ = fmt.Fprintf(s, "&wrappederror.WrappedError{%q %q}", w.Name(), w.Message())
			return
		}
		fallthrough
	case 's':
		_, _ = io.WriteString(s, w.Error())
	case 'q':
		_, _ = fmt.Fprintf(s, "%q", w.Error())
	default:
		// empty
	}
}

func (w *WrappedError) formatTree(s fmt.State) {
	_, _ = fmt.Fprintf(s, "%s: %s", w.Name(), w.Message())
	if len(w.data) > 0 {
		keys := make([]string, 0, len(w.data))
		for k := range w.data {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			_, _ = fmt.Fprintf(s, "\n     %s=%v", k, w.data[k])
		}
	}
	_, _ = fmt.Fprintf(s, "%+5v", w.Frames())

	causes := w.Causes()
	for i, c := range causes {
		if len(causes) == 1 {
			_, _ = io.WriteString(s, "\n\nCAUSED BY: ")
		} else {
			_, _ = fmt.Fprintf(s, "\n\nCAUSED BY (%d of %d): ", i+1, len(causes))
		}
		// Width indents frames; plain errors would be padded by it instead.
		if _, ok := c.(fmt.Formatter); ok {
			_, _ = fmt.Fprintf(s, "%+5v", c)
		} else {
			_, _ = io.WriteString(s, c.Error())
		}
	}
}
