// Package wrappederror models causal trees of errors. It is meant to
// be used alongside the standard library https://go.pkg.dev/errors
// package, and is based on:
//
// • https://github.com/secureworks/errors, and
//
// • https://github.com/pkg/errors.
//
// # Classifying errors
//
// A failure is classified with an *ErrorType: a name and a message,
// compared by identity. Define your types once and share them:
//
//	var (
//	    ErrLoadCustomer = wrappederror.NewType("LoadCustomer", "customer could not be loaded")
//	    ErrReadFile     = wrappederror.NewType("ReadFile", "file could not be read")
//	)
//
// A *WrappedError is an error carrying a type, a data mapping of
// arbitrary context, and the error (or errors) that caused it:
//
//	err := wrappederror.New(ErrReadFile, map[string]interface{}{
//	    "path": path,
//	})
//
// A type missing its name or message is rejected when a node is built:
// the returned node has the type InvalidTypeDefinition and holds the
// rejected type under the "giventype" key. A nil type stands for
// UndefinedError.
//
// # Wrapping errors
//
// Wrap links an error as the cause of a new node as it propagates up
// the call stack:
//
//	f, err := os.Open(path)
//	if err != nil {
//	    return wrappederror.Wrap(err, ErrReadFile, map[string]interface{}{
//	        "path": path,
//	    })
//	}
//
// When the wrapped error is already a node of the same type (or the
// type is nil) and none of the new data conflicts with its data, Wrap
// does not create a node: it merges the data into the existing node and
// returns it. This progressively attaches context to the same failure:
//
//	err = wrappederror.Wrap(err, nil, map[string]interface{}{"attempt": 2})
//
// A key present in both with unequal values is a conflict, in which
// case Wrap builds a new node and both values are retained in the tree.
// Match reports the outcome of this test without changing anything,
// and WrapNew always links without merging, leaving the wrapped error
// untouched.
//
// WrapMulti records several causes on a single new node, for aggregate
// failures such as a batch of tasks; WrapErrors does the same for an
// error that joins others (errors.Join, a multierror).
//
// # Flattening the tree
//
// Errors linearizes the tree in causal order: every node comes after
// all of its causes, causes are visited left to right, and the node
// Errors was called on is last. This is the order to report the story
// of a failure in, from root cause to final symptom.
//
//	for _, e := range err.Errors() {
//	    fmt.Println(e)
//	}
//
// ErrorsFunc and the generic Flatten map every error on the way. A nil
// result (or false, for Flatten) prunes the error and everything that
// caused it, leaving its parents and siblings in place.
//
// MergedData collects the data of every node into one mapping, with
// nodes closer to the top of the tree winning over their causes.
//
// # Interoperability
//
// A *WrappedError unwraps to its causes (Unwrap() []error), so Is and
// As search the whole tree. An *ErrorType is an error too, so you can
// test a tree for a classification with:
//
//	if errors.Is(err, ErrReadFile) {
//	    // ...
//	}
//
// Errors from other packages are leaves of the tree: they are listed by
// Errors, but whatever they wrap is not.
//
// # Concurrency
//
// The package does no locking. Building nodes and flattening trees is
// safe from any goroutine, but Wrap may write to the data of an
// existing node: guard a node shared between goroutines yourself.
//
// # Formatted printing of errors
//
// A *WrappedError implements fmt.Formatter. The following verbs are
// supported:
//
//	%s    print the type's message
//	%v    same as %s
//	%q    same as %s but quoted
//	%#v   prints the go-syntax representation of the node's type
//	%+v   extended format. Prints the type, data & stack trace of each node in the tree
//
// Structured logging of a tree is provided by the errlog subpackage.
package wrappederror

import _ "github.com/secureworks/wrappederror/internal/constraints"
