package wrappederror

// Errors returns every error in the tree rooted at w in causal order:
// the causes of each node come before the node itself, the causes of a
// node with several are visited left to right, and w comes last.
//
//	e1 := wrappederror.New(T1, nil)
//	e2 := wrappederror.Wrap(e1, T2, nil)
//	e3 := wrappederror.WrapMulti([]error{e2, io.EOF}, T3, nil)
//	e3.Errors() // ... returns [e1 e2 io.EOF e3]
//
// Errors that are not *WrappedError are leaves: they are listed, but
// whatever they wrap is not.
func (w *WrappedError) Errors() []error {
	return Flatten(w, keep)
}

// ErrorsFunc is Errors with every node replaced by fn(node). When fn
// returns nil the node is pruned along with all of its causes; the rest
// of the tree is unaffected.
//
//	// Hide a sensitive failure and everything that led to it.
//	errs := err.ErrorsFunc(func(e error) error {
//	    if errors.Is(e, ErrCredentials) {
//	        return nil
//	    }
//	    return e
//	})
func (w *WrappedError) ErrorsFunc(fn func(error) error) []error {
	return Flatten(w, func(err error) (error, bool) {
		v := fn(err)
		return v, !isNil(v)
	})
}

// Flatten linearizes the error tree rooted at root in the order of
// (*WrappedError).Errors, mapping each error with fn. When fn returns
// false the error and its whole subtree are left out. A nil root
// returns nil; a root that is not a *WrappedError is a single leaf.
//
//	names := wrappederror.Flatten(err, func(e error) (string, bool) {
//	    w, ok := e.(*wrappederror.WrappedError)
//	    if !ok {
//	        return e.Error(), true
//	    }
//	    return w.Name(), true
//	})
func Flatten[T any](root error, fn func(error) (T, bool)) []T {
	if isNil(root) {
		return nil
	}
	return flattenInto(nil, root, fn)
}

// flattenInto appends the mapped subtree of err to out. A node's value
// is computed before its causes are visited so that pruning stops the
// descent, but it is appended after them.
func flattenInto[T any](out []T, err error, fn func(error) (T, bool)) []T {
	v, ok := fn(err)
	if !ok {
		return out
	}
	if w, isNode := err.(*WrappedError); isNode && w != nil {
		switch {
		case w.cause != nil:
			out = flattenInto(out, w.cause, fn)
		case w.causes != nil:
			for _, c := range w.causes {
				out = flattenInto(out, c, fn)
			}
		}
	}
	return append(out, v)
}

// MergedData returns the union of the data of every node in the tree,
// without the linkage keys. Nodes are merged in the order of Errors, so
// a key set closer to w overrides the same key set on one of its
// causes, and w's own data wins over all. Errors that are not
// *WrappedError contribute nothing.
func (w *WrappedError) MergedData() map[string]interface{} {
	merged := make(map[string]interface{})
	for _, node := range Flatten(w, nodesOnly) {
		mergeData(merged, node.data)
	}
	return merged
}

func keep(err error) (error, bool) { return err, true }

// nodesOnly keeps *WrappedError values. Other errors are pruned, which
// is harmless since they have no causes this package can see.
func nodesOnly(err error) (*WrappedError, bool) {
	w, ok := err.(*WrappedError)
	return w, ok && w != nil
}
