package wrappederror

// Match reports whether err is a *WrappedError that could absorb typ and
// data without losing information: typ is nil or is err's type, and no
// key of data is present in err's data with a different value. Keys
// present on only one side never conflict, so empty data always
// matches.
//
// Values are compared with == when both are comparable, and with
// reflect.DeepEqual otherwise (maps, slices, structs holding them).
func Match(err error, typ *ErrorType, data map[string]interface{}) bool {
	w, ok := err.(*WrappedError)
	if !ok || w == nil {
		return false
	}
	if typ != nil && w.errType() != typ {
		return false
	}
	return !conflicts(data, w.data)
}

// Wrap classifies err as typ with the added data.
//
// If err already matches typ and data (see Match) no new node is built:
// data is merged into err's data and err itself is returned. This lets
// callers progressively attach context to the same failure as it
// propagates:
//
//	err = wrappederror.Wrap(err, nil, map[string]interface{}{"attempt": n})
//
// Otherwise Wrap returns a new node of type typ (UndefinedError if nil)
// holding data, with err as its single cause. A nil err yields a node
// with no cause.
//
// Merging writes to err's data without synchronization; see
// WrappedError.
func Wrap(err error, typ *ErrorType, data map[string]interface{}) *WrappedError {
	if Match(err, typ, data) {
		w := err.(*WrappedError)
		if w.data == nil {
			w.data = make(map[string]interface{}, len(data))
		}
		mergeData(w.data, data)
		return w
	}
	return link(err, typ, data)
}

// WrapNew is Wrap without the merge: it always returns a new node of
// type typ holding data, with err as its single cause. err is never
// written to, so WrapNew is safe to call from several goroutines on a
// shared err.
func WrapNew(err error, typ *ErrorType, data map[string]interface{}) *WrappedError {
	return link(err, typ, data)
}

// link builds the node for Wrap and WrapNew. The stack is recorded from
// the caller of the exported function.
func link(err error, typ *ErrorType, data map[string]interface{}) *WrappedError {
	w, ok := newWrapped(typ, data, 3)
	if ok && !isNil(err) {
		w.cause = err
	}
	return w
}

// WrapMulti returns a new node of type typ holding data, caused by errs
// in order. Unlike Wrap it never merges: every call builds a new parent
// node, which is how aggregate failures (eg: the outcome of a batch of
// tasks) are recorded. Nil errors are dropped and errs is copied.
func WrapMulti(errs []error, typ *ErrorType, data map[string]interface{}) *WrappedError {
	w, ok := newWrapped(typ, data, 2)
	if ok {
		w.causes = dropNils(errs)
	}
	return w
}

// WrapErrors is WrapMulti for an error that may aggregate several
// others, such as a joined error or a multierror. The members found by
// ErrorsFrom become the causes of the new node. An error that does not
// aggregate others becomes its single cause, as with Wrap, except that
// WrapErrors never merges.
//
//	var result *multierror.Error
//	// ... result = multierror.Append(result, err) per task ...
//	return wrappederror.WrapErrors(result.ErrorOrNil(), ErrBatchFailed, nil)
func WrapErrors(err error, typ *ErrorType, data map[string]interface{}) *WrappedError {
	w, ok := newWrapped(typ, data, 2)
	if !ok || isNil(err) {
		return w
	}
	if members, isAggregate := aggregate(err); isAggregate {
		w.causes = members
		return w
	}
	w.cause = err
	return w
}

func dropNils(errs []error) []error {
	out := make([]error, 0, len(errs))
	for _, err := range errs {
		if isNil(err) {
			continue
		}
		out = append(out, err)
	}
	return out
}
