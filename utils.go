package wrappederror

import "reflect"

// isNil reports whether err is nil or an interface holding a nil
// pointer (or other nil reference), which == nil does not catch.
func isNil(err error) bool {
	if err == nil {
		return true
	}
	switch reflect.TypeOf(err).Kind() {
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Pointer, reflect.Slice:
		return reflect.ValueOf(err).IsNil()
	default:
		return false
	}
}
