// Package constraints should only be used as a blank import. When
// imported it will cause `go build` to fail with an obvious and clean
// message if the constraints defined in the package are not met.
package constraints

var (
	// Only available when on Go v1.21 or more: tree unwrapping and
	// reflect.Value.Comparable are required.
	_ = Go121
)
