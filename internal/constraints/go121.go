//go:build go1.21

package constraints

const Go121 = uint8(0)
