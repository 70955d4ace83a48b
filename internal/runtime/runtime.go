// Package runtime wraps the standard library call stack helpers used to
// record where an error value was created.
package runtime

import (
	"os"
	"runtime"
	"strings"
)

// MaxDepth is the deepest stack recorded for a single error.
const MaxDepth = 32

// Callers returns the program counters of the calling goroutine's
// stack, skipping skip frames above the caller of Callers.
//
//go:noinline
func Callers(skip int) []uintptr {
	var pcs [MaxDepth]uintptr
	n := runtime.Callers(skip+2, pcs[:])
	if n == 0 {
		return nil
	}
	out := make([]uintptr, n)
	copy(out, pcs[:n])
	return out
}

// Resolve expands program counters into runtime frames. Inlined calls
// are expanded, so the result may be longer than pcs.
func Resolve(pcs []uintptr) []runtime.Frame {
	if len(pcs) == 0 {
		return nil
	}
	frames := runtime.CallersFrames(pcs)
	ff := make([]runtime.Frame, 0, len(pcs))
	for {
		fr, more := frames.Next()
		ff = append(ff, fr)
		if !more {
			break
		}
	}
	return ff
}

// FuncName strips the package path from a fully qualified function
// name, leaving the receiver and method, eg: "(*T).Method".
func FuncName(name string) string {
	i := strings.LastIndex(name, string(os.PathSeparator))
	name = name[i+1:]
	i = strings.Index(name, ".")
	return name[i+1:]
}
