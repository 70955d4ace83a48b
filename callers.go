package wrappederror

import "github.com/secureworks/wrappederror/internal/runtime"

// Caller returns a Frame that describes the proximate frame on the
// caller's stack.
func Caller() Frame {
	return CallerAt(1)
}

// CallerAt returns a Frame that describes a frame on the caller's
// stack. The argument skipCallers is the number of frames to skip over.
func CallerAt(skipCallers int) Frame {
	ff := getStack(skipCallers + 1).Frames()
	if len(ff) == 0 {
		return frame{}
	}
	return ff[0]
}

// CallStack returns all the Frames that describe the caller's stack.
func CallStack() Frames {
	return getStack(1).Frames()
}

// getStack captures the call stack starting at the caller of getStack,
// after skipping skipCallers frames.
//
//go:noinline
func getStack(skipCallers int) frames {
	return frames(runtime.Callers(skipCallers + 1))
}
