package wrappederror

// Attribution: portions of the below code and documentation are modeled
// directly on the https://pkg.go.dev/golang.org/x/xerrors library, used
// with the permission available under the software license
// (BSD 3-Clause):
// https://cs.opensource.google/go/x/xerrors/+/master:LICENSE
//
// Attribution: portions of the below code and documentation are modeled
// directly on the https://github.com/pkg/errors library, used
// with the permission available under the software license
// (BSD 2-Clause):
// https://github.com/pkg/errors/blob/master/LICENSE

import (
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/secureworks/wrappederror/internal/runtime"
)

// Frame describes a single location on the call stack where an error
// was created.
//
// Frames are meant to be seen, so we have implemented the following
// default formatting verbs on it:
//
//	"%s"  – the base name of the file (or `unknown`) and the line number (if known)
//	"%q"  – the same as `%s` but wrapped in `"` delimiters
//	"%d"  – the line number
//	"%n"  – the basic function name, ie without a full package qualifier
//	"%v"  – the full path of the file (or `unknown`) and the line number (if known)
//	"%+v" – a standard line in a stack trace: a full function name on one line,
//	        and a full file name and line number on a second line
//	"%#v" – a Golang representation with the type (`wrappederror.Frame`)
type Frame interface {
	// Location returns the frame's caller's characteristics for help with
	// identifying and debugging the codebase.
	Location() (function string, file string, line int)
}

// frame is the resolved form of a program counter.
type frame struct {
	function string
	file     string
	line     int
}

var _ interface { // Assert interface implementation.
	Frame
	fmt.Formatter
} = frame{}

// NewFrame creates a "synthetic" Frame that describes the given
// location characteristics.
func NewFrame(function string, file string, line int) Frame {
	return frame{function: function, file: file, line: line}
}

func (f frame) Location() (function string, file string, line int) {
	function, file = f.function, f.file
	if function == "" {
		function = "unknown"
	}
	if file == "" {
		file = "unknown"
	}
	return function, file, f.line
}

func (f frame) Format(s fmt.State, verb rune) {
	appendD := func(line int) {
		if line > 0 {
			io.WriteString(s, ":")
			io.WriteString(s, strconv.Itoa(line))
		}
	}
	function, file, line := f.Location()
	switch verb {
	case 's':
		io.WriteString(s, escaper.Replace(filepath.Base(file)))
		appendD(line)
	case 'q':
		io.WriteString(s, `"`)
		io.WriteString(s, escaper.Replace(filepath.Base(file)))
		appendD(line)
		io.WriteString(s, `"`)
	case 'd':
		io.WriteString(s, strconv.Itoa(line))
	case 'n':
		io.WriteString(s, escaper.Replace(runtime.FuncName(function)))
	case 'v':
		switch {
		case s.Flag('+'):
			prefix := ""
			if width, ok := s.Width(); ok {
				prefix = strings.Repeat(" ", width)
			}
			io.WriteString(s, prefix)
			io.WriteString(s, escaper.Replace(function))
			io.WriteString(s, "\n"+prefix+"\t")
			io.WriteString(s, escaper.Replace(file))
			appendD(line)
		case s.Flag('#'):
			io.WriteString(s, `wrappederror.Frame("`)
			io.WriteString(s, escaper.Replace(file))
			appendD(line)
			io.WriteString(s, `")`)
		default:
			io.WriteString(s, escaper.Replace(file))
			appendD(line)
		}
	default:
		// empty
	}
}

// escaper keeps tabs and newlines in names from breaking the two-line
// stack trace layout.
var escaper = strings.NewReplacer(`\`, `\\`, "\t", `\t`, "\n", `\n`, `"`, `\"`)

// Frames is a slice of Frame data. This can represent a stack trace or
// some subset of a stack trace.
type Frames []Frame

var _ fmt.Formatter = (Frames)(nil) // Assert interface implementation.

func (ff Frames) Format(s fmt.State, verb rune) {
	switch verb {
	case 's', 'n':
		ff.formatSlice(s, verb, [2]string{"[", "]"})
	case 'v':
		switch {
		case s.Flag('+'):
			for _, f := range ff {
				io.WriteString(s, "\n")
				formatFrame(f, s, verb)
			}
		case s.Flag('#'):
			io.WriteString(s, "wrappederror.Frames")
			ff.formatSlice(s, 's', [2]string{"{", "}"})
		default:
			ff.formatSlice(s, verb, [2]string{"[", "]"})
		}
	default:
		// empty
	}
}

// formatSlice wraps a list of formatted frames with brackets.
func (ff Frames) formatSlice(s fmt.State, verb rune, delimiters [2]string) {
	io.WriteString(s, delimiters[0])
	for i, f := range ff {
		if i > 0 {
			io.WriteString(s, " ")
		}
		formatFrame(f, s, verb)
	}
	io.WriteString(s, delimiters[1])
}

// formatFrame formats foreign Frame implementations through this
// package's frame so every Frame honors the documented verbs.
func formatFrame(f Frame, s fmt.State, verb rune) {
	if fm, ok := f.(fmt.Formatter); ok {
		fm.Format(s, verb)
		return
	}
	function, file, line := f.Location()
	frame{function: function, file: file, line: line}.Format(s, verb)
}

// framer defines an interface for accessing Frames, which can
// represent a stack trace or a subset of a stack trace.
type framer interface {
	Frames() Frames
}

// stackTracer defines an interface for accessing a slice of `uintptr`s,
// which can be trivially converted to a
// `github.com/pkg/errors.StackTrace`.
//
// See: https://github.com/getsentry/sentry-go/blob/v0.12.0/stacktrace.go#L81
type stackTracer interface {
	StackTrace() []uintptr
}

// frames stores the raw program counters of a captured stack. They are
// only resolved into Frames when asked for.
type frames []uintptr

var _ interface { // Assert interface implementation.
	stackTracer
	framer
} = (frames)(nil)

// Frames resolves the program counters into Frames.
func (ff frames) Frames() Frames {
	resolved := runtime.Resolve(ff)
	if len(resolved) == 0 {
		return nil
	}
	out := make(Frames, 0, len(resolved))
	for _, fr := range resolved {
		out = append(out, frame{function: fr.Function, file: fr.File, line: fr.Line})
	}
	return out
}

// StackTrace returns a copy of the program counters.
func (ff frames) StackTrace() []uintptr {
	if len(ff) == 0 {
		return nil
	}
	st := make([]uintptr, len(ff))
	copy(st, ff)
	return st
}

// FramesFrom returns the origin stack of the oldest cause in an error
// tree that recorded one: the first error in flattened order that
// exposes Frames. It is the stack closest to where the failure began.
// Returns nil if no error in the tree carries frames.
func FramesFrom(err error) Frames {
	for _, e := range Flatten(err, keep) {
		if f, ok := e.(framer); ok {
			if ff := f.Frames(); len(ff) > 0 {
				return ff
			}
		}
	}
	return nil
}
