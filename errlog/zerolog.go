package errlog

import (
	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"

	"github.com/secureworks/wrappederror"
)

type object struct {
	err error
}

// Object returns a zerolog object describing err alone: the name,
// message and data of a *WrappedError, or the message of any other
// error. Causes are not included; see Array.
//
//	logger.Error().Object("error", errlog.Object(err)).Send()
func Object(err error) zerolog.LogObjectMarshaler {
	return object{err: err}
}

func (o object) MarshalZerologObject(e *zerolog.Event) {
	if o.err == nil {
		return
	}
	w, ok := node(o.err)
	if !ok {
		e.Str("message", o.err.Error())
		return
	}
	e.Str("name", w.Name()).Str("message", w.Message())
	if data := ownData(w); len(data) > 0 {
		e.Dict(DataKey, zerolog.Dict().Fields(data))
	}
}

type array struct {
	errs []error
}

// Array returns a zerolog array of the errors in the tree rooted at err,
// in the order of (*WrappedError).Errors, each marshaled with Object.
//
//	logger.Error().Array("errors", errlog.Array(err)).Send()
func Array(err error) zerolog.LogArrayMarshaler {
	return array{errs: wrappederror.Flatten(err, func(e error) (error, bool) {
		return e, true
	})}
}

func (a array) MarshalZerologArray(arr *zerolog.Array) {
	for _, err := range a.errs {
		arr.Object(Object(err))
	}
}

// LogError logs err on the error level. The first logger given is used,
// or the global zerolog logger if none is.
func LogError(msg string, err error, logger ...*zerolog.Logger) {
	log(msg, err, zerolog.ErrorLevel, logger...)
}

// LogWarn logs err on the warn level.
func LogWarn(msg string, err error, logger ...*zerolog.Logger) {
	log(msg, err, zerolog.WarnLevel, logger...)
}

// LogDebug logs err on the debug level.
func LogDebug(msg string, err error, logger ...*zerolog.Logger) {
	log(msg, err, zerolog.DebugLevel, logger...)
}

func log(msg string, err error, level zerolog.Level, logger ...*zerolog.Logger) {
	l := &zlog.Logger
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0]
	}
	Event(l.WithLevel(level), err).Msg(msg)
}

// Event adds err to a zerolog event: the top node's name and message,
// the merged data of the tree, and the flattened tree under "errors".
// Errors that are not *WrappedError are added as a plain error field.
func Event(e *zerolog.Event, err error) *zerolog.Event {
	if err == nil {
		return e
	}
	w, ok := node(err)
	if !ok {
		return e.AnErr(FallbackKey, err)
	}
	e = e.Str(NameKey, w.Name()).Str(MessageKey, w.Message())
	if data := w.MergedData(); len(data) > 0 {
		e = e.Dict(DataKey, zerolog.Dict().Fields(data))
	}
	return e.Array(ErrorsKey, Array(err))
}
