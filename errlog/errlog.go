// Package errlog presents error trees built with wrappederror to
// structured loggers. It writes the flattened tree, root cause first,
// along with the data collected from every node:
//
//	errlog.LogError("failed to load customer", err)
//
// writes, with the default zerolog logger:
//
//	{"level":"error","error_name":"LoadCustomer","error_message":"customer could not be loaded",
//	 "data":{"customer":"42","path":"/data/42.csv"},
//	 "errors":[{"message":"open /data/42.csv: no such file or directory"},
//	           {"name":"ReadFile","message":"file could not be read","data":{"path":"/data/42.csv"}},
//	           {"name":"LoadCustomer","message":"customer could not be loaded","data":{"customer":"42"}}],
//	 "message":"failed to load customer"}
//
// Loggers built on github.com/go-kit/log are supported through KeyVals
// and Log.
package errlog

import (
	"github.com/secureworks/wrappederror"
)

// Field names used for every logger.
const (
	NameKey     = "error_name"
	MessageKey  = "error_message"
	DataKey     = "data"
	ErrorsKey   = "errors"
	FallbackKey = "error"
)

// node returns err as a *WrappedError if it is one.
func node(err error) (*wrappederror.WrappedError, bool) {
	w, ok := err.(*wrappederror.WrappedError)
	return w, ok && w != nil
}

// ownData is a node's data without the causes.
func ownData(w *wrappederror.WrappedError) map[string]interface{} {
	data := w.Data()
	delete(data, wrappederror.KeyOriginalError)
	delete(data, wrappederror.KeyOriginalErrors)
	return data
}

// describe renders a single error of a flattened tree as one line.
func describe(err error) (string, bool) {
	if w, ok := node(err); ok {
		return w.Name() + ": " + w.Message(), true
	}
	return err.Error(), true
}
