package errlog

import (
	"sort"
	"strings"

	kitlog "github.com/go-kit/log"

	"github.com/secureworks/wrappederror"
)

// KeyVals returns go-kit style alternating keys and values describing
// err: the top node's name and message, each entry of the tree's merged
// data (sorted by key, prefixed with "data."), and the flattened tree
// as a Trail. Errors that are not *WrappedError are returned as a
// single "error" pair.
func KeyVals(err error) []interface{} {
	if err == nil {
		return nil
	}
	w, ok := node(err)
	if !ok {
		return []interface{}{FallbackKey, err}
	}

	data := w.MergedData()
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	kv := make([]interface{}, 0, 6+2*len(keys))
	kv = append(kv, NameKey, w.Name(), MessageKey, w.Message())
	for _, k := range keys {
		kv = append(kv, DataKey+"."+k, data[k])
	}
	return append(kv, ErrorsKey, Trail(wrappederror.Flatten(err, describe)))
}

// Trail is a flattened tree as "name: message" lines, root cause first.
// Loggers print it as a single line.
type Trail []string

func (t Trail) String() string { return strings.Join(t, "; ") }

// Log writes keyvals followed by KeyVals(err) to logger.
//
//	errlog.Log(level.Error(logger), err, "msg", "failed to load customer")
func Log(logger kitlog.Logger, err error, keyvals ...interface{}) error {
	kv := make([]interface{}, 0, len(keyvals)+8)
	kv = append(kv, keyvals...)
	return logger.Log(append(kv, KeyVals(err)...)...)
}
