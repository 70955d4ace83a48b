package wrappederror

import "reflect"

// Reserved data keys.
const (
	// KeyOriginalError holds the single cause of a node in its Data view.
	KeyOriginalError = "originalError"

	// KeyOriginalErrors holds the ordered causes of a node in its Data
	// view.
	KeyOriginalErrors = "originalErrors"

	// KeyGivenType holds the rejected type on an InvalidTypeDefinition
	// node.
	KeyGivenType = "giventype"
)

// isLinkKey reports whether key is used for tree linkage. Linkage keys
// only ever appear in Data views: caller data can not set them.
func isLinkKey(key string) bool {
	return key == KeyOriginalError || key == KeyOriginalErrors
}

// copyData returns a copy of data without linkage keys. The result is
// never nil.
func copyData(data map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(data))
	mergeData(out, data)
	return out
}

// mergeData assigns every non-linkage entry of from into into.
func mergeData(into, from map[string]interface{}) {
	for k, v := range from {
		if isLinkKey(k) {
			continue
		}
		into[k] = v
	}
}

// conflicts reports whether any key present in both maps holds unequal
// values. Keys present on a single side never conflict.
func conflicts(want, have map[string]interface{}) bool {
	for k, v := range want {
		if hv, ok := have[k]; ok && !sameValue(v, hv) {
			return true
		}
	}
	return false
}

// sameValue compares with == when both values are comparable at run
// time, and falls back to reflect.DeepEqual for maps, slices and other
// values that would panic under ==.
func sameValue(a, b interface{}) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Type() != vb.Type() {
		return false
	}
	if va.Comparable() && vb.Comparable() {
		return a == b
	}
	return reflect.DeepEqual(a, b)
}
