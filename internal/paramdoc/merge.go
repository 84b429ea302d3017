package paramdoc

// Merge implements a recursive-update deep merge: keys unique to
// either side survive, keys common to both whose values are both
// mappings recurse, and otherwise the value from src wins. Lists are
// replaced atomically, never concatenated. The defaults source (base)
// is deep-copied first so the result never aliases mutable structure
// from it, matching mqparams.py's deepcopy-then-rec_update sequence.
// Merge("default" preset, nil) simply returns a clone of the preset.
func Merge(base, src map[string]interface{}) map[string]interface{} {
	dst := deepCopyMap(base)
	if src == nil {
		return dst
	}
	recUpdate(dst, src)
	return dst
}

func recUpdate(dst, src map[string]interface{}) {
	for k, v := range src {
		if vm, ok := v.(map[string]interface{}); ok {
			dm, ok := dst[k].(map[string]interface{})
			if !ok {
				dm = map[string]interface{}{}
			}
			recUpdate(dm, vm)
			dst[k] = dm
		} else {
			dst[k] = deepCopyValue(v)
		}
	}
}

func deepCopyMap(m map[string]interface{}) map[string]interface{} {
	if m == nil {
		return map[string]interface{}{}
	}
	out := make(map[string]interface{}, len(m))
	for k, v := range m {
		out[k] = deepCopyValue(v)
	}
	return out
}

func deepCopyValue(v interface{}) interface{} {
	switch x := v.(type) {
	case map[string]interface{}:
		return deepCopyMap(x)
	case []string:
		out := make([]string, len(x))
		copy(out, x)
		return out
	case [][]string:
		out := make([][]string, len(x))
		for i, inner := range x {
			c := make([]string, len(inner))
			copy(c, inner)
			out[i] = c
		}
		return out
	case []map[string]interface{}:
		out := make([]map[string]interface{}, len(x))
		for i, inner := range x {
			out[i] = deepCopyMap(inner)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(x))
		for i, inner := range x {
			out[i] = deepCopyValue(inner)
		}
		return out
	default:
		// Scalars (string, bool, int, float64) are copied by value
		// through the interface assignment itself.
		return x
	}
}
