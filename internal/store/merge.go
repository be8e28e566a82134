package store

// MergeDocuments returns a new document holding dst overlaid with src.
// Nested objects present on both sides are merged recursively; any other
// value from src, arrays included, replaces the one in dst. Neither input is
// modified.
func MergeDocuments(dst, src map[string]any) map[string]any {
	out := cloneMap(dst)
	if out == nil {
		out = make(map[string]any, len(src))
	}
	for k, v := range src {
		srcMap, srcIsMap := v.(map[string]any)
		dstMap, dstIsMap := out[k].(map[string]any)
		if srcIsMap && dstIsMap {
			out[k] = MergeDocuments(dstMap, srcMap)
			continue
		}
		out[k] = cloneValue(v)
	}
	return out
}

func cloneMap(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		return cloneMap(val)
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = cloneValue(item)
		}
		return out
	default:
		return val
	}
}
