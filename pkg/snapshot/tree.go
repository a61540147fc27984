package snapshot

import (
	"fmt"
	"strings"
)

// Lookup walks nested mappings along path and returns the value found.
func Lookup(t Tree, path ...string) (any, bool) {
	cur := t
	for _, key := range path {
		switch m := cur.(type) {
		case map[string]any:
			v, ok := m[key]
			if !ok {
				return nil, false
			}
			cur = v
		case map[any]any:
			v, ok := m[key]
			if !ok {
				return nil, false
			}
			cur = v
		default:
			return nil, false
		}
	}
	return cur, true
}

// LookupString returns the value at path formatted as a string, or "" when
// the path is missing or holds a collection.
func LookupString(t Tree, path ...string) string {
	v, ok := Lookup(t, path...)
	if !ok || v == nil {
		return ""
	}
	switch s := v.(type) {
	case string:
		return s
	case map[string]any, map[any]any, []any:
		return ""
	default:
		return fmt.Sprint(s)
	}
}

// Items returns the objects held by a document. List kinds ("PodList",
// "List", ...) yield their items; any other mapping is returned on its own.
func Items(t Tree) []Tree {
	if t == nil {
		return nil
	}
	if strings.HasSuffix(LookupString(t, "kind"), "List") {
		if items, ok := Lookup(t, "items"); ok {
			list, _ := items.([]any)
			return list
		}
		return nil
	}
	return []Tree{t}
}

// Normalize returns a copy of t in which every mapping is a map[string]any,
// so the tree can be encoded as JSON. Non-string keys are formatted with
// fmt.Sprint.
func Normalize(t Tree) Tree {
	switch v := t.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, val := range v {
			out[k] = Normalize(val)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(v))
		for k, val := range v {
			out[fmt.Sprint(k)] = Normalize(val)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, val := range v {
			out[i] = Normalize(val)
		}
		return out
	default:
		return v
	}
}
