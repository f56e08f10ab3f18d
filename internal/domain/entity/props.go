package entity

import (
	"sort"
	"strconv"
	"strings"

	"github.com/ccdi/federation/internal/platform/graph"
)

// StringValue coerces a graph property value to a string. Unrepresentable
// values come back empty.
func StringValue(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case nil:
		return ""
	case int64:
		return strconv.FormatInt(s, 10)
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(s)
	default:
		return ""
	}
}

// StringList coerces a graph property value to a list of strings. Scalar
// strings become a single-element list; absent values become an empty list,
// matching the identifier handling of the federation API.
func StringList(v any) []string {
	switch s := v.(type) {
	case string:
		return []string{s}
	case []string:
		out := make([]string, len(s))
		copy(out, s)
		return out
	case []any:
		out := make([]string, 0, len(s))
		for _, item := range s {
			out = append(out, StringValue(item))
		}
		return out
	default:
		return []string{}
	}
}

// ListOrEmpty passes a property value through, substituting an empty list
// for an absent one.
func ListOrEmpty(v any) any {
	if v == nil {
		return []any{}
	}
	return v
}

// MapOrEmpty coerces a property value to a string-keyed map, substituting
// an empty one for absent or non-map values.
func MapOrEmpty(v any) map[string]any {
	if m, ok := v.(map[string]any); ok {
		return m
	}
	return map[string]any{}
}

// CollectExtras splits the node properties a model mapper did not consume
// into the unharmonized metadata block and the ordered additional-fields
// container. Flat properties under the unharmonized prefix are folded into
// the metadata block with the prefix stripped, taking precedence over
// entries nested inside a literal metadata map property. Everything else
// lands in additional fields in sorted name order, so the emitted JSON is
// stable across requests.
func CollectExtras(props map[string]any, known ...string) (*Metadata, *Fields) {
	knownSet := make(map[string]struct{}, len(known)+1)
	knownSet["metadata"] = struct{}{}
	for _, k := range known {
		knownSet[k] = struct{}{}
	}

	unharmonized := map[string]any{}
	metaRest := map[string]any{}
	if m, ok := props["metadata"].(map[string]any); ok {
		for k, v := range m {
			if k == "unharmonized" {
				if um, ok := v.(map[string]any); ok {
					for uk, uv := range um {
						unharmonized[uk] = uv
					}
				}
				continue
			}
			metaRest[k] = v
		}
	}

	names := make([]string, 0, len(props))
	for name := range props {
		if _, ok := knownSet[name]; !ok {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	extras := NewFields()
	for _, name := range names {
		if suffix, ok := strings.CutPrefix(name, graph.UnharmonizedPrefix); ok {
			unharmonized[suffix] = props[name]
			continue
		}
		extras.Set(name, props[name])
	}
	if len(metaRest) > 0 {
		extras.Set("metadata", metaRest)
	}

	var meta *Metadata
	if len(unharmonized) > 0 {
		meta = &Metadata{Unharmonized: unharmonized}
	}
	if extras.Len() == 0 {
		extras = nil
	}
	return meta, extras
}
