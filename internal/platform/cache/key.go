package cache

import (
	"net/url"
	"sort"
	"strings"

	"github.com/ccdi/federation/internal/platform/graph"
)

// BuildKey derives the cache key for an aggregate operation from the
// operation name, the optional grouping field, and the filter set. Filter
// items are sorted by field name before joining, so two logically identical
// filter sets key identically no matter how their query strings were
// ordered. Field names and values are escaped so separator characters inside
// values cannot collide with the key structure.
func BuildKey(operation, field string, filters *graph.FilterSet) string {
	items := make([]string, 0, filters.Len())
	for _, name := range filters.Fields() {
		value, _ := filters.Get(name)
		items = append(items, url.QueryEscape(name)+":"+escapeValues(value))
	}
	sort.Strings(items)
	filterStr := strings.Join(items, "|")

	if field != "" {
		return operation + ":" + field + ":" + filterStr
	}
	return operation + ":" + filterStr
}

func escapeValues(v graph.FilterValue) string {
	if !v.IsList() {
		return url.QueryEscape(v.Scalar())
	}
	values := v.Values()
	escaped := make([]string, len(values))
	for i, value := range values {
		escaped[i] = url.QueryEscape(value)
	}
	return strings.Join(escaped, ",")
}
