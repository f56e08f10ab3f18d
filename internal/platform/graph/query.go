package graph

import (
	"fmt"
	"strings"

	"github.com/ccdi/federation/internal/platform/apierr"
)

// Comparison enumerates the forms a predicate can take.
type Comparison int

const (
	CompareEquals Comparison = iota
	CompareIn
	CompareContains
	CompareCustom
)

// Predicate is one AND-ed WHERE term. Fragment holds the rendered Cypher;
// the remaining fields are metadata for logs and tests.
type Predicate struct {
	Variable string
	Field    string
	Compare  Comparison
	Param    string
	Fragment string
}

// Builder translates a validated FilterSet into predicates and assembles the
// query shapes used by the federation API. Parameter names are numbered
// monotonically so equal field names can never collide; predicate order
// follows FilterSet insertion order, with the diagnosis predicate, when
// present, always first. The emitted text is deterministic for a given
// sequence of calls.
type Builder struct {
	def    Definition
	preds  []Predicate
	params map[string]any
	idx    int
}

// NewBuilder creates a Builder for one entity definition.
func NewBuilder(def Definition) *Builder {
	return &Builder{def: def, params: make(map[string]any)}
}

// AddWhere appends a raw predicate fragment together with its bound
// parameters. The fragment must reference only parameters present in params.
func (b *Builder) AddWhere(fragment string, params map[string]any) {
	b.preds = append(b.preds, Predicate{
		Variable: b.def.Alias,
		Compare:  CompareCustom,
		Fragment: fragment,
	})
	for name, value := range params {
		b.params[name] = value
	}
}

// AddFilter validates field against the allowlist and appends an EQUALS or
// IN predicate with a freshly numbered parameter. Fields under the
// unharmonized prefix are referenced through a bound key parameter, so the
// caller-controlled suffix never reaches the query text.
func (b *Builder) AddFilter(field string, value FilterValue) error {
	if !IsFieldAllowed(b.def.Kind, field) {
		return apierr.UnsupportedField(field, string(b.def.Kind))
	}

	param := fmt.Sprintf("filter_%d", b.idx)
	b.idx++

	ref := b.def.Alias + "." + field
	if IsUnharmonized(field) {
		keyParam := param + "_key"
		b.params[keyParam] = field
		ref = fmt.Sprintf("%s[$%s]", b.def.Alias, keyParam)
	}

	compare, op := CompareEquals, "="
	if value.IsList() {
		compare, op = CompareIn, "IN"
		b.params[param] = value.Values()
	} else {
		b.params[param] = value.Scalar()
	}

	b.preds = append(b.preds, Predicate{
		Variable: b.def.Alias,
		Field:    field,
		Compare:  compare,
		Param:    param,
		Fragment: fmt.Sprintf("%s %s $%s", ref, op, param),
	})
	return nil
}

// ApplyFilters translates a whole FilterSet: the reserved diagnosis search
// key first, rendered as the CUSTOM diagnosis predicate, then every
// remaining field in insertion order.
func (b *Builder) ApplyFilters(filters *FilterSet) error {
	if term, ok := filters.DiagnosisSearch(); ok {
		fragment, params := DiagnosisClause(b.def, term)
		b.AddWhere(fragment, params)
	}
	for _, field := range filters.Fields() {
		if field == DiagnosisSearchKey {
			continue
		}
		value, _ := filters.Get(field)
		if err := b.AddFilter(field, value); err != nil {
			return err
		}
	}
	return nil
}

// Predicates returns the accumulated predicates in emission order.
func (b *Builder) Predicates() []Predicate {
	out := make([]Predicate, len(b.preds))
	copy(out, b.preds)
	return out
}

// Params returns a copy of the accumulated bound parameters.
func (b *Builder) Params() map[string]any {
	return b.queryParams(nil)
}

func (b *Builder) where() string {
	if len(b.preds) == 0 {
		return ""
	}
	fragments := make([]string, len(b.preds))
	for i, p := range b.preds {
		fragments[i] = p.Fragment
	}
	return " WHERE " + strings.Join(fragments, " AND ")
}

func (b *Builder) queryParams(extra map[string]any) map[string]any {
	params := make(map[string]any, len(b.params)+len(extra)+2)
	for name, value := range b.params {
		params[name] = value
	}
	for name, value := range extra {
		params[name] = value
	}
	return params
}

// ListQuery returns the paginated listing query. Offset and limit are bound
// parameters, never interpolated.
func (b *Builder) ListQuery(offset, limit int) (string, map[string]any) {
	query := fmt.Sprintf("MATCH (%s:%s)%s RETURN %s SKIP $skip LIMIT $limit",
		b.def.Alias, b.def.Label, b.where(), b.def.Alias)
	return query, b.queryParams(map[string]any{"skip": offset, "limit": limit})
}

// CountByFieldQuery returns the grouped-count query for field. The caller
// must have validated field against the allowlist; this layer only assembles
// text. Scalar and list property values both unwind into one flat value
// stream, grouped by stringified value and ordered by count descending then
// value ascending.
func (b *Builder) CountByFieldQuery(field string) (string, map[string]any) {
	ref := b.def.Alias + "." + field
	extra := map[string]any{}
	if IsUnharmonized(field) {
		extra["count_field"] = field
		ref = b.def.Alias + "[$count_field]"
	}

	where := fmt.Sprintf(" WHERE %s IS NOT NULL", ref)
	for _, p := range b.preds {
		where += " AND " + p.Fragment
	}

	query := fmt.Sprintf(
		"MATCH (%s:%s)%s UNWIND (CASE WHEN valueType(%s) STARTS WITH 'LIST' THEN %s ELSE [%s] END) AS value WITH toString(value) AS value RETURN value, count(value) AS count ORDER BY count DESC, value ASC",
		b.def.Alias, b.def.Label, where, ref, ref, ref)
	return query, b.queryParams(extra)
}

// SummaryQuery returns the aggregate summary query.
func (b *Builder) SummaryQuery() (string, map[string]any) {
	query := fmt.Sprintf("MATCH (%s:%s)%s RETURN count(%s) AS total_count",
		b.def.Alias, b.def.Label, b.where(), b.def.Alias)
	return query, b.queryParams(nil)
}

// LookupQuery returns the single-entity query for a compound identifier.
// Filters never participate in lookups, so this is a plain function rather
// than a Builder method.
func LookupQuery(def Definition, org, namespace, name string) (string, map[string]any) {
	query := fmt.Sprintf("MATCH (%s:%s) WHERE %s.identifiers CONTAINS $identifier RETURN %s LIMIT 1",
		def.Alias, def.Label, def.Alias, def.Alias)
	return query, map[string]any{"identifier": org + "." + namespace + "." + name}
}

// UnharmonizedKeysQuery returns the query discovering the distinct
// unharmonized property keys present on nodes of a kind, in ascending order.
func UnharmonizedKeysQuery(def Definition) (string, map[string]any) {
	query := fmt.Sprintf(
		"MATCH (%s:%s) UNWIND keys(%s) AS key WITH key WHERE key STARTS WITH $prefix RETURN DISTINCT key ORDER BY key",
		def.Alias, def.Label, def.Alias)
	return query, map[string]any{"prefix": UnharmonizedPrefix}
}
