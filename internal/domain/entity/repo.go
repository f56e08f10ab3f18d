package entity

import (
	"context"
	"sort"

	"github.com/rs/zerolog"

	"github.com/ccdi/federation/internal/platform/apierr"
	"github.com/ccdi/federation/internal/platform/graph"
)

// Executor runs read-only queries against the property graph. db.Graph
// satisfies it; tests substitute fakes.
type Executor interface {
	ReadQuery(ctx context.Context, query string, params map[string]any) ([]map[string]any, error)
}

// Unharmonized filter keys longer than this are still accepted, but logged
// as anomalies.
const maxFilterKeyLen = 256

// Repository executes the federation query shapes for one entity kind and
// maps result rows into domain models through fromProps. All three kinds
// share this one implementation; only the definition and the mapper differ.
type Repository[T any] struct {
	def       graph.Definition
	exec      Executor
	fromProps func(map[string]any) T
	log       zerolog.Logger
}

// NewRepository builds a repository for kind. fromProps receives the raw
// node property map of each matched node.
func NewRepository[T any](kind graph.Kind, exec Executor, fromProps func(map[string]any) T, log zerolog.Logger) *Repository[T] {
	return &Repository[T]{
		def:       graph.Def(kind),
		exec:      exec,
		fromProps: fromProps,
		log:       log.With().Str("entity", string(kind)).Logger(),
	}
}

// List returns one page of entities matching filters.
func (r *Repository[T]) List(ctx context.Context, filters *graph.FilterSet, offset, limit int) ([]T, error) {
	b := graph.NewBuilder(r.def)
	if err := b.ApplyFilters(filters); err != nil {
		return nil, err
	}
	r.noteAnomalies(filters)

	query, params := b.ListQuery(offset, limit)
	rows, err := r.read(ctx, "list", query, params)
	if err != nil {
		return nil, err
	}

	out := make([]T, 0, len(rows))
	for _, row := range rows {
		props, ok := row[r.def.Alias].(map[string]any)
		if !ok {
			continue
		}
		out = append(out, r.fromProps(props))
	}
	return out, nil
}

// FindByIdentifier returns the entity addressed by id, or found=false when
// no node carries the identifier.
func (r *Repository[T]) FindByIdentifier(ctx context.Context, id Identifier) (T, bool, error) {
	var zero T

	query, params := graph.LookupQuery(r.def, id.Organization, id.Namespace, id.Name)
	rows, err := r.read(ctx, "lookup", query, params)
	if err != nil {
		return zero, false, err
	}
	if len(rows) == 0 {
		return zero, false, nil
	}
	props, ok := rows[0][r.def.Alias].(map[string]any)
	if !ok {
		return zero, false, nil
	}
	return r.fromProps(props), true, nil
}

// CountByField returns the grouped counts of field across entities matching
// filters. The field must be on the allowlist or under the unharmonized
// prefix.
func (r *Repository[T]) CountByField(ctx context.Context, field string, filters *graph.FilterSet) ([]CountResult, error) {
	if !graph.IsFieldAllowed(r.def.Kind, field) {
		return nil, apierr.UnsupportedField(field, string(r.def.Kind))
	}

	b := graph.NewBuilder(r.def)
	if err := b.ApplyFilters(filters); err != nil {
		return nil, err
	}
	r.noteAnomalies(filters)

	query, params := b.CountByFieldQuery(field)
	rows, err := r.read(ctx, "count", query, params)
	if err != nil {
		return nil, err
	}

	counts := make([]CountResult, 0, len(rows))
	for _, row := range rows {
		counts = append(counts, CountResult{
			Value: StringValue(row["value"]),
			Count: intValue(row["count"]),
		})
	}
	// Order is part of the response contract: count descending, then value
	// ascending.
	sort.SliceStable(counts, func(i, j int) bool {
		if counts[i].Count != counts[j].Count {
			return counts[i].Count > counts[j].Count
		}
		return counts[i].Value < counts[j].Value
	})
	return counts, nil
}

// Summary returns the total number of entities matching filters.
func (r *Repository[T]) Summary(ctx context.Context, filters *graph.FilterSet) (SummaryResponse, error) {
	b := graph.NewBuilder(r.def)
	if err := b.ApplyFilters(filters); err != nil {
		return SummaryResponse{}, err
	}
	r.noteAnomalies(filters)

	query, params := b.SummaryQuery()
	rows, err := r.read(ctx, "summary", query, params)
	if err != nil {
		return SummaryResponse{}, err
	}
	if len(rows) == 0 {
		return SummaryResponse{}, nil
	}
	return SummaryResponse{TotalCount: intValue(rows[0]["total_count"])}, nil
}

// read runs one query and translates failure into an opaque internal error.
// The query text and bound parameters go to the log only, never to the
// client.
func (r *Repository[T]) read(ctx context.Context, op, query string, params map[string]any) ([]map[string]any, error) {
	rows, err := r.exec.ReadQuery(ctx, query, params)
	if err != nil {
		r.log.Error().
			Err(err).
			Str("op", op).
			Str("query", query).
			Interface("params", params).
			Msg("graph query failed")
		return nil, apierr.Internal()
	}
	return rows, nil
}

func (r *Repository[T]) noteAnomalies(filters *graph.FilterSet) {
	for _, field := range filters.Fields() {
		if graph.IsUnharmonized(field) && len(field) > maxFilterKeyLen {
			r.log.Warn().
				Int("length", len(field)).
				Str("field", field[:maxFilterKeyLen]).
				Msg("oversized unharmonized filter key")
		}
	}
}

func intValue(v any) int64 {
	switch n := v.(type) {
	case int64:
		return n
	case int:
		return int64(n)
	case float64:
		return int64(n)
	default:
		return 0
	}
}
