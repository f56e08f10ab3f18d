package meta

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/ccdi/federation/internal/domain/entity"
	"github.com/ccdi/federation/internal/platform/apierr"
	"github.com/ccdi/federation/internal/platform/graph"
)

// Service answers metadata field queries. Unlike the static placeholder
// lists some federation nodes publish, unharmonized names are discovered
// from the graph so the response always reflects the data actually loaded.
type Service struct {
	exec entity.Executor
	log  zerolog.Logger
}

func NewService(exec entity.Executor, log zerolog.Logger) *Service {
	return &Service{exec: exec, log: log.With().Str("component", "metadata").Logger()}
}

// FieldsFor returns the filterable fields for one entity kind.
func (s *Service) FieldsFor(ctx context.Context, kind graph.Kind) (FieldsResponse, error) {
	query, params := graph.UnharmonizedKeysQuery(graph.Def(kind))
	rows, err := s.exec.ReadQuery(ctx, query, params)
	if err != nil {
		s.log.Error().
			Err(err).
			Str("op", "fields").
			Str("query", query).
			Interface("params", params).
			Msg("graph query failed")
		return FieldsResponse{}, apierr.Internal()
	}

	unharmonized := make([]string, 0, len(rows))
	for _, row := range rows {
		if key := entity.StringValue(row["key"]); key != "" {
			unharmonized = append(unharmonized, key)
		}
	}

	return FieldsResponse{
		Harmonized:   graph.HarmonizedFields(kind),
		Unharmonized: unharmonized,
	}, nil
}
