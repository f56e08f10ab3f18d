package entity

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/ccdi/federation/internal/platform/apierr"
	"github.com/ccdi/federation/internal/platform/cache"
	"github.com/ccdi/federation/internal/platform/graph"
	"github.com/ccdi/federation/pkg/pagination"
)

// Repo is the repository surface the service drives. Repository satisfies
// it; tests substitute fakes.
type Repo[T any] interface {
	List(ctx context.Context, filters *graph.FilterSet, offset, limit int) ([]T, error)
	FindByIdentifier(ctx context.Context, id Identifier) (T, bool, error)
	CountByField(ctx context.Context, field string, filters *graph.FilterSet) ([]CountResult, error)
	Summary(ctx context.Context, filters *graph.FilterSet) (SummaryResponse, error)
}

// Cache is the slice of the response cache the service uses. A nil Cache
// disables caching entirely.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration)
}

// Config carries the entity-service knobs from application configuration.
// DefaultPerPage is consumed by the handler layer when the request names no
// page size.
type Config struct {
	DefaultPerPage     int
	MaxPerPage         int
	CountTTL           time.Duration
	SummaryTTL         time.Duration
	ShareLineLevelData bool
}

// Service implements the operations shared by subjects, samples and files:
// paginated listing, identifier lookup, grouped counts and summaries.
// Count and summary responses are cached; list and lookup responses never
// are, so line-level data does not sit in the cache.
type Service[T any] struct {
	def   graph.Definition
	repo  Repo[T]
	cache Cache
	cfg   Config
	log   zerolog.Logger
}

func NewService[T any](kind graph.Kind, repo Repo[T], c Cache, cfg Config, log zerolog.Logger) *Service[T] {
	return &Service[T]{
		def:   graph.Def(kind),
		repo:  repo,
		cache: c,
		cfg:   cfg,
		log:   log.With().Str("entity", string(kind)).Logger(),
	}
}

// List returns one page of entities matching filters plus the pagination
// block derived from the returned page.
func (s *Service[T]) List(ctx context.Context, filters *graph.FilterSet, page pagination.Request) ([]T, pagination.Info, error) {
	if !s.cfg.ShareLineLevelData {
		return nil, pagination.Info{}, apierr.UnshareableData(s.titledPlural())
	}

	limit := page.Limit()
	if s.cfg.MaxPerPage > 0 && limit > s.cfg.MaxPerPage {
		s.log.Debug().
			Int("requested", limit).
			Int("max_allowed", s.cfg.MaxPerPage).
			Msg("limiting page size")
		limit = s.cfg.MaxPerPage
	}

	items, err := s.repo.List(ctx, filters, page.Offset(), limit)
	if err != nil {
		return nil, pagination.Info{}, err
	}
	return items, pagination.InfoForPage(page, len(items)), nil
}

// Get returns the entity addressed by id.
func (s *Service[T]) Get(ctx context.Context, id Identifier) (T, error) {
	var zero T
	if err := validateIdentifier(s.def.Label, id); err != nil {
		return zero, err
	}
	if !s.cfg.ShareLineLevelData {
		return zero, apierr.UnshareableData(s.titledPlural())
	}

	item, found, err := s.repo.FindByIdentifier(ctx, id)
	if err != nil {
		return zero, err
	}
	if !found {
		s.log.Warn().Str("identifier", id.String()).Msg("entity not found")
		return zero, apierr.NotFound(s.def.Label, id.String())
	}
	return item, nil
}

// CountByField returns grouped counts of field across entities matching
// filters, serving from the cache when a fresh entry exists.
func (s *Service[T]) CountByField(ctx context.Context, field string, filters *graph.FilterSet) (CountResponse, error) {
	key := cache.BuildKey(string(s.def.Kind)+"_count", field, filters)
	if resp, ok := cached[CountResponse](ctx, s.cache, s.log, key); ok {
		s.log.Debug().Str("field", field).Msg("returning cached count")
		return resp, nil
	}

	counts, err := s.repo.CountByField(ctx, field, filters)
	if err != nil {
		return CountResponse{}, err
	}
	resp := CountResponse{Field: field, Counts: counts}
	s.store(ctx, key, resp, s.cfg.CountTTL)
	return resp, nil
}

// Summary returns the aggregate summary for entities matching filters,
// serving from the cache when a fresh entry exists.
func (s *Service[T]) Summary(ctx context.Context, filters *graph.FilterSet) (SummaryResponse, error) {
	key := cache.BuildKey(string(s.def.Kind)+"_summary", "", filters)
	if resp, ok := cached[SummaryResponse](ctx, s.cache, s.log, key); ok {
		s.log.Debug().Msg("returning cached summary")
		return resp, nil
	}

	resp, err := s.repo.Summary(ctx, filters)
	if err != nil {
		return SummaryResponse{}, err
	}
	s.store(ctx, key, resp, s.cfg.SummaryTTL)
	return resp, nil
}

func (s *Service[T]) store(ctx context.Context, key string, value any, ttl time.Duration) {
	if s.cache == nil || ctx.Err() != nil {
		return
	}
	s.cache.Set(ctx, key, value, ttl)
}

func (s *Service[T]) titledPlural() string {
	p := s.def.Plural
	if p == "" {
		return ""
	}
	return strings.ToUpper(p[:1]) + p[1:]
}

// cached fetches and decodes one cache entry. Entries that no longer decode
// into R are treated as misses so a recompute overwrites them.
func cached[R any](ctx context.Context, c Cache, log zerolog.Logger, key string) (R, bool) {
	var out R
	if c == nil {
		return out, false
	}
	raw, ok := c.Get(ctx, key)
	if !ok {
		return out, false
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("discarding undecodable cache entry")
		return out, false
	}
	return out, true
}

var identifierSeparators = []string{".", "/", "\\", " "}

// validateIdentifier applies the compound-identifier rules: no empty or
// whitespace-only parts, and no characters that would collide with the
// dotted identifier encoding or the URL path.
func validateIdentifier(label string, id Identifier) error {
	if strings.TrimSpace(id.Organization) == "" {
		return apierr.Validation("Organization identifier cannot be empty")
	}
	if strings.TrimSpace(id.Namespace) == "" {
		return apierr.Validation("Namespace identifier cannot be empty")
	}
	if strings.TrimSpace(id.Name) == "" {
		return apierr.Validation(label + " name cannot be empty")
	}
	parts := []struct {
		name  string
		value string
	}{
		{"org", id.Organization},
		{"ns", id.Namespace},
		{"name", id.Name},
	}
	for _, part := range parts {
		for _, sep := range identifierSeparators {
			if strings.Contains(part.value, sep) {
				return apierr.Validation(fmt.Sprintf("Invalid characters in %s: %s", part.name, part.value))
			}
		}
	}
	return nil
}
