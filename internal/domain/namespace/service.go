package namespace

import (
	"context"
	"fmt"
	"sort"

	"github.com/rs/zerolog"

	"github.com/ccdi/federation/internal/domain/entity"
	"github.com/ccdi/federation/internal/platform/apierr"
)

// Namespaces are not stored as nodes. Both queries derive them from the
// compound identifier strings entities carry, split on the dots of
// "org.namespace.name".
const (
	listQuery = `MATCH (n)
WHERE n.identifiers IS NOT NULL
UNWIND n.identifiers AS identifier
WITH split(identifier, '.') AS parts
WHERE size(parts) >= 3
WITH parts[0] AS org, parts[1] AS ns
RETURN DISTINCT org, ns
ORDER BY org, ns`

	detailQuery = `MATCH (n)
WHERE n.identifiers IS NOT NULL
UNWIND n.identifiers AS identifier
WITH split(identifier, '.') AS parts, n
WHERE size(parts) >= 3 AND parts[0] = $org AND parts[1] = $ns
RETURN count(DISTINCT n) AS entity_count, collect(DISTINCT labels(n)) AS entity_types`
)

// Service answers namespace discovery queries against the graph.
type Service struct {
	exec         entity.Executor
	contactEmail string
	log          zerolog.Logger
}

// NewService returns a namespace service. contactEmail is stamped onto
// detail responses and may be empty.
func NewService(exec entity.Executor, contactEmail string, log zerolog.Logger) *Service {
	return &Service{
		exec:         exec,
		contactEmail: contactEmail,
		log:          log.With().Str("entity", "namespace").Logger(),
	}
}

// List returns every organization/namespace pair in ascending order.
func (s *Service) List(ctx context.Context) ([]Namespace, error) {
	rows, err := s.read(ctx, "list", listQuery, nil)
	if err != nil {
		return nil, err
	}

	namespaces := make([]Namespace, 0, len(rows))
	for _, row := range rows {
		org := entity.StringValue(row["org"])
		ns := entity.StringValue(row["ns"])
		if org == "" || ns == "" {
			continue
		}
		namespaces = append(namespaces, Namespace{Organization: org, Name: ns})
	}
	return namespaces, nil
}

// Get returns the detail for one namespace, or NotFound when no entity
// carries an identifier under it.
func (s *Service) Get(ctx context.Context, org, ns string) (Detail, error) {
	rows, err := s.read(ctx, "detail", detailQuery, map[string]any{"org": org, "ns": ns})
	if err != nil {
		return Detail{}, err
	}

	var count int64
	var types []string
	if len(rows) > 0 {
		count = intValue(rows[0]["entity_count"])
		types = labelNames(rows[0]["entity_types"])
	}
	if count == 0 {
		s.log.Warn().Str("org", org).Str("ns", ns).Msg("namespace not found")
		return Detail{}, apierr.NotFound("Namespace", org+"."+ns)
	}

	return Detail{
		Namespace:    Namespace{Organization: org, Name: ns},
		Description:  fmt.Sprintf("Namespace %s in organization %s", ns, org),
		ContactEmail: s.contactEmail,
		EntityCount:  count,
		EntityTypes:  types,
	}, nil
}

func (s *Service) read(ctx context.Context, op, query string, params map[string]any) ([]map[string]any, error) {
	rows, err := s.exec.ReadQuery(ctx, query, params)
	if err != nil {
		s.log.Error().
			Err(err).
			Str("op", op).
			Str("query", query).
			Interface("params", params).
			Msg("graph query failed")
		return nil, apierr.Internal()
	}
	return rows, nil
}

// labelNames flattens collect(DISTINCT labels(n)) output, a list of label
// lists, into sorted unique names.
func labelNames(v any) []string {
	lists, ok := v.([]any)
	if !ok {
		return []string{}
	}
	seen := make(map[string]struct{})
	for _, item := range lists {
		labels, ok := item.([]any)
		if !ok {
			continue
		}
		for _, label := range labels {
			if name := entity.StringValue(label); name != "" {
				seen[name] = struct{}{}
			}
		}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func intValue(v any) int64 {
	switch n := v.(type) {
	case int64:
		return n
	case int:
		return int64(n)
	case float64:
		return int64(n)
	}
	return 0
}
