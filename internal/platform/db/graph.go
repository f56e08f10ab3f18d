package db

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// Graph wraps a bolt driver for the metadata graph. Memgraph speaks the
// bolt protocol, so the standard neo4j driver works against it unchanged.
type Graph struct {
	driver   neo4j.DriverWithContext
	database string
}

func NewGraph(ctx context.Context, uri, username, password, database string) (*Graph, error) {
	var auth neo4j.AuthToken
	if username != "" {
		auth = neo4j.BasicAuth(username, password, "")
	} else {
		auth = neo4j.NoAuth()
	}

	driver, err := neo4j.NewDriverWithContext(uri, auth)
	if err != nil {
		return nil, fmt.Errorf("create graph driver: %w", err)
	}

	if err := driver.VerifyConnectivity(ctx); err != nil {
		driver.Close(ctx)
		return nil, fmt.Errorf("verify graph connectivity: %w", err)
	}

	return &Graph{driver: driver, database: database}, nil
}

// ReadQuery runs a read transaction and returns one map per result record.
// Node values are flattened to their property maps so callers never see
// driver types.
func (g *Graph) ReadQuery(ctx context.Context, query string, params map[string]any) ([]map[string]any, error) {
	session := g.driver.NewSession(ctx, neo4j.SessionConfig{
		AccessMode:   neo4j.AccessModeRead,
		DatabaseName: g.database,
	})
	defer session.Close(ctx)

	result, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, query, params)
		if err != nil {
			return nil, err
		}
		return res.Collect(ctx)
	})
	if err != nil {
		return nil, fmt.Errorf("run read query: %w", err)
	}

	records := result.([]*neo4j.Record)
	rows := make([]map[string]any, 0, len(records))
	for _, rec := range records {
		row := make(map[string]any, len(rec.Keys))
		for i, key := range rec.Keys {
			row[key] = flattenValue(rec.Values[i])
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func flattenValue(value any) any {
	switch v := value.(type) {
	case neo4j.Node:
		return v.Props
	case []any:
		flat := make([]any, len(v))
		for i, item := range v {
			flat[i] = flattenValue(item)
		}
		return flat
	default:
		return value
	}
}

func (g *Graph) Ping(ctx context.Context) error {
	return g.driver.VerifyConnectivity(ctx)
}

func (g *Graph) Close(ctx context.Context) error {
	return g.driver.Close(ctx)
}
