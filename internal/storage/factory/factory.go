package factory

import (
	"context"
	"fmt"

	"github.com/DjordjeVuckovic/sportsmap/internal/client"
	"github.com/DjordjeVuckovic/sportsmap/internal/resolve"
	"github.com/DjordjeVuckovic/sportsmap/internal/storage/es"
	"github.com/DjordjeVuckovic/sportsmap/internal/storage/in_mem"
	"github.com/DjordjeVuckovic/sportsmap/internal/storage/pg"
)

// NewEntityService creates the entity lookup service backend from config.
func NewEntityService(ctx context.Context, cfg *ServiceConfig) (client.EntityService, error) {
	switch cfg.Type {
	case ServiceTypeRest:
		if cfg.Rest == nil {
			return nil, fmt.Errorf("rest entity service requires a rest config")
		}
		return client.NewRestClient(cfg.Rest.BaseURL, client.WithToken(cfg.Rest.Token))

	case ServiceTypePg:
		if cfg.Pg == nil {
			return nil, fmt.Errorf("pg entity service requires a pg config")
		}
		pool, err := pg.NewConnectionPool(ctx, *cfg.Pg)
		if err != nil {
			return nil, fmt.Errorf("failed to create PostgreSQL connection pool: %w", err)
		}
		return pg.NewEntityStore(pool), nil

	case ServiceTypeInMem:
		return in_mem.NewInMemService(), nil

	default:
		return nil, fmt.Errorf("unsupported entity service type: %s", cfg.Type)
	}
}

// NewNameIndex creates the optional resolver name index. Returns nil when
// the config carries no Elasticsearch section.
func NewNameIndex(cfg *ServiceConfig) (resolve.NameIndex, error) {
	if cfg.Es == nil {
		return nil, nil
	}
	return es.NewNameIndex(*cfg.Es)
}
