package es

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/DjordjeVuckovic/sportsmap/internal/apperr"
	"github.com/DjordjeVuckovic/sportsmap/internal/domain"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types"
	"github.com/google/uuid"
)

const defaultCandidateLimit = 25

// NameIndex backs the reference resolver's candidate retrieval with an
// Elasticsearch name search, so large deployments avoid scanning whole
// entity collections per lookup.
type NameIndex struct {
	client    *elasticsearch.TypedClient
	indexName string
}

// indexDoc is the indexed entity shape. Attributes stay flattened so the
// resolver gets complete entities back without a second fetch.
type indexDoc struct {
	ID         string         `json:"id"`
	Type       string         `json:"type"`
	Name       string         `json:"name"`
	Attributes map[string]any `json:"attributes,omitempty"`
}

func NewNameIndex(config ClientConfig) (*NameIndex, error) {
	client, err := newClient(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create Elasticsearch client: %w", err)
	}

	return &NameIndex{
		client:    client,
		indexName: config.IndexName,
	}, nil
}

// Search retrieves candidate entities whose names fuzzily match the query,
// filtered to the given entity type.
func (n *NameIndex) Search(ctx context.Context, t domain.EntityType, query string) ([]domain.Entity, error) {
	matchQuery := types.Query{
		Bool: &types.BoolQuery{
			Must: []types.Query{
				{
					Match: map[string]types.MatchQuery{
						"name": {Query: query, Fuzziness: "AUTO"},
					},
				},
			},
			Filter: []types.Query{
				{
					Term: map[string]types.TermQuery{
						"type": {Value: string(t)},
					},
				},
			},
		},
	}

	size := defaultCandidateLimit
	res, err := n.client.Search().
		Index(n.indexName).
		Query(&matchQuery).
		Size(size).
		Do(ctx)
	if err != nil {
		return nil, apperr.NewTransient("name index search failed", err)
	}

	entities := make([]domain.Entity, 0, len(res.Hits.Hits))
	for _, hit := range res.Hits.Hits {
		var doc indexDoc
		if err := json.Unmarshal(hit.Source_, &doc); err != nil {
			slog.Warn("skipping malformed name index document", "error", err)
			continue
		}
		id, err := uuid.Parse(doc.ID)
		if err != nil {
			slog.Warn("skipping name index document with invalid id", "id", doc.ID)
			continue
		}
		entities = append(entities, domain.Entity{
			ID:         id,
			Type:       domain.EntityType(doc.Type),
			Name:       doc.Name,
			Attributes: doc.Attributes,
		})
	}

	slog.Debug("name index search completed",
		"type", t,
		"query", query,
		"candidates", len(entities),
	)

	return entities, nil
}

// Index upserts one entity document, keyed by entity id.
func (n *NameIndex) Index(ctx context.Context, entity domain.Entity) error {
	doc := indexDoc{
		ID:         entity.ID.String(),
		Type:       string(entity.Type),
		Name:       entity.Name,
		Attributes: entity.Attributes,
	}

	res, err := n.client.Index(n.indexName).Id(doc.ID).Document(doc).Do(ctx)
	if err != nil {
		return apperr.NewTransient("failed to index entity document", err)
	}

	slog.Debug("entity document indexed", "id", doc.ID, "index", n.indexName, "result", res.Result)
	return nil
}
