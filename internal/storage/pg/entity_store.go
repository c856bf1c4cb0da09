package pg

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/DjordjeVuckovic/sportsmap/internal/apperr"
	"github.com/DjordjeVuckovic/sportsmap/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const uniqueViolation = "23505"

// EntityStore is a Postgres-backed EntityService for self-hosted
// deployments. All entity types share one table; non-identity fields live
// in a jsonb attributes column.
type EntityStore struct {
	db *pgxpool.Pool
}

func NewEntityStore(pool *ConnectionPool) *EntityStore {
	return &EntityStore{db: pool.conn}
}

func (s *EntityStore) List(ctx context.Context, t domain.EntityType) ([]domain.Entity, error) {
	query := `
        SELECT id, type, name, attributes
        FROM entities
        WHERE type = $1
        ORDER BY name;
    `
	rows, err := s.db.Query(ctx, query, string(t))
	if err != nil {
		return nil, classifyPgError("failed to list entities", err)
	}
	defer rows.Close()

	var entities []domain.Entity
	for rows.Next() {
		entity, err := scanEntity(rows)
		if err != nil {
			return nil, err
		}
		entities = append(entities, entity)
	}
	return entities, rows.Err()
}

func (s *EntityStore) FindByName(ctx context.Context, t domain.EntityType, name string) (*domain.Entity, error) {
	query := `
        SELECT id, type, name, attributes
        FROM entities
        WHERE type = $1 AND lower(name) = lower($2);
    `
	row := s.db.QueryRow(ctx, query, string(t), name)
	entity, err := scanEntity(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NewNotFound(string(t), name)
		}
		return nil, classifyPgError("failed to find entity by name", err)
	}
	return &entity, nil
}

func (s *EntityStore) Create(ctx context.Context, t domain.EntityType, attrs map[string]any) (*domain.Entity, error) {
	name, _ := attrs["name"].(string)
	attrsJSON, err := json.Marshal(attrs)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal attributes: %w", err)
	}

	query := `
        INSERT INTO entities (id, type, name, attributes)
        VALUES ($1, $2, $3, $4)
        RETURNING id, type, name, attributes;
    `
	row := s.db.QueryRow(ctx, query, uuid.New(), string(t), name, attrsJSON)
	entity, err := scanEntity(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, apperr.NewDuplicate(fmt.Sprintf("%s %q already exists", t, name))
		}
		return nil, classifyPgError("failed to create entity", err)
	}
	return &entity, nil
}

func (s *EntityStore) UpdateByName(ctx context.Context, t domain.EntityType, name string, patch map[string]any) (*domain.Entity, error) {
	newName, _ := patch["name"].(string)
	patchJSON, err := json.Marshal(patch)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal patch: %w", err)
	}

	query := `
        UPDATE entities
        SET name = COALESCE(NULLIF($3, ''), name),
            attributes = attributes || $4
        WHERE type = $1 AND lower(name) = lower($2)
        RETURNING id, type, name, attributes;
    `
	row := s.db.QueryRow(ctx, query, string(t), name, newName, patchJSON)
	entity, err := scanEntity(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NewNotFound(string(t), name)
		}
		return nil, classifyPgError("failed to update entity", err)
	}
	return &entity, nil
}

func scanEntity(row pgx.Row) (domain.Entity, error) {
	var (
		entity    domain.Entity
		entType   string
		attrsJSON []byte
	)
	if err := row.Scan(&entity.ID, &entType, &entity.Name, &attrsJSON); err != nil {
		return domain.Entity{}, err
	}
	entity.Type = domain.EntityType(entType)
	if len(attrsJSON) > 0 {
		if err := json.Unmarshal(attrsJSON, &entity.Attributes); err != nil {
			return domain.Entity{}, fmt.Errorf("failed to unmarshal attributes: %w", err)
		}
	}
	return entity, nil
}

// classifyPgError keeps connectivity problems retriable for the importer.
func classifyPgError(msg string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return fmt.Errorf("%s: %w", msg, err)
	}
	return apperr.NewTransient(msg, err)
}
