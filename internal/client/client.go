package client

import (
	"context"

	"github.com/DjordjeVuckovic/sportsmap/internal/domain"
)

// EntityService is the remote, fallible entity lookup collaborator. Every
// call may fail and is classified through the apperr taxonomy: NotFoundError
// for missing names, DuplicateError for unique-key collisions, AuthError for
// credential failures and TransientError for connectivity problems.
type EntityService interface {
	// List returns every entity of the given type.
	List(ctx context.Context, t domain.EntityType) ([]domain.Entity, error)

	// FindByName returns the entity with an exact case-insensitive name
	// match, or a NotFoundError.
	FindByName(ctx context.Context, t domain.EntityType, name string) (*domain.Entity, error)

	// Create persists a new entity with the given attributes.
	Create(ctx context.Context, t domain.EntityType, attrs map[string]any) (*domain.Entity, error)

	// UpdateByName patches the named entity, or returns a NotFoundError.
	UpdateByName(ctx context.Context, t domain.EntityType, name string, patch map[string]any) (*domain.Entity, error)
}
