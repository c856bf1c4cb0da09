package resolve

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/DjordjeVuckovic/sportsmap/internal/apperr"
	"github.com/DjordjeVuckovic/sportsmap/internal/client"
	"github.com/DjordjeVuckovic/sportsmap/internal/domain"
	"github.com/google/uuid"
)

// minFuzzyLen guards the substring fallback: very short names match far too
// much to trust a partial match.
const minFuzzyLen = 4

// companyRoleAttr flags a brand that also operates as a broadcaster, letting
// it stand in for a dedicated broadcast company record.
const companyRoleAttr = "company_type"

// NameIndex retrieves candidate entities for a name query. The Elasticsearch
// implementation narrows the candidate set server-side; without one the
// resolver scans the full collection from the entity service.
type NameIndex interface {
	Search(ctx context.Context, t domain.EntityType, query string) ([]domain.Entity, error)
}

// EntityIndexer is implemented by name indexes that accept writes. Created
// placeholder entities are indexed so later records in the same run can find
// them by name.
type EntityIndexer interface {
	Index(ctx context.Context, entity domain.Entity) error
}

// Resolver turns human-readable names into opaque entity identifiers.
type Resolver struct {
	svc   client.EntityService
	index NameIndex
}

type Option func(*Resolver)

// WithNameIndex enables index-backed candidate retrieval.
func WithNameIndex(index NameIndex) Option {
	return func(r *Resolver) {
		r.index = index
	}
}

func NewResolver(svc client.EntityService, opts ...Option) *Resolver {
	r := &Resolver{svc: svc}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve maps a raw reference value to an identifier. Identifier-shaped
// values pass through without any lookup. Unresolvable names yield the
// unresolved sentinel, never an error; only auth and transient failures
// propagate so the importer can abort or retry.
func (r *Resolver) Resolve(ctx context.Context, t domain.EntityType, raw string) (domain.ResolvedReference, error) {
	name := strings.TrimSpace(raw)
	if name == "" {
		return domain.UnresolvedReference(""), nil
	}

	if domain.IsIdentifier(name) {
		id, err := uuid.Parse(name)
		if err != nil {
			return domain.UnresolvedReference(name), nil
		}
		return domain.ResolvedReference{ID: id, Source: domain.RefDirect, DisplayName: name}, nil
	}

	entity, err := r.lookup(ctx, t, name)
	if err != nil {
		return domain.UnresolvedReference(name), err
	}
	if entity != nil {
		return domain.ResolvedReference{ID: entity.ID, Source: domain.RefResolvedByName, DisplayName: entity.Name}, nil
	}

	// A broadcaster reference may resolve to a brand carrying a company
	// role when no dedicated company record exists.
	if t == domain.EntityTypeBroadcastCompany {
		brand, err := r.lookupBrandWithCompanyRole(ctx, name)
		if err != nil {
			return domain.UnresolvedReference(name), err
		}
		if brand != nil {
			slog.Debug("brand substituted for broadcast company", "name", brand.Name)
			return domain.ResolvedReference{ID: brand.ID, Source: domain.RefSubstitutedBrand, DisplayName: brand.Name}, nil
		}
	}

	return domain.UnresolvedReference(name), nil
}

// ResolveOrCreate resolves a name, creating a minimal placeholder entity of
// the target type when nothing matches and the type permits creation.
// Defaults supply the placeholder's non-name attributes.
func (r *Resolver) ResolveOrCreate(ctx context.Context, t domain.EntityType, raw string, defaults map[string]any) (domain.ResolvedReference, error) {
	ref, err := r.Resolve(ctx, t, raw)
	if err != nil || ref.Resolved() {
		return ref, err
	}
	if ref.DisplayName == "" || !Creatable(t) {
		return ref, nil
	}

	attrs := make(map[string]any, len(defaults)+1)
	for k, v := range defaults {
		attrs[k] = v
	}
	attrs["name"] = ref.DisplayName

	entity, err := r.svc.Create(ctx, t, attrs)
	if err != nil {
		var de *apperr.DuplicateError
		if errors.As(err, &de) {
			// Lost a create race; the entity exists now.
			if existing, findErr := r.svc.FindByName(ctx, t, ref.DisplayName); findErr == nil {
				return domain.ResolvedReference{ID: existing.ID, Source: domain.RefResolvedByName, DisplayName: existing.Name}, nil
			}
			return domain.UnresolvedReference(ref.DisplayName), nil
		}
		var ae *apperr.AuthError
		var te *apperr.TransientError
		if errors.As(err, &ae) || errors.As(err, &te) {
			return domain.UnresolvedReference(ref.DisplayName), err
		}
		slog.Warn("failed to create placeholder entity", "type", t, "name", ref.DisplayName, "error", err)
		return domain.UnresolvedReference(ref.DisplayName), nil
	}

	slog.Info("created placeholder entity for unresolved reference", "type", t, "name", entity.Name, "id", entity.ID)
	if indexer, ok := r.index.(EntityIndexer); ok {
		if indexErr := indexer.Index(ctx, *entity); indexErr != nil {
			slog.Warn("failed to index created entity", "type", t, "name", entity.Name, "error", indexErr)
		}
	}
	return domain.ResolvedReference{ID: entity.ID, Source: domain.RefCreatedNew, DisplayName: entity.Name}, nil
}

// lookup walks the matching ladder: service-side exact match, then a
// candidate scan (exact, then bidirectional substring), then a retry with
// the base name before any parenthesis, which handles "Team Name (City)"
// style labels.
func (r *Resolver) lookup(ctx context.Context, t domain.EntityType, name string) (*domain.Entity, error) {
	entity, err := r.svc.FindByName(ctx, t, name)
	if err == nil {
		return entity, nil
	}
	if !isNotFound(err) {
		return nil, err
	}

	candidates, err := r.candidates(ctx, t, name)
	if err != nil {
		return nil, err
	}
	if match := bestMatch(candidates, name); match != nil {
		return match, nil
	}

	if idx := strings.Index(name, "("); idx > 0 {
		base := strings.TrimSpace(name[:idx])
		if base != "" && base != name {
			return r.lookup(ctx, t, base)
		}
	}

	return nil, nil
}

func (r *Resolver) candidates(ctx context.Context, t domain.EntityType, name string) ([]domain.Entity, error) {
	if r.index != nil {
		return r.index.Search(ctx, t, name)
	}
	return r.svc.List(ctx, t)
}

func (r *Resolver) lookupBrandWithCompanyRole(ctx context.Context, name string) (*domain.Entity, error) {
	brand, err := r.lookup(ctx, domain.EntityTypeBrand, name)
	if err != nil || brand == nil {
		return nil, err
	}
	if brand.Attr(companyRoleAttr) == "" {
		return nil, nil
	}
	return brand, nil
}

// bestMatch scans candidates for an exact case-insensitive name match, then
// for a bidirectional substring match when the query is long enough.
func bestMatch(candidates []domain.Entity, name string) *domain.Entity {
	lowerName := strings.ToLower(name)

	for i := range candidates {
		if strings.EqualFold(candidates[i].Name, name) {
			return &candidates[i]
		}
	}

	if len(name) < minFuzzyLen {
		return nil
	}
	for i := range candidates {
		candidate := strings.ToLower(candidates[i].Name)
		if candidate == "" {
			continue
		}
		if strings.Contains(candidate, lowerName) || strings.Contains(lowerName, candidate) {
			return &candidates[i]
		}
	}
	return nil
}

func isNotFound(err error) bool {
	var nfe *apperr.NotFoundError
	return errors.As(err, &nfe)
}
