package importer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/DjordjeVuckovic/sportsmap/internal/apperr"
	"github.com/DjordjeVuckovic/sportsmap/internal/client"
	"github.com/DjordjeVuckovic/sportsmap/internal/domain"
	"github.com/DjordjeVuckovic/sportsmap/internal/resolve"
	"github.com/DjordjeVuckovic/sportsmap/internal/schema"
	"github.com/DjordjeVuckovic/sportsmap/internal/transform"
	"github.com/DjordjeVuckovic/sportsmap/internal/validate"
)

const (
	defaultMaxAttempts = 3
	defaultBackoff     = 500 * time.Millisecond

	// smallPayloadThreshold marks payloads sparse enough to be treated as
	// updates to an existing entity rather than full creates.
	smallPayloadThreshold = 3
)

// compoundKeys defines the entity types whose uniqueness is a tuple of
// foreign references. A colliding record is a benign skip, not a failure.
var compoundKeys = map[domain.EntityType][]string{
	domain.EntityTypeBroadcastRights: {"entity_type", "entity_id", "broadcast_company_id"},
	domain.EntityTypeGameBroadcast:   {"game_id", "broadcast_company_id"},
}

// Importer drives transform, resolve, validate, duplicate-check and upsert
// for one record at a time.
type Importer struct {
	registry       *schema.Registry
	svc            client.EntityService
	resolver       *resolve.Resolver
	validator      *validate.Validator
	positions      transform.PositionTable
	maxAttempts    int
	backoff        time.Duration
	createDefaults map[domain.EntityType]map[string]any
}

type Option func(*Importer)

// WithRetry bounds transient-failure retries: maxAttempts total tries with
// linear backoff between them.
func WithRetry(maxAttempts int, backoff time.Duration) Option {
	return func(i *Importer) {
		if maxAttempts > 0 {
			i.maxAttempts = maxAttempts
		}
		i.backoff = backoff
	}
}

// WithPositions overrides the standard position table for positional records.
func WithPositions(table transform.PositionTable) Option {
	return func(i *Importer) {
		i.positions = table
	}
}

// WithCreateDefaults supplies the attributes placeholder entities are
// created with, per reference type.
func WithCreateDefaults(defaults map[domain.EntityType]map[string]any) Option {
	return func(i *Importer) {
		i.createDefaults = defaults
	}
}

func NewImporter(registry *schema.Registry, svc client.EntityService, resolver *resolve.Resolver, opts ...Option) *Importer {
	imp := &Importer{
		registry:    registry,
		svc:         svc,
		resolver:    resolver,
		validator:   validate.NewValidator(registry),
		positions:   transform.DefaultPositions(),
		maxAttempts: defaultMaxAttempts,
		backoff:     defaultBackoff,
		createDefaults: map[domain.EntityType]map[string]any{
			domain.EntityTypeBroadcastCompany:  {"type": "Network", "country": "USA"},
			domain.EntityTypeProductionCompany: {},
			domain.EntityTypeBrand:             {"industry": "Media"},
		},
	}
	for _, opt := range opts {
		opt(imp)
	}
	return imp
}

// ImportRecord runs the per-record state machine. Classified failures
// (duplicate, reference-not-found, validation) return immediately; transient
// failures retry with linear backoff until the attempt budget runs out;
// authentication failures abort without consuming the budget.
func (i *Importer) ImportRecord(ctx context.Context, t domain.EntityType, mapping map[string]string, record domain.SourceRecord, updateMode bool) Outcome {
	transformer := transform.NewTransformer(t, transform.WithPositions(i.positions))
	payload := transformer.Transform(mapping, record)

	var outcome Outcome
	for attempt := 1; attempt <= i.maxAttempts; attempt++ {
		var retryable bool
		outcome, retryable = i.attempt(ctx, t, payload.Clone(), updateMode)
		if !retryable {
			return outcome
		}
		if attempt == i.maxAttempts {
			break
		}
		slog.Warn("transient failure, retrying record",
			"entity_type", t,
			"attempt", attempt,
			"max_attempts", i.maxAttempts,
		)
		if err := sleep(ctx, i.backoff*time.Duration(attempt)); err != nil {
			return failureOutcome(CategoryOther, "import cancelled: "+err.Error())
		}
	}
	return outcome
}

// attempt executes one pass of resolve, validate, duplicate-check, upsert.
// The second return value reports whether the failure is worth retrying.
func (i *Importer) attempt(ctx context.Context, t domain.EntityType, payload domain.Payload, updateMode bool) (Outcome, bool) {
	created, brandSubstituted, outcome, retryable, done := i.resolveReferences(ctx, t, payload)
	if done {
		return outcome, retryable
	}

	result := i.validator.Validate(t, payload, updateMode)
	if !result.IsValid {
		outcome = failureOutcome(CategoryValidation, result.Errors...)
		outcome.Created = created
		return outcome, false
	}

	if keyFields, keyed := compoundKeys[t]; keyed {
		duplicate, err := i.findDuplicate(ctx, t, payload, keyFields)
		if err != nil {
			outcome, retryable = i.classifyError(err)
			outcome.Created = created
			return outcome, retryable
		}
		if duplicate {
			return duplicateOutcome(created), false
		}
	}

	entity, err := i.upsert(ctx, t, payload, updateMode)
	if err != nil {
		var de *apperr.DuplicateError
		if errors.As(err, &de) {
			return duplicateOutcome(created), false
		}
		outcome, retryable = i.classifyError(err)
		outcome.Created = created
		return outcome, retryable
	}

	return successOutcome(entity, created, brandSubstituted), false
}

// resolveReferences rewrites every reference field from name to identifier.
// Unresolved names on creatable types become a reference-not-found failure;
// unresolved names on structural types stay in the payload so validation can
// list them with everything else that is wrong.
func (i *Importer) resolveReferences(ctx context.Context, t domain.EntityType, payload domain.Payload) (created []domain.CreatedEntity, brandSubstituted bool, outcome Outcome, retryable bool, done bool) {
	var notFound []string

	for field, refType := range resolve.ReferenceFields(payload) {
		raw := payload.String(field)
		if raw == "" {
			continue
		}

		ref, err := i.resolver.ResolveOrCreate(ctx, refType, raw, i.createDefaults[refType])
		if err != nil {
			outcome, retryable = i.classifyError(err)
			outcome.Created = created
			return created, false, outcome, retryable, true
		}

		if !ref.Resolved() {
			if resolve.Creatable(refType) {
				notFound = append(notFound, fmt.Sprintf("%s %q could not be resolved or created", refType, raw))
			}
			continue
		}

		payload[field] = ref.ID.String()
		switch ref.Source {
		case domain.RefCreatedNew:
			created = append(created, domain.CreatedEntity{Type: refType, Name: ref.DisplayName, ID: ref.ID})
		case domain.RefSubstitutedBrand:
			brandSubstituted = true
		}
	}

	if len(notFound) > 0 {
		outcome = failureOutcome(CategoryNotFound, notFound...)
		outcome.Created = created
		return created, false, outcome, false, true
	}
	return created, brandSubstituted, Outcome{}, false, false
}

// findDuplicate scans existing records for an exact compound-key collision.
func (i *Importer) findDuplicate(ctx context.Context, t domain.EntityType, payload domain.Payload, keyFields []string) (bool, error) {
	existing, err := i.svc.List(ctx, t)
	if err != nil {
		return false, err
	}

	for idx := range existing {
		match := true
		for _, field := range keyFields {
			if payload.String(field) == "" || existing[idx].Attr(field) != payload.String(field) {
				match = false
				break
			}
		}
		if match {
			return true, nil
		}
	}
	return false, nil
}

// upsert prefers update-by-name when the caller asked for updates or the
// payload is sparse; a missing named entity falls through to create. Any
// other update error is fatal for the record.
func (i *Importer) upsert(ctx context.Context, t domain.EntityType, payload domain.Payload, updateMode bool) (*domain.Entity, error) {
	name := payload.String("name")

	if name != "" && (updateMode || len(payload) <= smallPayloadThreshold) {
		entity, err := i.svc.UpdateByName(ctx, t, name, payload)
		if err == nil {
			return entity, nil
		}
		var nfe *apperr.NotFoundError
		if !errors.As(err, &nfe) {
			return nil, err
		}
	}

	return i.svc.Create(ctx, t, payload)
}

// classifyError maps a service error to an outcome plus retryability.
func (i *Importer) classifyError(err error) (Outcome, bool) {
	var ae *apperr.AuthError
	if errors.As(err, &ae) {
		return failureOutcome(CategoryAuth, ae.Message), false
	}
	var ve *apperr.ValidationError
	if errors.As(err, &ve) {
		return failureOutcome(CategoryValidation, ve.Error()), false
	}
	var nfe *apperr.NotFoundError
	if errors.As(err, &nfe) {
		return failureOutcome(CategoryNotFound, nfe.Error()), false
	}
	var te *apperr.TransientError
	if errors.As(err, &te) {
		return failureOutcome(CategoryOther, te.Error()), true
	}
	// Unclassified errors are treated like connectivity problems: retried
	// until the attempt budget runs out, then reported as uncategorized.
	return failureOutcome(CategoryOther, err.Error()), true
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
