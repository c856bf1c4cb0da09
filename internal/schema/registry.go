package schema

import (
	"fmt"
	"io"

	"github.com/DjordjeVuckovic/sportsmap/internal/apperr"
	"github.com/DjordjeVuckovic/sportsmap/internal/domain"
	"gopkg.in/yaml.v3"
)

// Definition describes one target entity type: its identifier, display name
// and the ordered list of fields a full create must supply.
type Definition struct {
	ID             domain.EntityType `json:"id" yaml:"id"`
	DisplayName    string            `json:"displayName" yaml:"displayName"`
	RequiredFields []string          `json:"requiredFields" yaml:"requiredFields"`
}

// Registry is the static catalog of entity types. Loaded once at startup,
// immutable afterwards.
type Registry struct {
	defs  map[domain.EntityType]Definition
	order []domain.EntityType
}

// NewRegistry returns the registry with the builtin sports database catalog.
func NewRegistry() *Registry {
	r := &Registry{defs: make(map[domain.EntityType]Definition)}
	for _, d := range builtinDefinitions {
		r.defs[d.ID] = d
		r.order = append(r.order, d.ID)
	}
	return r
}

// Load reads a YAML catalog from r, replacing the builtin definitions.
// Catalog problems are collected into one validation error so a broken file
// can be fixed in a single pass.
func Load(r io.Reader) (*Registry, error) {
	decoder := yaml.NewDecoder(r)
	var defs []Definition
	if err := decoder.Decode(&defs); err != nil {
		return nil, fmt.Errorf("failed to decode schema registry: %w", err)
	}
	if len(defs) == 0 {
		return nil, fmt.Errorf("schema registry must define at least one entity type")
	}
	reg := &Registry{defs: make(map[domain.EntityType]Definition, len(defs))}
	var violations []string
	for i, d := range defs {
		if d.ID == "" {
			violations = append(violations, fmt.Sprintf("definitions[%d] must have id defined", i))
			continue
		}
		if len(d.RequiredFields) == 0 {
			violations = append(violations, fmt.Sprintf("definitions[%d] (%s) must have requiredFields defined", i, d.ID))
			continue
		}
		if _, exists := reg.defs[d.ID]; exists {
			violations = append(violations, fmt.Sprintf("duplicate entity type %q", d.ID))
			continue
		}
		reg.defs[d.ID] = d
		reg.order = append(reg.order, d.ID)
	}
	if len(violations) > 0 {
		return nil, apperr.NewValidationViolations("invalid schema registry", violations)
	}
	return reg, nil
}

// Lookup returns the definition for an entity type.
func (r *Registry) Lookup(t domain.EntityType) (Definition, bool) {
	d, ok := r.defs[t]
	return d, ok
}

// Contains reports whether the entity type exists in the catalog.
func (r *Registry) Contains(t domain.EntityType) bool {
	_, ok := r.defs[t]
	return ok
}

// Definitions returns all definitions in declaration order.
func (r *Registry) Definitions() []Definition {
	out := make([]Definition, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.defs[id])
	}
	return out
}

var builtinDefinitions = []Definition{
	{
		ID:             domain.EntityTypeLeague,
		DisplayName:    "League",
		RequiredFields: []string{"name", "sport", "country"},
	},
	{
		ID:             domain.EntityTypeDivisionConference,
		DisplayName:    "Division / Conference",
		RequiredFields: []string{"name", "league_id", "type"},
	},
	{
		ID:             domain.EntityTypeTeam,
		DisplayName:    "Team",
		RequiredFields: []string{"name", "league_id", "stadium_id", "city", "country"},
	},
	{
		ID:             domain.EntityTypePlayer,
		DisplayName:    "Player",
		RequiredFields: []string{"name", "team_id", "position"},
	},
	{
		ID:             domain.EntityTypeGame,
		DisplayName:    "Game",
		RequiredFields: []string{"league_id", "home_team_id", "away_team_id", "date", "season_year"},
	},
	{
		ID:             domain.EntityTypeStadium,
		DisplayName:    "Stadium",
		RequiredFields: []string{"name", "city", "country"},
	},
	{
		ID:             domain.EntityTypeBroadcastCompany,
		DisplayName:    "Broadcast Company",
		RequiredFields: []string{"name", "type", "country"},
	},
	{
		ID:             domain.EntityTypeBroadcastRights,
		DisplayName:    "Broadcast Rights",
		RequiredFields: []string{"entity_type", "entity_id", "broadcast_company_id", "territory", "start_date", "end_date"},
	},
	{
		ID:             domain.EntityTypeProductionCompany,
		DisplayName:    "Production Company",
		RequiredFields: []string{"name"},
	},
	{
		ID:             domain.EntityTypeGameBroadcast,
		DisplayName:    "Game Broadcast",
		RequiredFields: []string{"game_id", "broadcast_company_id", "broadcast_type"},
	},
	{
		ID:             domain.EntityTypeBrand,
		DisplayName:    "Brand",
		RequiredFields: []string{"name", "industry"},
	},
	{
		ID:             domain.EntityTypeLeagueExecutive,
		DisplayName:    "League Executive",
		RequiredFields: []string{"name", "league_id", "position"},
	},
}
