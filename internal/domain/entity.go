package domain

import (
	"regexp"

	"github.com/google/uuid"
)

// EntityType identifies one of the fixed target schemas in the sports database.
type EntityType string

const (
	EntityTypeLeague             EntityType = "league"
	EntityTypeDivisionConference EntityType = "division_conference"
	EntityTypeTeam               EntityType = "team"
	EntityTypePlayer             EntityType = "player"
	EntityTypeGame               EntityType = "game"
	EntityTypeStadium            EntityType = "stadium"
	EntityTypeBroadcastCompany   EntityType = "broadcast_company"
	EntityTypeBroadcastRights    EntityType = "broadcast_rights"
	EntityTypeProductionCompany  EntityType = "production_company"
	EntityTypeGameBroadcast      EntityType = "game_broadcast"
	EntityTypeBrand              EntityType = "brand"
	EntityTypeLeagueExecutive    EntityType = "league_executive"
)

// Entity is the canonical record shape returned by the entity lookup service.
// Attributes holds everything beyond the identity triple, keyed by target field name.
type Entity struct {
	ID         uuid.UUID      `json:"id"`
	Type       EntityType     `json:"type"`
	Name       string         `json:"name"`
	Attributes map[string]any `json:"attributes,omitempty"`
}

// Attr returns the named attribute as a string, or "" when absent or non-string.
func (e *Entity) Attr(field string) string {
	if e.Attributes == nil {
		return ""
	}
	s, _ := e.Attributes[field].(string)
	return s
}

// CreatedEntity records a side entity auto-created during reference resolution,
// so callers can surface it to the user alongside the main import counts.
type CreatedEntity struct {
	Type EntityType `json:"type"`
	Name string     `json:"name"`
	ID   uuid.UUID  `json:"id"`
}

// uuidShape matches canonical UUID v1-v5 text. Values in this shape are treated
// as already-resolved identifiers and never trigger a lookup.
var uuidShape = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[1-5][0-9a-fA-F]{3}-[89abAB][0-9a-fA-F]{3}-[0-9a-fA-F]{12}$`)

// IsIdentifier reports whether raw already looks like an opaque entity identifier.
func IsIdentifier(raw string) bool {
	return uuidShape.MatchString(raw)
}
