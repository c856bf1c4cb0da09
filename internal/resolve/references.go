package resolve

import "github.com/DjordjeVuckovic/sportsmap/internal/domain"

// referenceTargets maps payload reference fields to the entity type they
// point at. The entity_id field is absent here on purpose: its target type
// comes from the record's own entity_type value.
var referenceTargets = map[string]domain.EntityType{
	"league_id":              domain.EntityTypeLeague,
	"division_conference_id": domain.EntityTypeDivisionConference,
	"team_id":                domain.EntityTypeTeam,
	"home_team_id":           domain.EntityTypeTeam,
	"away_team_id":           domain.EntityTypeTeam,
	"stadium_id":             domain.EntityTypeStadium,
	"game_id":                domain.EntityTypeGame,
	"broadcast_company_id":   domain.EntityTypeBroadcastCompany,
	"production_company_id":  domain.EntityTypeProductionCompany,
	"brand_id":               domain.EntityTypeBrand,
}

// creatableTargets are reference types the resolver may auto-create when a
// name matches nothing. Structural entities (league, team, stadium, game)
// are deliberately excluded: a missing one is a data problem, not a gap to
// paper over with a placeholder.
var creatableTargets = map[domain.EntityType]bool{
	domain.EntityTypeBroadcastCompany:  true,
	domain.EntityTypeProductionCompany: true,
	domain.EntityTypeBrand:             true,
}

// ReferenceTarget returns the entity type a reference field points at.
func ReferenceTarget(field string) (domain.EntityType, bool) {
	t, ok := referenceTargets[field]
	return t, ok
}

// Creatable reports whether unresolved names of this type may be auto-created.
func Creatable(t domain.EntityType) bool {
	return creatableTargets[t]
}

// ReferenceFields lists the reference fields present in a payload, including
// the polymorphic entity_id when the payload names its target type.
func ReferenceFields(payload domain.Payload) map[string]domain.EntityType {
	out := make(map[string]domain.EntityType)
	for field := range payload {
		if t, ok := ReferenceTarget(field); ok {
			out[field] = t
		}
	}
	if _, ok := payload["entity_id"]; ok {
		if t := domain.EntityType(payload.String("entity_type")); t != "" {
			out["entity_id"] = t
		}
	}
	return out
}
