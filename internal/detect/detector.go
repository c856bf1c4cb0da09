package detect

import (
	"strings"

	"github.com/DjordjeVuckovic/sportsmap/internal/domain"
	"github.com/DjordjeVuckovic/sportsmap/internal/schema"
)

// Detector guesses the most likely target entity type for a sample record.
// Pure function over its inputs; no I/O.
type Detector struct {
	registry *schema.Registry
	rules    []rule
}

// rule is one priority-ordered strict signal. Rules run before the weighted
// scoring fallback because almost any sports dataset superficially matches
// several categories; league signals must outrank stadium signals, which
// outrank everything else.
type rule struct {
	entityType domain.EntityType
	matches    func(fieldNames []string, values []string) bool
}

func NewDetector(registry *schema.Registry) *Detector {
	d := &Detector{registry: registry}
	d.rules = []rule{
		{domain.EntityTypeLeague, matchLeague},
		{domain.EntityTypeStadium, matchStadium},
		{domain.EntityTypeBroadcastRights, matchBroadcastRights},
		{domain.EntityTypePlayer, matchPlayer},
	}
	return d
}

// Detect returns the best-guess entity type for the sample record, or ""
// when nothing scores. Ties in the scoring fallback resolve to the first
// catalog entry at the top score.
func (d *Detector) Detect(fieldNames []string, record domain.SourceRecord) domain.EntityType {
	names := lowered(fieldNames)
	values := sampleValues(record)

	for _, r := range d.rules {
		if r.matches(names, values) {
			return r.entityType
		}
	}

	return d.scoreFallback(names)
}

// scoreFallback weighs every catalog type: exact field-name matches count 2,
// substring matches count 1, plus domain bonuses for location and sport fields.
func (d *Detector) scoreFallback(names []string) domain.EntityType {
	var best domain.EntityType
	bestScore := 0

	for _, def := range d.registry.Definitions() {
		score := 0
		for _, required := range def.RequiredFields {
			for _, name := range names {
				switch {
				case name == required:
					score += 2
				case strings.Contains(name, required) || strings.Contains(required, name):
					score++
				}
			}
		}
		switch def.ID {
		case domain.EntityTypeStadium:
			if containsAny(names, "city", "state", "location") {
				score += 3
			}
		case domain.EntityTypeLeague:
			if containsAny(names, "sport") {
				score += 3
			}
		}
		if score > bestScore {
			bestScore = score
			best = def.ID
		}
	}

	return best
}

var leagueAbbreviations = []string{"nfl", "nba", "mlb", "nhl", "mls", "ncaa", "epl", "uefa"}

func matchLeague(names []string, values []string) bool {
	if containsSubstring(names, "league") {
		return true
	}
	for _, v := range values {
		for _, abbr := range leagueAbbreviations {
			if v == abbr {
				return true
			}
		}
	}
	return false
}

func matchStadium(names []string, values []string) bool {
	if containsSubstring(names, "stadium", "arena", "venue", "capacity") {
		return true
	}
	return containsSubstring(values, "stadium", "arena", "field house")
}

func matchBroadcastRights(names []string, _ []string) bool {
	return containsSubstring(names, "broadcast", "territory") &&
		containsSubstring(names, "start_date", "end_date", "territory")
}

func matchPlayer(names []string, _ []string) bool {
	return containsSubstring(names, "position") && containsSubstring(names, "team")
}

func lowered(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = strings.ToLower(strings.TrimSpace(s))
	}
	return out
}

// sampleValues flattens the record's values to lowercase strings for
// value-content signals.
func sampleValues(record domain.SourceRecord) []string {
	var out []string
	appendVal := func(v any) {
		if s, ok := v.(string); ok && s != "" {
			out = append(out, strings.ToLower(strings.TrimSpace(s)))
		}
	}
	for _, v := range record.Fields {
		appendVal(v)
	}
	for _, v := range record.Row {
		appendVal(v)
	}
	return out
}

func containsAny(haystack []string, needles ...string) bool {
	for _, h := range haystack {
		for _, n := range needles {
			if h == n {
				return true
			}
		}
	}
	return false
}

func containsSubstring(haystack []string, needles ...string) bool {
	for _, h := range haystack {
		for _, n := range needles {
			if strings.Contains(h, n) {
				return true
			}
		}
	}
	return false
}
