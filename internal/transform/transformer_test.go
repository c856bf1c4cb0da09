package transform

import (
	"testing"

	"github.com/DjordjeVuckovic/sportsmap/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransform_ObjectRecord(t *testing.T) {
	tr := NewTransformer(domain.EntityTypeLeague)

	record := domain.NewObjectRecord(map[string]any{
		"League":  "  Premier League ",
		"Sport":   "Soccer",
		"Country": "England",
		"Ignored": "whatever",
	})
	mapping := map[string]string{
		"name":    "League",
		"sport":   "Sport",
		"country": "Country",
	}

	payload := tr.Transform(mapping, record)

	assert.Equal(t, domain.Payload{
		"name":    "Premier League",
		"sport":   "Soccer",
		"country": "England",
	}, payload)
}

func TestTransform_MissingSourceFieldSkipped(t *testing.T) {
	tr := NewTransformer(domain.EntityTypeLeague)

	record := domain.NewObjectRecord(map[string]any{"League": "NHL"})
	payload := tr.Transform(map[string]string{
		"name":  "League",
		"sport": "Sport",
	}, record)

	assert.Equal(t, domain.Payload{"name": "NHL"}, payload)
	_, hasSport := payload["sport"]
	assert.False(t, hasSport)
}

// Transforming the same record twice must produce identical payloads.
func TestTransform_Deterministic(t *testing.T) {
	tr := NewTransformer(domain.EntityTypeStadium)

	record := domain.NewObjectRecord(map[string]any{
		"Name":     "Camp Nou",
		"Capacity": "99,354",
		"City":     "Barcelona",
	})
	mapping := map[string]string{
		"name":     "Name",
		"capacity": "Capacity",
		"city":     "City",
	}

	first := tr.Transform(mapping, record)
	second := tr.Transform(mapping, record)

	assert.Equal(t, first, second)
}

func TestTransform_YearExpansion(t *testing.T) {
	tr := NewTransformer(domain.EntityTypeBroadcastRights)

	tests := []struct {
		name   string
		target string
		value  string
		want   any
	}{
		{"start year expands to january 1st", "start_date", "2020", "2020-01-01"},
		{"end year expands to december 31st", "end_date", "2024", "2024-12-31"},
		{"full start date passes through", "start_date", "2020-06-15", "2020-06-15"},
		{"non-numeric 4 chars pass through", "end_date", "soon", "soon"},
		{"generic date field is never expanded", "date", "2020", "2020"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			record := domain.NewObjectRecord(map[string]any{"v": tt.value})
			payload := tr.Transform(map[string]string{tt.target: "v"}, record)
			assert.Equal(t, tt.want, payload[tt.target])
		})
	}
}

func TestTransform_NumericParsing(t *testing.T) {
	tr := NewTransformer(domain.EntityTypeStadium)

	tests := []struct {
		name  string
		raw   any
		want  any
	}{
		{"formatted thousands", "20,000", 20000},
		{"plain digits", "75000", 75000},
		{"surrounding text stripped", "approx. 18500 seats", 18500},
		{"already an int", 42000, 42000},
		{"float truncated", 42000.9, 42000},
		{"unparsable becomes nil", "unknown", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			record := domain.NewObjectRecord(map[string]any{"cap": tt.raw})
			payload := tr.Transform(map[string]string{"capacity": "cap"}, record)
			require.Contains(t, payload, "capacity")
			assert.Equal(t, tt.want, payload["capacity"])
		})
	}
}

func TestTransform_PositionalStandardPositions(t *testing.T) {
	tr := NewTransformer(domain.EntityTypeBroadcastRights)

	row := []any{"ESPN", "NFL", "league", "USA", "2020", "2024"}
	record := domain.NewPositionalRecord(row)

	// Source identifiers are ignored for known standard targets.
	payload := tr.Transform(map[string]string{
		"name":        "col_a",
		"entity_name": "col_b",
		"entity_type": "col_c",
		"territory":   "col_d",
		"start_date":  "col_e",
		"end_date":    "col_f",
	}, record)

	assert.Equal(t, domain.Payload{
		"name":        "ESPN",
		"entity_name": "NFL",
		"entity_type": "league",
		"territory":   "USA",
		"start_date":  "2020-01-01",
		"end_date":    "2024-12-31",
	}, payload)
}

func TestTransform_PositionalLiteralIndexFallback(t *testing.T) {
	tr := NewTransformer(domain.EntityTypeStadium)

	record := domain.NewPositionalRecord([]any{"Wembley", "London", "90000"})

	// "city" has no standard position, so the mapping's numeric source is
	// taken as a literal index.
	payload := tr.Transform(map[string]string{
		"name":     "0",
		"city":     "1",
		"capacity": "2",
	}, record)

	assert.Equal(t, "Wembley", payload["name"])
	assert.Equal(t, "London", payload["city"])
	assert.Equal(t, 90000, payload["capacity"])
}

func TestTransform_BrandNameFixup(t *testing.T) {
	tr := NewTransformer(domain.EntityTypeBrand)

	record := domain.NewPositionalRecord([]any{"Nike", "Apparel"})

	// No mapping produced a name, so position zero backfills it.
	payload := tr.Transform(map[string]string{"industry": "1"}, record)

	assert.Equal(t, "Nike", payload["name"])
	assert.Equal(t, "Apparel", payload["industry"])
}

func TestTransform_FixupSkippedForObjectRecords(t *testing.T) {
	tr := NewTransformer(domain.EntityTypeBrand)

	record := domain.NewObjectRecord(map[string]any{"Industry": "Apparel"})
	payload := tr.Transform(map[string]string{"industry": "Industry"}, record)

	_, hasName := payload["name"]
	assert.False(t, hasName)
}

func TestTransform_CustomPositionTable(t *testing.T) {
	tr := NewTransformer(
		domain.EntityTypeBroadcastCompany,
		WithPositions(StandardPositions{"name": 2}),
	)

	record := domain.NewPositionalRecord([]any{"x", "y", "Sky Sports"})
	payload := tr.Transform(map[string]string{"name": "ignored"}, record)

	assert.Equal(t, "Sky Sports", payload["name"])
}
