package transform

import (
	"strconv"
	"strings"

	"github.com/DjordjeVuckovic/sportsmap/internal/domain"
)

// Transformer converts a raw source record plus a field mapping into a
// candidate target-entity payload. Deterministic and side-effect-free; any
// reference resolution happens in a later stage.
type Transformer struct {
	positions  PositionTable
	entityType domain.EntityType
}

type Option func(*Transformer)

// WithPositions overrides the standard position table for positional records.
func WithPositions(table PositionTable) Option {
	return func(t *Transformer) {
		t.positions = table
	}
}

func NewTransformer(entityType domain.EntityType, opts ...Option) *Transformer {
	t := &Transformer{
		positions:  DefaultPositions(),
		entityType: entityType,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Transform applies the target-field to source-field mapping to one record.
// Missing source fields are skipped; unparsable numeric values become nil.
func (t *Transformer) Transform(mapping map[string]string, record domain.SourceRecord) domain.Payload {
	payload := make(domain.Payload, len(mapping))

	for target, source := range mapping {
		var (
			raw any
			ok  bool
		)
		if record.Positional() {
			raw, ok = t.positionalValue(target, source, record)
		} else {
			raw, ok = record.Field(source)
		}
		if !ok {
			continue
		}
		payload[target] = normalizeValue(target, raw)
	}

	t.applyFixups(payload, record)

	return payload
}

// positionalValue prefers the standard position for the semantic target
// field; when the target is not a known standard field, it falls back to the
// literal position implied by the mapping's source identifier.
func (t *Transformer) positionalValue(target, source string, record domain.SourceRecord) (any, bool) {
	if pos, ok := t.positions.Position(target); ok {
		if v, exists := record.At(pos); exists {
			return v, true
		}
	}
	if idx, err := strconv.Atoi(source); err == nil {
		return record.At(idx)
	}
	return nil, false
}

// applyFixups covers entity-specific last resorts for positional records.
func (t *Transformer) applyFixups(payload domain.Payload, record domain.SourceRecord) {
	if !record.Positional() {
		return
	}
	switch t.entityType {
	case domain.EntityTypeBrand, domain.EntityTypeBroadcastCompany, domain.EntityTypeProductionCompany:
		if payload.String("name") == "" {
			if v, ok := record.At(0); ok {
				payload["name"] = normalizeValue("name", v)
			}
		}
	}
}

// numericFields are targets whose values get digit-stripped integer parsing.
var numericFields = map[string]bool{
	"capacity":    true,
	"season_year": true,
}

func normalizeValue(target string, raw any) any {
	s, isString := raw.(string)
	if isString {
		s = strings.TrimSpace(s)
	}

	switch {
	case target == "start_date" || target == "end_date":
		if isString {
			return expandYear(target, s)
		}
		return raw
	case numericFields[target]:
		return parseNumeric(raw)
	case isString:
		return s
	default:
		return raw
	}
}

// expandYear widens a bare 4-digit year to a full date: January 1st for start
// dates, December 31st for end dates. Everything else passes through.
func expandYear(target, value string) string {
	if len(value) != 4 {
		return value
	}
	if _, err := strconv.Atoi(value); err != nil {
		return value
	}
	if target == "end_date" {
		return value + "-12-31"
	}
	return value + "-01-01"
}

// parseNumeric strips every non-digit before parsing, so values like
// "20,000" survive spreadsheet formatting. Unparsable values become nil.
func parseNumeric(raw any) any {
	switch v := raw.(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	case string:
		var digits strings.Builder
		for _, r := range v {
			if r >= '0' && r <= '9' {
				digits.WriteRune(r)
			}
		}
		if digits.Len() == 0 {
			return nil
		}
		n, err := strconv.Atoi(digits.String())
		if err != nil {
			return nil
		}
		return n
	default:
		return nil
	}
}
