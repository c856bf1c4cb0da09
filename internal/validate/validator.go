package validate

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/DjordjeVuckovic/sportsmap/internal/domain"
	"github.com/DjordjeVuckovic/sportsmap/internal/schema"
)

// Result reports everything wrong with a payload at once, so callers can
// show a complete error list instead of fixing violations one at a time.
type Result struct {
	IsValid bool     `json:"isValid"`
	Errors  []string `json:"errors"`
}

// Validator enforces required-field and format invariants per entity type
// before any network call.
type Validator struct {
	registry *schema.Registry
}

func NewValidator(registry *schema.Registry) *Validator {
	return &Validator{registry: registry}
}

// Validate checks a payload against the entity type's schema. Partial
// updates bypass required-field checks entirely: by definition they supply
// only the fields being changed.
func (v *Validator) Validate(t domain.EntityType, payload domain.Payload, partialUpdate bool) Result {
	if partialUpdate {
		return Result{IsValid: true, Errors: []string{}}
	}

	def, ok := v.registry.Lookup(t)
	if !ok {
		return Result{IsValid: false, Errors: []string{fmt.Sprintf("unknown entity type %q", t)}}
	}

	var violations []string
	for _, field := range def.RequiredFields {
		if msg := checkRequired(field, payload); msg != "" {
			violations = append(violations, msg)
		}
	}
	violations = append(violations, checkFormats(payload)...)

	return Result{IsValid: len(violations) == 0, Errors: orEmpty(violations)}
}

// checkRequired verifies one required field is present. A reference field
// may instead be satisfied by its name companion (league_id by league_name),
// deferring the identifier check to after resolution.
func checkRequired(field string, payload domain.Payload) string {
	if present(payload[field]) {
		return ""
	}
	if base, ok := strings.CutSuffix(field, "_id"); ok {
		if present(payload[base+"_name"]) {
			return ""
		}
	}
	return fmt.Sprintf("required field %q is missing", field)
}

// checkFormats validates the shape of whatever fields the payload carries.
// Fields are walked in sorted order so the error list is stable.
func checkFormats(payload domain.Payload) []string {
	fields := make([]string, 0, len(payload))
	for field := range payload {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	var violations []string
	for _, field := range fields {
		value := payload[field]
		if !present(value) {
			continue
		}
		switch {
		case strings.HasSuffix(field, "_id"):
			s, _ := value.(string)
			if !domain.IsIdentifier(s) {
				violations = append(violations, fmt.Sprintf("reference field %q holds unresolved value %q", field, s))
			}
		case numericFields[field]:
			if !isNumeric(value) {
				violations = append(violations, fmt.Sprintf("field %q must be numeric", field))
			}
		case dateFields[field]:
			s, ok := value.(string)
			if !ok || strings.TrimSpace(s) == "" {
				violations = append(violations, fmt.Sprintf("field %q must be a non-empty date", field))
			}
		}
	}
	return violations
}

var numericFields = map[string]bool{
	"capacity":    true,
	"season_year": true,
}

var dateFields = map[string]bool{
	"date":       true,
	"start_date": true,
	"end_date":   true,
}

func present(v any) bool {
	if v == nil {
		return false
	}
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s) != ""
	}
	return true
}

func isNumeric(v any) bool {
	switch n := v.(type) {
	case int, int32, int64, float32, float64:
		return true
	case string:
		_, err := strconv.Atoi(strings.TrimSpace(n))
		return err == nil
	default:
		return false
	}
}

func orEmpty(violations []string) []string {
	if violations == nil {
		return []string{}
	}
	return violations
}
