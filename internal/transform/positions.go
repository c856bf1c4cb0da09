package transform

// PositionTable maps semantic target fields to conventional column positions
// in headerless spreadsheet exports. Sports broadcast sheets follow a small
// number of column orders regardless of header text, so a fixed table covers
// the common shapes; callers can swap in their own table per dataset.
type PositionTable interface {
	Position(targetField string) (int, bool)
}

// StandardPositions is a plain map-backed PositionTable.
type StandardPositions map[string]int

func (s StandardPositions) Position(targetField string) (int, bool) {
	pos, ok := s[targetField]
	return pos, ok
}

// DefaultPositions returns the conventional column order of sports broadcast
// spreadsheet exports.
func DefaultPositions() StandardPositions {
	return StandardPositions{
		"name":        0,
		"entity_name": 1,
		"entity_type": 2,
		"industry":    2,
		"territory":   3,
		"start_date":  4,
		"end_date":    5,
	}
}
