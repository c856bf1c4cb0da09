package domain

// SourceRecord is one row of the input dataset. It is either object-shaped
// (Fields set, keyed by source field name) or positional (Row set, when the
// dataset arrived as headerless rows). Immutable once loaded.
type SourceRecord struct {
	Fields map[string]any
	Row    []any
}

// NewObjectRecord builds an object-shaped record.
func NewObjectRecord(fields map[string]any) SourceRecord {
	return SourceRecord{Fields: fields}
}

// NewPositionalRecord builds a positional record.
func NewPositionalRecord(row []any) SourceRecord {
	return SourceRecord{Row: row}
}

// Positional reports whether the record is array-shaped.
func (r SourceRecord) Positional() bool {
	return r.Fields == nil && r.Row != nil
}

// Field looks up a source field by name on an object-shaped record.
func (r SourceRecord) Field(name string) (any, bool) {
	if r.Fields == nil {
		return nil, false
	}
	v, ok := r.Fields[name]
	return v, ok
}

// At returns the value at a position on an array-shaped record.
func (r SourceRecord) At(i int) (any, bool) {
	if i < 0 || i >= len(r.Row) {
		return nil, false
	}
	return r.Row[i], true
}

// FieldNames returns the source field names of an object-shaped record,
// in unspecified order. Empty for positional records.
func (r SourceRecord) FieldNames() []string {
	if r.Fields == nil {
		return nil
	}
	names := make([]string, 0, len(r.Fields))
	for name := range r.Fields {
		names = append(names, name)
	}
	return names
}

// Payload is a transformed record shaped for one target entity type: target
// field name to resolved value. Transient, pipeline-internal; never persisted.
type Payload map[string]any

// Clone returns a shallow copy. The importer mutates payloads while resolving
// references and must not alias the transformer's output across retries.
func (p Payload) Clone() Payload {
	out := make(Payload, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// String returns the payload field as a string, or "" when absent or non-string.
func (p Payload) String(field string) string {
	s, _ := p[field].(string)
	return s
}
