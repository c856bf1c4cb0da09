package entitymapping

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validMapping() MappingDef {
	return MappingDef{
		Kind:       "EntityMapping",
		Version:    "v1",
		Metadata:   Metadata{Name: "league-import"},
		EntityType: "league",
		Fields: []FieldRule{
			{Target: "name", Source: "League"},
			{Target: "sport", Source: "Sport"},
		},
	}
}

func TestMappingDef_Validate(t *testing.T) {
	m := validMapping()
	require.NoError(t, m.Validate())
}

func TestMappingDef_ValidateRejections(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*MappingDef)
		wantErr string
	}{
		{"missing kind", func(m *MappingDef) { m.Kind = "" }, "kind is required"},
		{"missing version", func(m *MappingDef) { m.Version = "" }, "version is required"},
		{"missing metadata name", func(m *MappingDef) { m.Metadata.Name = "" }, "metadata.name is required"},
		{"missing entity type", func(m *MappingDef) { m.EntityType = "" }, "entityType is required"},
		{"no fields", func(m *MappingDef) { m.Fields = nil }, "at least one field mapping"},
		{"empty target", func(m *MappingDef) { m.Fields[0].Target = "" }, "fields[0] must have target"},
		{"empty source", func(m *MappingDef) { m.Fields[1].Source = "" }, "fields[1] must have source"},
		{
			"duplicate target",
			func(m *MappingDef) { m.Fields = append(m.Fields, FieldRule{Target: "name", Source: "Alias"}) },
			`fields[2] duplicates target "name"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := validMapping()
			tt.mutate(&m)
			err := m.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestMappingDef_FieldMap(t *testing.T) {
	m := validMapping()
	assert.Equal(t, map[string]string{"name": "League", "sport": "Sport"}, m.FieldMap())
}
