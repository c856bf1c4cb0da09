package entitymapping

import "fmt"

// MappingDef defines field mapping configuration for a sports database import
// +schema:root=true
// +schema:group=sportsmap.io
// +schema:version=v1
type MappingDef struct {
	// Kind is the resource type identifier
	Kind string `json:"kind" yaml:"kind" schema:"required,enum=EntityMapping" description:"Resource type identifier"`

	// Version is the API version
	Version string `json:"version" yaml:"version" schema:"required,enum=v1" description:"API version"`

	// Metadata contains the mapping metadata
	Metadata Metadata `json:"metadata" yaml:"metadata" schema:"required" description:"Mapping metadata"`

	// EntityType is the target entity type the mapping produces
	EntityType string `json:"entityType" yaml:"entityType" schema:"required,pattern=^[a-z_]+$" description:"Target entity type identifier"`

	// Fields defines the field mapping rules
	Fields []FieldRule `json:"fields" yaml:"fields" schema:"required,minItems=1" description:"Array of field mapping definitions"`
}

type Metadata struct {
	// Name is the human-readable name for the mapping
	Name string `json:"name" yaml:"name" schema:"required,minLength=1,maxLength=100" description:"Human-readable name for the mapping configuration"`

	// Description provides details about the mapping
	Description string `json:"description,omitempty" yaml:"description,omitempty" schema:"maxLength=500" description:"Description of the mapping configuration"`
}

type FieldRule struct {
	// Target is the field name on the target entity type
	Target string `json:"target" yaml:"target" schema:"required,minLength=1,maxLength=100" description:"Target entity field name"`

	// Source is the source field name, or a positional index for headerless rows
	Source string `json:"source" yaml:"source" schema:"required,minLength=1,maxLength=100" description:"Source field name or positional index"`
}

func (m *MappingDef) Validate() error {
	if m.Kind == "" {
		return fmt.Errorf("kind is required")
	}
	if m.Version == "" {
		return fmt.Errorf("version is required")
	}
	if m.Metadata.Name == "" {
		return fmt.Errorf("metadata.name is required")
	}
	if m.EntityType == "" {
		return fmt.Errorf("entityType is required")
	}
	if len(m.Fields) == 0 {
		return fmt.Errorf("at least one field mapping is required")
	}
	seen := make(map[string]bool, len(m.Fields))
	for i, f := range m.Fields {
		if f.Target == "" {
			return fmt.Errorf("fields[%d] must have target defined", i)
		}
		if f.Source == "" {
			return fmt.Errorf("fields[%d] must have source defined", i)
		}
		if seen[f.Target] {
			return fmt.Errorf("fields[%d] duplicates target %q", i, f.Target)
		}
		seen[f.Target] = true
	}
	return nil
}

// FieldMap flattens the rules into the target-field to source-field form the
// transform pipeline consumes.
func (m *MappingDef) FieldMap() map[string]string {
	out := make(map[string]string, len(m.Fields))
	for _, f := range m.Fields {
		out[f.Target] = f.Source
	}
	return out
}

type MappingError struct {
	Message string `json:"message" example:"missing source field: name"`
}

func (e *MappingError) Error() string {
	return fmt.Sprintf("entitymapping error: %s", e.Message)
}
