package domain

import "github.com/google/uuid"

// RefSource tags how a reference value became an identifier, so downstream
// code can pattern-match instead of probing ad hoc payload flags.
type RefSource string

const (
	// RefDirect means the raw value was already identifier-shaped.
	RefDirect RefSource = "direct"
	// RefResolvedByName means a name lookup produced the identifier.
	RefResolvedByName RefSource = "resolved_by_name"
	// RefCreatedNew means a placeholder entity was created for the name.
	RefCreatedNew RefSource = "created_new"
	// RefSubstitutedBrand means a brand with a company role stood in for a
	// dedicated broadcast company record.
	RefSubstitutedBrand RefSource = "substituted_brand"
	// RefUnresolved is the sentinel for a name that matched nothing and
	// could not be created.
	RefUnresolved RefSource = "unresolved"
)

// ResolvedReference is the outcome of resolving one reference field.
type ResolvedReference struct {
	ID          uuid.UUID
	Source      RefSource
	DisplayName string
}

// Resolved reports whether the reference carries a usable identifier.
func (r ResolvedReference) Resolved() bool {
	return r.Source != RefUnresolved && r.ID != uuid.Nil
}

// UnresolvedReference builds the sentinel marker for a failed resolution.
func UnresolvedReference(name string) ResolvedReference {
	return ResolvedReference{Source: RefUnresolved, DisplayName: name}
}
