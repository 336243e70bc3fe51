package edm

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

func init() {
	RegisterType("Edm.Guid", NewGuid)
}

// Guid represents an Edm.Guid value. The teacher's registry never carried
// this type despite FromGoType already recognizing uuid.UUID fields by
// PkgPath/Name; SynthesizeEntityType needs a real parser behind "Edm.Guid"
// for UUID-typed columns (spec's SQLType.Uuid) to validate, not just map to
// a string.
type Guid struct {
	value  uuid.UUID
	isNull bool
	facets Facets
}

// NewGuid creates a new Edm.Guid from a value.
func NewGuid(value interface{}, facets Facets) (Type, error) {
	if value == nil {
		return &Guid{isNull: true, facets: facets}, nil
	}

	var id uuid.UUID
	switch v := value.(type) {
	case uuid.UUID:
		id = v
	case *uuid.UUID:
		if v == nil {
			return &Guid{isNull: true, facets: facets}, nil
		}
		id = *v
	case string:
		parsed, err := uuid.Parse(v)
		if err != nil {
			return nil, fmt.Errorf("cannot parse %q as Edm.Guid: %w", v, err)
		}
		id = parsed
	case [16]byte:
		id = uuid.UUID(v)
	default:
		return nil, fmt.Errorf("cannot convert %T to Edm.Guid", value)
	}

	return &Guid{value: id, facets: facets}, nil
}

// TypeName returns "Edm.Guid".
func (g *Guid) TypeName() string { return "Edm.Guid" }

// IsNull returns true if the value is null.
func (g *Guid) IsNull() bool { return g.isNull }

// Value returns the underlying uuid.UUID value.
func (g *Guid) Value() interface{} {
	if g.isNull {
		return nil
	}
	return g.value
}

// String returns the canonical hyphenated form, xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx,
// with no guid'...' wrapper.
func (g *Guid) String() string {
	if g.isNull {
		return "null"
	}
	return g.value.String()
}

// Validate checks if the value meets constraints. A Guid has no facets.
func (g *Guid) Validate() error { return nil }

// SetFacets applies facets to the type.
func (g *Guid) SetFacets(facets Facets) error {
	g.facets = facets
	return nil
}

// GetFacets returns the current facets.
func (g *Guid) GetFacets() Facets { return g.facets }

// MarshalJSON implements json.Marshaler.
func (g *Guid) MarshalJSON() ([]byte, error) {
	if g.isNull {
		return []byte("null"), nil
	}
	return json.Marshal(g.value.String())
}

// UnmarshalJSON implements json.Unmarshaler.
func (g *Guid) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		g.isNull = true
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := uuid.Parse(s)
	if err != nil {
		return err
	}
	g.value = parsed
	g.isNull = false
	return nil
}
