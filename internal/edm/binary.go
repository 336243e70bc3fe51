package edm

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
)

func init() {
	RegisterType("Edm.Binary", NewBinary)
}

// Binary represents an Edm.Binary value: a byte slice, rendered in OData
// literal/JSON form as base64 (matching the SQLType.Binary/VarBinary/
// JsonBinary families synthesis maps onto this type).
type Binary struct {
	value  []byte
	isNull bool
	facets Facets
}

// NewBinary creates a new Edm.Binary from a value.
func NewBinary(value interface{}, facets Facets) (Type, error) {
	if value == nil {
		return &Binary{isNull: true, facets: facets}, nil
	}

	var b []byte
	switch v := value.(type) {
	case []byte:
		b = v
	case string:
		decoded, err := base64.StdEncoding.DecodeString(v)
		if err != nil {
			return nil, fmt.Errorf("cannot decode %q as Edm.Binary: %w", v, err)
		}
		b = decoded
	default:
		return nil, fmt.Errorf("cannot convert %T to Edm.Binary", value)
	}

	bin := &Binary{value: b, facets: facets}
	if err := bin.Validate(); err != nil {
		return nil, err
	}
	return bin, nil
}

// TypeName returns "Edm.Binary".
func (b *Binary) TypeName() string { return "Edm.Binary" }

// IsNull returns true if the value is null.
func (b *Binary) IsNull() bool { return b.isNull }

// Value returns the underlying byte slice.
func (b *Binary) Value() interface{} {
	if b.isNull {
		return nil
	}
	return b.value
}

// String returns the OData literal format: binary'<base64>'.
func (b *Binary) String() string {
	if b.isNull {
		return "null"
	}
	return "binary'" + base64.StdEncoding.EncodeToString(b.value) + "'"
}

// Validate checks the value against the MaxLength facet (same facet String
// uses for character length, reused here for byte length).
func (b *Binary) Validate() error {
	if b.isNull {
		return nil
	}
	return ValidateLengthFacet(len(b.value), b.facets)
}

// SetFacets applies facets to the type.
func (b *Binary) SetFacets(facets Facets) error {
	b.facets = facets
	return b.Validate()
}

// GetFacets returns the current facets.
func (b *Binary) GetFacets() Facets { return b.facets }

// MarshalJSON implements json.Marshaler.
func (b *Binary) MarshalJSON() ([]byte, error) {
	if b.isNull {
		return []byte("null"), nil
	}
	return json.Marshal(base64.StdEncoding.EncodeToString(b.value))
}

// UnmarshalJSON implements json.Unmarshaler.
func (b *Binary) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		b.isNull = true
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	decoded, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return err
	}
	b.value = decoded
	b.isNull = false
	return b.Validate()
}
