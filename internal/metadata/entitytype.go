package metadata

import (
	"fmt"
	"reflect"

	"github.com/nlstn/go-odata-core/internal/edm"
)

// Column is one ordered column of a backend table, as a reflection layer
// (database/sql driver introspection, an ORM's column list, a migration
// reader) would report it. Facets carries any precision/scale/maxLength
// constraint the backend declared for the column; Default, when non-nil, is
// a sample or default literal used to validate those facets at synthesis
// time rather than only at query time.
type Column struct {
	Name         string
	Type         SQLType
	IsPrimaryKey bool
	Facets       edm.Facets
	Default      interface{}
}

// SynthesizeEntityType builds a CSDL EntityType from an ordered column list:
// each column becomes a Property typed via EDMType and validated through
// edm.ParseType, and the primary-key columns (in the order they appear)
// become the Key/PropertyRef list. An error here means the column's
// declared facets (or Default literal) don't satisfy the EDM type they were
// mapped to, e.g. a Default string longer than a declared MaxLength.
func SynthesizeEntityType(name string, columns []Column) (*edm.EntityType, error) {
	et := edm.NewEntityType(name)
	var keys []string
	for _, c := range columns {
		prop, err := synthesizeProperty(c)
		if err != nil {
			return nil, fmt.Errorf("metadata: entity %s: column %s: %w", name, c.Name, err)
		}
		et.Property = append(et.Property, prop)
		if c.IsPrimaryKey {
			keys = append(keys, c.Name)
		}
	}
	if len(keys) > 0 {
		et.WithKey(keys...)
	}
	return et, nil
}

// synthesizeProperty resolves one Column into a CSDL Property by routing it
// through the edm type registry: EDMType(c.Type) names the CSDL primitive,
// and edm.ParseType confirms a parser is actually registered for that name
// and that c.Default (when given) satisfies c.Facets, instead of treating
// EDMType's table as a bare string lookup no code downstream ever checks.
func synthesizeProperty(c Column) (edm.Property, error) {
	edmType := EDMType(c.Type)
	typ, err := edm.ParseType(edmType, c.Default, c.Facets)
	if err != nil {
		return edm.Property{}, err
	}

	prop := edm.Property{Name: c.Name, Type: typ.TypeName()}
	facets := typ.GetFacets()
	if facets.MaxLength != nil {
		prop.MaxLength = facets.MaxLength
	}
	if facets.Precision != nil {
		prop.Precision = facets.Precision
	}
	if facets.Scale != nil {
		prop.Scale = facets.Scale
	}
	if facets.Nullable {
		nullable := true
		prop.Nullable = &nullable
	}
	return prop, nil
}

// SynthesizeEntityTypeFromStruct builds a CSDL EntityType by reflecting on
// the exported fields of a zero-value struct (e.g. a GORM model), the
// alternative a struct-typed backend reflection layer takes to
// SynthesizeEntityType's column-list path. Each field's EDM type comes from
// edm.FromStructField (the Go field type, or an `odata:"..."` tag when
// present); a field tagged `odata:"key"` becomes part of the Key/PropertyRef
// list. A field tagged `odata:"-"` is skipped.
func SynthesizeEntityTypeFromStruct(name string, sample interface{}) (*edm.EntityType, error) {
	t := reflect.TypeOf(sample)
	if t == nil {
		return nil, fmt.Errorf("metadata: nil sample for entity %s", name)
	}
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("metadata: %s is not a struct", t)
	}

	et := edm.NewEntityType(name)
	var keys []string
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		tag := field.Tag.Get("odata")
		if tag == "-" {
			continue
		}

		typ, err := edm.FromStructField(field, reflect.Zero(field.Type).Interface())
		if err != nil {
			return nil, fmt.Errorf("metadata: entity %s: field %s: %w", name, field.Name, err)
		}

		facets := typ.GetFacets()
		prop := edm.Property{Name: field.Name, Type: typ.TypeName()}
		if facets.MaxLength != nil {
			prop.MaxLength = facets.MaxLength
		}
		if facets.Precision != nil {
			prop.Precision = facets.Precision
		}
		if facets.Scale != nil {
			prop.Scale = facets.Scale
		}
		if facets.Nullable {
			nullable := true
			prop.Nullable = &nullable
		}
		et.Property = append(et.Property, prop)
		if facets.Key {
			keys = append(keys, field.Name)
		}
	}
	if len(keys) > 0 {
		et.WithKey(keys...)
	}
	return et, nil
}
