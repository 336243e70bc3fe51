// Package edm defines the CSDL 4.01 value tree — the XML document shape
// OData publishes at $metadata — as tagged Go structs with encoding/xml
// struct tags, and the SQL-type-family-to-EDM-type reflection table.
package edm

import "encoding/xml"

// CSDLVersion is the Edmx Version attribute this package emits.
const CSDLVersion = "4.01"

// Edmx is the document root. Per CSDL, edmx: is an element prefix only on
// Edmx and DataServices; everything nested uses the bare Schema namespace.
type Edmx struct {
	XMLName      xml.Name     `xml:"edmx:Edmx"`
	Xmlns        string       `xml:"xmlns:edmx,attr"`
	Version      string       `xml:"Version,attr"`
	DataServices DataServices `xml:"edmx:DataServices"`
}

// NewEdmx builds an empty Edmx document at the fixed CSDL version.
func NewEdmx() *Edmx {
	return &Edmx{
		Xmlns:   "http://docs.oasis-open.org/odata/ns/edmx",
		Version: CSDLVersion,
	}
}

type DataServices struct {
	XMLName xml.Name `xml:"edmx:DataServices"`
	Schemas []Schema `xml:"Schema"`
}

type Schema struct {
	XMLName         xml.Name         `xml:"Schema"`
	Xmlns           string           `xml:"xmlns,attr,omitempty"`
	Namespace       string           `xml:"Namespace,attr"`
	Alias           string           `xml:"Alias,attr,omitempty"`
	EntityTypes     []EntityType     `xml:"EntityType"`
	ComplexTypes    []ComplexType    `xml:"ComplexType,omitempty"`
	EnumTypes       []EnumType       `xml:"EnumType,omitempty"`
	TypeDefinitions []TypeDefinition `xml:"TypeDefinition,omitempty"`
	Actions         []Action         `xml:"Action,omitempty"`
	Functions       []Function       `xml:"Function,omitempty"`
	Terms           []Term           `xml:"Term,omitempty"`
	EntityContainer *EntityContainer `xml:"EntityContainer,omitempty"`
}

type EntityType struct {
	XMLName            xml.Name             `xml:"EntityType"`
	Name               string               `xml:"Name,attr"`
	BaseType           string               `xml:"BaseType,attr,omitempty"`
	Property           []Property           `xml:"Property,omitempty"`
	NavigationProperty  []NavigationProperty `xml:"NavigationProperty,omitempty"`
	Key                *Key                 `xml:"Key,omitempty"`
}

// NewEntityType starts an EntityType builder. AddProperty appends
// incrementally, the same shape as the Rust original's `add_property`.
func NewEntityType(name string) *EntityType {
	return &EntityType{Name: name}
}

// AddProperty appends a Property and returns the receiver for chaining.
func (e *EntityType) AddProperty(name, edmType string) *EntityType {
	e.Property = append(e.Property, Property{Name: name, Type: edmType})
	return e
}

// WithKey sets the Key element from an ordered list of key property names.
func (e *EntityType) WithKey(propertyNames ...string) *EntityType {
	refs := make([]PropertyRef, 0, len(propertyNames))
	for _, n := range propertyNames {
		refs = append(refs, PropertyRef{Name: n})
	}
	e.Key = &Key{PropertyRef: refs}
	return e
}

type ComplexType struct {
	XMLName             xml.Name             `xml:"ComplexType"`
	Name                string               `xml:"Name,attr"`
	BaseType             string              `xml:"BaseType,attr,omitempty"`
	Property             []Property          `xml:"Property,omitempty"`
	NavigationProperty   []NavigationProperty `xml:"NavigationProperty,omitempty"`
}

type EnumType struct {
	XMLName       xml.Name `xml:"EnumType"`
	Name          string   `xml:"Name,attr"`
	UnderlyingType string  `xml:"UnderlyingType,attr,omitempty"`
	IsFlags       bool     `xml:"IsFlags,attr,omitempty"`
	Member        []Member `xml:"Member,omitempty"`
}

type Member struct {
	XMLName xml.Name `xml:"Member"`
	Name    string   `xml:"Name,attr"`
	Value   string   `xml:"Value,attr,omitempty"`
}

type TypeDefinition struct {
	XMLName        xml.Name `xml:"TypeDefinition"`
	Name           string   `xml:"Name,attr"`
	UnderlyingType string   `xml:"UnderlyingType,attr"`
}

type Action struct {
	XMLName       xml.Name    `xml:"Action"`
	Name          string      `xml:"Name,attr"`
	IsBound       bool        `xml:"IsBound,attr,omitempty"`
	EntitySetPath string      `xml:"EntitySetPath,attr,omitempty"`
	Parameter     []Parameter `xml:"Parameter,omitempty"`
	ReturnType    *ReturnType `xml:"ReturnType,omitempty"`
}

type Function struct {
	XMLName       xml.Name    `xml:"Function"`
	Name          string      `xml:"Name,attr"`
	IsBound       bool        `xml:"IsBound,attr,omitempty"`
	IsComposable  bool        `xml:"IsComposable,attr,omitempty"`
	EntitySetPath string      `xml:"EntitySetPath,attr,omitempty"`
	Parameter     []Parameter `xml:"Parameter,omitempty"`
	ReturnType    *ReturnType `xml:"ReturnType,omitempty"`
}

type Parameter struct {
	XMLName  xml.Name `xml:"Parameter"`
	Name     string   `xml:"Name,attr"`
	Type     string   `xml:"Type,attr"`
	Nullable *bool    `xml:"Nullable,attr,omitempty"`
}

type ReturnType struct {
	XMLName   xml.Name `xml:"ReturnType"`
	Type      string   `xml:"Type,attr"`
	Nullable  *bool    `xml:"Nullable,attr,omitempty"`
	MaxLength *int     `xml:"MaxLength,attr,omitempty"`
}

type Term struct {
	XMLName      xml.Name `xml:"Term"`
	Name         string   `xml:"Name,attr"`
	Type         string   `xml:"Type,attr"`
	AppliesTo    string   `xml:"AppliesTo,attr,omitempty"`
	DefaultValue string   `xml:"DefaultValue,attr,omitempty"`
	Nullable     *bool    `xml:"Nullable,attr,omitempty"`
}

// Annotation is a simplified Term/Qualifier marker with an optional String or
// Bool constant value — the full CSDL
// annotation-value union (Record/Collection/primitive constant expressions)
// is not modeled; this core only needs to round-trip presence, not author
// arbitrary vocabulary annotations.
type Annotation struct {
	XMLName   xml.Name `xml:"Annotation"`
	Term      string   `xml:"Term,attr"`
	Qualifier string   `xml:"Qualifier,attr,omitempty"`
	String    string   `xml:"String,attr,omitempty"`
	Bool      *bool    `xml:"Bool,attr,omitempty"`
}

type EntityContainer struct {
	XMLName        xml.Name         `xml:"EntityContainer"`
	Name           string           `xml:"Name,attr"`
	Extends        string           `xml:"Extends,attr,omitempty"`
	EntitySet      []EntitySet      `xml:"EntitySet,omitempty"`
	Singleton      []Singleton      `xml:"Singleton,omitempty"`
	FunctionImport []FunctionImport `xml:"FunctionImport,omitempty"`
}

type EntitySet struct {
	XMLName                  xml.Name                    `xml:"EntitySet"`
	Name                     string                       `xml:"Name,attr"`
	EntityType               string                       `xml:"EntityType,attr"`
	NavigationPropertyBinding []NavigationPropertyBinding `xml:"NavigationPropertyBinding,omitempty"`
}

type Singleton struct {
	XMLName                  xml.Name                    `xml:"Singleton"`
	Name                     string                       `xml:"Name,attr"`
	Type                     string                       `xml:"Type,attr"`
	NavigationPropertyBinding []NavigationPropertyBinding `xml:"NavigationPropertyBinding,omitempty"`
}

type FunctionImport struct {
	XMLName                   xml.Name `xml:"FunctionImport"`
	Name                      string   `xml:"Name,attr"`
	Function                  string   `xml:"Function,attr"`
	EntitySet                 string   `xml:"EntitySet,attr,omitempty"`
	IncludeInServiceDocument  bool     `xml:"IncludeInServiceDocument,attr,omitempty"`
}

type NavigationPropertyBinding struct {
	XMLName xml.Name `xml:"NavigationPropertyBinding"`
	Path    string   `xml:"Path,attr"`
	Target  string   `xml:"Target,attr"`
}

type Key struct {
	XMLName     xml.Name      `xml:"Key"`
	PropertyRef []PropertyRef `xml:"PropertyRef"`
}

type PropertyRef struct {
	XMLName xml.Name `xml:"PropertyRef"`
	Name    string   `xml:"Name,attr"`
}

type Property struct {
	XMLName   xml.Name `xml:"Property"`
	Name      string   `xml:"Name,attr"`
	Type      string   `xml:"Type,attr"`
	Nullable  *bool    `xml:"Nullable,attr,omitempty"`
	MaxLength *int     `xml:"MaxLength,attr,omitempty"`
	Precision *int     `xml:"Precision,attr,omitempty"`
	Scale     *int     `xml:"Scale,attr,omitempty"`
}

type NavigationProperty struct {
	XMLName              xml.Name                `xml:"NavigationProperty"`
	Name                 string                  `xml:"Name,attr"`
	Type                 string                  `xml:"Type,attr"`
	Nullable             *bool                   `xml:"Nullable,attr,omitempty"`
	Partner              string                  `xml:"Partner,attr,omitempty"`
	ContainsTarget       bool                    `xml:"ContainsTarget,attr,omitempty"`
	ReferentialConstraint []ReferentialConstraint `xml:"ReferentialConstraint,omitempty"`
}

type ReferentialConstraint struct {
	XMLName            xml.Name `xml:"ReferentialConstraint"`
	Property            string  `xml:"Property,attr"`
	ReferencedProperty string  `xml:"ReferencedProperty,attr"`
}

// Serialize renders the document as an XML byte slice with the standard
// XML declaration, matching the Content-Type: application/xml wire
// contract.
func (e *Edmx) Serialize() ([]byte, error) {
	body, err := xml.MarshalIndent(e, "", "  ")
	if err != nil {
		return nil, err
	}
	out := make([]byte, 0, len(xml.Header)+len(body))
	out = append(out, []byte(xml.Header)...)
	out = append(out, body...)
	return out, nil
}
