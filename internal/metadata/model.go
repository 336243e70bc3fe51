// Package metadata reflects backend column catalogs into CSDL EntityType
// trees and maintains the ODataModel registry: the service's one EDM schema
// plus the entity-set-name-to-backend-catalog bindings the lowering stage
// and the $metadata handler both read from.
package metadata

import (
	"fmt"
	"reflect"

	"github.com/nlstn/go-odata-core/internal/edm"
	"github.com/nlstn/go-odata-core/internal/lowering"
)

// EntitySet binds one published entity-set name to its EntityType and the
// column catalog lowering uses to resolve its fields.
type EntitySet struct {
	Name       string
	EntityType *edm.EntityType
	Catalog    lowering.ColumnCatalog
}

// ODataModel is the service-wide registry of entity sets and the single
// Edmx document describing them, grounded on the original Rust
// ODataModel's resources map + one-schema Edmx tree.
type ODataModel struct {
	Namespace  string
	BaseURL    string
	order      []string
	entitySets map[string]EntitySet

	enumOrder []string
	enumTypes map[string]*edm.EnumType

	// ODataContext and Discovered are populated by Enrich from a fetched
	// service document; they describe resources a remote service advertised,
	// separate from the entity sets Register binds to a local backend.
	ODataContext string
	Discovered   []DiscoveredResource
}

// NewODataModel builds an empty registry under the given CSDL namespace.
func NewODataModel(namespace, baseURL string) *ODataModel {
	return &ODataModel{
		Namespace:  namespace,
		BaseURL:    baseURL,
		entitySets: map[string]EntitySet{},
		enumTypes:  map[string]*edm.EnumType{},
	}
}

// Register adds or replaces the entity set under name. A second Register
// call for the same name overwrites the prior binding rather than erroring,
// matching the "last registration wins" invariant a live service needs when
// re-registering entities during hot-reload of its model.
func (m *ODataModel) Register(name string, et *edm.EntityType, catalog lowering.ColumnCatalog) {
	if _, exists := m.entitySets[name]; !exists {
		m.order = append(m.order, name)
	}
	m.entitySets[name] = EntitySet{Name: name, EntityType: et, Catalog: catalog}
}

// Get returns the entity set bound to name, if any.
func (m *ODataModel) Get(name string) (EntitySet, bool) {
	es, ok := m.entitySets[name]
	return es, ok
}

// EntitySets returns every registered entity set in registration order.
func (m *ODataModel) EntitySets() []EntitySet {
	out := make([]EntitySet, 0, len(m.order))
	for _, name := range m.order {
		out = append(out, m.entitySets[name])
	}
	return out
}

// RegisterEnum synthesizes a CSDL EnumType from a Go enum value previously
// registered via RegisterEnumMembers (or exposing its own EnumMembers()
// method) and adds it to the registry's Edmx output. An empty name derives
// one from the Go type via EnumTypeName. A second call for the same
// (resolved) name overwrites the prior registration.
func (m *ODataModel) RegisterEnum(name string, enumValue interface{}) (*edm.EnumType, error) {
	enumType := reflect.TypeOf(enumValue)
	if enumType == nil {
		return nil, fmt.Errorf("metadata: nil enum value")
	}
	if enumType.Kind() == reflect.Pointer {
		enumType = enumType.Elem()
	}
	if name == "" {
		name = EnumTypeName(enumType)
	}

	et, err := SynthesizeEnumType(name, enumType)
	if err != nil {
		return nil, err
	}

	if _, exists := m.enumTypes[name]; !exists {
		m.enumOrder = append(m.enumOrder, name)
	}
	m.enumTypes[name] = et
	return et, nil
}

// Edmx renders the registry as a single-schema CSDL document: one
// EntityType per registered entity set, one EnumType per RegisterEnum call,
// plus an EntityContainer listing the entity sets.
func (m *ODataModel) Edmx() *edm.Edmx {
	doc := edm.NewEdmx()
	schema := edm.Schema{Namespace: m.Namespace}
	container := edm.EntityContainer{Name: "Container"}

	for _, name := range m.order {
		es := m.entitySets[name]
		schema.EntityTypes = append(schema.EntityTypes, *es.EntityType)
		container.EntitySet = append(container.EntitySet, edm.EntitySet{
			Name:       name,
			EntityType: m.Namespace + "." + es.EntityType.Name,
		})
	}
	for _, name := range m.enumOrder {
		schema.EnumTypes = append(schema.EnumTypes, *m.enumTypes[name])
	}
	schema.EntityContainer = &container
	doc.DataServices.Schemas = append(doc.DataServices.Schemas, schema)
	return doc
}

// ContextURL builds the `@odata.context` value for an entity set, e.g.
// "https://host/$metadata#Products".
func (m *ODataModel) ContextURL(entitySetName string) (string, error) {
	if _, ok := m.entitySets[entitySetName]; !ok {
		return "", fmt.Errorf("metadata: unknown entity set %q", entitySetName)
	}
	return fmt.Sprintf("%s/$metadata#%s", m.BaseURL, entitySetName), nil
}
