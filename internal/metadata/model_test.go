package metadata

import (
	"reflect"
	"strings"
	"testing"

	"github.com/nlstn/go-odata-core/internal/edm"
	"github.com/nlstn/go-odata-core/internal/lowering"
)

func mustSynthesize(t *testing.T, name string, columns []Column) *edm.EntityType {
	t.Helper()
	et, err := SynthesizeEntityType(name, columns)
	if err != nil {
		t.Fatalf("SynthesizeEntityType(%q) error = %v", name, err)
	}
	return et
}

func TestSynthesizeEntityTypeFromColumns(t *testing.T) {
	et := mustSynthesize(t, "users", []Column{
		{Name: "id", Type: Integer, IsPrimaryKey: true},
		{Name: "first_name", Type: Text},
		{Name: "last_name", Type: Text},
		{Name: "doc", Type: JSON},
	})

	if et.Name != "users" {
		t.Fatalf("Name = %q, want users", et.Name)
	}
	if len(et.Property) != 4 {
		t.Fatalf("len(Property) = %d, want 4", len(et.Property))
	}
	want := map[string]string{"id": "Edm.Int32", "first_name": "Edm.String", "last_name": "Edm.String", "doc": "Edm.String"}
	for _, p := range et.Property {
		if p.Type != want[p.Name] {
			t.Errorf("Property %q Type = %q, want %q", p.Name, p.Type, want[p.Name])
		}
	}
	if et.Key == nil || len(et.Key.PropertyRef) != 1 || et.Key.PropertyRef[0].Name != "id" {
		t.Errorf("Key = %+v, want PropertyRef{id}", et.Key)
	}
}

func TestSynthesizeEntityTypeValidatesFacetsAgainstDefault(t *testing.T) {
	maxLen := 3
	_, err := SynthesizeEntityType("widgets", []Column{
		{Name: "code", Type: VarString, Facets: edm.Facets{MaxLength: &maxLen}, Default: "toolong"},
	})
	if err == nil {
		t.Fatal("SynthesizeEntityType() error = nil, want a maxLength facet violation")
	}
}

func TestSynthesizeEntityTypeAppliesFacetsToProperty(t *testing.T) {
	precision, scale := 10, 2
	et := mustSynthesize(t, "invoices", []Column{
		{Name: "total", Type: Decimal, Facets: edm.Facets{Precision: &precision, Scale: &scale}},
	})
	p := et.Property[0]
	if p.Precision == nil || *p.Precision != precision {
		t.Errorf("Precision = %v, want %d", p.Precision, precision)
	}
	if p.Scale == nil || *p.Scale != scale {
		t.Errorf("Scale = %v, want %d", p.Scale, scale)
	}
}

func TestSynthesizeEntityTypeUnknownSQLTypeFallsBackToString(t *testing.T) {
	et := mustSynthesize(t, "misc", []Column{{Name: "x", Type: SQLType(-1)}})
	if et.Property[0].Type != "Edm.String" {
		t.Errorf("Type = %q, want Edm.String fallback", et.Property[0].Type)
	}
}

type reflectedProduct struct {
	ID    string `odata:"key"`
	Name  string
	Price float32
	internal string
}

func (reflectedProduct) unexportedMethod() {}

func TestSynthesizeEntityTypeFromStruct(t *testing.T) {
	et, err := SynthesizeEntityTypeFromStruct("Products", reflectedProduct{})
	if err != nil {
		t.Fatalf("SynthesizeEntityTypeFromStruct() error = %v", err)
	}
	if len(et.Property) != 3 {
		t.Fatalf("len(Property) = %d, want 3 (unexported field skipped)", len(et.Property))
	}
	if et.Key == nil || len(et.Key.PropertyRef) != 1 || et.Key.PropertyRef[0].Name != "ID" {
		t.Errorf("Key = %+v, want PropertyRef{ID} from the odata:\"key\" tag", et.Key)
	}
}

func TestODataModelRegisterOverwritesOnReregister(t *testing.T) {
	m := NewODataModel("ODataService", "https://example.test")
	catalog1 := lowering.NewMapCatalog().AddColumn("Name", "name", false)
	et1 := mustSynthesize(t, "Products", []Column{{Name: "name", Type: Text}})
	m.Register("Products", et1, catalog1)

	catalog2 := lowering.NewMapCatalog().AddColumn("Name", "name", false).AddColumn("Price", "price", false)
	et2 := mustSynthesize(t, "Products", []Column{{Name: "name", Type: Text}, {Name: "price", Type: Decimal}})
	m.Register("Products", et2, catalog2)

	if len(m.EntitySets()) != 1 {
		t.Fatalf("len(EntitySets()) = %d, want 1", len(m.EntitySets()))
	}
	es, ok := m.Get("Products")
	if !ok {
		t.Fatalf("Get(Products) not found")
	}
	if len(es.EntityType.Property) != 2 {
		t.Errorf("registered EntityType has %d properties, want 2 (the second registration)", len(es.EntityType.Property))
	}
}

func TestODataModelEdmxAndContextURL(t *testing.T) {
	m := NewODataModel("ODataService", "https://example.test")
	m.Register("Products", mustSynthesize(t, "Products", []Column{{Name: "name", Type: Text, IsPrimaryKey: true}}), lowering.NewMapCatalog())

	doc := m.Edmx()
	if len(doc.DataServices.Schemas) != 1 {
		t.Fatalf("len(Schemas) = %d, want 1", len(doc.DataServices.Schemas))
	}
	schema := doc.DataServices.Schemas[0]
	if schema.EntityContainer == nil || len(schema.EntityContainer.EntitySet) != 1 {
		t.Fatalf("EntityContainer.EntitySet = %+v, want 1 entry", schema.EntityContainer)
	}
	if schema.EntityContainer.EntitySet[0].EntityType != "ODataService.Products" {
		t.Errorf("EntitySet.EntityType = %q, want ODataService.Products", schema.EntityContainer.EntitySet[0].EntityType)
	}

	ctx, err := m.ContextURL("Products")
	if err != nil {
		t.Fatalf("ContextURL() error = %v", err)
	}
	if !strings.HasSuffix(ctx, "/$metadata#Products") {
		t.Errorf("ContextURL = %q, want suffix /$metadata#Products", ctx)
	}

	if _, err := m.ContextURL("Ghost"); err == nil {
		t.Errorf("ContextURL(Ghost) error = nil, want error")
	}
}

func TestODataModelRegisterEnumAppearsInEdmx(t *testing.T) {
	type Status int
	if err := RegisterEnumMembers(reflect.TypeOf(Status(0)), []EnumMember{
		{Name: "Active", Value: 0},
		{Name: "Retired", Value: 1},
	}); err != nil {
		t.Fatalf("RegisterEnumMembers() error = %v", err)
	}

	m := NewODataModel("ODataService", "https://example.test")
	if _, err := m.RegisterEnum("", Status(0)); err != nil {
		t.Fatalf("RegisterEnum() error = %v", err)
	}

	doc := m.Edmx()
	schema := doc.DataServices.Schemas[0]
	if len(schema.EnumTypes) != 1 {
		t.Fatalf("len(EnumTypes) = %d, want 1", len(schema.EnumTypes))
	}
	if schema.EnumTypes[0].Name != "Status" {
		t.Errorf("EnumTypes[0].Name = %q, want Status (derived from the Go type name)", schema.EnumTypes[0].Name)
	}
	if len(schema.EnumTypes[0].Member) != 2 {
		t.Errorf("len(Member) = %d, want 2", len(schema.EnumTypes[0].Member))
	}
}
