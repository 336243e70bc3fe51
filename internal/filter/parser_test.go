package filter

import (
	"testing"

	"github.com/nlstn/go-odata-core/internal/resource"
)

func TestParseFilterSimpleAndOrChain(t *testing.T) {
	tree, err := ParseFilter("Name eq 'Milk' and Price lt 2.55 or Discontinued eq true")
	if err != nil {
		t.Fatalf("ParseFilter() error = %v", err)
	}
	if len(tree) != 3 {
		t.Fatalf("len(tree) = %d, want 3", len(tree))
	}

	leaf0, ok := tree[0].Node.(resource.Leaf)
	if !ok || leaf0.Field != "Name" {
		t.Errorf("tree[0].Node = %#v, want Leaf{Field: Name}", tree[0].Node)
	}
	if tree[0].Chain == nil || *tree[0].Chain != resource.And {
		t.Errorf("tree[0].Chain = %v, want And", tree[0].Chain)
	}

	leaf1, ok := tree[1].Node.(resource.Leaf)
	if !ok || leaf1.Field != "Price" {
		t.Errorf("tree[1].Node = %#v, want Leaf{Field: Price}", tree[1].Node)
	}
	if tree[1].Chain == nil || *tree[1].Chain != resource.Or {
		t.Errorf("tree[1].Chain = %v, want Or", tree[1].Chain)
	}

	leaf2, ok := tree[2].Node.(resource.Leaf)
	if !ok || leaf2.Field != "Discontinued" {
		t.Errorf("tree[2].Node = %#v, want Leaf{Field: Discontinued}", tree[2].Node)
	}
	if tree[2].Chain != nil {
		t.Errorf("tree[2].Chain = %v, want nil", tree[2].Chain)
	}

	if _, ok := leaf2.Op.(resource.EqOp); !ok {
		t.Errorf("leaf2.Op = %#v, want EqOp", leaf2.Op)
	}
}

func TestParseFilterNestedGroupsAndNegation(t *testing.T) {
	tree, err := ParseFilter("(not(contains(FirstName,'Q')) or Gender eq 'Male') and not(LastName eq 'Ketchum')")
	if err != nil {
		t.Fatalf("ParseFilter() error = %v", err)
	}
	if len(tree) != 2 {
		t.Fatalf("len(tree) = %d, want 2", len(tree))
	}
	if tree[0].Chain == nil || *tree[0].Chain != resource.And {
		t.Errorf("tree[0].Chain = %v, want And", tree[0].Chain)
	}
	if tree[1].Chain != nil {
		t.Errorf("tree[1].Chain = %v, want nil", tree[1].Chain)
	}

	group, ok := tree[0].Node.(resource.Group)
	if !ok {
		t.Fatalf("tree[0].Node = %#v, want Group", tree[0].Node)
	}
	if group.Negated {
		t.Errorf("group.Negated = true, want false")
	}
	if len(group.Inner) != 2 {
		t.Fatalf("len(group.Inner) = %d, want 2", len(group.Inner))
	}
	innerLeaf0, ok := group.Inner[0].Node.(resource.Leaf)
	if !ok || !innerLeaf0.Negated {
		t.Errorf("group.Inner[0].Node = %#v, want negated Leaf", group.Inner[0].Node)
	}
	if _, ok := innerLeaf0.Op.(resource.FunctionOp); !ok {
		t.Errorf("group.Inner[0].Node.Op = %#v, want FunctionOp", innerLeaf0.Op)
	}
	if group.Inner[0].Chain == nil || *group.Inner[0].Chain != resource.Or {
		t.Errorf("group.Inner[0].Chain = %v, want Or", group.Inner[0].Chain)
	}
	innerLeaf1, ok := group.Inner[1].Node.(resource.Leaf)
	if !ok || innerLeaf1.Field != "Gender" {
		t.Errorf("group.Inner[1].Node = %#v, want Leaf{Field: Gender}", group.Inner[1].Node)
	}

	leaf1, ok := tree[1].Node.(resource.Leaf)
	if !ok || !leaf1.Negated || leaf1.Field != "LastName" {
		t.Errorf("tree[1].Node = %#v, want negated Leaf{Field: LastName}", tree[1].Node)
	}
}

func TestParseOrderByDefaultAscendingAndExplicitDirections(t *testing.T) {
	entries, err := ParseOrderBy("Rating desc,BaseRate")
	if err != nil {
		t.Fatalf("ParseOrderBy() error = %v", err)
	}
	want := []resource.OrderByEntry{
		{Field: "Rating", Direction: resource.Desc},
		{Field: "BaseRate", Direction: resource.Asc},
	}
	if len(entries) != len(want) {
		t.Fatalf("len(entries) = %d, want %d", len(entries), len(want))
	}
	for i := range want {
		if entries[i] != want[i] {
			t.Errorf("entries[%d] = %+v, want %+v", i, entries[i], want[i])
		}
	}
}

func TestParseOrderByMalformedEntry(t *testing.T) {
	_, err := ParseOrderBy("Rating desc extra")
	if err == nil {
		t.Fatalf("ParseOrderBy() error = nil, want error")
	}
}

func TestParseFilterInOperator(t *testing.T) {
	tree, err := ParseFilter("Category in ('Dairy','Bakery')")
	if err != nil {
		t.Fatalf("ParseFilter() error = %v", err)
	}
	leaf, ok := tree[0].Node.(resource.Leaf)
	if !ok {
		t.Fatalf("tree[0].Node = %#v, want Leaf", tree[0].Node)
	}
	inOp, ok := leaf.Op.(resource.InOp)
	if !ok || len(inOp.Values) != 2 {
		t.Fatalf("leaf.Op = %#v, want InOp with 2 values", leaf.Op)
	}
	if inOp.Values[0].String() != "Dairy" || inOp.Values[1].String() != "Bakery" {
		t.Errorf("inOp.Values = %v, want [Dairy Bakery]", inOp.Values)
	}
}

func TestParseFormatMediaTypeAndParameters(t *testing.T) {
	f := ParseFormat("application/json;metadata=full;streaming=true")
	if f.MediaType != "application/json" {
		t.Errorf("MediaType = %q, want application/json", f.MediaType)
	}
	if f.Metadata != resource.MetadataFull {
		t.Errorf("Metadata = %q, want full", f.Metadata)
	}
	if !f.Streaming {
		t.Errorf("Streaming = false, want true")
	}
}

func TestParseValueLiteralPriorityOrder(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"'abc'", "abc"},
		{"@color", "@color"},
		{"42", "42"},
		{"true", "true"},
		{"2.55", "2.55"},
		{"", "null"},
		{"bareword", "bareword"},
	}
	for _, tt := range tests {
		if got := parseValueLiteral(tt.text).String(); got != tt.want {
			t.Errorf("parseValueLiteral(%q).String() = %q, want %q", tt.text, got, tt.want)
		}
	}
}
