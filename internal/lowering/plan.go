package lowering

import "github.com/nlstn/go-odata-core/internal/resource"

// Plan is the backend-agnostic relational query plan lowering produces.
type Plan struct {
	Predicate Predicate // nil when there is no filter and no search term
	OrderBy   []OrderClause
	Limit     *int
	Offset    *int
}

// OrderClause is one emitted ORDER BY entry.
type OrderClause struct {
	Column    string
	Direction resource.Direction
}

// Predicate is a tagged sum of the relational predicate-combinator shapes a
// plan can carry.
type Predicate interface {
	isPredicate()
}

// AllOf is a conjunction of predicates (SQL AND).
type AllOf struct{ Predicates []Predicate }

func (AllOf) isPredicate() {}

// AnyOf is a disjunction of predicates (SQL OR).
type AnyOf struct{ Predicates []Predicate }

func (AnyOf) isPredicate() {}

// Not wraps a predicate in logical negation.
type Not struct{ Predicate Predicate }

func (Not) isPredicate() {}

// ComparisonOp is a direct column comparator.
type ComparisonOp string

const (
	OpEq ComparisonOp = "eq"
	OpNe ComparisonOp = "ne"
	OpGt ComparisonOp = "gt"
	OpGe ComparisonOp = "ge"
	OpLt ComparisonOp = "lt"
	OpLe ComparisonOp = "le"
)

// Comparison is a single `column OP value` predicate.
type Comparison struct {
	Column string
	Op     ComparisonOp
	Value  resource.Value
}

func (Comparison) isPredicate() {}

// IsNull is `column IS NULL`.
type IsNull struct{ Column string }

func (IsNull) isPredicate() {}

// IsNotNull is `column IS NOT NULL`.
type IsNotNull struct{ Column string }

func (IsNotNull) isPredicate() {}

// In is `column IN (...)`.
type In struct {
	Column string
	Values []resource.Value
}

func (In) isPredicate() {}

// Search is the cross-column `$search` predicate: an AnyOf over
// `LOWER(column) LIKE '%term%'` for every column in the catalog.
type Search struct {
	Columns []string
	Term    string
}

func (Search) isPredicate() {}
