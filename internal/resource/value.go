// Package resource defines the request AST produced by the path and filter
// parsers: entity references, navigation chains, the filter tree, ordering,
// and pagination. It is pure data — no parsing or lowering logic lives here.
package resource

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Value is a tagged literal appearing in a key segment or a filter operand.
// It is a sum type rather than a bare string so that equality and rendering
// can distinguish '1' from 1 from @param.
type Value interface {
	isValue()
	// String renders the value's literal text; a StringValue renders without
	// its quotes.
	String() string
}

// NullValue represents the literal `null`.
type NullValue struct{}

func (NullValue) isValue()       {}
func (NullValue) String() string { return "null" }

// StringValue is a quoted string literal.
type StringValue string

func (StringValue) isValue()         {}
func (v StringValue) String() string { return string(v) }

// IntegerValue is a bare integer literal.
type IntegerValue int64

func (IntegerValue) isValue()         {}
func (v IntegerValue) String() string { return fmt.Sprintf("%d", int64(v)) }

// DecimalValue is a decimal literal, e.g. 2.55.
type DecimalValue struct {
	decimal.Decimal
}

func (DecimalValue) isValue() {}
func (v DecimalValue) String() string {
	return v.Decimal.String()
}

// NewDecimalValue constructs a DecimalValue from a decimal.Decimal.
func NewDecimalValue(d decimal.Decimal) DecimalValue {
	return DecimalValue{Decimal: d}
}

// BooleanValue is a `true`/`false` literal.
type BooleanValue bool

func (BooleanValue) isValue() {}
func (v BooleanValue) String() string {
	if v {
		return "true"
	}
	return "false"
}

// QueryOptionValue references a `@name` placeholder whose concrete value is
// supplied as a sibling query parameter. Resolution is deferred: the AST
// keeps the name, not the value, so the literal-vs-option distinction
// survives into lowering.
type QueryOptionValue string

func (QueryOptionValue) isValue()         {}
func (v QueryOptionValue) String() string { return "@" + string(v) }
