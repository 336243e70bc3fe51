package lowering

import (
	"fmt"
	"strings"

	"github.com/nlstn/go-odata-core/internal/filter"
	"github.com/nlstn/go-odata-core/internal/odataerr"
	"github.com/nlstn/go-odata-core/internal/resource"
)

// Option configures a Lower call.
type Option func(*options)

type options struct {
	strictUnknownFields bool
}

// WithStrictUnknownFields rejects a filter leaf referencing a field the
// catalog does not recognize, instead of the default silent-drop policy.
func WithStrictUnknownFields() Option {
	return func(o *options) { o.strictUnknownFields = true }
}

// Lower walks res against catalog and produces a Plan: a predicate tree
// with correctly reconciled AND/OR grouping, a search predicate if
// applicable, ordering, and limit/offset. It returns a *odataerr.Error of
// Kind NotImplemented if a Has or Function leaf reaches a matched column.
func Lower(res *resource.Resource, catalog ColumnCatalog, opts ...Option) (*Plan, error) {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	l := &lowerer{catalog: catalog, strictUnknownFields: o.strictUnknownFields, res: res}

	var combined Predicate
	if !res.Filter.IsEmpty() {
		pred, err := buildCombinator(res.Filter, l.nodeToPredicate)
		if err != nil {
			return nil, err
		}
		combined = pred
	}

	if res.HasSearch && strings.TrimSpace(res.Search) != "" {
		cols := catalog.Columns()
		if len(cols) > 0 {
			search := Search{Columns: cols, Term: res.Search}
			combined = andAll([]Predicate{combined, search})
		}
	}

	orderBy := make([]OrderClause, 0, len(res.OrderBy))
	for _, entry := range res.OrderBy {
		column, ok := catalog.Column(entry.Field)
		if !ok {
			continue
		}
		orderBy = append(orderBy, OrderClause{Column: column, Direction: entry.Direction})
	}

	return &Plan{
		Predicate: combined,
		OrderBy:   orderBy,
		Limit:     res.Top,
		Offset:    res.Skip,
	}, nil
}

type lowerer struct {
	catalog             ColumnCatalog
	strictUnknownFields bool
	res                 *resource.Resource
}

// resolveValue substitutes a `@name` QueryOptionValue with its concrete
// literal, parsed from the sibling query parameter the Resource carries.
// Per spec, resolution is deferred until lowering so the AST preserves the
// literal-vs-option distinction end-to-end; an unresolved or missing option
// lowers to NullValue rather than failing the whole query.
func (l *lowerer) resolveValue(v resource.Value) resource.Value {
	opt, ok := v.(resource.QueryOptionValue)
	if !ok {
		return v
	}
	raw, ok := l.res.ResolveQueryOption(string(opt))
	if !ok {
		return resource.NullValue{}
	}
	return filter.ParseValueLiteral(raw)
}

// buildCombinator implements the AND/OR reconciliation: it partitions the
// flat chain on its Or connectors into maximal And-only runs (clusters),
// wraps each multi-element cluster in AllOf, and combines the clusters
// (or the single surviving predicate, when there turns out to be only one)
// under AnyOf. When the chain carries no Or at all, the whole sequence is
// one AllOf. A predicate dropped by the unknown-field policy contributes
// nothing at either level.
func buildCombinator(entries resource.FilterTree, toPredicate func(resource.Node) (Predicate, error)) (Predicate, error) {
	if entries.IsEmpty() {
		return nil, nil
	}

	preds := make([]Predicate, len(entries))
	for i, e := range entries {
		p, err := toPredicate(e.Node)
		if err != nil {
			return nil, err
		}
		preds[i] = p
	}

	hasOr := false
	for _, e := range entries {
		if e.Chain != nil && *e.Chain == resource.Or {
			hasOr = true
			break
		}
	}
	if !hasOr {
		return andAll(preds), nil
	}

	var clusters [][]Predicate
	start := 0
	for i := 0; i < len(entries)-1; i++ {
		if *entries[i].Chain == resource.Or {
			clusters = append(clusters, preds[start:i+1])
			start = i + 1
		}
	}
	clusters = append(clusters, preds[start:])

	var anyPreds []Predicate
	for _, c := range clusters {
		if p := andAll(c); p != nil {
			anyPreds = append(anyPreds, p)
		}
	}
	switch len(anyPreds) {
	case 0:
		return nil, nil
	case 1:
		return anyPreds[0], nil
	default:
		return AnyOf{Predicates: anyPreds}, nil
	}
}

// andAll combines preds with AllOf, skipping nils (dropped leaves) and
// collapsing a single survivor to a bare predicate rather than a
// one-element AllOf.
func andAll(preds []Predicate) Predicate {
	out := make([]Predicate, 0, len(preds))
	for _, p := range preds {
		if p != nil {
			out = append(out, p)
		}
	}
	switch len(out) {
	case 0:
		return nil
	case 1:
		return out[0]
	default:
		return AllOf{Predicates: out}
	}
}

func (l *lowerer) nodeToPredicate(node resource.Node) (Predicate, error) {
	switch n := node.(type) {
	case resource.Leaf:
		return l.leafToPredicate(n)
	case resource.Group:
		inner, err := buildCombinator(n.Inner, l.nodeToPredicate)
		if err != nil {
			return nil, err
		}
		if inner == nil {
			return nil, nil
		}
		if n.Negated {
			return Not{Predicate: inner}, nil
		}
		return inner, nil
	default:
		return nil, fmt.Errorf("lowering: unsupported filter node type %T", node)
	}
}

func (l *lowerer) leafToPredicate(leaf resource.Leaf) (Predicate, error) {
	column, ok := l.catalog.Column(leaf.Field)
	if !ok {
		if l.strictUnknownFields {
			return nil, odataerr.New(odataerr.KindInvalidOperation, fmt.Sprintf("unknown filter field %q", leaf.Field))
		}
		return nil, nil
	}

	var pred Predicate
	switch op := leaf.Op.(type) {
	case resource.EqOp:
		val := l.resolveValue(op.Value)
		if _, isNull := val.(resource.NullValue); isNull {
			pred = IsNull{Column: column}
		} else {
			pred = Comparison{Column: column, Op: OpEq, Value: val}
		}
	case resource.NeOp:
		val := l.resolveValue(op.Value)
		if _, isNull := val.(resource.NullValue); isNull {
			pred = IsNotNull{Column: column}
		} else {
			pred = Comparison{Column: column, Op: OpNe, Value: val}
		}
	case resource.GtOp:
		pred = Comparison{Column: column, Op: OpGt, Value: l.resolveValue(op.Value)}
	case resource.GeOp:
		pred = Comparison{Column: column, Op: OpGe, Value: l.resolveValue(op.Value)}
	case resource.LtOp:
		pred = Comparison{Column: column, Op: OpLt, Value: l.resolveValue(op.Value)}
	case resource.LeOp:
		pred = Comparison{Column: column, Op: OpLe, Value: l.resolveValue(op.Value)}
	case resource.InOp:
		values := make([]resource.Value, len(op.Values))
		for i, v := range op.Values {
			values[i] = l.resolveValue(v)
		}
		pred = In{Column: column, Values: values}
	case resource.HasOp:
		return nil, odataerr.New(odataerr.KindNotImplemented, fmt.Sprintf("has operator on field %q is not implemented", leaf.Field))
	case resource.FunctionOp:
		return nil, odataerr.New(odataerr.KindNotImplemented, fmt.Sprintf("function %q is not implemented", op.Source))
	default:
		return nil, fmt.Errorf("lowering: unsupported filter op type %T", leaf.Op)
	}

	if leaf.Negated {
		return Not{Predicate: pred}, nil
	}
	return pred, nil
}
