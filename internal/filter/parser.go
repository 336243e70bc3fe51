// Package filter tokenizes and parses the $filter expression language into
// a resource.FilterTree, and parses the sibling $orderby and $format query
// options. $top and $skip are validated by the urlparser package.
package filter

import (
	"fmt"
	"strings"

	"github.com/nlstn/go-odata-core/internal/odataerr"
	"github.com/nlstn/go-odata-core/internal/resource"
)

var comparisonOps = map[string]func(resource.Value) resource.FilterOp{
	"eq": func(v resource.Value) resource.FilterOp { return resource.EqOp{Value: v} },
	"ne": func(v resource.Value) resource.FilterOp { return resource.NeOp{Value: v} },
	"gt": func(v resource.Value) resource.FilterOp { return resource.GtOp{Value: v} },
	"ge": func(v resource.Value) resource.FilterOp { return resource.GeOp{Value: v} },
	"lt": func(v resource.Value) resource.FilterOp { return resource.LtOp{Value: v} },
	"le": func(v resource.Value) resource.FilterOp { return resource.LeOp{Value: v} },
}

// ParseFilter parses the value of $filter into a FilterTree.
func ParseFilter(src string) (resource.FilterTree, error) {
	if strings.TrimSpace(src) == "" {
		return nil, odataerr.New(odataerr.KindIncompletePath, "empty $filter expression")
	}
	return parseTokens(tokenize(src))
}

// parseTokens turns one level's word-token stream into a FilterTree by
// splitting on top-level "and"/"or" words — any and/or nested inside a
// group was already fused into a single token by mergeParenGroups, so only
// genuine top-level connectors remain bare here.
func parseTokens(tokens []string) (resource.FilterTree, error) {
	if len(tokens) == 0 {
		return nil, odataerr.New(odataerr.KindIncompletePath, "empty filter clause")
	}

	var spans [][]string
	var chains []resource.Chain
	start := 0
	for i, tok := range tokens {
		if tok == "and" || tok == "or" {
			spans = append(spans, tokens[start:i])
			if tok == "and" {
				chains = append(chains, resource.And)
			} else {
				chains = append(chains, resource.Or)
			}
			start = i + 1
		}
	}
	spans = append(spans, tokens[start:])

	tree := make(resource.FilterTree, 0, len(spans))
	for i, span := range spans {
		node, err := parseTerm(span)
		if err != nil {
			return nil, err
		}
		entry := resource.FilterEntry{Node: node}
		if i < len(chains) {
			c := chains[i]
			entry.Chain = &c
		}
		tree = append(tree, entry)
	}
	return tree, nil
}

// parseTerm classifies a single term span: a (possibly not-prefixed) group,
// a (possibly not-prefixed) function call, or a field predicate.
func parseTerm(span []string) (resource.Node, error) {
	if len(span) == 0 {
		return nil, odataerr.New(odataerr.KindIncompletePath, "empty filter term")
	}

	negated := false
	if span[0] == "not" {
		negated = true
		span = span[1:]
		if len(span) == 0 {
			return nil, odataerr.New(odataerr.KindIncompletePath, "truncated 'not' clause")
		}
	}

	if len(span) == 1 {
		tok := span[0]

		if strings.HasPrefix(tok, "not(") && strings.HasSuffix(tok, ")") {
			negated = !negated
			return wrapGroupOrFunc(negated, tok[3:])
		}
		if strings.HasPrefix(tok, "(") && strings.HasSuffix(tok, ")") {
			return wrapGroupOrFunc(negated, tok)
		}
		if isFunctionCall(tok) {
			return functionLeaf(negated, tok), nil
		}
	}

	return parsePredicate(negated, span)
}

// wrapGroupOrFunc handles the text of a parenthesized span: strip the outer
// parens and parse the inside recursively. If the result collapses to a
// single leaf, the Group wrapper itself collapses away (spec: a group
// containing exactly one leaf is represented as a bare Leaf with the
// negated flags merged).
func wrapGroupOrFunc(negated bool, parenText string) (resource.Node, error) {
	if !strings.HasPrefix(parenText, "(") || !strings.HasSuffix(parenText, ")") {
		return nil, odataerr.New(odataerr.KindIncompletePath, fmt.Sprintf("unbalanced group %q", parenText))
	}
	inner := parenText[1 : len(parenText)-1]
	innerTree, err := parseTokens(tokenize(inner))
	if err != nil {
		return nil, err
	}

	if len(innerTree) == 1 && innerTree[0].Chain == nil {
		if leaf, ok := innerTree[0].Node.(resource.Leaf); ok {
			leaf.Negated = leaf.Negated != negated
			return leaf, nil
		}
	}

	return resource.Group{Negated: negated, Inner: innerTree}, nil
}

// isFunctionCall reports whether tok has the shape identifier(...) with
// balanced, non-empty parens, as opposed to a group token that begins with
// "(" itself.
func isFunctionCall(tok string) bool {
	idx := strings.IndexByte(tok, '(')
	if idx <= 0 || !strings.HasSuffix(tok, ")") {
		return false
	}
	return parenDelta(tok) == 0
}

func functionLeaf(negated bool, tok string) resource.Node {
	name := tok[:strings.IndexByte(tok, '(')]
	return resource.Leaf{Negated: negated, Field: name, Op: resource.FunctionOp{Source: tok}}
}

// parsePredicate parses `ident op value`, `ident in (...)`, or
// `ident has typedLiteral`.
func parsePredicate(negated bool, span []string) (resource.Node, error) {
	if len(span) < 3 {
		return nil, odataerr.New(odataerr.KindIncompletePath, fmt.Sprintf("truncated predicate %q", strings.Join(span, " ")))
	}

	field := span[0]
	opWord := span[1]
	rest := strings.Join(span[2:], " ")

	switch opWord {
	case "in":
		if !strings.HasPrefix(rest, "(") || !strings.HasSuffix(rest, ")") {
			return nil, odataerr.New(odataerr.KindIncompletePath, fmt.Sprintf("malformed 'in' list %q", rest))
		}
		parts := splitInList(rest[1 : len(rest)-1])
		values := make([]resource.Value, 0, len(parts))
		for _, p := range parts {
			values = append(values, parseValueLiteral(p))
		}
		return resource.Leaf{Negated: negated, Field: field, Op: resource.InOp{Values: values}}, nil

	case "has":
		return resource.Leaf{Negated: negated, Field: field, Op: resource.HasOp{Literal: rest}}, nil

	default:
		build, ok := comparisonOps[opWord]
		if !ok {
			return nil, odataerr.New(odataerr.KindIncompletePath, fmt.Sprintf("unrecognized operator %q", opWord))
		}
		value := parseValueLiteral(rest)
		return resource.Leaf{Negated: negated, Field: field, Op: build(value)}, nil
	}
}
