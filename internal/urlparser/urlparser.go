// Package urlparser decomposes an OData request URL into a partially
// populated resource.Resource: the path (entity, navigation chain, property,
// trailing operation) and the raw query-string values that the filter
// package later parses.
package urlparser

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/nlstn/go-odata-core/internal/odataerr"
	"github.com/nlstn/go-odata-core/internal/resource"
)

// RawQuery holds the query-string values a Parse call extracted verbatim,
// before the filter package tokenizes and parses them.
type RawQuery struct {
	Filter       string
	HasFilter    bool
	OrderBy      string
	HasOrderBy   bool
	Search       string
	HasSearch    bool
	Top          string
	HasTop       bool
	Skip         string
	HasSkip      bool
	Format       string
	HasFormat    bool
	QueryOptions map[string]string
}

// Result is the output of Parse: the path fields already applied to a
// Resource, plus the raw query values still awaiting the filter parser.
type Result struct {
	Resource *resource.Resource
	Query    RawQuery
}

// Parse decomposes path (or a full URL) into a Result. path is the resource
// path relative to the service root — stripping any `{version}/{service}`
// mount prefix is the HTTP adapter's job (it already knows its own mount
// point), the same division of labor as net/http.StripPrefix. Parse does
// not parse $filter/$orderby/$search/$format — those are handed back raw for
// the filter package to interpret, since they share its tokenizer and error
// kinds. $top and $skip are checked here as non-negative integers (anything
// else is KindInvalidQueryTopSkip) and handed back in normalized decimal form.
func Parse(input string) (*Result, error) {
	raw := input
	if !strings.Contains(raw, "://") {
		raw = "http://localhost/" + strings.TrimPrefix(raw, "/")
	}

	u, err := url.Parse(raw)
	if err != nil {
		return nil, odataerr.Wrap(odataerr.KindURL, "malformed URL", err)
	}

	segments, err := splitPathSegments(u.EscapedPath())
	if err != nil {
		return nil, err
	}

	// Drop the synthetic leading slash segment.
	if len(segments) > 0 && segments[0] == "" {
		segments = segments[1:]
	}
	if len(segments) == 0 || segments[0] == "" {
		return nil, odataerr.New(odataerr.KindIncompletePath, "no segments in resource path")
	}

	res, err := buildResource(segments)
	if err != nil {
		return nil, err
	}

	query, err := parseRawQuery(u.Query())
	if err != nil {
		return nil, err
	}
	res.QueryOptions = query.QueryOptions

	return &Result{Resource: res, Query: query}, nil
}

// splitPathSegments splits an escaped path on '/' and percent-decodes each
// segment individually — never across a slash, so a literal encoded slash
// inside a key never fuses two segments together.
func splitPathSegments(escapedPath string) ([]string, error) {
	parts := strings.Split(escapedPath, "/")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		decoded, err := url.PathUnescape(p)
		if err != nil {
			return nil, odataerr.Wrap(odataerr.KindURL, "invalid percent-encoding in path segment", err)
		}
		out = append(out, decoded)
	}
	return out, nil
}

// buildResource classifies the non-prefix segments: the first becomes the
// root entity; subsequent segments are provisionally a property until
// another non-$ segment follows, at which point the prior provisional
// property is reinterpreted as a navigation Entity.
func buildResource(segments []string) (*resource.Resource, error) {
	rootEntity, err := parseEntitySegment(segments[0])
	if err != nil {
		return nil, err
	}
	res := resource.NewResource(rootEntity)

	rest := segments[1:]
	var provisionalProperty string
	havePending := false

	flushPending := func() error {
		if !havePending {
			return nil
		}
		nav, err := parseEntitySegment(provisionalProperty)
		if err != nil {
			return err
		}
		res.Relationships = append(res.Relationships, nav)
		havePending = false
		provisionalProperty = ""
		return nil
	}

	for _, seg := range rest {
		if op, ok := resource.ParseOperation(seg); ok {
			if err := flushPending(); err != nil {
				return nil, err
			}
			res.Operation = op
			return res, nil
		}
		if strings.HasPrefix(seg, "$") {
			return nil, odataerr.New(odataerr.KindInvalidOperation, fmt.Sprintf("unknown operation %q", seg))
		}
		if err := flushPending(); err != nil {
			return nil, err
		}
		provisionalProperty = seg
		havePending = true
	}

	if havePending {
		res.Property = provisionalProperty
	}
	return res, nil
}

// parseEntitySegment splits a "Name" or "Name(Key)" segment and extracts
// its key per the three key-literal forms the path grammar recognizes.
func parseEntitySegment(segment string) (resource.Entity, error) {
	idx := strings.IndexByte(segment, '(')
	if idx == -1 {
		return resource.Entity{Name: segment}, nil
	}
	if !strings.HasSuffix(segment, ")") {
		return resource.Entity{}, odataerr.New(odataerr.KindIncompletePath, fmt.Sprintf("unbalanced key segment %q", segment))
	}
	name := segment[:idx]
	inner := segment[idx+1 : len(segment)-1]

	key, err := parseKeyLiteral(inner)
	if err != nil {
		return resource.Entity{}, err
	}
	return resource.Entity{Name: name, Key: key}, nil
}

// parseKeyLiteral parses the text between parens: 'string', integer, or
// field=value.
func parseKeyLiteral(inner string) (resource.Key, error) {
	if strings.Contains(inner, "=") && !strings.HasPrefix(inner, "'") {
		field, valueText, ok := strings.Cut(inner, "=")
		if !ok {
			return nil, odataerr.New(odataerr.KindIncompletePath, fmt.Sprintf("malformed named key %q", inner))
		}
		val, err := parseKeyValueLiteral(valueText)
		if err != nil {
			return nil, err
		}
		return resource.KeyValuePair{Field: field, Value: val}, nil
	}

	if strings.HasPrefix(inner, "'") && strings.HasSuffix(inner, "'") && len(inner) >= 2 {
		unescaped := strings.ReplaceAll(inner[1:len(inner)-1], "''", "'")
		return resource.StringKey(unescaped), nil
	}

	if n, err := strconv.ParseInt(inner, 10, 64); err == nil {
		return resource.NumberKey(n), nil
	}

	return nil, odataerr.New(odataerr.KindIncompletePath, fmt.Sprintf("unrecognized key literal %q", inner))
}

// parseKeyValueLiteral handles the right-hand side of a field=value key:
// a quoted string, a `@name` query-option reference, or a bare integer.
func parseKeyValueLiteral(text string) (resource.Value, error) {
	if strings.HasPrefix(text, "@") {
		return resource.QueryOptionValue(text[1:]), nil
	}
	if strings.HasPrefix(text, "'") && strings.HasSuffix(text, "'") && len(text) >= 2 {
		unescaped := strings.ReplaceAll(text[1:len(text)-1], "''", "'")
		return resource.StringValue(unescaped), nil
	}
	if n, err := strconv.ParseInt(text, 10, 64); err == nil {
		return resource.IntegerValue(n), nil
	}
	return nil, odataerr.New(odataerr.KindIncompletePath, fmt.Sprintf("unrecognized key value %q", text))
}

// parseRawQuery splits recognized $-parameters and @name query-option
// parameters out of the decoded query string. Unrecognized $-parameters are
// silently ignored, per the open-world query surface.
func parseRawQuery(values url.Values) (RawQuery, error) {
	raw := RawQuery{QueryOptions: map[string]string{}}

	if v, ok := firstValue(values, "$filter"); ok {
		raw.Filter, raw.HasFilter = v, true
	}
	if v, ok := firstValue(values, "$orderby"); ok {
		raw.OrderBy, raw.HasOrderBy = v, true
	}
	if v, ok := firstValue(values, "$search"); ok {
		raw.Search, raw.HasSearch = v, true
	}
	if v, ok := firstValue(values, "$format"); ok {
		raw.Format, raw.HasFormat = v, true
	}
	if v, ok := firstValue(values, "$top"); ok {
		n, err := parseNonNegativeInt(v)
		if err != nil {
			return RawQuery{}, odataerr.Wrap(odataerr.KindInvalidQueryTopSkip, "invalid $top", err)
		}
		raw.Top, raw.HasTop = strconv.Itoa(n), true
	}
	if v, ok := firstValue(values, "$skip"); ok {
		n, err := parseNonNegativeInt(v)
		if err != nil {
			return RawQuery{}, odataerr.Wrap(odataerr.KindInvalidQueryTopSkip, "invalid $skip", err)
		}
		raw.Skip, raw.HasSkip = strconv.Itoa(n), true
	}

	for name, vals := range values {
		if !strings.HasPrefix(name, "@") || len(vals) == 0 {
			continue
		}
		raw.QueryOptions[strings.TrimPrefix(name, "@")] = unquoteQueryOption(vals[0])
	}

	return raw, nil
}

func unquoteQueryOption(v string) string {
	if len(v) >= 2 && strings.HasPrefix(v, "'") && strings.HasSuffix(v, "'") {
		return strings.ReplaceAll(v[1:len(v)-1], "''", "'")
	}
	return v
}

func firstValue(values url.Values, key string) (string, bool) {
	vals, ok := values[key]
	if !ok || len(vals) == 0 {
		return "", false
	}
	return vals[0], true
}

func parseNonNegativeInt(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, fmt.Errorf("must be non-negative, got %d", n)
	}
	return n, nil
}
