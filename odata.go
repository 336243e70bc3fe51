// Package odata is the parsing, query-lowering, and EDM reflection core of
// an OData v4 server library. It decomposes a request URL into a Resource,
// lowers that Resource against a backend column catalog into a
// backend-agnostic query Plan, and reflects backend columns into CSDL
// metadata. It does not itself serve HTTP — binding this core to a
// transport, a storage backend, and CRUD semantics is the adapter's job.
package odata

import (
	"context"
	"strconv"
	"time"

	"github.com/nlstn/go-odata-core/internal/filter"
	"github.com/nlstn/go-odata-core/internal/lowering"
	"github.com/nlstn/go-odata-core/internal/observability"
	"github.com/nlstn/go-odata-core/internal/odataerr"
	"github.com/nlstn/go-odata-core/internal/resource"
	"github.com/nlstn/go-odata-core/internal/urlparser"
)

// Resource is the fully parsed request AST ParseURL produces.
type Resource = resource.Resource

// Plan is the backend-agnostic query plan Lower produces.
type Plan = lowering.Plan

// ColumnCatalog is the backend-side field-to-column mapping Lower consumes.
type ColumnCatalog = lowering.ColumnCatalog

// MapCatalog is the in-memory ColumnCatalog implementation, exported so
// callers building a catalog by hand don't have to reach into internal/.
type MapCatalog = lowering.MapCatalog

// NewMapCatalog builds an empty MapCatalog.
func NewMapCatalog() *MapCatalog {
	return lowering.NewMapCatalog()
}

// LowerOption configures a Lower call, e.g. WithStrictUnknownFields.
type LowerOption = lowering.Option

// WithStrictUnknownFields rejects a filter leaf referencing a field the
// catalog does not recognize, instead of the default silent-drop policy
// (spec §7's deliberate open-world divergence from strict validation).
func WithStrictUnknownFields() LowerOption {
	return lowering.WithStrictUnknownFields()
}

// ParseURL decomposes path (or a full URL) into a fully populated Resource:
// the entity/navigation/property path from urlparser, and the $filter,
// $orderby, $search, $top, $skip, and $format query options from filter.
// path is resource-root-relative; an HTTP adapter strips its own mount
// prefix before calling in.
func ParseURL(path string) (*Resource, error) {
	result, err := urlparser.Parse(path)
	if err != nil {
		return nil, asCoreError(err)
	}
	res := result.Resource

	if result.Query.HasFilter {
		tree, err := filter.ParseFilter(result.Query.Filter)
		if err != nil {
			return nil, asCoreError(err)
		}
		res.Filter = tree
	}
	if result.Query.HasOrderBy {
		entries, err := filter.ParseOrderBy(result.Query.OrderBy)
		if err != nil {
			return nil, asCoreError(err)
		}
		res.OrderBy = entries
	}
	if result.Query.HasSearch {
		res.Search = filter.FoldCase(result.Query.Search)
		res.HasSearch = true
	}
	if result.Query.HasTop {
		n, err := strconv.Atoi(result.Query.Top)
		if err != nil {
			return nil, asCoreError(odataerr.Wrap(odataerr.KindInvalidQueryTopSkip, "invalid $top", err))
		}
		res.Top = &n
	}
	if result.Query.HasSkip {
		n, err := strconv.Atoi(result.Query.Skip)
		if err != nil {
			return nil, asCoreError(odataerr.Wrap(odataerr.KindInvalidQueryTopSkip, "invalid $skip", err))
		}
		res.Skip = &n
	}
	if result.Query.HasFormat {
		res.Format = filter.ParseFormat(result.Query.Format)
	}

	if err := res.Validate(); err != nil {
		return nil, asCoreError(odataerr.Wrap(odataerr.KindIncompletePath, "resource failed validation", err))
	}
	return res, nil
}

// Lower walks res against catalog and produces a Plan, per spec §4.3.
func Lower(res *Resource, catalog ColumnCatalog, opts ...LowerOption) (*Plan, error) {
	plan, err := lowering.Lower(res, catalog, opts...)
	if err != nil {
		return nil, asCoreError(err)
	}
	return plan, nil
}

// Pipeline wraps ParseURL and Lower with OpenTelemetry spans, parse/lowering
// duration histograms, and a Server-Timing entry around the combined
// boundary — the thin observability layer spec §6's HTTP adapter sits on
// top of.
type Pipeline struct {
	obs *observability.Config
}

// NewPipeline builds a Pipeline from observability options. With no
// options, tracing and metrics are no-ops.
func NewPipeline(opts ...observability.Option) *Pipeline {
	cfg := observability.NewConfig(opts...)
	_ = cfg.Initialize()
	return &Pipeline{obs: cfg}
}

// ParseURL runs ParseURL inside a trace span and records parse duration.
func (p *Pipeline) ParseURL(ctx context.Context, path string) (*Resource, error) {
	timing := observability.StartServerTiming(ctx, "odata_parse")
	defer timing.Stop()

	ctx, span := p.obs.Tracer().StartParseSpan(ctx, path)
	start := time.Now()
	res, err := ParseURL(path)
	p.obs.PipelineMetrics().RecordParse(ctx, time.Since(start))
	observability.EndSpan(span, err)
	return res, err
}

// Lower runs Lower inside a trace span and records lowering duration and
// predicate-tree size.
func (p *Pipeline) Lower(ctx context.Context, res *Resource, catalog ColumnCatalog, opts ...LowerOption) (*Plan, error) {
	timing := observability.StartServerTiming(ctx, "odata_lower")
	defer timing.Stop()

	ctx, span := p.obs.Tracer().StartLowerSpan(ctx, res.Entity.Name)
	start := time.Now()
	plan, err := Lower(res, catalog, opts...)
	size := 0
	if plan != nil {
		size = countPredicates(plan.Predicate)
	}
	p.obs.PipelineMetrics().RecordLower(ctx, time.Since(start), size)
	observability.EndSpan(span, err)
	return plan, err
}

func countPredicates(p lowering.Predicate) int {
	switch v := p.(type) {
	case nil:
		return 0
	case lowering.AllOf:
		n := 0
		for _, c := range v.Predicates {
			n += countPredicates(c)
		}
		return n
	case lowering.AnyOf:
		n := 0
		for _, c := range v.Predicates {
			n += countPredicates(c)
		}
		return n
	case lowering.Not:
		return countPredicates(v.Predicate)
	default:
		return 1
	}
}
