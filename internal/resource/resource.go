package resource

import "fmt"

// Direction is the sort direction of a single $orderby entry.
type Direction string

const (
	// Asc is the default direction when one is not specified.
	Asc Direction = "asc"
	// Desc sorts descending.
	Desc Direction = "desc"
)

// OrderByEntry is a single `field [asc|desc]` entry of $orderby. Entries are
// kept in list order — the first is the most significant sort key.
type OrderByEntry struct {
	Field     string
	Direction Direction
}

// MetadataLevel is the `odata.metadata` format parameter.
type MetadataLevel string

const (
	// MetadataMinimal is the default metadata level.
	MetadataMinimal MetadataLevel = "minimal"
	// MetadataNone omits all odata annotations.
	MetadataNone MetadataLevel = "none"
	// MetadataFull includes all odata annotations.
	MetadataFull MetadataLevel = "full"
)

// Format is the negotiated response format, derived from $format (or,
// conceptually, the Accept header, which is an adapter-layer concern).
type Format struct {
	MediaType string
	Metadata  MetadataLevel
	Streaming bool
}

// DefaultFormat is the format a Resource carries when $format is absent.
func DefaultFormat() Format {
	return Format{
		MediaType: "application/json",
		Metadata:  MetadataMinimal,
		Streaming: false,
	}
}

// Resource is the fully parsed request AST: the output of C3 (path) and C4
// (query options) combined. It is constructed once per request by the
// parser and is read-only thereafter — the lowering engine never mutates it
// (spec.md §3 invariant 5).
type Resource struct {
	Entity        Entity
	Kind          ResourceKind
	Relationships []Entity
	Property      string    // "" when absent
	Operation     Operation // OpNone when absent
	Filter        FilterTree
	OrderBy       []OrderByEntry
	Search        string
	HasSearch     bool
	Top           *int
	Skip          *int
	Format        Format

	// QueryOptions holds the sibling `@name='...'` parameters a
	// Value.QueryOption / Key.KeyValuePair reference resolves against.
	// Kept on the Resource so lowering can be self-contained (spec.md §9).
	QueryOptions map[string]string
}

// NewResource returns a Resource with its zero-value defaults applied
// (notably Format).
func NewResource(entity Entity) *Resource {
	return &Resource{
		Entity:       entity,
		Kind:         KindEntitySet,
		Format:       DefaultFormat(),
		QueryOptions: map[string]string{},
	}
}

// TerminalEntity returns the entity a trailing Property or Operation applies
// to: the last relationship if any navigation occurred, otherwise the root
// entity (spec.md §3 invariant 1).
func (r *Resource) TerminalEntity() Entity {
	if len(r.Relationships) > 0 {
		return r.Relationships[len(r.Relationships)-1]
	}
	return r.Entity
}

// ResolveQueryOption looks up the literal value bound to a `@name`
// QueryOption reference. ok is false if no sibling query parameter supplied
// a value for that name.
func (r *Resource) ResolveQueryOption(name string) (string, bool) {
	if r.QueryOptions == nil {
		return "", false
	}
	v, ok := r.QueryOptions[name]
	return v, ok
}

// Validate checks the structural invariants spec.md §3 requires of a
// well-formed Resource. Parsers should call it before returning a Resource
// to a caller.
func (r *Resource) Validate() error {
	if r.Property != "" && len(r.Relationships) == 0 && r.Entity.Name == "" {
		return fmt.Errorf("resource: property %q has no terminal entity", r.Property)
	}
	if r.Top != nil && *r.Top < 0 {
		return fmt.Errorf("resource: top must be non-negative, got %d", *r.Top)
	}
	if r.Skip != nil && *r.Skip < 0 {
		return fmt.Errorf("resource: skip must be non-negative, got %d", *r.Skip)
	}
	for i, entry := range r.Filter {
		isLast := i == len(r.Filter)-1
		if isLast && entry.Chain != nil {
			return fmt.Errorf("resource: filter entry %d is last but carries a chain", i)
		}
		if !isLast && entry.Chain == nil {
			return fmt.Errorf("resource: filter entry %d is not last but carries no chain", i)
		}
	}
	return nil
}
