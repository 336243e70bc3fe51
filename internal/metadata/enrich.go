package metadata

// ResourceKind classifies a resource surfaced by a service document, per
// the four kinds OData's service-document JSON actually carries.
type ResourceKind string

const (
	KindEntitySet       ResourceKind = "EntitySet"
	KindSingleton       ResourceKind = "Singleton"
	KindFunctionImport  ResourceKind = "FunctionImport"
	KindServiceDocument ResourceKind = "ServiceDocument"
)

// ServiceDocument is the decoded JSON body of a service root response
// (GET /, the "value" array of named resources plus its @odata.context).
// Enrich consumes one of these; fetching it over HTTP is out of scope here.
type ServiceDocument struct {
	Context string                 `json:"@odata.context"`
	Value   []ServiceDocumentEntry `json:"value"`
}

// ServiceDocumentEntry is one entry in a ServiceDocument's value array.
type ServiceDocumentEntry struct {
	Name  string  `json:"name"`
	Kind  *string `json:"kind,omitempty"`
	URL   string  `json:"url"`
	Title *string `json:"title,omitempty"`
}

// DiscoveredResource is a resource learned from a service document rather
// than registered locally from a backend catalog. Unlike EntitySet, it
// carries no EntityType or ColumnCatalog — Enrich only records what the
// remote service advertised, not how to query it.
type DiscoveredResource struct {
	Name  string
	Kind  ResourceKind
	URL   string
	Title string
}

func resourceKindOf(entry ServiceDocumentEntry) ResourceKind {
	if entry.Kind == nil {
		return KindEntitySet
	}
	switch *entry.Kind {
	case "Singleton":
		return KindSingleton
	case "FunctionImport":
		return KindFunctionImport
	case "ServiceDocument":
		return KindServiceDocument
	default:
		return KindEntitySet
	}
}

// Enrich populates the registry's discovered-resource list and
// @odata.context from a fetched service document, per the original
// ODataEndpoint.enrich. It does not touch the locally Register-ed entity
// sets: a discovered resource without a matching Register call has no
// EntityType or ColumnCatalog, so lowering and $metadata continue to serve
// only what was explicitly registered.
func (m *ODataModel) Enrich(doc ServiceDocument) {
	m.ODataContext = doc.Context
	m.Discovered = make([]DiscoveredResource, 0, len(doc.Value))
	for _, entry := range doc.Value {
		title := ""
		if entry.Title != nil {
			title = *entry.Title
		}
		m.Discovered = append(m.Discovered, DiscoveredResource{
			Name:  entry.Name,
			Kind:  resourceKindOf(entry),
			URL:   entry.URL,
			Title: title,
		})
	}
}
