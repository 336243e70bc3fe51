package odata

import (
	"github.com/nlstn/go-odata-core/internal/edm"
	"github.com/nlstn/go-odata-core/internal/gormapply"
	"github.com/nlstn/go-odata-core/internal/lowering"
	"github.com/nlstn/go-odata-core/internal/metadata"
	"github.com/nlstn/go-odata-core/internal/observability"
	"gorm.io/gorm"
)

// EntityType is a CSDL entity type: a Name, an ordered Property list, and a
// Key/PropertyRef list synthesized from a backend's primary-key columns.
type EntityType = edm.EntityType

// Edmx is the CSDL document root $metadata serializes.
type Edmx = edm.Edmx

// SQLType is a backend-neutral column type family used to synthesize an
// EntityType's properties.
type SQLType = metadata.SQLType

// Re-exported SQLType family constants.
const (
	Char          = metadata.Char
	VarString     = metadata.VarString
	Text          = metadata.Text
	JSON          = metadata.JSON
	JSONBinary    = metadata.JSONBinary
	Array         = metadata.Array
	Enum          = metadata.Enum
	Inet          = metadata.Inet
	Cidr          = metadata.Cidr
	MacAddr       = metadata.MacAddr
	Custom        = metadata.Custom
	Integer       = metadata.Integer
	Unsigned      = metadata.Unsigned
	Year          = metadata.Year
	BigInteger    = metadata.BigInteger
	BigUnsigned   = metadata.BigUnsigned
	SmallInteger  = metadata.SmallInteger
	SmallUnsigned = metadata.SmallUnsigned
	TinyInteger   = metadata.TinyInteger
	TinyUnsigned  = metadata.TinyUnsigned
	Float         = metadata.Float
	Double        = metadata.Double
	Decimal       = metadata.Decimal
	Money         = metadata.Money
	Boolean       = metadata.Boolean
	Date          = metadata.Date
	Time          = metadata.Time
	DateTime      = metadata.DateTime
	Timestamp     = metadata.Timestamp
	Binary        = metadata.Binary
	VarBinary     = metadata.VarBinary
	UUID          = metadata.UUID
)

// Column is one ordered backend column, as a reflection layer would report
// it, for SynthesizeEntityType.
type Column = metadata.Column

// SynthesizeEntityType builds a CSDL EntityType from an ordered column list.
// An error means a column's declared facets (or Default literal) failed
// validation against the EDM type it was mapped to.
func SynthesizeEntityType(name string, columns []Column) (*EntityType, error) {
	return metadata.SynthesizeEntityType(name, columns)
}

// SynthesizeEntityTypeFromStruct builds a CSDL EntityType by reflecting on
// the exported fields of a zero-value struct, honoring `odata:"-"` (skip)
// and `odata:"key"` (key property) field tags.
func SynthesizeEntityTypeFromStruct(name string, sample interface{}) (*EntityType, error) {
	return metadata.SynthesizeEntityTypeFromStruct(name, sample)
}

// EntitySet binds one published entity-set name to its EntityType and the
// column catalog lowering resolves its fields against.
type EntitySet = metadata.EntitySet

// ODataModel is the service-wide registry of entity sets and the Edmx
// document describing them.
type ODataModel = metadata.ODataModel

// NewODataModel builds an empty registry under the given CSDL namespace.
func NewODataModel(namespace, baseURL string) *ODataModel {
	return metadata.NewODataModel(namespace, baseURL)
}

// ServiceDocument is the decoded JSON body of a service root response, as
// consumed by ODataModel.Enrich.
type ServiceDocument = metadata.ServiceDocument

// ServiceDocumentEntry is one entry in a ServiceDocument's value array.
type ServiceDocumentEntry = metadata.ServiceDocumentEntry

// DiscoveredResource is a resource an ODataModel learned about via Enrich,
// as opposed to one bound to a local backend via Register.
type DiscoveredResource = metadata.DiscoveredResource

// ResourceKind classifies a DiscoveredResource.
type ResourceKind = metadata.ResourceKind

// Resource kinds a service document entry may declare.
const (
	KindEntitySet       = metadata.KindEntitySet
	KindSingleton       = metadata.KindSingleton
	KindFunctionImport  = metadata.KindFunctionImport
	KindServiceDocument = metadata.KindServiceDocument
)

// ApplyPlan renders a lowered Plan onto a *gorm.DB query: WHERE, ORDER BY,
// LIMIT, and OFFSET, with dialect-aware identifier quoting. This is the one
// concrete backend adapter the core ships; others may lower Plan
// differently.
func ApplyPlan(db *gorm.DB, plan *Plan) *gorm.DB {
	return gormapply.Apply(db, plan)
}

// InstrumentDB registers GORM query/row callbacks that record an OTel span
// and, when the Pipeline was built WithServerTiming, accumulate a
// Server-Timing entry for each SELECT this core issues. Call it once per
// *gorm.DB a Pipeline drives.
func (p *Pipeline) InstrumentDB(db *gorm.DB) error {
	return observability.RegisterGORMCallbacks(db, p.obs)
}

var _ lowering.ColumnCatalog = (*MapCatalog)(nil)
