package metadata

import (
	"fmt"

	"github.com/nlstn/go-odata-core/internal/edm"
)

// SQLType is a backend-neutral column type family, mirroring the variants a
// relational column introspection layer (database/sql driver metadata, an
// ORM's column definition, a migration tool) would report. EDMType maps each
// family to the CSDL primitive type used when synthesizing an EntityType.
type SQLType int

const (
	Char SQLType = iota
	VarString
	Text
	JSON
	JSONBinary
	Array
	Enum
	Inet
	Cidr
	MacAddr
	Custom
	Integer
	Unsigned
	Year
	BigInteger
	BigUnsigned
	SmallInteger
	SmallUnsigned
	TinyInteger
	TinyUnsigned
	Float
	Double
	Decimal
	Money
	Boolean
	Date
	Time
	DateTime
	Timestamp
	Binary
	VarBinary
	UUID
)

// EDMType returns the CSDL primitive type name for a SQLType, the same
// table the original reflect-on-SeaORM-columns helper encodes.
func EDMType(t SQLType) string {
	switch t {
	case Char, VarString, Text, JSON, Enum, Array, Custom, Inet, Cidr, MacAddr:
		return "Edm.String"
	case Integer, Unsigned, Year:
		return "Edm.Int32"
	case BigInteger, BigUnsigned:
		return "Edm.Int64"
	case SmallInteger, SmallUnsigned:
		return "Edm.Int16"
	case TinyInteger, TinyUnsigned:
		return "Edm.Byte"
	case Float, Double, Decimal, Money:
		return "Edm.Decimal"
	case Boolean:
		return "Edm.Boolean"
	case DateTime, Timestamp:
		return "Edm.DateTimeOffset"
	case Date:
		return "Edm.Date"
	case Time:
		return "Edm.TimeOfDay"
	case Binary, VarBinary, JSONBinary:
		return "Edm.Binary"
	case UUID:
		return "Edm.Guid"
	default:
		return "Edm.String"
	}
}

// allSQLTypes enumerates every SQLType family EDMType maps, for
// ValidateRegistry.
var allSQLTypes = []SQLType{
	Char, VarString, Text, JSON, JSONBinary, Array, Enum, Inet, Cidr, MacAddr,
	Custom, Integer, Unsigned, Year, BigInteger, BigUnsigned, SmallInteger,
	SmallUnsigned, TinyInteger, TinyUnsigned, Float, Double, Decimal, Money,
	Boolean, Date, Time, DateTime, Timestamp, Binary, VarBinary, UUID,
}

// ValidateRegistry confirms every SQLType family EDMType maps to has an
// actual edm.Type parser registered, so synthesis never silently falls
// back to an unvalidated string for a type the table claims to support.
func ValidateRegistry() error {
	var missing []string
	for _, t := range allSQLTypes {
		name := EDMType(t)
		if !edm.IsValidType(name) {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("metadata: EDM types missing a registered parser: %v", missing)
	}
	return nil
}
