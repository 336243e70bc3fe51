package metadata

import (
	"fmt"
	"reflect"

	"github.com/nlstn/go-odata-core/internal/edm"
)

// SynthesizeEnumType builds a CSDL EnumType named name from a registered Go
// enum type: its members come from RegisterEnumMembers (or an EnumMembers()
// method on enumType, resolved on first use), and its UnderlyingType from the
// Go type's integer kind.
func SynthesizeEnumType(name string, enumType reflect.Type) (*edm.EnumType, error) {
	members, _, err := ResolveEnumMembers(enumType)
	if err != nil {
		return nil, fmt.Errorf("metadata: synthesize enum %s: %w", name, err)
	}
	underlying, err := DetermineEnumUnderlyingType(enumType)
	if err != nil {
		return nil, fmt.Errorf("metadata: synthesize enum %s: %w", name, err)
	}

	et := &edm.EnumType{Name: name, UnderlyingType: underlying}
	for _, m := range members {
		et.Member = append(et.Member, edm.Member{Name: m.Name, Value: fmt.Sprintf("%d", m.Value)})
	}
	return et, nil
}
