package resource

import "fmt"

// Key is a tagged sum of the three shapes a path segment's key can take:
// a bare string, a bare integer, or a named field=value pair. Like Value,
// it is a sum type (not a string) so round-tripping can tell '1' from 1.
type Key interface {
	isKey()
	// String renders the key's text: a StringKey without quotes (abc;
	// Entity.String adds the quotes and escaping), a NumberKey as 1, a
	// KeyValuePair as color=@color or color='red'.
	String() string
}

// StringKey is a bare quoted-string key, e.g. People('russellwhyte').
type StringKey string

func (StringKey) isKey()         {}
func (k StringKey) String() string { return string(k) }

// NumberKey is a bare integer key, e.g. Products(1).
type NumberKey int64

func (NumberKey) isKey()         {}
func (k NumberKey) String() string { return fmt.Sprintf("%d", int64(k)) }

// KeyValuePair is a named field=value key, e.g. ProductsByColor(color=@color).
type KeyValuePair struct {
	Field string
	Value Value
}

func (KeyValuePair) isKey() {}
func (k KeyValuePair) String() string {
	if s, ok := k.Value.(StringValue); ok {
		return fmt.Sprintf("%s='%s'", k.Field, escapeSingleQuotes(string(s)))
	}
	return fmt.Sprintf("%s=%s", k.Field, k.Value.String())
}
