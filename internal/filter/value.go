package filter

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/nlstn/go-odata-core/internal/resource"
)

// ParseValueLiteral is the exported form of parseValueLiteral, used by the
// lowering stage to resolve a `@name` QueryOptionValue's raw text (supplied
// as a sibling query parameter) the same way the filter grammar would parse
// it inline.
func ParseValueLiteral(text string) resource.Value {
	return parseValueLiteral(text)
}

// parseValueLiteral classifies a single value token in the priority order
// the grammar requires: quoted string, @name query option, integer,
// boolean, decimal, empty string (null), otherwise a bare string.
func parseValueLiteral(text string) resource.Value {
	if text == "" {
		return resource.NullValue{}
	}
	if len(text) >= 2 && strings.HasPrefix(text, "'") && strings.HasSuffix(text, "'") {
		unescaped := strings.ReplaceAll(text[1:len(text)-1], "''", "'")
		return resource.StringValue(unescaped)
	}
	if strings.HasPrefix(text, "@") {
		return resource.QueryOptionValue(text[1:])
	}
	if n, err := strconv.ParseInt(text, 10, 64); err == nil {
		return resource.IntegerValue(n)
	}
	if text == "true" || text == "false" {
		return resource.BooleanValue(text == "true")
	}
	if d, err := decimal.NewFromString(text); err == nil {
		return resource.NewDecimalValue(d)
	}
	return resource.StringValue(text)
}

// splitInList splits the comma-separated contents of an `in (...)` list,
// respecting quoted spans so a comma inside a string literal does not split
// the list early.
func splitInList(inner string) []string {
	var parts []string
	var cur strings.Builder
	inQuote := false
	for i := 0; i < len(inner); i++ {
		ch := inner[i]
		switch {
		case ch == '\'':
			inQuote = !inQuote
			cur.WriteByte(ch)
		case ch == ',' && !inQuote:
			parts = append(parts, strings.TrimSpace(cur.String()))
			cur.Reset()
		default:
			cur.WriteByte(ch)
		}
	}
	if cur.Len() > 0 {
		parts = append(parts, strings.TrimSpace(cur.String()))
	}
	return parts
}
