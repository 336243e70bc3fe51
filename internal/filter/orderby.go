package filter

import (
	"fmt"
	"strings"

	"github.com/nlstn/go-odata-core/internal/odataerr"
	"github.com/nlstn/go-odata-core/internal/resource"
)

// ParseOrderBy parses a comma-separated "$orderby" value into an ordered
// list of (field, direction) entries, defaulting to ascending.
func ParseOrderBy(src string) ([]resource.OrderByEntry, error) {
	src = strings.TrimSpace(src)
	if src == "" {
		return nil, nil
	}

	rawEntries := strings.Split(src, ",")
	entries := make([]resource.OrderByEntry, 0, len(rawEntries))
	for _, raw := range rawEntries {
		fields := strings.Fields(raw)
		switch len(fields) {
		case 1:
			entries = append(entries, resource.OrderByEntry{Field: fields[0], Direction: resource.Asc})
		case 2:
			dir, err := parseDirection(fields[1])
			if err != nil {
				return nil, err
			}
			entries = append(entries, resource.OrderByEntry{Field: fields[0], Direction: dir})
		default:
			return nil, odataerr.New(odataerr.KindInvalidQueryOrderBy, fmt.Sprintf("malformed $orderby entry %q", raw))
		}
	}
	return entries, nil
}

func parseDirection(word string) (resource.Direction, error) {
	switch word {
	case "asc":
		return resource.Asc, nil
	case "desc":
		return resource.Desc, nil
	default:
		return "", odataerr.New(odataerr.KindInvalidQueryOrderBy, fmt.Sprintf("unrecognized sort direction %q", word))
	}
}
