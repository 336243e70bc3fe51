package filter

import (
	"strings"

	"github.com/nlstn/go-odata-core/internal/resource"
)

// ParseFormat parses a "$format" value of the form
// "media-type;k=v;k=v", recognizing the "format", "metadata", and
// "streaming" keys. Unrecognized keys are ignored. Absent keys keep the
// DefaultFormat's values.
func ParseFormat(src string) resource.Format {
	out := resource.DefaultFormat()
	src = strings.TrimSpace(src)
	if src == "" {
		return out
	}

	parts := strings.Split(src, ";")
	if len(parts) > 0 && parts[0] != "" && !strings.Contains(parts[0], "=") {
		out.MediaType = strings.TrimSpace(parts[0])
		parts = parts[1:]
	}

	for _, p := range parts {
		key, value, ok := strings.Cut(p, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		switch key {
		case "format":
			out.MediaType = value
		case "metadata":
			switch value {
			case "none":
				out.Metadata = resource.MetadataNone
			case "full":
				out.Metadata = resource.MetadataFull
			default:
				out.Metadata = resource.MetadataMinimal
			}
		case "streaming":
			out.Streaming = value == "true"
		}
	}
	return out
}
