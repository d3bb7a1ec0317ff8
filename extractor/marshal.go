package extractor

import (
	"fmt"
	"strings"

	"github.com/erraggy/swagrec/jsonvalue"
)

// Format is an output serialization format.
type Format string

const (
	// FormatJSON writes JSON indented with two spaces
	FormatJSON Format = "json"
	// FormatYAML writes YAML
	FormatYAML Format = "yaml"
)

// ParseFormat parses "json", "yaml" or "yml", case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("extractor: unsupported format %q (use json or yaml)", s)
	}
}

// Extension returns the file extension for the format, including the dot.
func (f Format) Extension() string {
	if f == FormatYAML {
		return ".yaml"
	}
	return ".json"
}

// MarshalDocument serializes doc. JSON output ends with a newline.
func MarshalDocument(doc jsonvalue.Value, format Format) ([]byte, error) {
	switch format {
	case FormatJSON, "":
		data, err := jsonvalue.MarshalIndent(doc, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("extractor: failed to marshal JSON: %w", err)
		}
		return append(data, '\n'), nil
	case FormatYAML:
		data, err := jsonvalue.MarshalYAML(doc)
		if err != nil {
			return nil, fmt.Errorf("extractor: failed to marshal YAML: %w", err)
		}
		return data, nil
	default:
		return nil, fmt.Errorf("extractor: unsupported format %q", format)
	}
}
