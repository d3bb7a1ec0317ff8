package pathutil

import "strings"

// Schema reference prefixes for the two container layouts.
const (
	RefPrefixDefinitions = "#/definitions/"
	RefPrefixSchemas     = "#/components/schemas/"
)

// SchemaRef builds "#/components/schemas/{name}" (OAS 3.x).
func SchemaRef(name string) string {
	return RefPrefixSchemas + EscapeToken(name)
}

// DefinitionRef builds "#/definitions/{name}" (OAS 2.0).
func DefinitionRef(name string) string {
	return RefPrefixDefinitions + EscapeToken(name)
}

// SchemaContainerRef builds a schema reference for the container used by the
// document: "#/definitions/{name}" when oas2 is true, otherwise
// "#/components/schemas/{name}".
func SchemaContainerRef(name string, oas2 bool) string {
	if oas2 {
		return DefinitionRef(name)
	}
	return SchemaRef(name)
}

// IsLocalRef reports whether ref points into the same document.
func IsLocalRef(ref string) bool {
	return strings.HasPrefix(ref, "#")
}

// EscapeToken escapes a single JSON Pointer reference token (RFC 6901).
func EscapeToken(token string) string {
	return pointerEscaper.Replace(token)
}
