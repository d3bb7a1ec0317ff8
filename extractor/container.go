package extractor

import (
	"github.com/erraggy/swagrec/internal/pathutil"
	"github.com/erraggy/swagrec/jsonvalue"
)

// ContainerKind identifies where a document keeps its reusable schemas.
type ContainerKind int

const (
	// ContainerNone means the document has neither components.schemas nor
	// definitions.
	ContainerNone ContainerKind = iota
	// ContainerComponents is the OAS 3.x components.schemas object.
	ContainerComponents
	// ContainerDefinitions is the Swagger 2.0 definitions object.
	ContainerDefinitions
)

// String returns the dotted location of the container.
func (k ContainerKind) String() string {
	switch k {
	case ContainerComponents:
		return "components.schemas"
	case ContainerDefinitions:
		return "definitions"
	default:
		return "none"
	}
}

// RefPrefix returns the reference prefix used by schemas in the container,
// or "" for ContainerNone.
func (k ContainerKind) RefPrefix() string {
	switch k {
	case ContainerComponents:
		return pathutil.RefPrefixSchemas
	case ContainerDefinitions:
		return pathutil.RefPrefixDefinitions
	default:
		return ""
	}
}

// Ref builds the reference to schema name in this container.
func (k ContainerKind) Ref(name string) string {
	if k == ContainerNone {
		return ""
	}
	return pathutil.SchemaContainerRef(name, k == ContainerDefinitions)
}

// DetectContainer returns the schema container of doc. components.schemas is
// checked first, then definitions. A container that exists but is not an
// object counts as absent.
func DetectContainer(doc jsonvalue.Value) (ContainerKind, *jsonvalue.Object) {
	if schemas, ok := doc.LookupObject("components", "schemas"); ok {
		return ContainerComponents, schemas
	}
	if defs, ok := doc.LookupObject("definitions"); ok {
		return ContainerDefinitions, defs
	}
	return ContainerNone, nil
}
