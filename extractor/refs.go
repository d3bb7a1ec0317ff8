package extractor

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/mitchellh/pointerstructure"

	"github.com/erraggy/swagrec/internal/pathutil"
)

var (
	// ErrEmptyRef is returned by ParseRef for an empty reference.
	ErrEmptyRef = errors.New("extractor: empty reference")
	// ErrExternalRef is returned by ParseRef for references into another
	// document (anything not starting with '#').
	ErrExternalRef = errors.New("extractor: external reference")
	// ErrMalformedRef is returned by ParseRef for local references that are
	// not valid JSON pointers.
	ErrMalformedRef = errors.New("extractor: malformed reference")
)

// SchemaRef is a parsed local reference.
type SchemaRef struct {
	// Raw is the reference as written.
	Raw string
	// Tokens are the unescaped JSON Pointer tokens after '#'.
	Tokens []string
	// Layout is the container the pointer is written for, or ContainerNone
	// when the reference targets something other than a schema.
	Layout ContainerKind
	// Name is the schema name, set when Layout is not ContainerNone.
	Name string
}

// IsSchema reports whether the reference names a schema.
func (r SchemaRef) IsSchema() bool {
	return r.Layout != ContainerNone
}

// ParseRef parses a local $ref such as "#/components/schemas/Pet" or
// "#/definitions/Pet".
//
// The schema name is taken from the segment after "schemas" for the
// components layout and after "definitions" for the 2.0 layout, so a pointer
// into a schema ("#/definitions/Pet/properties/id") still names Pet. Other
// local pointers parse successfully with Layout ContainerNone.
func ParseRef(ref string) (SchemaRef, error) {
	if ref == "" {
		return SchemaRef{}, ErrEmptyRef
	}
	if !pathutil.IsLocalRef(ref) {
		return SchemaRef{}, fmt.Errorf("%w: %q", ErrExternalRef, ref)
	}
	fragment := ref[1:]
	if strings.Contains(fragment, "%") {
		unescaped, err := url.PathUnescape(fragment)
		if err != nil {
			return SchemaRef{}, fmt.Errorf("%w: %q: %w", ErrMalformedRef, ref, err)
		}
		fragment = unescaped
	}
	ptr, err := pointerstructure.Parse(fragment)
	if err != nil {
		return SchemaRef{}, fmt.Errorf("%w: %q: %w", ErrMalformedRef, ref, err)
	}
	if len(ptr.Parts) == 0 {
		return SchemaRef{}, fmt.Errorf("%w: %q: points at the document root", ErrMalformedRef, ref)
	}

	parsed := SchemaRef{Raw: ref, Tokens: ptr.Parts}
	parts := ptr.Parts
	switch {
	case parts[0] == "components" && len(parts) >= 2 && parts[1] == "schemas":
		if len(parts) < 3 || parts[2] == "" {
			return SchemaRef{}, fmt.Errorf("%w: %q: missing schema name", ErrMalformedRef, ref)
		}
		parsed.Layout, parsed.Name = ContainerComponents, parts[2]
	case parts[0] == "definitions":
		if len(parts) < 2 || parts[1] == "" {
			return SchemaRef{}, fmt.Errorf("%w: %q: missing schema name", ErrMalformedRef, ref)
		}
		parsed.Layout, parsed.Name = ContainerDefinitions, parts[1]
	}
	return parsed, nil
}
