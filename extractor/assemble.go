package extractor

import (
	"github.com/hashicorp/go-set/v3"

	"github.com/erraggy/swagrec/internal/pathutil"
	"github.com/erraggy/swagrec/jsonvalue"
)

// Assemble builds the output document: a copy of doc with paths replaced by
// paths and the schema container replaced by schemas. All other top-level
// fields pass through unchanged and in source order. For components, only
// components.schemas is replaced; the other sections are kept, even when
// their entries reference schemas that were dropped. See PruneComponents.
//
// doc is not modified. With ContainerNone no container is written.
func Assemble(doc jsonvalue.Value, paths, schemas *jsonvalue.Object, container ContainerKind) jsonvalue.Value {
	root, ok := doc.AsObject()
	if !ok {
		return doc
	}
	if paths == nil {
		paths = jsonvalue.NewObject()
	}
	if schemas == nil {
		schemas = jsonvalue.NewObject()
	}

	out := root.Clone()
	out.Set("paths", jsonvalue.ObjectValue(paths))

	switch container {
	case ContainerComponents:
		componentsValue, _ := out.Get("components")
		components, _ := componentsValue.AsObject()
		components = components.Clone()
		components.Set("schemas", jsonvalue.ObjectValue(schemas))
		out.Set("components", jsonvalue.ObjectValue(components))
	case ContainerDefinitions:
		out.Set("definitions", jsonvalue.ObjectValue(schemas))
	}
	return jsonvalue.ObjectValue(out)
}

// Component sections whose entries are only reachable through $ref.
// securitySchemes and securityDefinitions are referenced by name from
// security requirements and are never pruned.
var (
	componentSections  = []string{"responses", "parameters", "examples", "requestBodies", "headers", "links", "callbacks", "pathItems"}
	definitionSections = []string{"parameters", "responses"}
)

// PruneComponents removes the entries of the other component sections of
// doc that are not listed in keep, as reported by ResolveResult.Components.
// Sections left empty are removed. doc is not modified.
func PruneComponents(doc jsonvalue.Value, keep []string) jsonvalue.Value {
	root, ok := doc.AsObject()
	if !ok {
		return doc
	}
	kept := set.From(keep)
	out := root.Clone()

	if componentsValue, ok := out.Get("components"); ok {
		if components, ok := componentsValue.AsObject(); ok {
			components = components.Clone()
			for _, section := range componentSections {
				pruneSection(components, section, "#/components/", kept)
			}
			out.Set("components", jsonvalue.ObjectValue(components))
		}
	}
	if _, ok := out.Get("swagger"); ok {
		for _, section := range definitionSections {
			pruneSection(out, section, "#/", kept)
		}
	}
	return jsonvalue.ObjectValue(out)
}

// pruneSection replaces parent[section] with the entries whose pointer is in
// kept.
func pruneSection(parent *jsonvalue.Object, section, prefix string, kept *set.Set[string]) {
	value, ok := parent.Get(section)
	if !ok {
		return
	}
	entries, ok := value.AsObject()
	if !ok {
		return
	}
	base := prefix + pathutil.EscapeToken(section) + "/"
	pruned := jsonvalue.NewObjectCap(entries.Len())
	for name, body := range entries.All() {
		if kept.Contains(base + pathutil.EscapeToken(name)) {
			pruned.Set(name, body)
		}
	}
	if pruned.Len() == 0 {
		parent.Delete(section)
		return
	}
	parent.Set(section, jsonvalue.ObjectValue(pruned))
}
