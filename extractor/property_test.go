package extractor

import (
	"fmt"
	"slices"
	"testing"

	"pgregory.net/rapid"

	"github.com/erraggy/swagrec/jsonvalue"
)

// schemaGraph is a generated container where schema i references the
// schemas in edges[i]. Targets at or above len(edges) are dangling.
type schemaGraph struct {
	oas2  bool
	edges [][]int
	roots []int
}

func drawSchemaGraph(t *rapid.T) schemaGraph {
	n := rapid.IntRange(0, 10).Draw(t, "schemas")
	target := rapid.IntRange(0, n+2)
	g := schemaGraph{oas2: rapid.Bool().Draw(t, "oas2")}
	for i := range n {
		g.edges = append(g.edges, rapid.SliceOfN(target, 0, 3).Draw(t, fmt.Sprintf("edges%d", i)))
	}
	g.roots = rapid.SliceOfN(target, 0, 4).Draw(t, "roots")
	return g
}

func (g schemaGraph) ref(i int) jsonvalue.Value {
	ref := fmt.Sprintf("#/components/schemas/S%d", i)
	if g.oas2 {
		ref = fmt.Sprintf("#/definitions/S%d", i)
	}
	o := jsonvalue.NewObject()
	o.Set("$ref", jsonvalue.String(ref))
	return jsonvalue.ObjectValue(o)
}

func (g schemaGraph) refsTo(targets []int) jsonvalue.Value {
	items := make([]jsonvalue.Value, len(targets))
	for i, target := range targets {
		items[i] = g.ref(target)
	}
	o := jsonvalue.NewObject()
	o.Set("allOf", jsonvalue.Array(items...))
	return jsonvalue.ObjectValue(o)
}

func (g schemaGraph) document() jsonvalue.Value {
	container := jsonvalue.NewObject()
	for i, edges := range g.edges {
		container.Set(fmt.Sprintf("S%d", i), g.refsTo(edges))
	}
	root := jsonvalue.NewObject()
	if g.oas2 {
		root.Set("swagger", jsonvalue.String("2.0"))
		root.Set("definitions", jsonvalue.ObjectValue(container))
	} else {
		components := jsonvalue.NewObject()
		components.Set("schemas", jsonvalue.ObjectValue(container))
		root.Set("openapi", jsonvalue.String("3.0.3"))
		root.Set("components", jsonvalue.ObjectValue(components))
	}
	return jsonvalue.ObjectValue(root)
}

// reachable computes the expected closure with a plain breadth-first search.
func (g schemaGraph) reachable() []string {
	seen := make(map[int]bool)
	queue := slices.Clone(g.roots)
	for len(queue) > 0 {
		i := queue[0]
		queue = queue[1:]
		if i >= len(g.edges) || seen[i] {
			continue
		}
		seen[i] = true
		queue = append(queue, g.edges[i]...)
	}
	var names []string
	for i := range g.edges {
		if seen[i] {
			names = append(names, fmt.Sprintf("S%d", i))
		}
	}
	return names
}

func TestResolveProperties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		g := drawSchemaGraph(t)
		doc := g.document()
		resolver := NewResolver(doc)

		result := resolver.Resolve(g.refsTo(g.roots))
		names := result.Names()

		if want := g.reachable(); !slices.Equal(want, names) {
			t.Fatalf("closure = %v, want %v", names, want)
		}

		if len(result.Rounds) == 0 {
			t.Fatalf("no rounds recorded")
		}
		for i := 1; i < len(result.Rounds); i++ {
			if result.Rounds[i] < result.Rounds[i-1] {
				t.Fatalf("rounds not monotonic: %v", result.Rounds)
			}
		}
		if last := result.Rounds[len(result.Rounds)-1]; last != len(names) {
			t.Fatalf("final round size %d, result size %d", last, len(names))
		}

		again := resolver.Resolve(jsonvalue.ObjectValue(result.Schemas)).Names()
		for _, name := range again {
			if !slices.Contains(names, name) {
				t.Fatalf("resolving the result added %q", name)
			}
		}

		for name, body := range result.Schemas.All() {
			for _, inner := range resolver.Resolve(body).Names() {
				if !result.Schemas.Has(inner) {
					t.Fatalf("%s references %s which is missing from the closure", name, inner)
				}
			}
		}
	})
}

func TestProjectProperties(t *testing.T) {
	methods := []string{"get", "post", "put", "delete", "patch"}
	rapid.Check(t, func(t *rapid.T) {
		paths := jsonvalue.NewObject()
		var all []Endpoint
		for p := range rapid.IntRange(0, 4).Draw(t, "paths") {
			path := fmt.Sprintf("/p%d", p)
			item := jsonvalue.NewObject()
			for _, m := range rapid.SliceOfNDistinct(rapid.SampledFrom(methods), 0, len(methods), rapid.ID[string]).Draw(t, path) {
				item.Set(m, jsonvalue.ObjectValue(jsonvalue.NewObject()))
				all = append(all, Endpoint{Method: m, Path: path})
			}
			paths.Set(path, jsonvalue.ObjectValue(item))
		}
		root := jsonvalue.NewObject()
		root.Set("paths", jsonvalue.ObjectValue(paths))
		doc := jsonvalue.ObjectValue(root)

		var selected []Endpoint
		if len(all) > 0 {
			selected = rapid.SliceOf(rapid.SampledFrom(all)).Draw(t, "selected")
		}
		projected := ProjectPaths(doc, selected)

		count := 0
		for _, item := range projected.All() {
			count += item.Len()
		}
		distinct := make(map[Endpoint]bool)
		for _, ep := range selected {
			distinct[ep] = true
			if _, ok := jsonvalue.ObjectValue(projected).Lookup(ep.Path, ep.Method); !ok {
				t.Fatalf("%s missing from projection", ep)
			}
		}
		if count != len(distinct) {
			t.Fatalf("projection has %d operations, want %d", count, len(distinct))
		}
	})
}
