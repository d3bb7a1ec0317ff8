package extractor

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hashicorp/go-set/v3"

	"github.com/erraggy/swagrec/internal/issues"
	"github.com/erraggy/swagrec/internal/pathutil"
	"github.com/erraggy/swagrec/internal/severity"
	"github.com/erraggy/swagrec/jsonvalue"
	"github.com/erraggy/swagrec/parser"
)

// Issue is a problem found while resolving references.
type Issue = issues.Issue

// Issue codes reported by the resolver.
const (
	IssueMalformedReference  = issues.CodeMalformedReference
	IssueExternalReference   = issues.CodeExternalReference
	IssueUnresolvedReference = issues.CodeUnresolvedReference
	IssueNoSchemaContainer   = issues.CodeNoSchemaContainer
)

// ResolveResult is the closure computed by a Resolver.
type ResolveResult struct {
	// Schemas maps schema name to definition, in container order.
	Schemas *jsonvalue.Object
	// Container is the schema container of the document.
	Container ContainerKind
	// Rounds holds the result size after each round. The last round is the
	// one that added nothing.
	Rounds []int
	// Issues lists malformed, external and dangling references, once per
	// reference string and code.
	Issues []Issue
	// Components lists the pointers of the other local components that were
	// followed, such as "#/components/responses/Problem", in discovery order.
	Components []string
}

// Names returns the resolved schema names in container order.
func (r *ResolveResult) Names() []string {
	return r.Schemas.Keys()
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithResolverLogger sets the logger used for round-by-round debug output.
func WithResolverLogger(l parser.Logger) ResolverOption {
	return func(r *Resolver) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithFollowComponents controls whether references to other local
// components (responses, parameters, request bodies, headers, ...) are
// followed to discover the schemas they use. Enabled by default.
func WithFollowComponents(enabled bool) ResolverOption {
	return func(r *Resolver) {
		r.followComponents = enabled
	}
}

// Resolver computes schema closures for one document. A Resolver holds no
// per-call state and may be used concurrently.
type Resolver struct {
	doc              jsonvalue.Value
	container        ContainerKind
	schemas          *jsonvalue.Object
	logger           parser.Logger
	followComponents bool
}

// NewResolver detects the schema container of doc and returns a Resolver
// for it.
func NewResolver(doc jsonvalue.Value, opts ...ResolverOption) *Resolver {
	r := &Resolver{
		doc:              doc,
		logger:           parser.NopLogger{},
		followComponents: true,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.container, r.schemas = DetectContainer(doc)
	return r
}

// Container returns the detected schema container.
func (r *Resolver) Container() ContainerKind {
	return r.container
}

// Resolve computes the schemas reachable from subtree.
func (r *Resolver) Resolve(subtree jsonvalue.Value) *ResolveResult {
	return r.ResolveAt(subtree, "#")
}

// ResolveAt is like Resolve. base is the JSON pointer of subtree within the
// document and is only used to locate issues, e.g. "#/paths".
func (r *Resolver) ResolveAt(subtree jsonvalue.Value, base string) *ResolveResult {
	state := &resolveState{
		resolver: r,
		resolved: set.New[string](0),
		followed: set.New[string](0),
		reported: set.New[string](0),
		entries:  set.New[string](0),
	}

	frontier := []scanTarget{{value: subtree, base: base}}
	var rounds []int
	for {
		added := state.round(frontier)
		rounds = append(rounds, state.resolved.Size())
		r.logger.Debug("resolve round",
			"round", len(rounds),
			"added", len(added),
			"total", state.resolved.Size(),
		)
		if len(added) == 0 {
			break
		}
		frontier = frontier[:0]
		for _, name := range added {
			body, _ := r.schemas.Get(name)
			frontier = append(frontier, scanTarget{value: body, base: r.container.Ref(name)})
		}
	}

	if r.container == ContainerNone && state.sawSchemaRef {
		state.report(Issue{
			Code:     IssueNoSchemaContainer,
			Path:     base,
			Message:  "document has neither components.schemas nor definitions",
			Severity: severity.SeverityWarning,
		}, base, nil)
	}

	out := jsonvalue.NewObjectCap(state.resolved.Size())
	for name, body := range r.schemas.All() {
		if state.resolved.Contains(name) {
			out.Set(name, body)
		}
	}
	return &ResolveResult{
		Schemas:    out,
		Container:  r.container,
		Rounds:     rounds,
		Issues:     state.issues,
		Components: state.components,
	}
}

type scanTarget struct {
	value jsonvalue.Value
	base  string
}

// resolveState is the accumulator of a single ResolveAt call.
type resolveState struct {
	resolver     *Resolver
	resolved     *set.Set[string]
	followed     *set.Set[string]
	reported     *set.Set[string]
	entries      *set.Set[string]
	issues       []Issue
	components   []string
	sawSchemaRef bool
}

// round scans every target, including component bodies reached through
// them, and returns the schema names added to the result in this round.
func (s *resolveState) round(targets []scanTarget) []string {
	pending := append([]scanTarget(nil), targets...)
	var added []string
	for len(pending) > 0 {
		target := pending[0]
		pending = pending[1:]
		jsonvalue.Walk(target.value, func(loc *jsonvalue.Location, v jsonvalue.Value) bool {
			obj, ok := v.AsObject()
			if !ok {
				return true
			}
			refValue, ok := obj.Get("$ref")
			if !ok {
				return true
			}
			ref, ok := refValue.AsString()
			if !ok {
				return true
			}
			// Siblings of $ref are scanned as well.
			name, follow := s.discover(ref, target.base, loc)
			switch {
			case name != "":
				added = append(added, name)
			case follow != nil:
				pending = append(pending, *follow)
			}
			return true
		})
	}
	return added
}

// discover handles one $ref. It returns the schema name when the reference
// adds a new schema, or a target to scan when it points at another local
// component that has not been followed yet.
func (s *resolveState) discover(ref, base string, loc *jsonvalue.Location) (string, *scanTarget) {
	r := s.resolver
	parsed, err := ParseRef(ref)
	if err != nil {
		code := IssueMalformedReference
		sev := severity.SeverityError
		if errors.Is(err, ErrExternalRef) {
			code, sev = IssueExternalReference, severity.SeverityWarning
		}
		s.report(Issue{Code: code, Ref: ref, Message: err.Error(), Severity: sev}, base, loc)
		return "", nil
	}

	if !parsed.IsSchema() {
		if !r.followComponents || !followable(parsed.Tokens) || !s.followed.Insert(ref) {
			return "", nil
		}
		body, ok := r.doc.Lookup(parsed.Tokens...)
		if !ok {
			s.report(Issue{
				Code:     IssueUnresolvedReference,
				Ref:      ref,
				Message:  "referenced component not found",
				Severity: severity.SeverityError,
			}, base, loc)
			return "", nil
		}
		if key := componentKey(parsed.Tokens); s.entries.Insert(key) {
			s.components = append(s.components, key)
		}
		return "", &scanTarget{value: body, base: ref}
	}

	s.sawSchemaRef = true
	if r.container == ContainerNone || s.resolved.Contains(parsed.Name) {
		return "", nil
	}
	// Lookup is by name in the detected container, whichever layout the
	// pointer was written for.
	if !r.schemas.Has(parsed.Name) {
		s.report(Issue{
			Code:     IssueUnresolvedReference,
			Ref:      ref,
			Message:  fmt.Sprintf("schema %q not found in %s", parsed.Name, r.container),
			Severity: severity.SeverityError,
		}, base, loc)
		return "", nil
	}
	s.resolved.Insert(parsed.Name)
	return parsed.Name, nil
}

// followable rejects pointers whose body would be a whole section rather
// than one component, such as "#/components" or "#/paths".
func followable(tokens []string) bool {
	if len(tokens) < 2 {
		return false
	}
	if tokens[0] == "components" {
		return len(tokens) >= 3
	}
	return true
}

// componentKey returns the pointer of the component entry tokens point
// into: "#/components/responses/Problem" for a pointer into its content, or
// "#/parameters/PetBody" in a 2.0 document. tokens must be followable.
func componentKey(tokens []string) string {
	n := 2
	if tokens[0] == "components" {
		n = 3
	}
	escaped := make([]string, n)
	for i, token := range tokens[:n] {
		escaped[i] = pathutil.EscapeToken(token)
	}
	return "#/" + strings.Join(escaped, "/")
}

// report records issue once per code and reference. The issue path is
// rendered only for issues that are kept.
func (s *resolveState) report(issue Issue, base string, loc *jsonvalue.Location) {
	key := string(issue.Code) + "\x00" + issue.Ref
	if !s.reported.Insert(key) {
		return
	}
	issue.Path = joinPointer(base, loc)
	s.issues = append(s.issues, issue)
}

// joinPointer appends the location of a walked node to the pointer of the
// walk root.
func joinPointer(base string, loc *jsonvalue.Location) string {
	if base == "" {
		base = "#"
	}
	if loc == nil {
		return base
	}
	return base + strings.TrimPrefix(loc.Pointer(), "#")
}

// Resolve returns the schemas of doc reachable from subtree.
func Resolve(doc jsonvalue.Value, subtree jsonvalue.Value) *jsonvalue.Object {
	return NewResolver(doc).Resolve(subtree).Schemas
}
