package model

import "fmt"

// Methods maps the lowercase builder function names the scanner recognizes
// to their canonical HTTP method.
var Methods = map[string]string{
	"get":     "GET",
	"post":    "POST",
	"put":     "PUT",
	"patch":   "PATCH",
	"delete":  "DELETE",
	"head":    "HEAD",
	"options": "OPTIONS",
	"trace":   "TRACE",
}

// IsQueryMethod reports whether a method is read-only for client-generation
// purposes. Query-like routes become useQuery hooks, the rest useMutation.
func IsQueryMethod(method string) bool {
	switch method {
	case "GET", "HEAD", "OPTIONS":
		return true
	}
	return false
}

// RouteRecord is the raw output of the scanner for a single .add() call.
// Records are transient; they are discarded once folded into a RouteInfo.
type RouteRecord struct {
	// Method is the canonical HTTP method (e.g. "GET").
	Method string
	// RawPath is the path literal as written in the controller, with
	// {param} placeholders intact.
	RawPath string
	// Handler is the handler identifier named in the registration call.
	Handler string
	// File is the controller file the record was declared in.
	File string
}

// RouteNode represents a single routing scope: one builder chain, or a
// sub-router nested under a prefix. Entries preserve in-file declaration
// order across direct routes and nested children.
type RouteNode struct {
	// PathPrefix is the prefix applied to everything in this scope.
	PathPrefix string
	// Parent is the parent scope, nil at the root.
	Parent *RouteNode
	// Entries are the routes and child scopes in declaration order.
	Entries []RouteEntry
}

// RouteEntry is one slot in a RouteNode: either a direct route or a nested
// sub-router. Exactly one of the two fields is set.
type RouteEntry struct {
	Route *RouteRecord
	Child *RouteNode
}

// AddRoute appends a direct route to the scope.
func (n *RouteNode) AddRoute(r *RouteRecord) {
	n.Entries = append(n.Entries, RouteEntry{Route: r})
}

// AddChild appends a nested scope and wires its parent pointer.
func (n *RouteNode) AddChild(c *RouteNode) {
	c.Parent = n
	n.Entries = append(n.Entries, RouteEntry{Child: c})
}

// PathParameter is a named {placeholder} segment of a resolved path.
// Position is the ordinal of the parameter within the path, left to right.
type PathParameter struct {
	Name     string
	Position int
}

// RouteInfo is the canonical, immutable description of one accepted route.
// Every emitter consumes the same RouteInfo list; that shared origin is the
// cross-artifact consistency guarantee.
type RouteInfo struct {
	// Method is the canonical HTTP method.
	Method string
	// FinalPath is the fully resolved path, slash separated, with {param}
	// placeholders. Always begins with "/" and never contains "//".
	FinalPath string
	// VariantName is the case-converted identifier for the route, unique
	// across the accepted set.
	VariantName string
	// NameTokens are the canonical word tokens VariantName was derived
	// from, before case conversion. The TypeScript emitter re-cases these
	// same tokens so both artifacts agree on naming.
	NameTokens []string
	// FieldNames holds one identifier per {param} placeholder in
	// FinalPath, in left-to-right path order.
	FieldNames []string
	// Handler is the backend handler identifier, kept for diagnostics and
	// the OpenAPI artifact.
	Handler string
	// SourceOrderIndex is the first-seen order across the whole scan and
	// the emission order for every artifact.
	SourceOrderIndex int
}

// Params returns the path parameters of the route in positional order.
func (r *RouteInfo) Params() []PathParameter {
	return ExtractPathParams(r.FinalPath)
}

// ExtractPathParams returns the {param} placeholders of a path in
// left-to-right order.
func ExtractPathParams(path string) []PathParameter {
	var params []PathParameter
	start := -1
	for i := 0; i < len(path); i++ {
		switch path[i] {
		case '{':
			start = i + 1
		case '}':
			if start >= 0 && i > start {
				params = append(params, PathParameter{
					Name:     path[start:i],
					Position: len(params),
				})
			}
			start = -1
		}
	}
	return params
}

// Diagnostic categories for build-time output lines.
const (
	CategoryScanError      = "scan-error"
	CategoryDuplicateRoute = "duplicate-route"
	CategoryGenerated      = "generated"
)

// Diagnostic is one non-fatal build-time message with the fixed two-part
// "<category>: <message>" shape.
type Diagnostic struct {
	Category string
	Message  string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s", d.Category, d.Message)
}
