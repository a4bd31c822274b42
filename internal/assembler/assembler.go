package assembler

import (
	"fmt"
	"strings"

	"github.com/elcoosp/linkgen/internal/config"
	"github.com/elcoosp/linkgen/internal/model"
	"github.com/elcoosp/linkgen/internal/naming"
)

// NameCollisionError is fatal: two distinct routes computed the same variant
// name, so generated code could no longer tell them apart. The run aborts
// before anything is written.
type NameCollisionError struct {
	Name   string
	First  *model.RouteInfo
	Second *model.RouteInfo
}

func (e *NameCollisionError) Error() string {
	return fmt.Sprintf(
		"variant name %q is ambiguous: %s %s and %s %s both map to it; "+
			"enable naming.includeMethodInNames, set naming.variantPrefix/variantSuffix, "+
			"or adjust naming.wordSeparators to disambiguate",
		e.Name,
		e.First.Method, e.First.FinalPath,
		e.Second.Method, e.Second.FinalPath,
	)
}

// Assemble folds the scanned routing trees into the canonical RouteInfo
// list: paths resolved top-down, names derived, exact duplicates filtered
// with a warning, and ambiguous variant names rejected. Trees must arrive in
// sorted file order; in-file declaration order is preserved by the walk, so
// SourceOrderIndex is reproducible across runs.
func Assemble(trees []*model.RouteNode, cfg *config.Config) ([]*model.RouteInfo, []model.Diagnostic, error) {
	opts := naming.Options{
		IncludeMethod:      cfg.Naming.IncludeMethod(),
		PathPrefixToRemove: cfg.Naming.PathPrefixToRemove,
		WordSeparators:     cfg.Naming.WordSeparators,
		PreserveNumbers:    cfg.Naming.PreserveNumbers,
	}
	variantCase := cfg.VariantCase()
	fieldCase := cfg.FieldCase()

	var candidates []*model.RouteInfo
	for _, tree := range trees {
		walk(tree, nil, func(prefixes []string, record *model.RouteRecord) {
			info := fold(record, prefixes, opts, variantCase, fieldCase, cfg)
			info.SourceOrderIndex = len(candidates)
			candidates = append(candidates, info)
		})
	}

	accepted, diags := filterDuplicates(candidates)

	if err := detectCollisions(accepted); err != nil {
		return nil, diags, err
	}
	return accepted, diags, nil
}

// walk traverses a routing tree top-down, accumulating the prefix chain
// root-to-leaf, and visits every direct route in declaration order.
func walk(node *model.RouteNode, prefixes []string, visit func([]string, *model.RouteRecord)) {
	if node == nil {
		return
	}
	if node.PathPrefix != "" {
		prefixes = append(prefixes, node.PathPrefix)
	}
	for _, entry := range node.Entries {
		if entry.Route != nil {
			visit(prefixes, entry.Route)
			continue
		}
		walk(entry.Child, prefixes, visit)
	}
}

// fold builds one canonical RouteInfo from a raw record and its prefix chain.
func fold(record *model.RouteRecord, prefixes []string, opts naming.Options, variantCase, fieldCase naming.Case, cfg *config.Config) *model.RouteInfo {
	finalPath := ResolvePath(prefixes, record.RawPath)

	tokens := naming.PathTokens(finalPath, record.Method, opts)
	variantName := naming.Identifier(tokens, variantCase, cfg.Naming.VariantPrefix, cfg.Naming.VariantSuffix)

	params := model.ExtractPathParams(finalPath)
	fieldNames := make([]string, 0, len(params))
	for _, param := range params {
		words := naming.SplitWords(param.Name, opts.WordSeparators, opts.PreserveNumbers)
		fieldNames = append(fieldNames, naming.Identifier(words, fieldCase, "", ""))
	}

	return &model.RouteInfo{
		Method:      record.Method,
		FinalPath:   finalPath,
		VariantName: variantName,
		NameTokens:  tokens,
		FieldNames:  fieldNames,
		Handler:     record.Handler,
	}
}

// ResolvePath concatenates the prefix chain and the leaf path with exactly
// one slash between segments: a leading "/", no trailing "/" except for the
// root path, and never "//".
func ResolvePath(prefixes []string, leaf string) string {
	var segments []string
	for _, part := range append(append([]string{}, prefixes...), leaf) {
		for _, seg := range strings.Split(part, "/") {
			if seg != "" {
				segments = append(segments, seg)
			}
		}
	}
	if len(segments) == 0 {
		return "/"
	}
	return "/" + strings.Join(segments, "/")
}

// filterDuplicates drops records sharing an already-seen (method, path)
// pair. The earliest declaration wins and each discard is reported as a
// non-fatal duplicate-route diagnostic.
func filterDuplicates(candidates []*model.RouteInfo) ([]*model.RouteInfo, []model.Diagnostic) {
	type key struct {
		method string
		path   string
	}
	seen := make(map[key]bool, len(candidates))
	accepted := make([]*model.RouteInfo, 0, len(candidates))
	var diags []model.Diagnostic

	for _, info := range candidates {
		k := key{method: info.Method, path: info.FinalPath}
		if seen[k] {
			diags = append(diags, model.Diagnostic{
				Category: model.CategoryDuplicateRoute,
				Message:  fmt.Sprintf("skipped %s %s", info.Method, info.FinalPath),
			})
			continue
		}
		seen[k] = true
		accepted = append(accepted, info)
	}
	return accepted, diags
}

// detectCollisions rejects the whole run when two distinct accepted routes
// share a variant name.
func detectCollisions(accepted []*model.RouteInfo) error {
	byName := make(map[string]*model.RouteInfo, len(accepted))
	for _, info := range accepted {
		if existing, ok := byName[info.VariantName]; ok {
			return &NameCollisionError{Name: info.VariantName, First: existing, Second: info}
		}
		byName[info.VariantName] = info
	}
	return nil
}
