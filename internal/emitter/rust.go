package emitter

import (
	"fmt"
	"sort"
	"strings"

	"github.com/elcoosp/linkgen/internal/model"
)

const generatedHeader = "// Code generated by linkgen. DO NOT EDIT.\n"

// ordered returns the routes sorted by SourceOrderIndex. The assembler
// already emits them in that order; sorting here keeps every artifact
// byte-stable even if a caller reordered the slice.
func ordered(routes []*model.RouteInfo) []*model.RouteInfo {
	out := make([]*model.RouteInfo, len(routes))
	copy(out, routes)
	sort.Slice(out, func(i, j int) bool {
		return out[i].SourceOrderIndex < out[j].SourceOrderIndex
	})
	return out
}

// Rust renders the route set as a self-contained enum declaration with a
// total to_path() interpolation method and a total method() accessor.
func Rust(routes []*model.RouteInfo) string {
	routes = ordered(routes)

	var b strings.Builder
	b.WriteString(generatedHeader)
	b.WriteString("\n")
	b.WriteString("/// Auto-generated link enum for all application routes.\n")
	b.WriteString("#[derive(Debug, Clone, PartialEq)]\n")
	b.WriteString("pub enum Link {\n")
	for _, route := range routes {
		if len(route.FieldNames) == 0 {
			fmt.Fprintf(&b, "    %s,\n", route.VariantName)
			continue
		}
		decls := make([]string, len(route.FieldNames))
		for i, field := range route.FieldNames {
			decls[i] = field + ": String"
		}
		fmt.Fprintf(&b, "    %s { %s },\n", route.VariantName, strings.Join(decls, ", "))
	}
	b.WriteString("}\n")

	b.WriteString("\nimpl Link {\n")
	b.WriteString("    /// Convert the link to a URL path string.\n")
	b.WriteString("    pub fn to_path(&self) -> String {\n")
	b.WriteString("        match self {\n")
	for _, route := range routes {
		if len(route.FieldNames) == 0 {
			fmt.Fprintf(&b, "            Link::%s => %q.to_string(),\n", route.VariantName, route.FinalPath)
			continue
		}
		fmt.Fprintf(&b, "            Link::%s { %s } => format!(%q, %s),\n",
			route.VariantName,
			strings.Join(route.FieldNames, ", "),
			formatTemplate(route.FinalPath),
			strings.Join(route.FieldNames, ", "))
	}
	b.WriteString("        }\n")
	b.WriteString("    }\n")

	b.WriteString("\n    /// Get the HTTP method for this route.\n")
	b.WriteString("    pub fn method(&self) -> &'static str {\n")
	b.WriteString("        match self {\n")
	for _, route := range routes {
		pattern := "Link::" + route.VariantName
		if len(route.FieldNames) > 0 {
			pattern += " { .. }"
		}
		fmt.Fprintf(&b, "            %s => %q,\n", pattern, route.Method)
	}
	b.WriteString("        }\n")
	b.WriteString("    }\n")
	b.WriteString("}\n")

	b.WriteString("\nimpl std::fmt::Display for Link {\n")
	b.WriteString("    fn fmt(&self, f: &mut std::fmt::Formatter<'_>) -> std::fmt::Result {\n")
	b.WriteString("        write!(f, \"{}\", self.to_path())\n")
	b.WriteString("    }\n")
	b.WriteString("}\n")

	return b.String()
}

// formatTemplate rewrites every {param} placeholder into a positional {}
// for format!, so fields substitute in left-to-right path order.
func formatTemplate(path string) string {
	var b strings.Builder
	inParam := false
	for _, r := range path {
		switch r {
		case '{':
			inParam = true
			b.WriteString("{}")
		case '}':
			inParam = false
		default:
			if !inParam {
				b.WriteRune(r)
			}
		}
	}
	return b.String()
}
