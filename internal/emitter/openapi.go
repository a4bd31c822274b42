package emitter

import (
	"fmt"

	"github.com/elcoosp/linkgen/internal/model"
	"github.com/getkin/kin-openapi/openapi3"
	"gopkg.in/yaml.v3"
)

// OpenAPI renders the route set as an OpenAPI 3.0 document in YAML. Routes
// carry no schema information at this level, so every operation declares its
// path parameters as strings and a default response; the artifact documents
// the route surface, not the payloads.
func OpenAPI(routes []*model.RouteInfo) ([]byte, error) {
	spec := &openapi3.T{
		OpenAPI: "3.0.3",
		Info: &openapi3.Info{
			Title:   "Application routes",
			Version: "1.0.0",
		},
		Paths: &openapi3.Paths{},
	}

	for _, route := range ordered(routes) {
		pathItem := spec.Paths.Find(route.FinalPath)
		if pathItem == nil {
			pathItem = &openapi3.PathItem{}
			spec.Paths.Set(route.FinalPath, pathItem)
		}

		op := openapi3.NewOperation()
		op.OperationID = route.VariantName
		if route.Handler != "" {
			op.Summary = fmt.Sprintf("Handled by %s", route.Handler)
		}
		op.Responses = openapi3.NewResponses()
		for _, param := range route.Params() {
			op.AddParameter(openapi3.NewPathParameter(param.Name).WithSchema(openapi3.NewStringSchema()))
		}
		pathItem.SetOperation(route.Method, op)
	}

	return yaml.Marshal(spec)
}
