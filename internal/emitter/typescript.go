package emitter

import (
	"fmt"
	"strings"

	"github.com/elcoosp/linkgen/internal/model"
	"github.com/elcoosp/linkgen/internal/naming"
)

// TypeScript renders the route set as a single client module: one typed
// client function per route returning {url, method}, one parameter interface
// per parameterized route, and one tanstack-query hook per route. All names
// re-case the same canonical tokens the Rust emitter consumed.
func TypeScript(routes []*model.RouteInfo) string {
	routes = ordered(routes)

	var b strings.Builder
	b.WriteString(generatedHeader)
	b.WriteString(`
import {
  useQuery,
  useMutation,
  type UseQueryOptions,
  type UseMutationOptions,
} from "@tanstack/react-query";

/** A resolved route reference: the interpolated URL and its HTTP method. */
export type RouteRef = { url: string; method: string };

async function request<T>(ref: RouteRef, init?: RequestInit): Promise<T> {
  const res = await fetch(ref.url, { method: ref.method, ...init });
  if (!res.ok) {
    throw new Error(` + "`${ref.method} ${ref.url} failed with ${res.status}`" + `);
  }
  if (res.status === 204) {
    return undefined as T;
  }
  return res.json() as Promise<T>;
}
`)

	for _, route := range routes {
		if len(route.FieldNames) == 0 {
			continue
		}
		b.WriteString("\n")
		fmt.Fprintf(&b, "export interface %s {\n", paramsTypeName(route))
		for _, field := range route.FieldNames {
			fmt.Fprintf(&b, "  %s: string;\n", field)
		}
		b.WriteString("}\n")
	}

	b.WriteString("\nexport const client = {\n")
	for _, route := range routes {
		name := clientName(route)
		if len(route.FieldNames) == 0 {
			fmt.Fprintf(&b, "  %s: (): RouteRef => ({ url: `%s`, method: %q }),\n",
				name, route.FinalPath, route.Method)
			continue
		}
		fmt.Fprintf(&b, "  %s: (params: %s): RouteRef => ({\n", name, paramsTypeName(route))
		fmt.Fprintf(&b, "    url: `%s`,\n", urlTemplate(route))
		fmt.Fprintf(&b, "    method: %q,\n", route.Method)
		b.WriteString("  }),\n")
	}
	b.WriteString("};\n")

	for _, route := range routes {
		b.WriteString("\n")
		if model.IsQueryMethod(route.Method) {
			writeQueryHook(&b, route)
		} else {
			writeMutationHook(&b, route)
		}
	}

	return b.String()
}

// writeQueryHook emits a useQuery hook keyed by the route's stable client
// name plus, for parameterized routes, the parameter object.
func writeQueryHook(b *strings.Builder, route *model.RouteInfo) {
	name := clientName(route)
	hook := hookName(route)

	if len(route.FieldNames) == 0 {
		fmt.Fprintf(b, `export function %s(
  options?: Omit<UseQueryOptions<unknown, Error>, "queryKey">,
) {
  return useQuery({
    queryKey: [%q],
    queryFn: ({ signal }) => request(client.%s(), { signal }),
    ...options,
  });
}
`, hook, name, name)
		return
	}

	fmt.Fprintf(b, `export function %s(
  params: %s,
  options?: Omit<UseQueryOptions<unknown, Error>, "queryKey">,
) {
  return useQuery({
    queryKey: [%q, params],
    queryFn: ({ signal }) => request(client.%s(params), { signal }),
    ...options,
  });
}
`, hook, paramsTypeName(route), name, name)
}

// writeMutationHook emits a useMutation hook. Parameterized routes take a
// {params, body} input so the caller binds path values per mutation.
func writeMutationHook(b *strings.Builder, route *model.RouteInfo) {
	name := clientName(route)
	hook := hookName(route)

	if len(route.FieldNames) == 0 {
		fmt.Fprintf(b, `export function %s(
  options?: UseMutationOptions<unknown, Error, unknown>,
) {
  return useMutation({
    mutationFn: (body: unknown) =>
      request(client.%s(), {
        body: body === undefined ? undefined : JSON.stringify(body),
        headers: { "Content-Type": "application/json" },
      }),
    ...options,
  });
}
`, hook, name)
		return
	}

	input := fmt.Sprintf("{ params: %s; body?: unknown }", paramsTypeName(route))
	fmt.Fprintf(b, `export function %s(
  options?: UseMutationOptions<unknown, Error, %s>,
) {
  return useMutation({
    mutationFn: (input: %s) =>
      request(client.%s(input.params), {
        body: input.body === undefined ? undefined : JSON.stringify(input.body),
        headers: { "Content-Type": "application/json" },
      }),
    ...options,
  });
}
`, hook, input, input, name)
}

// clientName is the camelCase rendition of the canonical name tokens.
func clientName(route *model.RouteInfo) string {
	return naming.Identifier(route.NameTokens, naming.Camel, "", "")
}

// hookName is "use" + PascalCase rendition of the canonical name tokens.
func hookName(route *model.RouteInfo) string {
	return naming.Identifier(route.NameTokens, naming.Pascal, "use", "")
}

// paramsTypeName is the parameter interface name for a parameterized route.
func paramsTypeName(route *model.RouteInfo) string {
	return naming.Identifier(route.NameTokens, naming.Pascal, "", "Params")
}

// urlTemplate rewrites {param} placeholders into ${params.field}
// interpolations, pairing placeholders and fields left to right.
func urlTemplate(route *model.RouteInfo) string {
	var b strings.Builder
	fieldIndex := 0
	inParam := false
	for _, r := range route.FinalPath {
		switch r {
		case '{':
			inParam = true
		case '}':
			if inParam && fieldIndex < len(route.FieldNames) {
				fmt.Fprintf(&b, "${params.%s}", route.FieldNames[fieldIndex])
				fieldIndex++
			}
			inParam = false
		default:
			if !inParam {
				b.WriteRune(r)
			}
		}
	}
	return b.String()
}
