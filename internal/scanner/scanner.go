package scanner

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/elcoosp/linkgen/internal/model"
)

// rootFunc is the per-file entry point. Chains declared in other functions
// contribute only when a nest()/merge() call reaches them from the root.
const rootFunc = "routes"

// ScanError marks one file whose router-construct region is malformed. The
// file is skipped and scanning continues; one bad file never aborts the run.
type ScanError struct {
	File string
	Err  error
}

func (e *ScanError) Error() string {
	return fmt.Sprintf("%s: %v", e.File, e.Err)
}

func (e *ScanError) Unwrap() error { return e.Err }

// ShouldScan reports whether a directory entry is a controller candidate.
// Module index files carry no route declarations of their own.
func ShouldScan(name string) bool {
	base := filepath.Base(name)
	return strings.HasSuffix(base, ".rs") && base != "mod.rs"
}

// chain is the parsed form of one Routes::new() builder chain before nest
// references are linked into a tree.
type chain struct {
	prefix  string
	entries []chainEntry
}

// chainEntry mirrors model.RouteEntry at the parse stage: a direct route or
// a reference to another route function in the same file.
type chainEntry struct {
	route *model.RouteRecord
	nest  *nestRef
}

type nestRef struct {
	prefix string
	fn     string
}

// ScanFile parses one controller file and returns its routing tree, or nil
// when the file declares no routes. A malformed router construct yields a
// *ScanError; the caller records the diagnostic and moves on.
func ScanFile(path string, src []byte) (*model.RouteNode, error) {
	p := &parser{file: path, toks: lex(path, src)}

	chains, err := p.parseFile()
	if err != nil {
		return nil, &ScanError{File: path, Err: err}
	}
	if _, ok := chains[rootFunc]; !ok {
		return nil, nil
	}

	node, err := link(chains, rootFunc, map[string]bool{})
	if err != nil {
		return nil, &ScanError{File: path, Err: err}
	}
	return node, nil
}

// link instantiates the routing tree for one chain, resolving nest and merge
// references recursively. The visiting set guards against reference cycles.
func link(chains map[string]*chain, fn string, visiting map[string]bool) (*model.RouteNode, error) {
	ch, ok := chains[fn]
	if !ok {
		return nil, fmt.Errorf("nested route function %q is not declared in this file", fn)
	}
	if visiting[fn] {
		return nil, fmt.Errorf("route function %q nests itself", fn)
	}
	visiting[fn] = true
	defer delete(visiting, fn)

	node := &model.RouteNode{PathPrefix: ch.prefix}
	for _, e := range ch.entries {
		if e.route != nil {
			node.AddRoute(e.route)
			continue
		}
		child, err := link(chains, e.nest.fn, visiting)
		if err != nil {
			return nil, err
		}
		if e.nest.prefix != "" {
			wrapper := &model.RouteNode{PathPrefix: e.nest.prefix}
			wrapper.AddChild(child)
			node.AddChild(wrapper)
		} else {
			node.AddChild(child)
		}
	}
	return node, nil
}

type parser struct {
	file string
	toks []token
	pos  int
}

func (p *parser) peek() token {
	if p.pos >= len(p.toks) {
		return token{kind: tokEOF}
	}
	return p.toks[p.pos]
}

func (p *parser) next() token {
	t := p.peek()
	if t.kind != tokEOF {
		p.pos++
	}
	return t
}

func (p *parser) acceptPunct(text string) bool {
	if t := p.peek(); t.kind == tokPunct && t.text == text {
		p.pos++
		return true
	}
	return false
}

// acceptSeq consumes the given punctuation/identifier sequence, or leaves
// the position untouched when it does not match.
func (p *parser) acceptSeq(parts ...string) bool {
	save := p.pos
	for _, part := range parts {
		t := p.next()
		if t.kind == tokEOF || t.text != part {
			p.pos = save
			return false
		}
	}
	return true
}

// parseFile walks the token stream, remembering the enclosing function name,
// and parses every Routes::new() chain it encounters. The first chain per
// function wins.
func (p *parser) parseFile() (map[string]*chain, error) {
	chains := make(map[string]*chain)
	currentFn := ""

	for {
		t := p.next()
		if t.kind == tokEOF {
			break
		}
		if t.kind != tokIdent {
			continue
		}
		if t.text == "fn" {
			if name := p.peek(); name.kind == tokIdent {
				currentFn = name.text
				p.pos++
			}
			continue
		}
		if t.text == "Routes" && p.acceptSeq(":", ":", "new", "(", ")") {
			ch, err := p.parseChain()
			if err != nil {
				return nil, err
			}
			if currentFn != "" {
				if _, exists := chains[currentFn]; !exists {
					chains[currentFn] = ch
				}
			}
		}
	}
	return chains, nil
}

// parseChain consumes the builder calls following a Routes::new(). Chain
// methods outside the route grammar (middleware wrappers and the like) are
// stepped over; the chain ends at the first token that is not a ".".
func (p *parser) parseChain() (*chain, error) {
	ch := &chain{}
	for p.acceptPunct(".") {
		name := p.next()
		if name.kind != tokIdent {
			return nil, fmt.Errorf("expected builder method after %q", ".")
		}
		if !p.acceptPunct("(") {
			return nil, fmt.Errorf("expected call parentheses after .%s", name.text)
		}

		switch name.text {
		case "prefix":
			lit, err := p.expectString("prefix()")
			if err != nil {
				return nil, err
			}
			ch.prefix = ensureLeadingSlash(lit)
			p.skipToClose()
		case "add":
			record, err := p.parseAdd()
			if err != nil {
				return nil, err
			}
			ch.entries = append(ch.entries, chainEntry{route: record})
		case "nest":
			ref, err := p.parseNest()
			if err != nil {
				return nil, err
			}
			ch.entries = append(ch.entries, chainEntry{nest: ref})
		case "merge":
			fn, err := p.expectIdent("merge()")
			if err != nil {
				return nil, err
			}
			p.skipToClose()
			ch.entries = append(ch.entries, chainEntry{nest: &nestRef{fn: fn}})
		default:
			p.skipToClose()
		}
	}
	return ch, nil
}

// parseAdd handles .add("/path", method(handler)). The path must be a string
// literal with balanced placeholders and the method token must be a known
// HTTP method.
func (p *parser) parseAdd() (*model.RouteRecord, error) {
	lit, err := p.expectString("add() path")
	if err != nil {
		return nil, err
	}
	if err := validatePathLiteral(lit); err != nil {
		return nil, fmt.Errorf("unparsable path literal %q: %w", lit, err)
	}
	if !p.acceptPunct(",") {
		return nil, fmt.Errorf("add(%q) is missing its registration argument", lit)
	}

	methodTok, err := p.expectIdent("add() registration")
	if err != nil {
		return nil, err
	}
	method, known := model.Methods[strings.ToLower(methodTok)]
	if !known {
		return nil, fmt.Errorf("unknown method token %q in add(%q)", methodTok, lit)
	}
	if !p.acceptPunct("(") {
		return nil, fmt.Errorf("expected handler call after %s in add(%q)", methodTok, lit)
	}

	handler, err := p.parseHandlerPath()
	if err != nil {
		return nil, fmt.Errorf("add(%q): %w", lit, err)
	}
	p.skipToClose() // closes method(...)
	p.skipToClose() // closes add(...)

	return &model.RouteRecord{
		Method:  method,
		RawPath: lit,
		Handler: handler,
		File:    p.file,
	}, nil
}

// parseNest handles .nest("/prefix", other_routes()).
func (p *parser) parseNest() (*nestRef, error) {
	lit, err := p.expectString("nest() prefix")
	if err != nil {
		return nil, err
	}
	if !p.acceptPunct(",") {
		return nil, fmt.Errorf("nest(%q) is missing its sub-router argument", lit)
	}
	fn, err := p.expectIdent("nest() sub-router")
	if err != nil {
		return nil, err
	}
	p.skipToClose() // balances the sub-router call and closes nest(...)
	return &nestRef{prefix: ensureLeadingSlash(lit), fn: fn}, nil
}

// parseHandlerPath reads a handler reference like get_user or
// handlers::get_user and returns the trailing identifier.
func (p *parser) parseHandlerPath() (string, error) {
	t := p.next()
	if t.kind != tokIdent {
		return "", fmt.Errorf("cannot extract handler reference")
	}
	handler := t.text
	for p.acceptSeq(":", ":") {
		t = p.next()
		if t.kind != tokIdent {
			return "", fmt.Errorf("cannot extract handler reference")
		}
		handler = t.text
	}
	return handler, nil
}

func (p *parser) expectString(ctx string) (string, error) {
	t := p.next()
	if t.kind != tokString {
		return "", fmt.Errorf("%s must be a string literal", ctx)
	}
	return t.text, nil
}

func (p *parser) expectIdent(ctx string) (string, error) {
	t := p.next()
	if t.kind != tokIdent {
		return "", fmt.Errorf("%s must be an identifier", ctx)
	}
	return t.text, nil
}

// skipToClose consumes tokens through the ")" matching an already-consumed
// "(". Nested parentheses are balanced; a premature EOF just ends the scan.
func (p *parser) skipToClose() {
	depth := 1
	for depth > 0 {
		t := p.next()
		if t.kind == tokEOF {
			return
		}
		if t.kind == tokPunct {
			switch t.text {
			case "(":
				depth++
			case ")":
				depth--
			}
		}
	}
}

func ensureLeadingSlash(s string) string {
	if s == "" || strings.HasPrefix(s, "/") {
		return s
	}
	return "/" + s
}

// validatePathLiteral rejects paths with unbalanced or nested placeholder
// braces, the "unparsable path literal" case.
func validatePathLiteral(path string) error {
	depth := 0
	for _, r := range path {
		switch r {
		case '{':
			depth++
			if depth > 1 {
				return fmt.Errorf("nested placeholder brace")
			}
		case '}':
			depth--
			if depth < 0 {
				return fmt.Errorf("unbalanced placeholder brace")
			}
		}
	}
	if depth != 0 {
		return fmt.Errorf("unbalanced placeholder brace")
	}
	return nil
}
