package scanner

import (
	"strconv"
	"strings"
	"text/scanner"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokIdent
	tokString
	tokPunct
)

// token is one lexical element of a controller file. Punctuation carries the
// rune text; strings are already unquoted.
type token struct {
	kind tokenKind
	text string
}

// lex tokenizes controller source into identifiers, string literals and
// punctuation. Comments are skipped; anything the route grammar does not
// care about (operators, numbers, generics) flows through as punctuation so
// the parser can step over it.
func lex(filename string, src []byte) []token {
	var s scanner.Scanner
	s.Init(strings.NewReader(string(src)))
	s.Filename = filename
	s.Mode = scanner.ScanIdents | scanner.ScanStrings | scanner.SkipComments | scanner.ScanComments
	// Lexical noise (lifetimes, stray quotes) must not leak to stderr or
	// abort the scan; the parser is the one deciding what is malformed.
	s.Error = func(*scanner.Scanner, string) {}

	var toks []token
	for {
		r := s.Scan()
		if r == scanner.EOF {
			break
		}
		switch r {
		case scanner.Ident:
			toks = append(toks, token{kind: tokIdent, text: s.TokenText()})
		case scanner.String:
			text := s.TokenText()
			if unquoted, err := strconv.Unquote(text); err == nil {
				text = unquoted
			} else {
				text = strings.Trim(text, `"`)
			}
			toks = append(toks, token{kind: tokString, text: text})
		case scanner.Int, scanner.Float, scanner.Char, scanner.RawString, scanner.Comment:
			// Irrelevant to the route grammar.
		default:
			toks = append(toks, token{kind: tokPunct, text: string(r)})
		}
	}
	return toks
}
