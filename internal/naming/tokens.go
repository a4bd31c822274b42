package naming

import (
	"strings"
	"unicode"
)

// Options are the tokenization knobs carried by the configuration snapshot.
type Options struct {
	// IncludeMethod prepends the HTTP method as the first token.
	IncludeMethod bool
	// PathPrefixToRemove is stripped before tokenizing. It affects naming
	// only; resolved route paths are never touched.
	PathPrefixToRemove string
	// WordSeparators are treated as word boundaries inside path segments,
	// in addition to "_" and embedded case boundaries.
	WordSeparators string
	// PreserveNumbers splits digit runs into their own tokens even when
	// adjacent to letters with no separator.
	PreserveNumbers bool
}

// PathTokens derives the canonical token list for a route. The tokens are
// lowercase words in path order; {param} segments contribute "by" followed
// by the parameter's own words, so routes differing only by parameter keep
// distinguishable names. An empty path tokenizes to "root".
func PathTokens(path, method string, opts Options) []string {
	namePath := stripNamePrefix(path, opts.PathPrefixToRemove)

	var tokens []string
	for _, segment := range strings.Split(strings.Trim(namePath, "/"), "/") {
		if segment == "" {
			continue
		}
		if strings.HasPrefix(segment, "{") && strings.HasSuffix(segment, "}") {
			inner := segment[1 : len(segment)-1]
			tokens = append(tokens, "by")
			tokens = append(tokens, SplitWords(inner, opts.WordSeparators, opts.PreserveNumbers)...)
			continue
		}
		tokens = append(tokens, SplitWords(segment, opts.WordSeparators, opts.PreserveNumbers)...)
	}

	if len(tokens) == 0 {
		tokens = []string{"root"}
	}
	if opts.IncludeMethod && method != "" {
		tokens = append([]string{strings.ToLower(method)}, tokens...)
	}
	return tokens
}

// stripNamePrefix removes a configured literal prefix from the path used for
// naming. The match is segment-aligned so "/api" never strips "/apiary".
func stripNamePrefix(path, prefix string) string {
	if prefix == "" {
		return path
	}
	p := strings.Trim(path, "/")
	pre := strings.Trim(prefix, "/")
	if p == pre {
		return ""
	}
	if strings.HasPrefix(p, pre+"/") {
		return p[len(pre)+1:]
	}
	return path
}

// SplitWords splits one path segment into lowercase word tokens. Boundaries
// are the configured separators, "_", lower-to-upper case transitions, the
// end of an acronym run, and digit runs when preserveNumbers is set.
func SplitWords(s, separators string, preserveNumbers bool) []string {
	isSep := func(r rune) bool {
		return r == '_' || strings.ContainsRune(separators, r)
	}

	var words []string
	runes := []rune(s)
	var current []rune

	flush := func() {
		if len(current) > 0 {
			words = append(words, strings.ToLower(string(current)))
			current = current[:0]
		}
	}

	for i, r := range runes {
		switch {
		case isSep(r):
			flush()
		case unicode.IsDigit(r):
			if preserveNumbers && len(current) > 0 && !unicode.IsDigit(current[len(current)-1]) {
				flush()
			}
			current = append(current, r)
		case unicode.IsUpper(r):
			if len(current) > 0 {
				prev := current[len(current)-1]
				next := i+1 < len(runes)
				switch {
				case unicode.IsLower(prev):
					// userId -> user, id
					flush()
				case unicode.IsUpper(prev) && next && unicode.IsLower(runes[i+1]):
					// HTTPServer -> http, server
					flush()
				case preserveNumbers && unicode.IsDigit(prev):
					flush()
				}
			}
			current = append(current, r)
		default:
			if preserveNumbers && len(current) > 0 && unicode.IsDigit(current[len(current)-1]) {
				flush()
			}
			current = append(current, r)
		}
	}
	flush()
	return words
}

// SanitizeIdentifier rewrites a name into a valid identifier: a leading rune
// that is neither a letter nor "_" gets an underscore prepended, and every
// other disallowed rune becomes "_".
func SanitizeIdentifier(name string) string {
	if name == "" {
		return name
	}
	var b strings.Builder
	first := []rune(name)[0]
	if !unicode.IsLetter(first) && first != '_' {
		b.WriteRune('_')
	}
	for _, r := range name {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			b.WriteRune(r)
		} else {
			b.WriteRune('_')
		}
	}
	return b.String()
}

// Identifier applies a case convention, then the verbatim prefix and suffix,
// then sanitization. This is the full variant-name production; field names
// use the same function with empty prefix and suffix.
func Identifier(tokens []string, c Case, prefix, suffix string) string {
	name := prefix + c.Apply(tokens) + suffix
	return SanitizeIdentifier(name)
}
