package naming

import (
	"fmt"
	"strings"
)

// Case is a closed enumeration of case conventions. Each value is a pure
// tokens-to-string function; unrecognized names are rejected by ParseCase at
// configuration-validation time, never at emission time.
type Case int

const (
	Pascal Case = iota
	Camel
	Snake
	Kebab
	Title
	Lower
	Upper
)

// ParseCase resolves a configured case name. Both short ("pascal") and long
// ("PascalCase") spellings are accepted, case-insensitively.
func ParseCase(name string) (Case, error) {
	switch strings.ToLower(name) {
	case "pascal", "pascalcase":
		return Pascal, nil
	case "camel", "camelcase":
		return Camel, nil
	case "snake", "snake_case":
		return Snake, nil
	case "kebab", "kebab-case":
		return Kebab, nil
	case "title", "title_case", "titlecase":
		return Title, nil
	case "lower", "lowercase":
		return Lower, nil
	case "upper", "uppercase":
		return Upper, nil
	}
	return 0, fmt.Errorf("unrecognized case convention %q", name)
}

func (c Case) String() string {
	switch c {
	case Pascal:
		return "PascalCase"
	case Camel:
		return "camelCase"
	case Snake:
		return "snake_case"
	case Kebab:
		return "kebab-case"
	case Title:
		return "Title Case"
	case Lower:
		return "lowercase"
	case Upper:
		return "UPPERCASE"
	}
	return "unknown"
}

// Apply converts an ordered token list into a single identifier under the
// convention. Tokens are expected lowercase, as produced by the tokenizer.
func (c Case) Apply(tokens []string) string {
	if len(tokens) == 0 {
		return ""
	}
	switch c {
	case Pascal:
		var b strings.Builder
		for _, t := range tokens {
			b.WriteString(capitalize(t))
		}
		return b.String()
	case Camel:
		var b strings.Builder
		b.WriteString(strings.ToLower(tokens[0]))
		for _, t := range tokens[1:] {
			b.WriteString(capitalize(t))
		}
		return b.String()
	case Snake:
		return strings.ToLower(strings.Join(tokens, "_"))
	case Kebab:
		return strings.ToLower(strings.Join(tokens, "-"))
	case Title:
		parts := make([]string, len(tokens))
		for i, t := range tokens {
			parts[i] = capitalize(t)
		}
		return strings.Join(parts, " ")
	case Lower:
		return strings.ToLower(strings.Join(tokens, ""))
	case Upper:
		return strings.ToUpper(strings.Join(tokens, ""))
	}
	return strings.Join(tokens, "")
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	lower := strings.ToLower(s)
	return strings.ToUpper(lower[:1]) + lower[1:]
}
