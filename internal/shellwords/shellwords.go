// Package shellwords splits raw argument strings into shell-style words.
// Parsing is strict: an unterminated quote or dangling escape is an error,
// never a best-effort single-argument fallback.
package shellwords

import (
	"errors"
	"strings"
	"unicode"
)

var (
	ErrUnterminatedQuote = errors.New("unterminated quote")
	ErrTrailingEscape    = errors.New("trailing backslash")
)

// Split tokenizes raw into arguments. Single quotes preserve everything
// literally; double quotes allow backslash escapes of `"` and `\`;
// unquoted backslash escapes the next character.
func Split(raw string) ([]string, error) {
	var (
		args    []string
		current strings.Builder
		inWord  bool
	)

	runes := []rune(raw)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch {
		case unicode.IsSpace(r):
			if inWord {
				args = append(args, current.String())
				current.Reset()
				inWord = false
			}

		case r == '\\':
			if i+1 >= len(runes) {
				return nil, ErrTrailingEscape
			}
			i++
			current.WriteRune(runes[i])
			inWord = true

		case r == '\'':
			inWord = true
			end := -1
			for j := i + 1; j < len(runes); j++ {
				if runes[j] == '\'' {
					end = j
					break
				}
			}
			if end < 0 {
				return nil, ErrUnterminatedQuote
			}
			current.WriteString(string(runes[i+1 : end]))
			i = end

		case r == '"':
			inWord = true
			closed := false
			for j := i + 1; j < len(runes); j++ {
				if runes[j] == '\\' && j+1 < len(runes) && (runes[j+1] == '"' || runes[j+1] == '\\') {
					current.WriteRune(runes[j+1])
					j++
					i = j
					continue
				}
				if runes[j] == '"' {
					i = j
					closed = true
					break
				}
				current.WriteRune(runes[j])
				i = j
			}
			if !closed {
				return nil, ErrUnterminatedQuote
			}

		default:
			current.WriteRune(r)
			inWord = true
		}
	}

	if inWord {
		args = append(args, current.String())
	}
	return args, nil
}

// Join renders an argument list back into a single line, quoting arguments
// that need it. Split(Join(args)) round-trips.
func Join(args []string) string {
	quoted := make([]string, len(args))
	for i, a := range args {
		quoted[i] = Quote(a)
	}
	return strings.Join(quoted, " ")
}

// Quote wraps a single argument for display or re-parsing.
func Quote(arg string) string {
	if arg == "" {
		return "''"
	}
	if !strings.ContainsFunc(arg, func(r rune) bool {
		return unicode.IsSpace(r) || r == '\'' || r == '"' || r == '\\'
	}) {
		return arg
	}
	if !strings.Contains(arg, "'") {
		return "'" + arg + "'"
	}
	// Fall back to double quotes, escaping what they interpret.
	escaped := strings.ReplaceAll(arg, `\`, `\\`)
	escaped = strings.ReplaceAll(escaped, `"`, `\"`)
	return `"` + escaped + `"`
}
