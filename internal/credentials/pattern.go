package credentials

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var (
	errTrailingEscape = errors.New("trailing backslash")
	errUnclosedClass  = errors.New("unclosed character class")
)

// compilePattern turns an identifier glob into an anchored regexp.
//
// Supported syntax:
//   - * matches any run of characters, including none
//   - ? matches exactly one character
//   - [...] matches one character from the set, [!...] negates it
//   - \ escapes the next character
//
// Matching is case sensitive and operates on characters, not bytes.
func compilePattern(pattern string) (*regexp.Regexp, error) {
	runes := []rune(pattern)

	var expr strings.Builder

	expr.WriteString(`(?s)^`)

	for i := 0; i < len(runes); i++ {
		switch r := runes[i]; r {
		case '*':
			expr.WriteString(`.*`)
		case '?':
			expr.WriteString(`.`)
		case '\\':
			if i+1 == len(runes) {
				return nil, fmt.Errorf("%w: pattern %q: %w", ErrInvalidInput, pattern, errTrailingEscape)
			}

			i++
			expr.WriteString(regexp.QuoteMeta(string(runes[i])))
		case '[':
			end, err := classEnd(runes, i)
			if err != nil {
				return nil, fmt.Errorf("%w: pattern %q: %w", ErrInvalidInput, pattern, err)
			}

			writeClass(&expr, runes[i+1:end])

			i = end
		default:
			expr.WriteString(regexp.QuoteMeta(string(r)))
		}
	}

	expr.WriteString(`$`)

	re, err := regexp.Compile(expr.String())
	if err != nil {
		return nil, fmt.Errorf("%w: pattern %q: %w", ErrInvalidInput, pattern, err)
	}

	return re, nil
}

// classEnd returns the index of the ']' closing the class opened at start.
// A ']' directly after the opening bracket (or its negation) is a literal member.
func classEnd(runes []rune, start int) (int, error) {
	i := start + 1

	if i < len(runes) && runes[i] == '!' {
		i++
	}

	if i < len(runes) && runes[i] == ']' {
		i++
	}

	for ; i < len(runes); i++ {
		if runes[i] == ']' {
			return i, nil
		}
	}

	return 0, errUnclosedClass
}

// writeClass emits a regexp character class for the glob class body.
// Ranges written as a-z are kept; every other member is escaped.
func writeClass(expr *strings.Builder, body []rune) {
	expr.WriteByte('[')

	if len(body) > 0 && body[0] == '!' {
		expr.WriteByte('^')

		body = body[1:]
	}

	for i, r := range body {
		switch {
		case r == '-' && i > 0 && i < len(body)-1:
			expr.WriteByte('-')
		case r == '-':
			expr.WriteString(`\-`)
		default:
			expr.WriteString(regexp.QuoteMeta(string(r)))
		}
	}

	expr.WriteByte(']')
}
