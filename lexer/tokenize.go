package lexer

import (
	"strings"
	"unicode"

	"github.com/Specy/s68k/cpu"
)

// stripComment removes a trailing comment. A ";" outside a character
// literal always starts a comment; a "*" does so only when preceded by
// whitespace, so that "2*3" survives while "move d0,d1 * note" does not.
func stripComment(line string) string {
	inQuote := false
	prev := rune(0)
	for i, c := range line {
		switch {
		case c == '\'':
			inQuote = !inQuote
		case inQuote:
		case c == ';':
			return line[:i]
		case c == '*' && unicode.IsSpace(prev):
			return line[:i]
		}
		prev = c
	}
	return line
}

// normalize lowercases everything outside character literals.
func normalize(line string) string {
	var b strings.Builder
	b.Grow(len(line))
	inQuote := false
	for _, c := range line {
		if c == '\'' {
			inQuote = !inQuote
		}
		if inQuote {
			b.WriteRune(c)
		} else {
			b.WriteRune(unicode.ToLower(c))
		}
	}
	return b.String()
}

// splitFirstToken splits a line at the first whitespace outside quotes
// and parentheses.
func splitFirstToken(line string) (string, string) {
	depth := 0
	inQuote := false
	for i, c := range line {
		switch {
		case c == '\'':
			inQuote = !inQuote
		case inQuote:
		case c == '(':
			depth++
		case c == ')':
			depth--
		case unicode.IsSpace(c) && depth == 0:
			return line[:i], strings.TrimSpace(line[i:])
		}
	}
	return line, ""
}

// splitArgs splits an argument list on commas, balancing parentheses
// and quotes so that commas inside 'x' or (...) do not split.
func splitArgs(text string) []string {
	var args []string
	var current strings.Builder
	depth := 0
	inQuote := false
	for _, c := range text {
		switch {
		case c == '\'':
			inQuote = !inQuote
			current.WriteRune(c)
		case inQuote:
			current.WriteRune(c)
		case c == '(':
			depth++
			current.WriteRune(c)
		case c == ')':
			depth--
			current.WriteRune(c)
		case c == ',' && depth == 0:
			args = append(args, strings.TrimSpace(current.String()))
			current.Reset()
		default:
			current.WriteRune(c)
		}
	}
	args = append(args, strings.TrimSpace(current.String()))
	return args
}

// splitSizeSuffix separates "move.w" into ("move", SizeWord).
func splitSizeSuffix(token string) (string, cpu.Size) {
	dot := strings.LastIndex(token, ".")
	if dot < 0 {
		return token, cpu.SizeUnspecified
	}
	return token[:dot], cpu.ParseSize(token[dot+1:])
}

// trimAbsoluteSuffix drops an explicit ".w"/".l" from an absolute
// address; all absolutes are treated as long in this design.
func trimAbsoluteSuffix(text string) string {
	if strings.HasSuffix(text, ".w") || strings.HasSuffix(text, ".l") {
		return text[:len(text)-2]
	}
	return text
}
