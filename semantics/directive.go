package semantics

import (
	"fmt"
	"strings"

	"github.com/Specy/s68k/cpu"
	"github.com/Specy/s68k/expr"
	"github.com/Specy/s68k/lexer"
)

func (c *Checker) checkDirective(line lexer.Line, st lexer.Statement, labeled bool) {
	if st.Size == cpu.SizeUnknown {
		c.addError(line, CodeUnsupportedSize, fmt.Sprintf("unknown size suffix for directive %q", st.Name))
	}
	switch st.Name {
	case "equ":
		if len(st.Args) != 2 {
			c.addError(line, CodeDirectiveMisuse, "equ expects a name and a value")
			return
		}
		c.checkExpression(line, st.Args[1])
	case "org":
		if labeled {
			c.addError(line, CodeDirectiveMisuse, "org cannot carry a label")
			return
		}
		if len(st.Args) != 1 {
			c.addError(line, CodeDirectiveMisuse, "org expects a single address")
			return
		}
		c.checkExpression(line, st.Args[0])
	case "dc":
		if len(st.Args) == 0 {
			c.addError(line, CodeDirectiveMisuse, "dc expects at least one value")
			return
		}
		for i, arg := range st.Args {
			if isStringLiteral(arg) {
				continue
			}
			if strings.TrimSpace(arg) == "" {
				c.addError(line, CodeDirectiveMisuse, fmt.Sprintf("empty argument for dc at position %d", i+1))
				continue
			}
			c.checkExpression(line, arg)
		}
	case "ds":
		if len(st.Args) != 1 {
			c.addError(line, CodeDirectiveMisuse, fmt.Sprintf("ds expects one count argument, received %d", len(st.Args)))
			return
		}
		c.checkCount(line, st.Args[0], "ds")
	case "dcb":
		if len(st.Args) != 2 {
			c.addError(line, CodeDirectiveMisuse, fmt.Sprintf("dcb expects a count and a value, received %d arguments", len(st.Args)))
			return
		}
		c.checkCount(line, st.Args[0], "dcb")
		c.checkExpression(line, st.Args[1])
	default:
		c.addError(line, CodeDirectiveMisuse, fmt.Sprintf("unknown directive %q", st.Name))
	}
}

// checkCount validates a reservation count: a valid expression that, if
// literal, must not be negative.
func (c *Checker) checkCount(line lexer.Line, arg, directive string) {
	c.checkExpression(line, arg)
	if len(expr.Symbols(arg)) > 0 {
		return
	}
	v, err := expr.Eval(arg, nil)
	if err == nil && v < 0 {
		c.addError(line, CodeDirectiveMisuse, fmt.Sprintf("negative count %d for %s", v, directive))
	}
}

// isStringLiteral reports a quoted run of more than one character,
// which dc expands into consecutive values.
func isStringLiteral(arg string) bool {
	return len(arg) > 3 && strings.HasPrefix(arg, "'") && strings.HasSuffix(arg, "'")
}
