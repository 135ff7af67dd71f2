package lexer

import (
	"regexp"
	"strings"

	"github.com/Specy/s68k/cpu"
)

var (
	reRegister   = regexp.MustCompile(`^(d[0-7]|a[0-7]|sp)$`)
	reImmediate  = regexp.MustCompile(`^#\S+`)
	rePostInd    = regexp.MustCompile(`^\(\S+\)\+$`)
	rePreInd     = regexp.MustCompile(`^-\(\S+\)$`)
	reIdentifier = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)
	reAbsolute   = regexp.MustCompile(`^[$%@0-9']`)
)

// directives recognized on their own line or attached to a label.
var directives = map[string]bool{
	"equ": true,
	"org": true,
	"dc":  true,
	"ds":  true,
	"dcb": true,
}

// Lexer turns source text into structured lines with typed operand
// trees. It performs no validation; malformed operands are emitted as
// OperandOther and rejected by the semantic checker.
type Lexer struct{}

// New creates a Lexer.
func New() *Lexer {
	return &Lexer{}
}

// Lex splits the source into lines and parses each one.
func (l *Lexer) Lex(source string) []Line {
	source = strings.ReplaceAll(source, "\r\n", "\n")
	raw := strings.Split(source, "\n")
	lines := make([]Line, len(raw))
	for i, r := range raw {
		lines[i] = Line{
			Raw:    r,
			Index:  i,
			Parsed: l.parseLine(r),
		}
	}
	return lines
}

func (l *Lexer) parseLine(raw string) Statement {
	line := strings.TrimSpace(raw)
	if line == "" {
		return Statement{Kind: LineEmpty}
	}
	if strings.HasPrefix(line, ";") || strings.HasPrefix(line, "*") {
		return Statement{Kind: LineComment, Content: line}
	}
	line = stripComment(line)
	line = normalize(line)
	if strings.TrimSpace(line) == "" {
		return Statement{Kind: LineEmpty}
	}

	first, rest := splitFirstToken(line)

	// Labels end with ":"; whatever follows on the same line must be a
	// data directive.
	if strings.HasSuffix(first, ":") {
		name := strings.TrimSuffix(first, ":")
		stmt := Statement{Kind: LineLabel, Name: name}
		if !reIdentifier.MatchString(name) {
			return Statement{Kind: LineUnknown, Content: line}
		}
		if rest != "" {
			dir := l.parseDirective(rest)
			if dir == nil {
				return Statement{Kind: LineUnknown, Content: line}
			}
			stmt.Directive = dir
		}
		return stmt
	}

	// "name equ value" declares a constant.
	if rest != "" {
		second, value := splitFirstToken(rest)
		if second == "equ" {
			return Statement{Kind: LineDirective, Name: "equ", Args: []string{first, value}}
		}
	}

	if dir := l.parseDirective(line); dir != nil {
		return *dir
	}

	name, size := splitSizeSuffix(first)
	if !reIdentifier.MatchString(name) {
		return Statement{Kind: LineUnknown, Content: line}
	}
	var operands []Operand
	if rest != "" {
		for _, arg := range splitArgs(rest) {
			operands = append(operands, l.parseOperand(arg))
		}
	}
	return Statement{Kind: LineInstruction, Name: name, Size: size, Operands: operands}
}

// parseDirective recognizes "dc.w 1,2", "ds.l 4", "dcb.b 10,0" and
// "org $1000". Returns nil if the first token is not a directive.
func (l *Lexer) parseDirective(text string) *Statement {
	first, rest := splitFirstToken(text)
	name, size := splitSizeSuffix(first)
	if !directives[name] || name == "equ" {
		return nil
	}
	stmt := &Statement{Kind: LineDirective, Name: name, Size: size}
	if rest != "" {
		stmt.Args = splitArgs(rest)
	}
	return stmt
}

func (l *Lexer) parseOperand(text string) Operand {
	text = strings.TrimSpace(text)
	switch {
	case reRegister.MatchString(text):
		return registerOperand(text)
	case rePostInd.MatchString(text):
		inner := strings.TrimSuffix(strings.TrimPrefix(text, "("), ")+")
		return Operand{Kind: OperandPostIndirect, Value: text, Operands: []Operand{l.parseOperand(inner)}}
	case rePreInd.MatchString(text):
		inner := strings.TrimSuffix(strings.TrimPrefix(text, "-("), ")")
		return Operand{Kind: OperandPreIndirect, Value: text, Operands: []Operand{l.parseOperand(inner)}}
	case reImmediate.MatchString(text):
		return Operand{Kind: OperandImmediate, Value: strings.TrimPrefix(text, "#")}
	case strings.HasSuffix(text, ")") && strings.Contains(text, "("):
		return l.parseIndirect(text)
	case reIdentifier.MatchString(text):
		return Operand{Kind: OperandLabel, Value: text}
	case reAbsolute.MatchString(text) || strings.ContainsAny(text, "+-*/%"):
		return Operand{Kind: OperandAbsolute, Value: trimAbsoluteSuffix(text)}
	default:
		return Operand{Kind: OperandOther, Value: text}
	}
}

// parseIndirect handles d(An) and d(An, Xn.s), including the
// zero-displacement (An) form.
func (l *Lexer) parseIndirect(text string) Operand {
	open := strings.Index(text, "(")
	offset := strings.TrimSpace(text[:open])
	inner := strings.TrimSuffix(text[open+1:], ")")
	args := splitArgs(inner)
	operands := make([]Operand, 0, len(args))
	for _, arg := range args {
		operands = append(operands, l.parseIndexOperand(arg))
	}
	switch len(operands) {
	case 1:
		return Operand{Kind: OperandIndirect, Value: text, Offset: offset, Operands: operands}
	case 2:
		return Operand{Kind: OperandIndirectIndex, Value: text, Offset: offset, Operands: operands}
	default:
		return Operand{Kind: OperandOther, Value: text}
	}
}

// parseIndexOperand accepts a register with an optional extension size,
// like "d3.w" inside an indexed operand.
func (l *Lexer) parseIndexOperand(text string) Operand {
	text = strings.TrimSpace(text)
	name, size := splitSizeSuffix(text)
	if size != cpu.SizeUnspecified && reRegister.MatchString(name) {
		op := registerOperand(name)
		op.Size = size
		return op
	}
	return l.parseOperand(text)
}

func registerOperand(name string) Operand {
	op := Operand{Kind: OperandRegister, Value: name}
	switch name[0] {
	case 'd':
		op.RegisterType = RegisterData
	case 'a':
		op.RegisterType = RegisterAddress
	default:
		op.RegisterType = RegisterSP
	}
	return op
}
