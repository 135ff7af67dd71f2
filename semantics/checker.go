package semantics

import (
	"fmt"
	"strings"

	"github.com/Specy/s68k/cpu"
	"github.com/Specy/s68k/expr"
	"github.com/Specy/s68k/lexer"
)

// Checker validates parsed lines against the contract table. Errors are
// accumulated so a single pass surfaces as many diagnostics as possible.
type Checker struct {
	symbols map[string]bool
	errors  []*Error
}

// Check validates every line and returns the collected diagnostics.
func Check(lines []lexer.Line) []*Error {
	c := &Checker{symbols: make(map[string]bool)}
	c.collectSymbols(lines)
	for _, line := range lines {
		switch line.Parsed.Kind {
		case lexer.LineEmpty, lexer.LineComment:
		case lexer.LineLabel:
			if line.Parsed.Directive != nil {
				c.checkDirective(line, *line.Parsed.Directive, true)
			}
		case lexer.LineDirective:
			c.checkDirective(line, line.Parsed, false)
		case lexer.LineInstruction:
			c.checkInstruction(line)
		default:
			c.addError(line, CodeMalformedOperand, fmt.Sprintf("unrecognized line %q", line.Raw))
		}
	}
	return c.errors
}

// collectSymbols gathers label and equ names first so forward
// references resolve, and reports duplicates.
func (c *Checker) collectSymbols(lines []lexer.Line) {
	for _, line := range lines {
		var name string
		switch {
		case line.Parsed.Kind == lexer.LineLabel:
			name = line.Parsed.Name
		case line.Parsed.Kind == lexer.LineDirective && line.Parsed.Name == "equ" && len(line.Parsed.Args) > 0:
			name = line.Parsed.Args[0]
		default:
			continue
		}
		if c.symbols[name] {
			c.addError(line, CodeDuplicateLabel, fmt.Sprintf("label %q already exists", name))
			continue
		}
		c.symbols[name] = true
	}
}

func (c *Checker) addError(line lexer.Line, code Code, message string) {
	c.errors = append(c.errors, &Error{Line: line, Code: code, Message: message})
}

func (c *Checker) checkInstruction(line lexer.Line) {
	st := line.Parsed
	contract, ok := contracts[st.Name]
	if !ok {
		c.addError(line, CodeUnknownMnemonic, fmt.Sprintf("unknown instruction %q", st.Name))
		return
	}
	c.checkSize(line, contract.sizes, st.Size)
	if contract.special == specialMovem {
		c.checkMovem(line, st)
		return
	}
	if len(st.Operands) != len(contract.operands) {
		c.addError(line, CodeWrongArity,
			fmt.Sprintf("%s expects %d operands, received %d", st.Name, len(contract.operands), len(st.Operands)))
		return
	}
	for i, op := range st.Operands {
		mode, err := classifyOperand(op)
		if err != nil {
			c.addError(line, CodeMalformedOperand, err.Error())
			continue
		}
		if mode&contract.operands[i] == 0 {
			c.errors = append(c.errors, &Error{
				Line:    line,
				Code:    CodeInvalidAddressingMode,
				Message: fmt.Sprintf("invalid addressing mode %s for operand %d of %s, expected %s", mode, i+1, st.Name, contract.operands[i]),
				Allowed: contract.operands[i],
			})
			continue
		}
		c.checkOperandExpressions(line, op)
	}
	c.checkSpecial(line, st, contract.special)
}

func (c *Checker) checkSize(line lexer.Line, rule sizeRule, size cpu.Size) {
	if size == cpu.SizeUnknown {
		c.addError(line, CodeUnsupportedSize, fmt.Sprintf("unknown size suffix at %q", line.Raw))
		return
	}
	switch rule {
	case sizeNone:
		if size != cpu.SizeUnspecified {
			c.addError(line, CodeUnsupportedSize, fmt.Sprintf("%s does not take a size suffix", line.Parsed.Name))
		}
	case sizeWordLong:
		if size == cpu.SizeByte {
			c.addError(line, CodeUnsupportedSize, fmt.Sprintf("%s must be word or long", line.Parsed.Name))
		}
	}
}

// checkOperandExpressions validates the expression texts buried inside
// an operand: immediates, absolutes and displacements.
func (c *Checker) checkOperandExpressions(line lexer.Line, op lexer.Operand) {
	switch op.Kind {
	case lexer.OperandImmediate, lexer.OperandAbsolute:
		c.checkExpression(line, op.Value)
	case lexer.OperandLabel:
		if !c.symbols[op.Value] {
			c.addError(line, CodeUnresolvedLabel, fmt.Sprintf("label %q does not exist", op.Value))
		}
	case lexer.OperandIndirect, lexer.OperandIndirectIndex:
		if strings.TrimSpace(op.Offset) != "" {
			c.checkExpression(line, op.Offset)
		}
	}
}

// checkExpression verifies symbol resolvability and syntax. Symbol
// values are unknown before compilation, so referenced names are bound
// to a placeholder for the syntax pass.
func (c *Checker) checkExpression(line lexer.Line, text string) {
	env := expr.Env{}
	for _, sym := range expr.Symbols(text) {
		if !c.symbols[sym] {
			c.addError(line, CodeUnresolvedLabel, fmt.Sprintf("label %q does not exist", sym))
			return
		}
		env[sym] = 1
	}
	if _, err := expr.Eval(text, env); err != nil {
		c.addError(line, CodeExpressionError, err.Error())
	}
}

func (c *Checker) checkSpecial(line lexer.Line, st lexer.Statement, sp special) {
	switch sp {
	case specialMoveq:
		c.checkImmediateBounds(line, st.Operands, 0, -128, 127)
	case specialQuick:
		c.checkImmediateBounds(line, st.Operands, 0, 1, 8)
	case specialShiftCount:
		c.checkImmediateBounds(line, st.Operands, 0, 0, 8)
	case specialTrap:
		c.checkImmediateBounds(line, st.Operands, 0, 0, 15)
	case specialNone:
		c.checkImmediateFitsSize(line, st)
	}
}

// checkImmediateBounds verifies a literal immediate at the given
// operand position lies within [min, max]. Expressions referencing
// symbols are left to the compiler, which knows their values.
func (c *Checker) checkImmediateBounds(line lexer.Line, ops []lexer.Operand, pos int, min, max int64) {
	if pos >= len(ops) || ops[pos].Kind != lexer.OperandImmediate {
		return
	}
	if len(expr.Symbols(ops[pos].Value)) > 0 {
		return
	}
	v, err := expr.Eval(ops[pos].Value, nil)
	if err != nil {
		return
	}
	if v < min || v > max {
		c.addError(line, CodeImmediateOutOfRange,
			fmt.Sprintf("immediate %d out of range, must be between %d and %d", v, min, max))
	}
}

// checkImmediateFitsSize verifies that a literal immediate source fits
// the effective size of the instruction.
func (c *Checker) checkImmediateFitsSize(line lexer.Line, st lexer.Statement) {
	if len(st.Operands) == 0 || st.Operands[0].Kind != lexer.OperandImmediate {
		return
	}
	if len(expr.Symbols(st.Operands[0].Value)) > 0 {
		return
	}
	size := st.Size
	if size == cpu.SizeUnspecified {
		size = cpu.SizeWord
	}
	bits := int64(size.Bits())
	if bits == 0 {
		return
	}
	v, err := expr.Eval(st.Operands[0].Value, nil)
	if err != nil {
		return
	}
	if v > (1<<bits)-1 || v < -(1<<(bits-1)) {
		c.addError(line, CodeImmediateOutOfRange,
			fmt.Sprintf("immediate %d is not a valid %d bit number", v, bits))
	}
}

// checkMovem validates the two shapes: register list to memory, or
// memory to register list.
func (c *Checker) checkMovem(line lexer.Line, st lexer.Statement) {
	if len(st.Operands) != 2 {
		c.addError(line, CodeWrongArity, fmt.Sprintf("movem expects 2 operands, received %d", len(st.Operands)))
		return
	}
	// A memory source may postincrement, a memory destination may
	// predecrement.
	first := c.movemSide(line, st.Operands[0], ModeControl|ModePostIncrement)
	second := c.movemSide(line, st.Operands[1], ModeControl|ModePreDecrement)
	if first == second {
		c.addError(line, CodeInvalidAddressingMode,
			"movem requires a register list on exactly one side")
	}
}

// movemSide reports whether the operand is a register list. Non-list
// operands are validated against the allowed memory modes.
func (c *Checker) movemSide(line lexer.Line, op lexer.Operand, allowed Mode) bool {
	if isRegisterList(op) {
		return true
	}
	mode, err := classifyOperand(op)
	if err != nil {
		c.addError(line, CodeMalformedOperand, err.Error())
		return false
	}
	if mode&allowed == 0 {
		c.errors = append(c.errors, &Error{
			Line:    line,
			Code:    CodeInvalidAddressingMode,
			Message: fmt.Sprintf("invalid addressing mode %s for movem, expected %s", mode, allowed),
			Allowed: allowed,
		})
		return false
	}
	c.checkOperandExpressions(line, op)
	return false
}

func isRegisterList(op lexer.Operand) bool {
	if op.Kind == lexer.OperandRegister {
		return true
	}
	if op.Kind != lexer.OperandAbsolute && op.Kind != lexer.OperandOther && op.Kind != lexer.OperandLabel {
		return false
	}
	_, err := cpu.ParseRegisterList(op.Value)
	return err == nil
}
