package compiler

import (
	"strings"

	"github.com/Specy/s68k/cpu"
	"github.com/Specy/s68k/lexer"
)

// decode translates one instruction line into a decoded operation. The
// semantic checker has already validated arity and addressing modes, so
// a contract violation surfacing here is a compiler bug on valid input.
func (c *Compiler) decode(line lexer.Line) (*Instruction, error) {
	name := line.Parsed.Name
	switch name {
	case "move", "moveq", "exg", "ext", "swap", "clr":
		return c.decodeMove(line)
	case "add", "addi", "sub", "subi", "addq", "subq", "adda", "suba",
		"muls", "mulu", "divs", "divu", "cmp", "cmpi", "cmpa", "tst", "neg":
		return c.decodeMaths(line)
	case "and", "andi", "or", "ori", "eor", "eori", "not",
		"lsl", "lsr", "asl", "asr", "rol", "ror",
		"btst", "bclr", "bset", "bchg":
		return c.decodeLogic(line)
	case "lea", "pea", "link", "unlk", "movem":
		return c.decodeStack(line)
	}
	switch {
	case name == "rts" || name == "nop" || name == "jmp" || name == "jsr" || name == "trap" ||
		name == "bra" || name == "bsr" ||
		strings.HasPrefix(name, "b") || strings.HasPrefix(name, "s") || strings.HasPrefix(name, "db"):
		return c.decodeFlow(line)
	}
	return nil, c.errorf(line, "unknown instruction %q", name)
}

// operand is a convenience accessor for decode helpers.
func (c *Compiler) operand(line lexer.Line, pos int) (Operand, error) {
	return c.lowerOperand(line, line.Parsed.Operands[pos])
}

// register lowers an operand position that must be a plain register.
func (c *Compiler) register(line lexer.Line, pos int) (cpu.RegisterRef, error) {
	ref, err := registerRef(line.Parsed.Operands[pos])
	if err != nil {
		return cpu.RegisterRef{}, c.errorf(line, "%s", err)
	}
	return ref, nil
}
