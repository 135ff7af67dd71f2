package compiler

import (
	"strconv"
	"strings"

	"github.com/Specy/s68k/cpu"
	"github.com/Specy/s68k/lexer"
)

// lowerOperand resolves a lexed operand into a runtime operand. Labels
// become absolute memory references; branch targets go through
// lowerTarget instead.
func (c *Compiler) lowerOperand(line lexer.Line, op lexer.Operand) (Operand, error) {
	switch op.Kind {
	case lexer.OperandRegister:
		ref, err := registerRef(op)
		if err != nil {
			return Operand{}, c.errorf(line, "%s", err)
		}
		return Operand{Kind: OperandRegister, Register: ref}, nil
	case lexer.OperandImmediate:
		v, err := c.eval(line, op.Value)
		if err != nil {
			return Operand{}, err
		}
		return Operand{Kind: OperandImmediate, Value: v}, nil
	case lexer.OperandAbsolute:
		v, err := c.eval(line, op.Value)
		if err != nil {
			return Operand{}, err
		}
		return Operand{Kind: OperandAbsolute, Value: v}, nil
	case lexer.OperandLabel:
		address, ok := c.labels[op.Value]
		if !ok {
			if v, isEqu := c.symbols[op.Value]; isEqu {
				return Operand{Kind: OperandAbsolute, Value: v}, nil
			}
			return Operand{}, c.errorf(line, "label %q not found", op.Value)
		}
		return Operand{Kind: OperandAbsolute, Value: address}, nil
	case lexer.OperandIndirect:
		return c.lowerIndirect(line, op, IndirectPlain)
	case lexer.OperandPreIndirect:
		ref, err := registerRef(op.Operands[0])
		if err != nil {
			return Operand{}, c.errorf(line, "%s", err)
		}
		return Operand{Kind: OperandIndirect, Register: ref, Mode: IndirectPre}, nil
	case lexer.OperandPostIndirect:
		ref, err := registerRef(op.Operands[0])
		if err != nil {
			return Operand{}, c.errorf(line, "%s", err)
		}
		return Operand{Kind: OperandIndirect, Register: ref, Mode: IndirectPost}, nil
	case lexer.OperandIndirectIndex:
		return c.lowerIndexed(line, op)
	default:
		return Operand{}, c.errorf(line, "cannot compile operand %q", op.Value)
	}
}

// lowerTarget resolves a branch or jump target to an address operand.
func (c *Compiler) lowerTarget(line lexer.Line, op lexer.Operand) (Operand, error) {
	switch op.Kind {
	case lexer.OperandLabel:
		address, ok := c.labels[op.Value]
		if !ok {
			return Operand{}, c.errorf(line, "label %q not found", op.Value)
		}
		return Operand{Kind: OperandAddress, Value: address}, nil
	case lexer.OperandAbsolute:
		v, err := c.eval(line, op.Value)
		if err != nil {
			return Operand{}, err
		}
		return Operand{Kind: OperandAddress, Value: v}, nil
	default:
		lowered, err := c.lowerOperand(line, op)
		if err != nil {
			return Operand{}, err
		}
		return lowered, nil
	}
}

func (c *Compiler) lowerIndirect(line lexer.Line, op lexer.Operand, mode IndirectMode) (Operand, error) {
	ref, err := registerRef(op.Operands[0])
	if err != nil {
		return Operand{}, c.errorf(line, "%s", err)
	}
	out := Operand{Kind: OperandIndirect, Register: ref, Mode: mode}
	if offset := strings.TrimSpace(op.Offset); offset != "" {
		v, err := c.eval(line, offset)
		if err != nil {
			return Operand{}, err
		}
		out.Displacement = int32(v)
	}
	return out, nil
}

func (c *Compiler) lowerIndexed(line lexer.Line, op lexer.Operand) (Operand, error) {
	out, err := c.lowerIndirect(line, op, IndirectPlain)
	if err != nil {
		return Operand{}, err
	}
	index, err := registerRef(op.Operands[1])
	if err != nil {
		return Operand{}, c.errorf(line, "%s", err)
	}
	size := op.Operands[1].Size
	if size == cpu.SizeUnspecified {
		size = cpu.SizeWord
	}
	out.Index = &IndexSpec{Register: index, Size: size}
	return out, nil
}

// registerRef converts a lexed register token to its reference.
func registerRef(op lexer.Operand) (cpu.RegisterRef, error) {
	if op.Kind != lexer.OperandRegister {
		return cpu.RegisterRef{}, &Error{Message: "expected a register, got " + strconv.Quote(op.Value)}
	}
	if op.RegisterType == lexer.RegisterSP {
		return cpu.SP, nil
	}
	n, err := strconv.Atoi(op.Value[1:])
	if err != nil || n < 0 || n > 7 {
		return cpu.RegisterRef{}, &Error{Message: "invalid register " + strconv.Quote(op.Value)}
	}
	if op.RegisterType == lexer.RegisterData {
		return cpu.DataReg(uint8(n)), nil
	}
	return cpu.AddrReg(uint8(n)), nil
}
