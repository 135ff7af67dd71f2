package compiler

import (
	"github.com/Specy/s68k/cpu"
	"github.com/Specy/s68k/lexer"
)

func (c *Compiler) decodeStack(line lexer.Line) (*Instruction, error) {
	st := line.Parsed
	switch st.Name {
	case "lea":
		src, err := c.operand(line, 0)
		if err != nil {
			return nil, err
		}
		dst, err := c.operand(line, 1)
		if err != nil {
			return nil, err
		}
		return &Instruction{Kind: OpLea, Size: cpu.SizeLong, Src: src, Dst: dst}, nil
	case "pea":
		src, err := c.operand(line, 0)
		if err != nil {
			return nil, err
		}
		return &Instruction{Kind: OpPea, Size: cpu.SizeLong, Src: src}, nil
	case "link":
		reg, err := c.register(line, 0)
		if err != nil {
			return nil, err
		}
		disp, err := c.operand(line, 1)
		if err != nil {
			return nil, err
		}
		return &Instruction{
			Kind: OpLink,
			Size: cpu.SizeWord,
			Src:  Operand{Kind: OperandRegister, Register: reg},
			Dst:  disp,
		}, nil
	case "unlk":
		reg, err := c.register(line, 0)
		if err != nil {
			return nil, err
		}
		return &Instruction{Kind: OpUnlk, Src: Operand{Kind: OperandRegister, Register: reg}}, nil
	case "movem":
		return c.decodeMovem(line)
	}
	return nil, c.errorf(line, "unknown instruction %q", st.Name)
}

// decodeMovem handles both transfer directions: a register list on the
// first operand stores to memory, on the second loads from memory.
func (c *Compiler) decodeMovem(line lexer.Line) (*Instruction, error) {
	st := line.Parsed
	size := resolveSize(st.Size, cpu.SizeWord)
	if regs, ok := c.registerList(st.Operands[0]); ok {
		ea, err := c.operand(line, 1)
		if err != nil {
			return nil, err
		}
		return &Instruction{Kind: OpMovem, Size: size, Regs: regs, Dst: ea, ToMemory: true}, nil
	}
	regs, ok := c.registerList(st.Operands[1])
	if !ok {
		return nil, c.errorf(line, "movem requires a register list")
	}
	ea, err := c.operand(line, 0)
	if err != nil {
		return nil, err
	}
	return &Instruction{Kind: OpMovem, Size: size, Regs: regs, Src: ea}, nil
}

func (c *Compiler) registerList(op lexer.Operand) ([]cpu.RegisterRef, bool) {
	if op.Kind == lexer.OperandRegister {
		ref, err := registerRef(op)
		if err != nil {
			return nil, false
		}
		return []cpu.RegisterRef{ref}, true
	}
	regs, err := cpu.ParseRegisterList(op.Value)
	if err != nil {
		return nil, false
	}
	return regs, true
}
