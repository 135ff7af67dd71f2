package compiler

import (
	"github.com/Specy/s68k/cpu"
	"github.com/Specy/s68k/lexer"
)

func (c *Compiler) decodeMove(line lexer.Line) (*Instruction, error) {
	st := line.Parsed
	switch st.Name {
	case "move":
		src, err := c.operand(line, 0)
		if err != nil {
			return nil, err
		}
		dst, err := c.operand(line, 1)
		if err != nil {
			return nil, err
		}
		return &Instruction{Kind: OpMove, Size: resolveSize(st.Size, cpu.SizeWord), Src: src, Dst: dst}, nil
	case "moveq":
		src, err := c.operand(line, 0)
		if err != nil {
			return nil, err
		}
		dst, err := c.operand(line, 1)
		if err != nil {
			return nil, err
		}
		// The 8-bit immediate is sign-extended to a longword.
		src.Value = uint32(int32(int8(src.Value)))
		return &Instruction{Kind: OpMoveq, Size: cpu.SizeLong, Src: src, Dst: dst}, nil
	case "exg":
		first, err := c.register(line, 0)
		if err != nil {
			return nil, err
		}
		second, err := c.register(line, 1)
		if err != nil {
			return nil, err
		}
		return &Instruction{
			Kind: OpExg,
			Size: cpu.SizeLong,
			Src:  Operand{Kind: OperandRegister, Register: first},
			Dst:  Operand{Kind: OperandRegister, Register: second},
		}, nil
	case "ext":
		reg, err := c.register(line, 0)
		if err != nil {
			return nil, err
		}
		return &Instruction{
			Kind: OpExt,
			Size: resolveSize(st.Size, cpu.SizeWord),
			Src:  Operand{Kind: OperandRegister, Register: reg},
		}, nil
	case "swap":
		reg, err := c.register(line, 0)
		if err != nil {
			return nil, err
		}
		return &Instruction{
			Kind: OpSwap,
			Size: cpu.SizeLong,
			Src:  Operand{Kind: OperandRegister, Register: reg},
		}, nil
	case "clr":
		dst, err := c.operand(line, 0)
		if err != nil {
			return nil, err
		}
		return &Instruction{Kind: OpClr, Size: resolveSize(st.Size, cpu.SizeWord), Src: dst}, nil
	}
	return nil, c.errorf(line, "unknown instruction %q", st.Name)
}
