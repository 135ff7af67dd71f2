package compiler

import (
	"github.com/Specy/s68k/cpu"
	"github.com/Specy/s68k/lexer"
)

func (c *Compiler) decodeLogic(line lexer.Line) (*Instruction, error) {
	st := line.Parsed
	switch st.Name {
	case "and", "andi", "or", "ori", "eor", "eori":
		src, err := c.operand(line, 0)
		if err != nil {
			return nil, err
		}
		dst, err := c.operand(line, 1)
		if err != nil {
			return nil, err
		}
		var kind OpKind
		switch st.Name[0] {
		case 'a':
			kind = OpAnd
		case 'o':
			kind = OpOr
		default:
			kind = OpEor
		}
		return &Instruction{Kind: kind, Size: resolveSize(st.Size, cpu.SizeWord), Src: src, Dst: dst}, nil
	case "not":
		src, err := c.operand(line, 0)
		if err != nil {
			return nil, err
		}
		return &Instruction{Kind: OpNot, Size: resolveSize(st.Size, cpu.SizeWord), Src: src}, nil
	case "lsl", "lsr", "asl", "asr", "rol", "ror":
		src, err := c.operand(line, 0)
		if err != nil {
			return nil, err
		}
		dst, err := c.operand(line, 1)
		if err != nil {
			return nil, err
		}
		var kind OpKind
		switch st.Name[0] {
		case 'l':
			kind = OpLogicalShift
		case 'a':
			kind = OpArithShift
		default:
			kind = OpRotate
		}
		dir := cpu.ShiftLeft
		if st.Name[2] == 'r' {
			dir = cpu.ShiftRight
		}
		return &Instruction{Kind: kind, Size: resolveSize(st.Size, cpu.SizeWord), Src: src, Dst: dst, Dir: dir}, nil
	case "btst", "bclr", "bset", "bchg":
		src, err := c.operand(line, 0)
		if err != nil {
			return nil, err
		}
		dst, err := c.operand(line, 1)
		if err != nil {
			return nil, err
		}
		var kind OpKind
		switch st.Name {
		case "btst":
			kind = OpBtst
		case "bclr":
			kind = OpBclr
		case "bset":
			kind = OpBset
		default:
			kind = OpBchg
		}
		// Bit numbering is modulo 32 on a register, modulo 8 in memory.
		size := cpu.SizeLong
		if dst.Kind != OperandRegister {
			size = cpu.SizeByte
		}
		return &Instruction{Kind: kind, Size: size, Src: src, Dst: dst}, nil
	}
	return nil, c.errorf(line, "unknown instruction %q", st.Name)
}
