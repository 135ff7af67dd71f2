package compiler

import (
	"github.com/Specy/s68k/cpu"
	"github.com/Specy/s68k/lexer"
)

func (c *Compiler) decodeMaths(line lexer.Line) (*Instruction, error) {
	st := line.Parsed
	switch st.Name {
	case "add", "addi", "addq", "sub", "subi", "subq":
		src, err := c.operand(line, 0)
		if err != nil {
			return nil, err
		}
		dst, err := c.operand(line, 1)
		if err != nil {
			return nil, err
		}
		kind := OpAdd
		if st.Name[0] == 's' {
			kind = OpSub
		}
		return &Instruction{Kind: kind, Size: resolveSize(st.Size, cpu.SizeWord), Src: src, Dst: dst}, nil
	case "adda", "suba", "cmpa":
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
		case "adda":
			kind = OpAdda
		case "suba":
			kind = OpSuba
		default:
			kind = OpCmpa
		}
		return &Instruction{Kind: kind, Size: resolveSize(st.Size, cpu.SizeWord), Src: src, Dst: dst}, nil
	case "muls", "mulu", "divs", "divu":
		src, err := c.operand(line, 0)
		if err != nil {
			return nil, err
		}
		dst, err := c.operand(line, 1)
		if err != nil {
			return nil, err
		}
		kind := OpMul
		if st.Name[0] == 'd' {
			kind = OpDiv
		}
		return &Instruction{
			Kind:   kind,
			Size:   cpu.SizeWord,
			Src:    src,
			Dst:    dst,
			Signed: st.Name[3] == 's',
		}, nil
	case "cmp", "cmpi":
		src, err := c.operand(line, 0)
		if err != nil {
			return nil, err
		}
		dst, err := c.operand(line, 1)
		if err != nil {
			return nil, err
		}
		return &Instruction{Kind: OpCmp, Size: resolveSize(st.Size, cpu.SizeWord), Src: src, Dst: dst}, nil
	case "tst":
		src, err := c.operand(line, 0)
		if err != nil {
			return nil, err
		}
		return &Instruction{Kind: OpTst, Size: resolveSize(st.Size, cpu.SizeWord), Src: src}, nil
	case "neg":
		src, err := c.operand(line, 0)
		if err != nil {
			return nil, err
		}
		return &Instruction{Kind: OpNeg, Size: resolveSize(st.Size, cpu.SizeWord), Src: src}, nil
	}
	return nil, c.errorf(line, "unknown instruction %q", st.Name)
}
